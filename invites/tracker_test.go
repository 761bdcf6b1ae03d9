package invites

import (
	"context"
	"net/http"
	"testing"
	"time"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/utils/httputil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warden-bot/warden/platform"
	"github.com/warden-bot/warden/store"
	"github.com/warden-bot/warden/store/memory"
)

const (
	guildID  discord.GuildID = 100
	inviterA discord.UserID  = 1001
	inviterB discord.UserID  = 1002
)

var (
	epoch = time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	// an account that is a year old at epoch
	oldUser = discord.User{ID: discord.UserID(discord.NewSnowflake(epoch.Add(-365 * 24 * time.Hour)))}
)

func newTracker(p *fakePlatform, refs *fakeReferrals) (*Tracker, *memory.Store) {
	snaps := memory.New()
	t := New(p, snaps, refs)
	t.Now = func() time.Time { return epoch }
	return t, snaps
}

func TestRefreshIsIdempotent(t *testing.T) {
	ctx := context.Background()
	p := newFakePlatform(invite("a", 5, inviterA), invite("b", 3, inviterB))
	tr, _ := newTracker(p, newFakeReferrals())

	first, err := tr.Refresh(ctx, guildID)
	require.NoError(t, err)
	second, err := tr.Refresh(ctx, guildID)
	require.NoError(t, err)

	assert.Equal(t, first.Uses, second.Uses)
	assert.Equal(t, map[string]int{"a": 5, "b": 3}, second.Uses)
}

func TestRefreshReplacesSnapshot(t *testing.T) {
	ctx := context.Background()
	p := newFakePlatform(invite("a", 5, inviterA), invite("b", 3, inviterB))
	tr, snaps := newTracker(p, newFakeReferrals())

	_, err := tr.Refresh(ctx, guildID)
	require.NoError(t, err)

	p.setInvites(invite("c", 0, inviterA))
	_, err = tr.Refresh(ctx, guildID)
	require.NoError(t, err)

	snap, err := snaps.Snapshot(ctx, guildID)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"c": 0}, snap.Uses)
}

func TestRefreshFailureClearsSnapshot(t *testing.T) {
	ctx := context.Background()
	p := newFakePlatform(invite("a", 5, inviterA))
	tr, snaps := newTracker(p, newFakeReferrals())

	_, err := tr.Refresh(ctx, guildID)
	require.NoError(t, err)

	p.setInvitesErr(&httputil.HTTPError{Status: http.StatusForbidden})
	snap, err := tr.Refresh(ctx, guildID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, platform.ErrPermissionDenied))
	assert.Empty(t, snap.Uses)

	stored, err := snaps.Snapshot(ctx, guildID)
	require.NoError(t, err)
	assert.Empty(t, stored.Uses)
}

func TestAttributeSingleIncrease(t *testing.T) {
	ctx := context.Background()
	p := newFakePlatform(invite("a", 5, inviterA), invite("b", 3, inviterB))
	refs := newFakeReferrals()
	tr, snaps := newTracker(p, refs)

	_, err := tr.Refresh(ctx, guildID)
	require.NoError(t, err)

	p.setInvites(invite("a", 5, inviterA), invite("b", 4, inviterB))

	a, ok, err := tr.Attribute(ctx, guildID, oldUser, epoch)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, inviterB, a.Referral.InviterID)
	assert.Equal(t, "b", a.Referral.InviteCode)
	assert.Equal(t, oldUser.ID, a.Referral.MemberID)
	assert.False(t, a.Referral.Suspicious)
	assert.False(t, a.Rejoin)
	assert.Equal(t, 1, refs.count(guildID))

	// the trailing refresh picked up the consumed use
	snap, err := snaps.Snapshot(ctx, guildID)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 5, "b": 4}, snap.Uses)
}

func TestAttributeFirstMatchWins(t *testing.T) {
	tests := []struct {
		name string
		live []discord.Invite
		want discord.UserID
	}{
		{
			name: "a listed first",
			live: []discord.Invite{invite("a", 6, inviterA), invite("b", 4, inviterB)},
			want: inviterA,
		},
		{
			name: "b listed first",
			live: []discord.Invite{invite("b", 4, inviterB), invite("a", 6, inviterA)},
			want: inviterB,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			p := newFakePlatform(invite("a", 5, inviterA), invite("b", 3, inviterB))
			tr, _ := newTracker(p, newFakeReferrals())

			_, err := tr.Refresh(ctx, guildID)
			require.NoError(t, err)

			p.setInvites(tt.live...)

			a, ok, err := tr.Attribute(ctx, guildID, oldUser, epoch)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, tt.want, a.Referral.InviterID)
		})
	}
}

func TestAttributeNoIncrease(t *testing.T) {
	ctx := context.Background()
	p := newFakePlatform(invite("a", 5, inviterA), invite("b", 3, inviterB))
	refs := newFakeReferrals()
	tr, _ := newTracker(p, refs)

	_, err := tr.Refresh(ctx, guildID)
	require.NoError(t, err)
	callsBefore := p.inviteCalls

	_, ok, err := tr.Attribute(ctx, guildID, oldUser, epoch)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, refs.count(guildID))

	// one fetch to compare, one for the trailing refresh
	assert.Equal(t, callsBefore+2, p.inviteCalls)
}

func TestAttributeIgnoresUnknownInvites(t *testing.T) {
	ctx := context.Background()
	p := newFakePlatform(invite("a", 5, inviterA))
	refs := newFakeReferrals()
	tr, _ := newTracker(p, refs)

	// no snapshot at all yet
	_, ok, err := tr.Attribute(ctx, guildID, oldUser, epoch)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, refs.count(guildID))
}

func TestAttributeAfterFailedRefresh(t *testing.T) {
	ctx := context.Background()
	p := newFakePlatform(invite("a", 5, inviterA))
	refs := newFakeReferrals()
	tr, _ := newTracker(p, refs)

	_, err := tr.Refresh(ctx, guildID)
	require.NoError(t, err)

	p.setInvitesErr(errors.New("connection reset"))
	_, err = tr.Refresh(ctx, guildID)
	require.Error(t, err)

	// the platform is back, but the snapshot was cleared
	p.setInvitesErr(nil)
	p.setInvites(invite("a", 6, inviterA))

	_, ok, err := tr.Attribute(ctx, guildID, oldUser, epoch)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, refs.count(guildID))

	// the trailing refresh repositioned the snapshot for the next join
	p.setInvites(invite("a", 7, inviterA))
	a, ok, err := tr.Attribute(ctx, guildID, discord.User{ID: oldUser.ID + 1}, epoch)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, inviterA, a.Referral.InviterID)
}

func TestAttributePlatformError(t *testing.T) {
	ctx := context.Background()
	p := newFakePlatform(invite("a", 5, inviterA))
	refs := newFakeReferrals()
	tr, snaps := newTracker(p, refs)

	_, err := tr.Refresh(ctx, guildID)
	require.NoError(t, err)

	p.setInvitesErr(&httputil.HTTPError{Status: http.StatusBadGateway})
	_, ok, err := tr.Attribute(ctx, guildID, oldUser, epoch)
	require.Error(t, err)
	assert.False(t, ok)
	assert.True(t, errors.Is(err, platform.ErrPlatformUnavailable))
	assert.Equal(t, 0, refs.count(guildID))

	snap, err := snaps.Snapshot(ctx, guildID)
	require.NoError(t, err)
	assert.Empty(t, snap.Uses)
}

func TestAttributeRejoinKeepsFirstReferral(t *testing.T) {
	ctx := context.Background()
	p := newFakePlatform(invite("a", 5, inviterA), invite("b", 3, inviterB))
	refs := newFakeReferrals()
	tr, _ := newTracker(p, refs)

	_, err := tr.Refresh(ctx, guildID)
	require.NoError(t, err)

	p.setInvites(invite("a", 6, inviterA), invite("b", 3, inviterB))
	_, ok, err := tr.Attribute(ctx, guildID, oldUser, epoch)
	require.NoError(t, err)
	require.True(t, ok)

	p.setInvites(invite("a", 6, inviterA), invite("b", 4, inviterB))
	a, ok, err := tr.Attribute(ctx, guildID, oldUser, epoch.Add(time.Hour))
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, a.Rejoin)

	stored, err := refs.GuildReferrals(ctx, guildID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, inviterA, stored[0].InviterID)
}

func TestAttributeSuspicious(t *testing.T) {
	created := epoch
	user := discord.User{ID: discord.UserID(discord.NewSnowflake(created))}

	tests := []struct {
		name       string
		age        time.Duration
		suspicious bool
	}{
		{"brand new", 0, true},
		{"one second short of a day", 23*time.Hour + 59*time.Minute + 59*time.Second, true},
		{"exactly a day", 24 * time.Hour, false},
		{"a week", 7 * 24 * time.Hour, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			p := newFakePlatform(invite("a", 5, inviterA))
			tr, _ := newTracker(p, newFakeReferrals())

			_, err := tr.Refresh(ctx, guildID)
			require.NoError(t, err)
			p.setInvites(invite("a", 6, inviterA))

			a, ok, err := tr.Attribute(ctx, guildID, user, created.Add(tt.age))
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, tt.suspicious, a.Referral.Suspicious)
		})
	}
}

func TestIsSuspicious(t *testing.T) {
	assert.True(t, IsSuspicious(epoch, epoch.Add(SuspiciousAge-time.Second)))
	assert.False(t, IsSuspicious(epoch, epoch.Add(SuspiciousAge)))
}

func TestMatch(t *testing.T) {
	snap := store.NewSnapshot(guildID, []discord.Invite{invite("a", 5, inviterA), invite("b", 3, inviterB)}, epoch)

	_, ok := Match(snap, []discord.Invite{invite("a", 5, inviterA), invite("b", 3, inviterB)})
	assert.False(t, ok)

	// decreases are never a match
	_, ok = Match(snap, []discord.Invite{invite("a", 4, inviterA), invite("b", 2, inviterB)})
	assert.False(t, ok)

	inv, ok := Match(snap, []discord.Invite{invite("c", 10, inviterA), invite("b", 4, inviterB)})
	assert.True(t, ok)
	assert.Equal(t, "b", inv.Code)
}

func TestAttributeSerializesGuild(t *testing.T) {
	var l guildLocks

	unlock := l.lock(guildID)

	locked := make(chan struct{})
	go func() {
		unlockOther := l.lock(guildID + 1)
		unlockOther()

		unlockSame := l.lock(guildID)
		close(locked)
		unlockSame()
	}()

	select {
	case <-locked:
		t.Fatal("second lock for the same guild was acquired while the first was held")
	case <-time.After(50 * time.Millisecond):
	}

	unlock()
	select {
	case <-locked:
	case <-time.After(time.Second):
		t.Fatal("second lock was never acquired")
	}

	assert.Eventually(t, func() bool {
		l.mu.Lock()
		defer l.mu.Unlock()
		return len(l.locks) == 0
	}, time.Second, time.Millisecond)
}
