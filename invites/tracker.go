// Package invites attributes new members to the invite (and so the member) that brought them in.
//
// The tracker keeps a snapshot of every guild's invite use counts. When a member joins,
// the live invite list is compared against the snapshot: the first invite whose use count went up
// is assumed to be the one the member used. The snapshot is refreshed after every join,
// and whenever an invite is created or deleted.
//
// If two members join between refreshes, more than one invite can show an increase.
// The first one in the platform's list order wins, which can attribute a member to the wrong inviter.
// Joins in the same guild are serialized by the tracker to keep that window as small as possible.
package invites

import (
	"context"
	"time"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/warden-bot/warden/common/log"
	"github.com/warden-bot/warden/db"
	"github.com/warden-bot/warden/platform"
	"github.com/warden-bot/warden/store"
)

// SuspiciousAge is the minimum account age at join time for a referral not to be marked suspicious.
const SuspiciousAge = 24 * time.Hour

// ReferralStore persists referrals. *db.DB implements this.
type ReferralStore interface {
	// CreateReferral stores r unless the member already has a referral in r's guild.
	CreateReferral(ctx context.Context, r db.Referral) (created bool, err error)
	GuildReferrals(ctx context.Context, guildID discord.GuildID) ([]db.Referral, error)
}

// Tracker attributes joins to invites.
type Tracker struct {
	Platform  platform.Platform
	Snapshots store.SnapshotStore
	Referrals ReferralStore

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	locks guildLocks
}

// New returns a new Tracker.
func New(p platform.Platform, snapshots store.SnapshotStore, referrals ReferralStore) *Tracker {
	return &Tracker{
		Platform:  p,
		Snapshots: snapshots,
		Referrals: referrals,
		Now:       time.Now,
	}
}

func (t *Tracker) now() time.Time {
	if t.Now == nil {
		return time.Now()
	}
	return t.Now()
}

// Attribution is the result of a successful Attribute call.
type Attribution struct {
	Referral db.Referral
	// Invite is the invite as it was after the member joined.
	Invite discord.Invite
	// Rejoin is true if the member already had a referral in this guild.
	// In that case the existing referral is kept and nothing was written.
	Rejoin bool
}

// IsSuspicious returns true if the account was less than SuspiciousAge old when it joined.
func IsSuspicious(accountCreated, joinedAt time.Time) bool {
	return joinedAt.Sub(accountCreated) < SuspiciousAge
}

// Refresh fetches the guild's invites and replaces its stored snapshot.
// If the invites can't be fetched, the stored snapshot is cleared so that no joins are attributed
// until the next successful refresh, and a *platform.Error is returned.
func (t *Tracker) Refresh(ctx context.Context, guildID discord.GuildID) (store.Snapshot, error) {
	unlock := t.locks.lock(guildID)
	defer unlock()

	return t.refresh(ctx, guildID)
}

func (t *Tracker) refresh(ctx context.Context, guildID discord.GuildID) (store.Snapshot, error) {
	invs, err := t.Platform.GuildInvites(guildID)
	if err != nil {
		snap := store.EmptySnapshot(guildID, t.now())
		if serr := t.Snapshots.SetSnapshot(ctx, snap); serr != nil {
			log.Errorf("clearing invite snapshot for %v: %v", guildID, serr)
		}

		return snap, platform.Classify("list invites", err)
	}

	snap := store.NewSnapshot(guildID, invs, t.now())
	err = t.Snapshots.SetSnapshot(ctx, snap)
	if err != nil {
		return snap, errors.Wrap(err, "storing snapshot")
	}
	return snap, nil
}

// Forget removes a guild's snapshot.
func (t *Tracker) Forget(ctx context.Context, guildID discord.GuildID) error {
	unlock := t.locks.lock(guildID)
	defer unlock()

	return t.Snapshots.DeleteSnapshot(ctx, guildID)
}

// Attribute works out which invite a member used to join, and stores a referral for it.
// ok is false if no invite's use count went up since the last refresh,
// for example when the member joined through a vanity URL or was added by a bot.
// The guild's snapshot is always refreshed before returning.
func (t *Tracker) Attribute(ctx context.Context, guildID discord.GuildID, member discord.User, joinedAt time.Time) (a Attribution, ok bool, err error) {
	unlock := t.locks.lock(guildID)
	defer unlock()

	defer func() {
		_, rerr := t.refresh(ctx, guildID)
		if rerr != nil {
			log.Errorf("refreshing invites for %v after join: %v", guildID, rerr)
		}
	}()

	snap, err := t.Snapshots.Snapshot(ctx, guildID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return a, false, errors.Wrap(err, "getting snapshot")
		}
		snap = store.EmptySnapshot(guildID, t.now())
	}

	live, err := t.Platform.GuildInvites(guildID)
	if err != nil {
		return a, false, platform.Classify("list invites", err)
	}

	inv, ok := Match(snap, live)
	if !ok || inv.Inviter == nil {
		return a, false, nil
	}

	a.Invite = inv
	a.Referral = db.Referral{
		GuildID:    guildID,
		MemberID:   member.ID,
		InviterID:  inv.Inviter.ID,
		InviteCode: inv.Code,
		Suspicious: IsSuspicious(member.ID.Time(), joinedAt),
		JoinedAt:   joinedAt,
	}

	created, err := t.Referrals.CreateReferral(ctx, a.Referral)
	if err != nil {
		return a, false, errors.Wrap(err, "storing referral")
	}
	a.Rejoin = !created

	return a, true, nil
}

// Match returns the first invite in live (in list order) whose use count is higher than in snap.
// Invites that aren't in the snapshot are never matched: an empty snapshot attributes nothing.
func Match(snap store.Snapshot, live []discord.Invite) (discord.Invite, bool) {
	for _, inv := range live {
		prev, ok := snap.Uses[inv.Code]
		if !ok {
			continue
		}

		if inv.Uses > prev {
			return inv, true
		}
	}
	return discord.Invite{}, false
}
