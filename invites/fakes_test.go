package invites

import (
	"context"
	"net/http"
	"sync"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/utils/httputil"
	"github.com/warden-bot/warden/db"
)

type fakePlatform struct {
	mu sync.Mutex

	invites     []discord.Invite
	invitesErr  error
	inviteCalls int

	members   map[discord.UserID]bool
	memberErr error
}

func newFakePlatform(invs ...discord.Invite) *fakePlatform {
	return &fakePlatform{
		invites: invs,
		members: map[discord.UserID]bool{},
	}
}

func (f *fakePlatform) setInvites(invs ...discord.Invite) {
	f.mu.Lock()
	f.invites = invs
	f.mu.Unlock()
}

func (f *fakePlatform) setInvitesErr(err error) {
	f.mu.Lock()
	f.invitesErr = err
	f.mu.Unlock()
}

func (f *fakePlatform) GuildInvites(discord.GuildID) ([]discord.Invite, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.inviteCalls++
	if f.invitesErr != nil {
		return nil, f.invitesErr
	}

	out := make([]discord.Invite, len(f.invites))
	copy(out, f.invites)
	return out, nil
}

func (f *fakePlatform) Member(_ discord.GuildID, userID discord.UserID) (*discord.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.memberErr != nil {
		return nil, f.memberErr
	}

	if !f.members[userID] {
		return nil, &httputil.HTTPError{Status: http.StatusNotFound, Message: "Unknown Member"}
	}
	return &discord.Member{User: discord.User{ID: userID}}, nil
}

type referralKey struct {
	guildID  discord.GuildID
	memberID discord.UserID
}

type fakeReferrals struct {
	mu   sync.Mutex
	refs []db.Referral
	keys map[referralKey]struct{}
	err  error
}

func newFakeReferrals(refs ...db.Referral) *fakeReferrals {
	f := &fakeReferrals{keys: map[referralKey]struct{}{}}
	for _, r := range refs {
		_, _ = f.CreateReferral(context.Background(), r)
	}
	return f
}

func (f *fakeReferrals) CreateReferral(_ context.Context, r db.Referral) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return false, f.err
	}

	k := referralKey{r.GuildID, r.MemberID}
	if _, ok := f.keys[k]; ok {
		return false, nil
	}
	f.keys[k] = struct{}{}
	f.refs = append(f.refs, r)
	return true, nil
}

func (f *fakeReferrals) GuildReferrals(_ context.Context, guildID discord.GuildID) ([]db.Referral, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}

	var out []db.Referral
	for _, r := range f.refs {
		if r.GuildID == guildID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReferrals) count(guildID discord.GuildID) int {
	refs, _ := f.GuildReferrals(context.Background(), guildID)
	return len(refs)
}

func invite(code string, uses int, inviter discord.UserID) discord.Invite {
	inv := discord.Invite{
		Code:    code,
		Inviter: &discord.User{ID: inviter},
	}
	inv.Uses = uses
	return inv
}
