package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warden-bot/warden/db"
	"github.com/warden-bot/warden/invites"
	"github.com/warden-bot/warden/platform"
)

type fakeTracker struct {
	aggs map[discord.UserID]invites.Aggregate
	err  error
}

func (f *fakeTracker) Aggregate(_ context.Context, _ discord.GuildID, inviterID discord.UserID) (invites.Aggregate, error) {
	return f.aggs[inviterID], f.err
}

func (f *fakeTracker) Leaderboard(context.Context, discord.GuildID) ([]invites.InviterAggregate, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []invites.InviterAggregate{
		{InviterID: 1, Aggregate: f.aggs[1]},
		{InviterID: 2, Aggregate: f.aggs[2]},
	}, nil
}

type fakeReferrals map[discord.UserID]db.Referral

func (f fakeReferrals) MemberReferral(_ context.Context, _ discord.GuildID, memberID discord.UserID) (db.Referral, error) {
	r, ok := f[memberID]
	if !ok {
		return r, db.ErrNotFound
	}
	return r, nil
}

func newTestServer(t *fakeTracker, token string) *Server {
	joined := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	return New(t, fakeReferrals{
		5: {GuildID: 100, MemberID: 5, InviterID: 1, InviteCode: "abc", JoinedAt: joined},
	}, token)
}

func do(t *testing.T, s *Server, path, token string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := newTestServer(&fakeTracker{}, "secret")

	rec := do(t, s, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAggregate(t *testing.T) {
	s := newTestServer(&fakeTracker{aggs: map[discord.UserID]invites.Aggregate{
		1: {Suspicious: 1, Present: 3, Left: 2},
	}}, "")

	rec := do(t, s, "/v1/guilds/100/invites/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp aggregateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, discord.GuildID(100), resp.GuildID)
	assert.Equal(t, discord.UserID(1), resp.InviterID)
	assert.Equal(t, invites.Aggregate{Suspicious: 1, Present: 3, Left: 2}, resp.Aggregate)
	assert.Equal(t, 6, resp.Total)
}

func TestLeaderboard(t *testing.T) {
	s := newTestServer(&fakeTracker{aggs: map[discord.UserID]invites.Aggregate{
		1: {Present: 3},
		2: {Present: 1, Left: 4},
	}}, "")

	rec := do(t, s, "/v1/guilds/100/invites", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []aggregateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, discord.UserID(1), resp[0].InviterID)
	assert.Equal(t, 5, resp[1].Total)
}

func TestInviter(t *testing.T) {
	s := newTestServer(&fakeTracker{}, "")

	rec := do(t, s, "/v1/guilds/100/members/5/inviter", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp referralResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, discord.UserID(1), resp.InviterID)
	assert.Equal(t, "abc", resp.InviteCode)

	rec = do(t, s, "/v1/guilds/100/members/6/inviter", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		path   string
		status int
	}{
		{"bad guild", nil, "/v1/guilds/abc/invites", http.StatusBadRequest},
		{"bad user", nil, "/v1/guilds/100/invites/abc", http.StatusBadRequest},
		{"permission denied", &platform.Error{Op: "get member", Kind: platform.ErrPermissionDenied}, "/v1/guilds/100/invites", http.StatusForbidden},
		{"unavailable", &platform.Error{Op: "get member", Kind: platform.ErrPlatformUnavailable}, "/v1/guilds/100/invites/1", http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(&fakeTracker{err: tt.err}, "")

			rec := do(t, s, tt.path, "")
			assert.Equal(t, tt.status, rec.Code)

			var resp errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.status, resp.Status)
		})
	}
}

func TestToken(t *testing.T) {
	s := newTestServer(&fakeTracker{}, "secret")

	assert.Equal(t, http.StatusUnauthorized, do(t, s, "/v1/guilds/100/invites", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, s, "/v1/guilds/100/invites", "wrong").Code)
	assert.Equal(t, http.StatusOK, do(t, s, "/v1/guilds/100/invites", "secret").Code)
}
