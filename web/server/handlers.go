package server

import (
	"net/http"
	"time"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/warden-bot/warden/common/log"
	"github.com/warden-bot/warden/db"
	"github.com/warden-bot/warden/invites"
	"github.com/warden-bot/warden/platform"
)

type errorResponse struct {
	Status int    `json:"status"`
	Error  string `json:"error"`
}

type aggregateResponse struct {
	GuildID   discord.GuildID `json:"guild_id"`
	InviterID discord.UserID  `json:"inviter_id"`
	invites.Aggregate
	Total int `json:"total"`
}

type referralResponse struct {
	GuildID    discord.GuildID `json:"guild_id"`
	MemberID   discord.UserID  `json:"member_id"`
	InviterID  discord.UserID  `json:"inviter_id"`
	InviteCode string          `json:"invite_code"`
	Suspicious bool            `json:"suspicious"`
	JoinedAt   time.Time       `json:"joined_at"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}

func (s *Server) leaderboard(w http.ResponseWriter, r *http.Request) {
	guildID, ok := s.guildID(w, r)
	if !ok {
		return
	}

	board, err := s.Tracker.Leaderboard(r.Context(), guildID)
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	resp := make([]aggregateResponse, 0, len(board))
	for _, ia := range board {
		resp = append(resp, aggregateResponse{
			GuildID:   guildID,
			InviterID: ia.InviterID,
			Aggregate: ia.Aggregate,
			Total:     ia.Total(),
		})
	}

	render.JSON(w, r, resp)
}

func (s *Server) aggregate(w http.ResponseWriter, r *http.Request) {
	guildID, ok := s.guildID(w, r)
	if !ok {
		return
	}

	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	agg, err := s.Tracker.Aggregate(r.Context(), guildID, userID)
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	render.JSON(w, r, aggregateResponse{
		GuildID:   guildID,
		InviterID: userID,
		Aggregate: agg,
		Total:     agg.Total(),
	})
}

func (s *Server) inviter(w http.ResponseWriter, r *http.Request) {
	guildID, ok := s.guildID(w, r)
	if !ok {
		return
	}

	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	ref, err := s.Referrals.MemberReferral(r.Context(), guildID, userID)
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	render.JSON(w, r, referralResponse{
		GuildID:    ref.GuildID,
		MemberID:   ref.MemberID,
		InviterID:  ref.InviterID,
		InviteCode: ref.InviteCode,
		Suspicious: ref.Suspicious,
		JoinedAt:   ref.JoinedAt,
	})
}

func (s *Server) guildID(w http.ResponseWriter, r *http.Request) (discord.GuildID, bool) {
	sf, err := discord.ParseSnowflake(chi.URLParam(r, "guildID"))
	if err != nil || !sf.IsValid() {
		s.error(w, r, http.StatusBadRequest, "invalid guild ID")
		return 0, false
	}
	return discord.GuildID(sf), true
}

func (s *Server) userID(w http.ResponseWriter, r *http.Request) (discord.UserID, bool) {
	sf, err := discord.ParseSnowflake(chi.URLParam(r, "userID"))
	if err != nil || !sf.IsValid() {
		s.error(w, r, http.StatusBadRequest, "invalid user ID")
		return 0, false
	}
	return discord.UserID(sf), true
}

func (s *Server) error(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, errorResponse{Status: status, Error: msg})
}

// internalError maps err to a status code and writes it.
func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, db.ErrNotFound), errors.Is(err, platform.ErrNotFound):
		s.error(w, r, http.StatusNotFound, "not found")
	case errors.Is(err, platform.ErrPermissionDenied):
		s.error(w, r, http.StatusForbidden, "the bot is missing permissions in that guild")
	case errors.Is(err, platform.ErrPlatformUnavailable):
		log.Errorf("platform error in %v: %v", r.URL.Path, err)
		s.error(w, r, http.StatusBadGateway, "couldn't reach Discord")
	default:
		log.Errorf("error in %v: %v", r.URL.Path, err)
		s.error(w, r, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}
