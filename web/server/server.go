// Package server is a read-only HTTP API for invite statistics.
package server

import (
	"context"
	"net/http"
	"time"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/warden-bot/warden/common/log"
	"github.com/warden-bot/warden/db"
	"github.com/warden-bot/warden/invites"
)

// Tracker is the part of *invites.Tracker the server uses.
type Tracker interface {
	Aggregate(ctx context.Context, guildID discord.GuildID, inviterID discord.UserID) (invites.Aggregate, error)
	Leaderboard(ctx context.Context, guildID discord.GuildID) ([]invites.InviterAggregate, error)
}

// Referrals is the part of *db.DB the server uses.
type Referrals interface {
	MemberReferral(ctx context.Context, guildID discord.GuildID, memberID discord.UserID) (db.Referral, error)
}

type Server struct {
	Tracker   Tracker
	Referrals Referrals

	token  string
	router chi.Router
}

// New creates a new Server. If token is not empty, requests must have it as a bearer token.
func New(t Tracker, r Referrals, token string) *Server {
	s := &Server{
		Tracker:   t,
		Referrals: r,
		token:     token,
	}

	r2 := chi.NewRouter()
	r2.Use(middleware.RealIP)
	r2.Use(middleware.Recoverer)
	r2.Use(middleware.Timeout(time.Minute))

	r2.Get("/health", s.health)

	r2.Route("/v1/guilds/{guildID}", func(r chi.Router) {
		r.Use(s.requireToken)

		r.Get("/invites", s.leaderboard)
		r.Get("/invites/{userID}", s.aggregate)
		r.Get("/members/{userID}/inviter", s.inviter)
	})

	s.router = r2
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run serves the API on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		err := srv.Shutdown(shutdownCtx)
		if err != nil {
			log.Errorf("shutting down HTTP server: %v", err)
		}
	}()

	log.Infof("HTTP API listening on %v", addr)

	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "serving HTTP")
	}
	return nil
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.token != "" && r.Header.Get("Authorization") != "Bearer "+s.token {
			s.error(w, r, http.StatusUnauthorized, "missing or invalid token")
			return
		}
		next.ServeHTTP(w, r)
	})
}
