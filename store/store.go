// Package store defines a store for invite snapshots.
// Invites aren't sent in guild create events, so they have to be fetched from Discord.
// Keeping the snapshots outside of the bot (in redis) means they survive restarts.
package store

import (
	"context"
	"time"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
)

const ErrNotFound = errors.Sentinel("value not found in store")

// Snapshot is the last observed set of invite use counts for a guild.
type Snapshot struct {
	GuildID discord.GuildID `json:"guild_id"`
	// Uses maps invite codes to their use count.
	Uses    map[string]int `json:"uses"`
	TakenAt time.Time      `json:"taken_at"`
}

// NewSnapshot creates a snapshot from a list of invites.
func NewSnapshot(guildID discord.GuildID, invites []discord.Invite, at time.Time) Snapshot {
	s := Snapshot{
		GuildID: guildID,
		Uses:    make(map[string]int, len(invites)),
		TakenAt: at,
	}

	for _, inv := range invites {
		s.Uses[inv.Code] = inv.Uses
	}
	return s
}

// EmptySnapshot returns a snapshot with no invites.
func EmptySnapshot(guildID discord.GuildID, at time.Time) Snapshot {
	return Snapshot{GuildID: guildID, Uses: map[string]int{}, TakenAt: at}
}

type SnapshotStore interface {
	// Snapshot returns the stored snapshot for a guild, or ErrNotFound.
	Snapshot(ctx context.Context, guildID discord.GuildID) (Snapshot, error)
	// SetSnapshot replaces the stored snapshot for s.GuildID.
	SetSnapshot(ctx context.Context, s Snapshot) error
	// DeleteSnapshot removes a guild's snapshot, for when the bot leaves a guild.
	DeleteSnapshot(ctx context.Context, guildID discord.GuildID) error
}
