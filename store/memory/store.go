// Package memory provides an in-memory snapshot store.
package memory

import (
	"context"
	"sync"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/warden-bot/warden/store"
)

var _ store.SnapshotStore = (*Store)(nil)

type Store struct {
	snapshots   map[discord.GuildID]store.Snapshot
	snapshotsMu sync.RWMutex
}

func New() *Store {
	return &Store{
		snapshots: make(map[discord.GuildID]store.Snapshot),
	}
}

func (s *Store) Snapshot(_ context.Context, guildID discord.GuildID) (store.Snapshot, error) {
	s.snapshotsMu.RLock()
	defer s.snapshotsMu.RUnlock()

	snap, ok := s.snapshots[guildID]
	if !ok {
		return store.Snapshot{}, store.ErrNotFound
	}
	return copySnapshot(snap), nil
}

func (s *Store) SetSnapshot(_ context.Context, snap store.Snapshot) error {
	s.snapshotsMu.Lock()
	defer s.snapshotsMu.Unlock()

	s.snapshots[snap.GuildID] = copySnapshot(snap)
	return nil
}

func (s *Store) DeleteSnapshot(_ context.Context, guildID discord.GuildID) error {
	s.snapshotsMu.Lock()
	defer s.snapshotsMu.Unlock()

	delete(s.snapshots, guildID)
	return nil
}

// copySnapshot copies the uses map so callers can't modify stored snapshots.
func copySnapshot(snap store.Snapshot) store.Snapshot {
	uses := make(map[string]int, len(snap.Uses))
	for k, v := range snap.Uses {
		uses[k] = v
	}
	snap.Uses = uses
	return snap
}
