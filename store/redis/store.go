// Package redis provides a snapshot store backed by redis.
package redis

import (
	"context"
	"encoding/json"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/mediocregopher/radix/v4"
	"github.com/warden-bot/warden/store"
)

var _ store.SnapshotStore = (*Store)(nil)

type Store struct {
	client radix.Client
}

func New(url string) (*Store, error) {
	client, err := (&radix.PoolConfig{}).New(context.Background(), "tcp", url)
	if err != nil {
		return nil, errors.Wrap(err, "creating radix client")
	}

	return &Store{client: client}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func snapshotKey(guildID discord.GuildID) string {
	return "inviteSnapshot:" + guildID.String()
}

func (s *Store) Snapshot(ctx context.Context, guildID discord.GuildID) (snap store.Snapshot, err error) {
	var raw []byte

	err = s.client.Do(ctx, radix.Cmd(&raw, "GET", snapshotKey(guildID)))
	if err != nil {
		return snap, err
	}

	if raw == nil {
		return snap, store.ErrNotFound
	}

	err = json.Unmarshal(raw, &snap)
	if err != nil {
		return snap, errors.Wrap(err, "unmarshaling snapshot")
	}
	if snap.Uses == nil {
		snap.Uses = map[string]int{}
	}
	return snap, nil
}

// SetSnapshot overwrites the snapshot with a single SET, so readers never see a partial snapshot.
func (s *Store) SetSnapshot(ctx context.Context, snap store.Snapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	return s.client.Do(ctx, radix.Cmd(nil, "SET", snapshotKey(snap.GuildID), string(b)))
}

func (s *Store) DeleteSnapshot(ctx context.Context, guildID discord.GuildID) error {
	return s.client.Do(ctx, radix.Cmd(nil, "DEL", snapshotKey(guildID)))
}
