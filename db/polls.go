package db

import (
	"context"
	"time"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/georgysavva/scany/pgxscan"
	"github.com/jackc/pgx/v4"
)

// Poll is a reaction poll.
type Poll struct {
	MessageID discord.MessageID
	GuildID   discord.GuildID
	ChannelID discord.ChannelID
	AuthorID  discord.UserID

	Question string
	Options  []string

	CreatedAt time.Time
	Ended     bool
}

// CreatePoll stores a new poll.
func (db *DB) CreatePoll(ctx context.Context, p Poll) error {
	sql, args, err := sq.Insert("polls").
		Columns("message_id", "guild_id", "channel_id", "author_id", "question", "options").
		Values(p.MessageID, p.GuildID, p.ChannelID, p.AuthorID, p.Question, p.Options).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "building sql")
	}

	_, err = db.Exec(ctx, sql, args...)
	return errors.Wrap(err, "creating poll")
}

// Poll returns a poll in the given guild, or ErrNotFound.
func (db *DB) Poll(ctx context.Context, guildID discord.GuildID, msgID discord.MessageID) (p Poll, err error) {
	err = pgxscan.Get(ctx, db, &p, "select * from polls where guild_id = $1 and message_id = $2", guildID, msgID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return p, ErrNotFound
		}
		return p, errors.Wrap(err, "getting poll")
	}
	return p, nil
}

// EndPoll marks a poll as ended.
func (db *DB) EndPoll(ctx context.Context, msgID discord.MessageID) error {
	_, err := db.Exec(ctx, "update polls set ended = true where message_id = $1", msgID)
	return errors.Wrap(err, "ending poll")
}
