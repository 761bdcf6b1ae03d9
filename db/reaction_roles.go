package db

import (
	"context"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/georgysavva/scany/pgxscan"
	"github.com/jackc/pgx/v4"
)

// ReactionRole is a role given to members who react to a message with an emoji.
type ReactionRole struct {
	MessageID discord.MessageID
	// Emoji is the emoji in API format: a unicode emoji, or name:id for custom emoji.
	Emoji     string
	GuildID   discord.GuildID
	ChannelID discord.ChannelID
	RoleID    discord.RoleID
}

// AddReactionRole adds or replaces a reaction role.
func (db *DB) AddReactionRole(ctx context.Context, rr ReactionRole) error {
	sql, args, err := sq.Insert("reaction_roles").
		Columns("message_id", "emoji", "guild_id", "channel_id", "role_id").
		Values(rr.MessageID, rr.Emoji, rr.GuildID, rr.ChannelID, rr.RoleID).
		Suffix("ON CONFLICT (message_id, emoji) DO UPDATE SET role_id = EXCLUDED.role_id").
		ToSql()
	if err != nil {
		return errors.Wrap(err, "building sql")
	}

	_, err = db.Exec(ctx, sql, args...)
	return errors.Wrap(err, "adding reaction role")
}

// RemoveReactionRole removes a reaction role, returning ErrNotFound if it didn't exist.
func (db *DB) RemoveReactionRole(ctx context.Context, guildID discord.GuildID, msgID discord.MessageID, emoji string) error {
	ct, err := db.Exec(ctx, "delete from reaction_roles where guild_id = $1 and message_id = $2 and emoji = $3", guildID, msgID, emoji)
	if err != nil {
		return errors.Wrap(err, "removing reaction role")
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ReactionRole returns the reaction role for the given message and emoji, or ErrNotFound.
func (db *DB) ReactionRole(ctx context.Context, msgID discord.MessageID, emoji string) (rr ReactionRole, err error) {
	err = pgxscan.Get(ctx, db, &rr, "select * from reaction_roles where message_id = $1 and emoji = $2", msgID, emoji)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return rr, ErrNotFound
		}
		return rr, errors.Wrap(err, "getting reaction role")
	}
	return rr, nil
}

// GuildReactionRoles returns all reaction roles in a guild.
func (db *DB) GuildReactionRoles(ctx context.Context, guildID discord.GuildID) (rrs []ReactionRole, err error) {
	err = pgxscan.Select(ctx, db, &rrs, "select * from reaction_roles where guild_id = $1 order by message_id, emoji", guildID)
	return rrs, errors.Wrap(err, "getting reaction roles")
}
