package db

import (
	"context"
	"time"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/georgysavva/scany/pgxscan"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

// ErrTicketExists is returned by OpenTicket if the member already has an open ticket.
const ErrTicketExists = errors.Sentinel("member already has an open ticket")

// Ticket is a private support channel.
type Ticket struct {
	ID        int
	GuildID   discord.GuildID
	ChannelID discord.ChannelID
	OwnerID   discord.UserID
	Reason    string

	OpenedAt time.Time
	ClosedAt *time.Time
}

// uniqueViolation is postgres's error code for a unique constraint violation.
const uniqueViolation = "23505"

// OpenTicket stores a new ticket.
func (db *DB) OpenTicket(ctx context.Context, t Ticket) (Ticket, error) {
	sql, args, err := sq.Insert("tickets").
		Columns("guild_id", "channel_id", "owner_id", "reason").
		Values(t.GuildID, t.ChannelID, t.OwnerID, t.Reason).
		Suffix("RETURNING *").
		ToSql()
	if err != nil {
		return t, errors.Wrap(err, "building sql")
	}

	err = pgxscan.Get(ctx, db, &t, sql, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return t, ErrTicketExists
		}
		return t, errors.Wrap(err, "opening ticket")
	}
	return t, nil
}

// OpenTicketFor returns the member's open ticket in a guild, or ErrNotFound.
func (db *DB) OpenTicketFor(ctx context.Context, guildID discord.GuildID, ownerID discord.UserID) (t Ticket, err error) {
	err = pgxscan.Get(ctx, db, &t, "select * from tickets where guild_id = $1 and owner_id = $2 and closed_at is null", guildID, ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return t, ErrNotFound
		}
		return t, errors.Wrap(err, "getting ticket")
	}
	return t, nil
}

// TicketByChannel returns the open ticket for a channel, or ErrNotFound.
func (db *DB) TicketByChannel(ctx context.Context, channelID discord.ChannelID) (t Ticket, err error) {
	err = pgxscan.Get(ctx, db, &t, "select * from tickets where channel_id = $1 and closed_at is null", channelID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return t, ErrNotFound
		}
		return t, errors.Wrap(err, "getting ticket")
	}
	return t, nil
}

// CloseTicket marks a ticket as closed.
func (db *DB) CloseTicket(ctx context.Context, id int) error {
	_, err := db.Exec(ctx, "update tickets set closed_at = $1 where id = $2", time.Now().UTC(), id)
	return errors.Wrap(err, "closing ticket")
}
