package db

import (
	"context"
	"time"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/georgysavva/scany/pgxscan"
	"github.com/jackc/pgx/v4"
)

// Referral is the attribution of a joined member to the member whose invite they used.
type Referral struct {
	GuildID    discord.GuildID
	MemberID   discord.UserID
	InviterID  discord.UserID
	InviteCode string
	Suspicious bool
	JoinedAt   time.Time
}

// CreateReferral stores a referral. Existing referrals are never overwritten;
// created is false if the member already had one in this guild.
func (db *DB) CreateReferral(ctx context.Context, r Referral) (created bool, err error) {
	sql, args, err := sq.Insert("referrals").
		Columns("guild_id", "member_id", "inviter_id", "invite_code", "suspicious", "joined_at").
		Values(r.GuildID, r.MemberID, r.InviterID, r.InviteCode, r.Suspicious, r.JoinedAt.UTC()).
		Suffix("ON CONFLICT (guild_id, member_id) DO NOTHING").
		ToSql()
	if err != nil {
		return false, errors.Wrap(err, "building sql")
	}

	ct, err := db.Exec(ctx, sql, args...)
	if err != nil {
		return false, errors.Wrap(err, "executing query")
	}
	return ct.RowsAffected() == 1, nil
}

// GuildReferrals returns all referrals in a guild.
func (db *DB) GuildReferrals(ctx context.Context, guildID discord.GuildID) (rs []Referral, err error) {
	sql, args, err := sq.Select("*").From("referrals").Where("guild_id = ?", guildID).OrderBy("joined_at").ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building sql")
	}

	err = pgxscan.Select(ctx, db, &rs, sql, args...)
	if err != nil {
		return nil, errors.Wrap(err, "getting referrals")
	}
	return rs, nil
}

// MemberReferral returns the referral for a single member, or ErrNotFound.
func (db *DB) MemberReferral(ctx context.Context, guildID discord.GuildID, memberID discord.UserID) (r Referral, err error) {
	sql, args, err := sq.Select("*").From("referrals").Where("guild_id = ? AND member_id = ?", guildID, memberID).ToSql()
	if err != nil {
		return r, errors.Wrap(err, "building sql")
	}

	err = pgxscan.Get(ctx, db, &r, sql, args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return r, ErrNotFound
		}
		return r, errors.Wrap(err, "getting referral")
	}
	return r, nil
}

// DeleteGuildReferrals removes all of a guild's referrals.
func (db *DB) DeleteGuildReferrals(ctx context.Context, guildID discord.GuildID) (n int64, err error) {
	ct, err := db.Exec(ctx, "delete from referrals where guild_id = $1", guildID)
	if err != nil {
		return 0, errors.Wrap(err, "deleting referrals")
	}
	return ct.RowsAffected(), nil
}
