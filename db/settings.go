package db

import (
	"context"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/georgysavva/scany/pgxscan"
	"github.com/jackc/pgx/v4"
	"github.com/warden-bot/warden/common"
)

// GuildSettings is a guild's configuration.
// Zero IDs mean the feature is disabled.
type GuildSettings struct {
	ID discord.GuildID

	ThemeColour int

	AutoRole discord.RoleID

	WelcomeChannel  discord.ChannelID
	WelcomeTemplate string

	InviteLogChannel discord.ChannelID

	TicketCategory    discord.ChannelID
	TicketSupportRole discord.RoleID
}

// Theme returns the guild's theme colour.
func (s GuildSettings) Theme() discord.Color {
	return discord.Color(s.ThemeColour)
}

// Setting is a settable column in the guilds table.
type Setting string

// Settable columns
const (
	SettingThemeColour       Setting = "theme_colour"
	SettingAutoRole          Setting = "auto_role"
	SettingWelcomeChannel    Setting = "welcome_channel"
	SettingWelcomeTemplate   Setting = "welcome_template"
	SettingInviteLogChannel  Setting = "invite_log_channel"
	SettingTicketCategory    Setting = "ticket_category"
	SettingTicketSupportRole Setting = "ticket_support_role"
)

func defaultSettings(id discord.GuildID) GuildSettings {
	return GuildSettings{ID: id, ThemeColour: int(common.DefaultTheme)}
}

// CreateGuild creates a guild's settings row if it doesn't exist yet.
func (db *DB) CreateGuild(ctx context.Context, id discord.GuildID) (alreadyExists bool, err error) {
	sql, args, err := sq.Insert("guilds").
		Columns("id").
		Values(id).
		Suffix("ON CONFLICT DO NOTHING").
		ToSql()
	if err != nil {
		return false, errors.Wrap(err, "building sql")
	}

	ct, err := db.Exec(ctx, sql, args...)
	if err != nil {
		return false, errors.Wrap(err, "executing query")
	}

	return ct.RowsAffected() == 0, nil
}

// Settings returns a guild's settings. Guilds without a row get the default settings.
func (db *DB) Settings(ctx context.Context, id discord.GuildID) (s GuildSettings, err error) {
	if v, err := db.settings.Get(id.String()); err == nil {
		if s, ok := v.(GuildSettings); ok {
			return s, nil
		}
	}

	sql, args, err := sq.Select("*").From("guilds").Where("id = ?", id).ToSql()
	if err != nil {
		return s, errors.Wrap(err, "building sql")
	}

	err = pgxscan.Get(ctx, db, &s, sql, args...)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return s, errors.Wrap(err, "getting settings")
		}
		s = defaultSettings(id)
	}

	_ = db.settings.Set(id.String(), s)
	return s, nil
}

// SetSetting sets a single setting, creating the guild's row if needed.
func (db *DB) SetSetting(ctx context.Context, id discord.GuildID, key Setting, value any) error {
	sql, args, err := sq.Insert("guilds").
		Columns("id", string(key)).
		Values(id, value).
		Suffix("ON CONFLICT (id) DO UPDATE SET "+string(key)+" = EXCLUDED."+string(key)).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "building sql")
	}

	_, err = db.Exec(ctx, sql, args...)
	if err != nil {
		return errors.Wrapf(err, "setting %v", key)
	}

	_ = db.settings.Remove(id.String())
	return nil
}
