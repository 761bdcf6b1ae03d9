package invites

import (
	"context"
	"fmt"
	"time"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/starshine-sys/bcr"
	"github.com/warden-bot/warden/db"
	tracker "github.com/warden-bot/warden/invites"
	"github.com/warden-bot/warden/platform"
)

func (bot *Bot) invites(ctx *bcr.Context) (err error) {
	u := ctx.Author
	if ctx.RawArgs != "" {
		parsed, err := ctx.ParseUser(ctx.RawArgs)
		if err != nil {
			return platform.NotFound("I couldn't find a user called ``%v``.", bcr.EscapeBackticks(ctx.RawArgs))
		}
		u = *parsed
	}

	c, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	agg, err := bot.Tracker.Aggregate(c, ctx.Message.GuildID, u.ID)
	if err != nil {
		return err
	}

	s := bot.Settings(ctx.Message.GuildID)

	return ctx.SendX("", aggregateEmbed(u, agg, s.Theme()))
}

func aggregateEmbed(u discord.User, agg tracker.Aggregate, theme discord.Color) discord.Embed {
	return discord.Embed{
		Author: &discord.EmbedAuthor{
			Name: u.Tag(),
			Icon: u.AvatarURL(),
		},
		Description: fmt.Sprintf("%v has invited **%v** %v.", u.Mention(), agg.Present, english.PluralWord(agg.Present, "member", "")),
		Color:       theme,
		Fields:      aggregateFields(agg),
		Footer: &discord.EmbedFooter{
			Text: fmt.Sprintf("User ID: %v", u.ID),
		},
	}
}

func aggregateFields(agg tracker.Aggregate) []discord.EmbedField {
	return []discord.EmbedField{
		{
			Name:   "Still here",
			Value:  humanize.Comma(int64(agg.Present)),
			Inline: true,
		},
		{
			Name:   "Left",
			Value:  humanize.Comma(int64(agg.Left)),
			Inline: true,
		},
		{
			Name:   "New accounts",
			Value:  humanize.Comma(int64(agg.Suspicious)),
			Inline: true,
		},
	}
}

func (bot *Bot) top(ctx *bcr.Context) (err error) {
	c, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	board, err := bot.Tracker.Leaderboard(c, ctx.Message.GuildID)
	if err != nil {
		return err
	}

	if len(board) == 0 {
		return ctx.SendX("Nobody has invited anyone yet.")
	}

	fields := make([]discord.EmbedField, 0, len(board))
	for i, ia := range board {
		fields = append(fields, discord.EmbedField{
			Name: fmt.Sprintf("%v.", humanize.Ordinal(i+1)),
			Value: fmt.Sprintf("%v\n**%v** still here, %v left, %v new",
				ia.InviterID.Mention(), ia.Present, ia.Left, ia.Suspicious),
		})
	}

	s := bot.Settings(ctx.Message.GuildID)

	_, err = ctx.PagedEmbed(
		bcr.FieldPaginator("Invite leaderboard", "Members who joined with accounts less than a day old aren't counted.", s.Theme(), fields, 10), false,
	)
	return err
}

func (bot *Bot) inviter(ctx *bcr.Context) (err error) {
	u, err := ctx.ParseUser(ctx.RawArgs)
	if err != nil {
		return platform.NotFound("I couldn't find a user called ``%v``.", bcr.EscapeBackticks(ctx.RawArgs))
	}

	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	r, err := bot.DB.MemberReferral(c, ctx.Message.GuildID, u.ID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return platform.NotFound("I don't know who invited %v.", u.Mention())
		}
		return err
	}

	desc := fmt.Sprintf("%v was invited by %v, using the invite **%v**.", u.Mention(), r.InviterID.Mention(), r.InviteCode)
	if r.Suspicious {
		desc += "\nTheir account was less than a day old when they joined, so they don't count towards their inviter's invites."
	}

	s := bot.Settings(ctx.Message.GuildID)

	return ctx.SendX("", discord.Embed{
		Description: desc,
		Color:       s.Theme(),
		Footer: &discord.EmbedFooter{
			Text: fmt.Sprintf("Joined %v", r.JoinedAt.UTC().Format("Jan _2 2006, 15:04:05 MST")),
		},
	})
}

func (bot *Bot) setLogChannel(ctx *bcr.Context) (err error) {
	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clear, _ := ctx.Flags.GetBool("clear")
	if clear {
		err = bot.DB.SetSetting(c, ctx.Message.GuildID, db.SettingInviteLogChannel, 0)
		if err != nil {
			return err
		}

		_, err = ctx.Reply("No longer announcing inviters.")
		return err
	}

	if len(ctx.Args) == 0 {
		return platform.Malformed("You need to give a channel, or ``--clear`` to stop announcing inviters.")
	}

	ch, err := ctx.ParseChannel(ctx.Args[0])
	if err != nil || ch.GuildID != ctx.Message.GuildID {
		return platform.NotFound("I couldn't find a channel called ``%v`` in this server.", bcr.EscapeBackticks(ctx.Args[0]))
	}

	if ch.Type != discord.GuildText && ch.Type != discord.GuildNews {
		return platform.Malformed("%v isn't a text channel.", ch.Mention())
	}

	err = bot.DB.SetSetting(c, ctx.Message.GuildID, db.SettingInviteLogChannel, ch.ID)
	if err != nil {
		return err
	}

	_, err = ctx.Reply("New members' inviters will now be announced in %v.", ch.Mention())
	return err
}
