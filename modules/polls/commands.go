package polls

import (
	"context"
	"fmt"
	"strings"
	"time"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/dustin/go-humanize/english"
	"github.com/starshine-sys/bcr"
	"github.com/warden-bot/warden/common"
	"github.com/warden-bot/warden/common/log"
	"github.com/warden-bot/warden/db"
	"github.com/warden-bot/warden/platform"
)

func (bot *Bot) poll(ctx *bcr.Context) (err error) {
	question, options, err := Parse(ctx.RawArgs)
	if err != nil {
		return err
	}

	s := bot.Settings(ctx.Message.GuildID)

	var b strings.Builder
	for i, o := range options {
		fmt.Fprintf(&b, "%v %v\n", Keycaps[i], o)
	}

	msg, err := ctx.Send("", discord.Embed{
		Title:       question,
		Description: b.String(),
		Color:       s.Theme(),
		Footer: &discord.EmbedFooter{
			Text: fmt.Sprintf("Poll by %v", ctx.Author.Tag()),
			Icon: ctx.Author.AvatarURL(),
		},
		Timestamp: discord.NowTimestamp(),
	})
	if err != nil {
		return platform.Classify("send message", err)
	}

	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = bot.DB.CreatePoll(c, db.Poll{
		MessageID: msg.ID,
		GuildID:   ctx.Message.GuildID,
		ChannelID: msg.ChannelID,
		AuthorID:  ctx.Author.ID,
		Question:  question,
		Options:   options,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	for i := range options {
		err = ctx.State.React(msg.ChannelID, msg.ID, discord.APIEmoji(Keycaps[i]))
		if err != nil {
			log.Errorf("reacting to poll %v: %v", msg.ID, err)
			return platform.Classify("add reaction", err)
		}
	}
	return nil
}

func (bot *Bot) end(ctx *bcr.Context) (err error) {
	sf, err := discord.ParseSnowflake(ctx.Args[0])
	if err != nil {
		return platform.Malformed("``%v`` isn't a valid message ID.", bcr.EscapeBackticks(ctx.Args[0]))
	}
	msgID := discord.MessageID(sf)

	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	p, err := bot.DB.Poll(c, ctx.Message.GuildID, msgID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return platform.NotFound("There's no poll with that ID in this server.")
		}
		return err
	}

	if p.Ended {
		return platform.NotFound("That poll has already ended.")
	}

	if p.AuthorID != ctx.Author.ID {
		perms, err := ctx.State.Permissions(ctx.Message.ChannelID, ctx.Author.ID)
		if err != nil || !perms.Has(discord.PermissionManageMessages) {
			return platform.Denied("Only the person who started a poll (or someone with **Manage Messages**) can end it.")
		}
	}

	msg, err := ctx.State.Message(p.ChannelID, p.MessageID)
	if err != nil {
		if platform.IsNotFound(err) {
			return platform.NotFound("The poll's message was deleted, so I can't count the votes.")
		}
		return platform.Classify("get message", err)
	}

	votes := Tally(p.Options, msg.Reactions)

	err = bot.DB.EndPoll(c, p.MessageID)
	if err != nil {
		return err
	}

	s := bot.Settings(ctx.Message.GuildID)
	return ctx.SendX("", resultEmbed(p, votes, s.Theme()))
}

func resultEmbed(p db.Poll, votes []int, theme discord.Color) discord.Embed {
	total := 0
	for _, n := range votes {
		total += n
	}

	winners := Winners(votes)

	var b strings.Builder
	for i, o := range p.Options {
		pct := 0
		if total > 0 {
			pct = votes[i] * 100 / total
		}

		line := fmt.Sprintf("%v %v: %v (%v%%)", Keycaps[i], o, english.Plural(votes[i], "vote", ""), pct)
		if common.Contains(winners, i) {
			line = "**" + line + "**"
		}
		b.WriteString(line + "\n")
	}

	e := discord.Embed{
		Title:       "Results: " + p.Question,
		Description: b.String(),
		Color:       theme,
		Footer: &discord.EmbedFooter{
			Text: fmt.Sprintf("%v in total", english.Plural(total, "vote", "")),
		},
		Timestamp: discord.NowTimestamp(),
	}

	if len(winners) == 0 {
		e.Description += "\nNobody voted."
	}

	return e
}
