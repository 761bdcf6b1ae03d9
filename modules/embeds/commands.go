package embeds

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/bcr"
	"github.com/warden-bot/warden/db"
	"github.com/warden-bot/warden/platform"
	"github.com/warden-bot/warden/render"
)

func (bot *Bot) embed(ctx *bcr.Context) (err error) {
	ch, err := ctx.ParseChannel(ctx.Args[0])
	if err != nil || ch.GuildID != ctx.Message.GuildID {
		return platform.NotFound("I couldn't find a channel called ``%v`` in this server.", bcr.EscapeBackticks(ctx.Args[0]))
	}

	tmpl := render.TrimCodeBlock(strings.TrimSpace(strings.TrimPrefix(ctx.RawArgs, ctx.Args[0])))
	s := bot.Settings(ctx.Message.GuildID)

	vars := render.Vars{User: ctx.Author}
	if ctx.Guild != nil {
		vars.Server = ctx.Guild.Name
	}

	m, err := render.Render(tmpl, vars, s.Theme())
	if err != nil {
		return err
	}

	msg, err := ctx.State.SendMessageComplex(ch.ID, api.SendMessageData{
		Content: m.Content,
		Embeds:  m.Embeds,
		AllowedMentions: &api.AllowedMentions{
			Parse: []api.AllowedMentionType{},
		},
	})
	if err != nil {
		return platform.Classify("send message", err)
	}

	_, err = ctx.Reply("Message sent! [Jump to message](https://discord.com/channels/%v/%v/%v)", ctx.Message.GuildID, msg.ChannelID, msg.ID)
	return err
}

func (bot *Bot) theme(ctx *bcr.Context) (err error) {
	if ctx.RawArgs == "" {
		s := bot.Settings(ctx.Message.GuildID)
		return ctx.SendX("", discord.Embed{
			Description: fmt.Sprintf("This server's theme colour is **%v**.", FormatHex(s.Theme())),
			Color:       s.Theme(),
		})
	}

	colour, err := ParseHex(ctx.RawArgs)
	if err != nil {
		return err
	}

	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = bot.DB.SetSetting(c, ctx.Message.GuildID, db.SettingThemeColour, int(colour))
	if err != nil {
		return err
	}

	return ctx.SendX("", discord.Embed{
		Description: fmt.Sprintf("Theme colour set to **%v**.", FormatHex(colour)),
		Color:       colour,
	})
}
