package welcome

import (
	"context"
	"fmt"
	"time"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/bcr"
	"github.com/warden-bot/warden/db"
	"github.com/warden-bot/warden/platform"
	"github.com/warden-bot/warden/render"
)

func (bot *Bot) show(ctx *bcr.Context) (err error) {
	s := bot.Settings(ctx.Message.GuildID)

	channel := "Not set"
	if s.WelcomeChannel.IsValid() {
		channel = s.WelcomeChannel.Mention()
	}

	message := "Not set"
	if s.WelcomeTemplate != "" {
		message = "```json\n" + bcr.EscapeBackticks(s.WelcomeTemplate) + "\n```"
		if len(message) > 1024 {
			message = fmt.Sprintf("Set (%v characters, too long to show)", len(s.WelcomeTemplate))
		}
	}

	role := "Not set"
	if s.AutoRole.IsValid() {
		role = s.AutoRole.Mention()
	}

	return ctx.SendX("", discord.Embed{
		Title: "Welcome settings",
		Color: s.Theme(),
		Fields: []discord.EmbedField{
			{Name: "Channel", Value: channel, Inline: true},
			{Name: "Auto role", Value: role, Inline: true},
			{Name: "Message", Value: message},
		},
	})
}

func (bot *Bot) setChannel(ctx *bcr.Context) (err error) {
	ch, err := ctx.ParseChannel(ctx.Args[0])
	if err != nil || ch.GuildID != ctx.Message.GuildID {
		return platform.NotFound("I couldn't find a channel called ``%v`` in this server.", bcr.EscapeBackticks(ctx.Args[0]))
	}

	if ch.Type != discord.GuildText && ch.Type != discord.GuildNews {
		return platform.Malformed("%v isn't a text channel.", ch.Mention())
	}

	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = bot.DB.SetSetting(c, ctx.Message.GuildID, db.SettingWelcomeChannel, ch.ID)
	if err != nil {
		return err
	}

	_, err = ctx.Reply("Welcome messages will now be sent in %v.", ch.Mention())
	return err
}

func (bot *Bot) setMessage(ctx *bcr.Context) (err error) {
	tmpl := render.TrimCodeBlock(ctx.RawArgs)
	s := bot.Settings(ctx.Message.GuildID)

	// make sure the template renders before saving it
	_, err = render.Render(tmpl, render.Vars{User: ctx.Author}, s.Theme())
	if err != nil {
		return err
	}

	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = bot.DB.SetSetting(c, ctx.Message.GuildID, db.SettingWelcomeTemplate, tmpl)
	if err != nil {
		return err
	}

	if !s.WelcomeChannel.IsValid() {
		_, err = ctx.Reply("Welcome message updated! Set a channel with ``%vwelcome channel`` to start sending it.", ctx.Prefix)
		return err
	}

	_, err = ctx.Reply("Welcome message updated! Use ``%vwelcome test`` to see what it looks like.", ctx.Prefix)
	return err
}

func (bot *Bot) test(ctx *bcr.Context) (err error) {
	s := bot.Settings(ctx.Message.GuildID)
	if s.WelcomeTemplate == "" {
		return platform.NotFound("There's no welcome message set.")
	}

	return bot.sendWelcome(s, ctx.Message.ChannelID, ctx.Author)
}

func (bot *Bot) clear(ctx *bcr.Context) (err error) {
	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = bot.DB.SetSetting(c, ctx.Message.GuildID, db.SettingWelcomeChannel, 0)
	if err != nil {
		return err
	}

	err = bot.DB.SetSetting(c, ctx.Message.GuildID, db.SettingWelcomeTemplate, "")
	if err != nil {
		return err
	}

	_, err = ctx.Reply("Welcome messages disabled.")
	return err
}

func (bot *Bot) autorole(ctx *bcr.Context) (err error) {
	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clear, _ := ctx.Flags.GetBool("clear")
	if clear {
		err = bot.DB.SetSetting(c, ctx.Message.GuildID, db.SettingAutoRole, 0)
		if err != nil {
			return err
		}

		_, err = ctx.Reply("New members will no longer be given a role.")
		return err
	}

	if ctx.RawArgs == "" {
		return platform.Malformed("You need to give a role, or ``--clear`` to stop giving new members a role.")
	}

	r, err := ctx.ParseRole(ctx.RawArgs)
	if err != nil {
		return platform.NotFound("I couldn't find a role called ``%v``.", bcr.EscapeBackticks(ctx.RawArgs))
	}

	if r.Managed || discord.GuildID(r.ID) == ctx.Message.GuildID {
		return platform.Malformed("%v can't be given to members.", r.Mention())
	}

	err = bot.DB.SetSetting(c, ctx.Message.GuildID, db.SettingAutoRole, r.ID)
	if err != nil {
		return err
	}

	_, err = ctx.Reply("New members will now be given %v.", r.Mention())
	return err
}
