package meta

import (
	"fmt"
	"strings"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/bcr"
	"github.com/warden-bot/warden/common"
	"github.com/warden-bot/warden/platform"
)

func (bot *Bot) help(ctx *bcr.Context) (err error) {
	// help for commands
	if len(ctx.Args) > 0 {
		return ctx.Help(ctx.Args)
	}

	p := ctx.Prefix

	e := discord.Embed{
		Title: "Help",
		Description: fmt.Sprintf("%v helps run your community: it tracks who invited new members, welcomes them, "+
			"and handles polls, tickets, and reaction roles.\nUse ``%vhelp <command>`` for more information about a command.", ctx.Bot.Username, p),
		Color: bot.Settings(ctx.Message.GuildID).Theme(),

		Fields: []discord.EmbedField{
			{
				Name: "Invites",
				Value: fmt.Sprintf("``%[1]vinvites [user]``: show how many members someone has invited\n"+
					"``%[1]vinvites top``: show the invite leaderboard\n"+
					"``%[1]vinviter <member>``: show who invited a member\n"+
					"``%[1]vinvites log <channel>``: announce new members' inviters", p),
			},
			{
				Name: "Welcome",
				Value: fmt.Sprintf("``%[1]vwelcome``: show welcome settings\n"+
					"``%[1]vwelcome channel|message|test|clear``: configure welcome messages\n"+
					"``%[1]vautorole <role>``: give new members a role", p),
			},
			{
				Name: "Messages",
				Value: fmt.Sprintf("``%[1]vembed <channel> <json>``: post a message from a template\n"+
					"``%[1]vtheme [colour]``: show or set the server's theme colour\n"+
					"``%[1]vpoll <question> | <option> | ...``: start a poll\n"+
					"``%[1]vpoll end <message ID>``: end a poll", p),
			},
			{
				Name: "Tickets",
				Value: fmt.Sprintf("``%[1]vticket setup <category> <role>``: set up tickets\n"+
					"``%[1]vticket open [reason]``: open a ticket\n"+
					"``%[1]vticket add <member>``: add a member to a ticket\n"+
					"``%[1]vticket close``: close a ticket", p),
			},
			{
				Name: "Reaction roles",
				Value: fmt.Sprintf("``%[1]vreactrole list``: list reaction roles\n"+
					"``%[1]vreactrole add <channel> <message ID> <emoji> <role>``: add a reaction role\n"+
					"``%[1]vreactrole remove <message ID> <emoji>``: remove a reaction role", p),
			},
			{
				Name:  "Info",
				Value: fmt.Sprintf("``%[1]vping``: show the bot's latency\n``%[1]vhelp permissions``: check the bot's permissions\n``%[1]vinvite``: invite the bot", p),
			},
		},
	}

	if bot.Config.SupportServer != "" {
		e.Fields = append(e.Fields, discord.EmbedField{
			Name:  "Support",
			Value: fmt.Sprintf("Use this link to join the support server: %v", bot.Config.SupportServer),
		})
	}

	return ctx.SendX("", e)
}

func (bot *Bot) perms(ctx *bcr.Context) (err error) {
	p, err := ctx.State.Permissions(ctx.Message.ChannelID, ctx.Bot.ID)
	if err != nil {
		return platform.Classify("get permissions", err)
	}

	e := discord.Embed{
		Title: "Required permissions",
		Description: "I need these permissions to work properly:\n" +
			strings.Join(common.PermStrings(common.RequiredPermissions()), ", "),
		Color: bot.Settings(ctx.Message.GuildID).Theme(),
	}

	if missing := common.MissingPermStrings(p); len(missing) > 0 {
		e.Color = common.ColourOrange
		e.Fields = append(e.Fields, discord.EmbedField{
			Name:  "Missing in this channel",
			Value: strings.Join(missing, "\n"),
		})
	} else {
		e.Fields = append(e.Fields, discord.EmbedField{
			Name:  "Missing in this channel",
			Value: "None, I'm good to go!",
		})
	}

	return ctx.SendX("", e)
}

func (bot *Bot) invite(ctx *bcr.Context) (err error) {
	link := fmt.Sprintf("https://discord.com/api/oauth2/authorize?client_id=%v&permissions=%v&scope=bot", ctx.Bot.ID, uint64(common.RequiredPermissions()))

	_, err = ctx.Sendf("Use the following link to invite me to your server: <%v>", link)
	return err
}
