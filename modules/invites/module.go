// Package invites hooks the invite tracker up to gateway events, and adds the invite commands.
package invites

import (
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/spf13/pflag"
	"github.com/starshine-sys/bcr"
	"github.com/warden-bot/warden/bot"
	"github.com/warden-bot/warden/common/log"
)

type Bot struct {
	*bot.Bot
}

func Setup(root *bot.Bot) {
	log.Debug("Adding invite tracking handlers and commands")

	bot := &Bot{Bot: root}

	bot.AddHandler(bot.guildCreate, bot.guildDelete)
	bot.AddHandler(bot.inviteCreate, bot.inviteDelete)
	bot.AddHandler(bot.guildMemberAdd)

	inv := bot.AddCommand(&bcr.Command{
		Name:    "invites",
		Summary: "Show how many members someone has invited.",
		Usage:   "[user]",

		Command: bot.invites,
	})

	bot.AddSubcommand(inv, &bcr.Command{
		Name:    "top",
		Aliases: []string{"leaderboard", "lb"},
		Summary: "Show the members who have invited the most people.",

		Command: bot.top,
	})

	bot.AddSubcommand(inv, &bcr.Command{
		Name:    "log",
		Summary: "Set the channel new members' inviters are announced in.",
		Usage:   "<channel|--clear>",
		Flags: func(fs *pflag.FlagSet) *pflag.FlagSet {
			fs.BoolP("clear", "c", false, "Stop announcing inviters.")
			return fs
		},

		Permissions: discord.PermissionManageGuild,
		Command:     bot.setLogChannel,
	})

	bot.AddSubcommand(inv, &bcr.Command{
		Name:    "reset",
		Summary: "Delete every invite record in this server.",

		Permissions: discord.PermissionAdministrator,
		Command:     bot.reset,
	})

	bot.AddCommand(&bcr.Command{
		Name:    "inviter",
		Aliases: []string{"invitedby"},
		Summary: "Show who invited a member.",
		Usage:   "<member>",
		Args:    bcr.MinArgs(1),

		Command: bot.inviter,
	})
}
