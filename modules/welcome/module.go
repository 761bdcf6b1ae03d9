// Package welcome sends welcome messages and gives new members a role.
package welcome

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
	log.Debug("Adding welcome handlers and commands")

	bot := &Bot{Bot: root}

	bot.AddHandler(bot.guildMemberAdd)

	w := bot.AddCommand(&bcr.Command{
		Name:    "welcome",
		Summary: "Show this server's welcome message settings.",

		Permissions: discord.PermissionManageGuild,
		Command:     bot.show,
	})

	bot.AddSubcommand(w, &bcr.Command{
		Name:    "channel",
		Summary: "Set the channel welcome messages are sent in.",
		Usage:   "<channel>",
		Args:    bcr.MinArgs(1),

		Permissions: discord.PermissionManageGuild,
		Command:     bot.setChannel,
	})

	bot.AddSubcommand(w, &bcr.Command{
		Name:    "message",
		Aliases: []string{"msg", "template"},
		Summary: "Set the welcome message.",
		Description: "Set the welcome message. The message is a JSON object with a `content` string, " +
			"and/or an `embed` object or `embeds` array.\n" +
			"`{user}`, `{username}`, `{server}` and `{membercount}` are replaced with the new member's mention, " +
			"their username, the server's name, and the server's member count.",
		Usage: "<json>",
		Args:  bcr.MinArgs(1),

		Permissions: discord.PermissionManageGuild,
		Command:     bot.setMessage,
	})

	bot.AddSubcommand(w, &bcr.Command{
		Name:    "test",
		Summary: "Send the welcome message as if you just joined.",

		Permissions: discord.PermissionManageGuild,
		Command:     bot.test,
	})

	bot.AddSubcommand(w, &bcr.Command{
		Name:    "clear",
		Aliases: []string{"disable"},
		Summary: "Disable welcome messages.",

		Permissions: discord.PermissionManageGuild,
		Command:     bot.clear,
	})

	bot.AddCommand(&bcr.Command{
		Name:    "autorole",
		Summary: "Set the role new members are given.",
		Usage:   "<role|--clear>",
		Flags: func(fs *pflag.FlagSet) *pflag.FlagSet {
			fs.BoolP("clear", "c", false, "Stop giving new members a role.")
			return fs
		},

		Permissions: discord.PermissionManageRoles,
		Command:     bot.autorole,
	})
}
