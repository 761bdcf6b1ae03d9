// Package tickets creates private support channels for members.
package tickets

import (
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/bcr"
	"github.com/warden-bot/warden/bot"
	"github.com/warden-bot/warden/common/log"
)

type Bot struct {
	*bot.Bot
}

func Setup(root *bot.Bot) {
	log.Debug("Adding ticket commands")

	bot := &Bot{Bot: root}

	t := bot.AddCommand(&bcr.Command{
		Name:    "ticket",
		Aliases: []string{"tickets"},
		Summary: "Open and manage support tickets.",

		Command: bot.help,
	})

	bot.AddSubcommand(t, &bcr.Command{
		Name:    "setup",
		Summary: "Set the category tickets are created in, and the role that can see them.",
		Usage:   "<category> <support role>",
		Args:    bcr.MinArgs(2),

		Permissions: discord.PermissionManageGuild,
		Command:     bot.setup,
	})

	bot.AddSubcommand(t, &bcr.Command{
		Name:    "open",
		Aliases: []string{"new", "create"},
		Summary: "Open a ticket.",
		Usage:   "[reason]",

		Command: bot.open,
	})

	bot.AddSubcommand(t, &bcr.Command{
		Name:    "add",
		Summary: "Add a member to the current ticket.",
		Usage:   "<member>",
		Args:    bcr.MinArgs(1),

		Command: bot.add,
	})

	bot.AddSubcommand(t, &bcr.Command{
		Name:    "close",
		Summary: "Close the current ticket. This deletes the channel.",

		Command: bot.close,
	})
}
