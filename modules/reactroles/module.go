// Package reactroles gives members roles when they react to a message.
package reactroles

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
	log.Debug("Adding reaction role handlers and commands")

	bot := &Bot{Bot: root}

	bot.AddHandler(bot.reactionAdd, bot.reactionRemove)

	rr := bot.AddCommand(&bcr.Command{
		Name:    "reactrole",
		Aliases: []string{"reactroles", "rr"},
		Summary: "List this server's reaction roles.",

		Permissions: discord.PermissionManageRoles,
		Command:     bot.list,
	})

	bot.AddSubcommand(rr, &bcr.Command{
		Name:    "list",
		Summary: "List this server's reaction roles.",

		Permissions: discord.PermissionManageRoles,
		Command:     bot.list,
	})

	bot.AddSubcommand(rr, &bcr.Command{
		Name:    "add",
		Summary: "Add a reaction role to a message.",
		Usage:   "<channel> <message ID> <emoji> <role>",
		Args:    bcr.MinArgs(4),

		Permissions: discord.PermissionManageRoles,
		Command:     bot.add,
	})

	bot.AddSubcommand(rr, &bcr.Command{
		Name:    "remove",
		Aliases: []string{"delete", "rm"},
		Summary: "Remove a reaction role from a message.",
		Usage:   "<message ID> <emoji>",
		Args:    bcr.MinArgs(2),

		Permissions: discord.PermissionManageRoles,
		Command:     bot.remove,
	})
}
