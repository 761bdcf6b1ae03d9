// Package embeds posts templated messages and sets the server's theme colour.
package embeds

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
	log.Debug("Adding embed commands")

	bot := &Bot{Bot: root}

	bot.AddCommand(&bcr.Command{
		Name:    "embed",
		Aliases: []string{"post"},
		Summary: "Post a message from a JSON template.",
		Description: "Post a message from a JSON template. The template is a JSON object with a `content` string, " +
			"and/or an `embed` object or `embeds` array. Embeds without a colour use the server's theme colour.",
		Usage: "<channel> <json>",
		Args:  bcr.MinArgs(2),

		Permissions: discord.PermissionManageMessages,
		Command:     bot.embed,
	})

	bot.AddCommand(&bcr.Command{
		Name:    "theme",
		Aliases: []string{"colour", "color"},
		Summary: "Show or set the server's theme colour.",
		Usage:   "[hex colour]",

		Permissions: discord.PermissionManageGuild,
		Command:     bot.theme,
	})
}
