package meta

import (
	"github.com/starshine-sys/bcr"
	"github.com/warden-bot/warden/bot"
	"github.com/warden-bot/warden/common/log"
)

type Bot struct {
	*bot.Bot
}

func Setup(root *bot.Bot) {
	log.Debug("Adding meta commands")

	bot := &Bot{Bot: root}

	bot.AddCommand(&bcr.Command{
		Name:    "ping",
		Summary: "Show the bot's latency.",

		Command: bot.ping,
	})

	h := bot.AddCommand(&bcr.Command{
		Name:    "help",
		Summary: "Show information about the bot, or a specific command.",
		Usage:   "[command]",

		Command: bot.help,
	})

	bot.AddSubcommand(h, &bcr.Command{
		Name:    "permissions",
		Aliases: []string{"perms"},
		Summary: "Show the permissions the bot needs, and which ones it's missing here.",

		Command: bot.perms,
	})

	bot.AddCommand(&bcr.Command{
		Name:    "invite",
		Summary: "Get an invite link for the bot.",

		Command: bot.invite,
	})
}
