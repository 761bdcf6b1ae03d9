// Package polls runs reaction polls.
package polls

import (
	"github.com/starshine-sys/bcr"
	"github.com/warden-bot/warden/bot"
	"github.com/warden-bot/warden/common/log"
)

type Bot struct {
	*bot.Bot
}

func Setup(root *bot.Bot) {
	log.Debug("Adding poll commands")

	bot := &Bot{Bot: root}

	p := bot.AddCommand(&bcr.Command{
		Name:    "poll",
		Summary: "Start a poll.",
		Description: "Start a poll. Separate the question and options with `|`, for example:\n" +
			"`poll What should we play? | Minecraft | Terraria | Stardew Valley`",
		Usage: "<question> | <option> | <option>...",
		Args:  bcr.MinArgs(1),

		Command: bot.poll,
	})

	bot.AddSubcommand(p, &bcr.Command{
		Name:    "end",
		Aliases: []string{"close"},
		Summary: "End a poll and show the results.",
		Usage:   "<message ID>",
		Args:    bcr.MinArgs(1),

		Command: bot.end,
	})
}
