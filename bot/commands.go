package bot

import (
	"github.com/starshine-sys/bcr"
	"github.com/warden-bot/warden/stats"
)

// AddCommand adds a command to the router.
// Errors returned by the command are handled by Reject.
func (bot *Bot) AddCommand(c *bcr.Command) *bcr.Command {
	c.Command = bot.wrap(c.Command)
	return bot.Router.AddCommand(c)
}

// AddSubcommand adds a subcommand to parent, wrapped the same way as AddCommand.
func (bot *Bot) AddSubcommand(parent *bcr.Command, c *bcr.Command) *bcr.Command {
	c.Command = bot.wrap(c.Command)
	return parent.AddSubcommand(c)
}

func (bot *Bot) wrap(fn func(*bcr.Context) error) func(*bcr.Context) error {
	return func(ctx *bcr.Context) error {
		bot.Stats.Inc(stats.Commands)

		err := fn(ctx)
		if err == nil {
			return nil
		}
		return bot.Reject(ctx, err)
	}
}
