package cmd

import (
	"os"

	"github.com/urfave/cli/v2"
	"github.com/warden-bot/warden/cmd/bot"
	"github.com/warden-bot/warden/cmd/migrate"
	"github.com/warden-bot/warden/common"
)

var app = &cli.App{
	Name:    "Warden",
	Usage:   "Discord community bot",
	Version: common.Version(),

	Commands: []*cli.Command{
		bot.Command,
		migrate.Command,
	},
}

func Run() error {
	return app.Run(os.Args)
}
