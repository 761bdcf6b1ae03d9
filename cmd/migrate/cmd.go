package migrate

import (
	"github.com/urfave/cli/v2"
	"github.com/warden-bot/warden/bot"
	"github.com/warden-bot/warden/common/log"
	"github.com/warden-bot/warden/db"
)

var Command = &cli.Command{
	Name:   "migrate",
	Usage:  "Run migrations manually",
	Action: run,
	Flags: []cli.Flag{&cli.BoolFlag{
		Name:    "force",
		Aliases: []string{"f"},
		Usage:   "Run migrations whether or not NO_AUTO_MIGRATE is set.",
		Value:   false,
	}},
}

func run(c *cli.Context) error {
	conf, err := bot.ReadConfig()
	if err != nil {
		log.Fatalf("Reading configuration: %v", err)
	}

	if !conf.NoAutoMigrate && !c.Bool("force") {
		return cli.Exit("Migrations are run automatically, and the --force flag is not set.", 1)
	}

	err = db.RunMigrations(conf.DatabaseURL)
	if err != nil {
		log.Fatalf("Running migrations: %v", err)
	}

	log.Info("Successfully ran migrations!")
	return nil
}
