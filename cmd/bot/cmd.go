package bot

import (
	"os"
	"os/signal"
	"syscall"

	"emperror.dev/errors"
	"github.com/getsentry/sentry-go"
	"github.com/urfave/cli/v2"
	"github.com/warden-bot/warden/bot"
	"github.com/warden-bot/warden/common"
	"github.com/warden-bot/warden/common/log"
	"github.com/warden-bot/warden/modules/embeds"
	"github.com/warden-bot/warden/modules/invites"
	"github.com/warden-bot/warden/modules/meta"
	"github.com/warden-bot/warden/modules/polls"
	"github.com/warden-bot/warden/modules/reactroles"
	"github.com/warden-bot/warden/modules/tickets"
	"github.com/warden-bot/warden/modules/welcome"
	"github.com/warden-bot/warden/web/server"
)

var Command = &cli.Command{
	Name:   "bot",
	Usage:  "Run the bot",
	Action: run,
}

func run(c *cli.Context) error {
	conf, err := bot.ReadConfig()
	if err != nil {
		return errors.Wrap(err, "reading config")
	}
	log.SetDebug(conf.Debug)

	// set up sentry
	if conf.Sentry != "" {
		log.Debug("setting up sentry")
		err := sentry.Init(sentry.ClientOptions{
			Dsn:     conf.Sentry,
			Release: common.Version(),
		})
		if err != nil {
			return errors.Wrap(err, "setting up sentry")
		}

		log.Debug("set up sentry")
	} else {
		log.Debugf("sentry DSN was not provided, not setting it up")
	}

	ctx, cancel := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	b, err := bot.New(ctx, conf)
	if err != nil {
		return errors.Wrap(err, "creating bot")
	}

	// set up modules (event handlers and commands)
	invites.Setup(b)    // invite tracking
	welcome.Setup(b)    // welcome messages, auto role
	embeds.Setup(b)     // embed, theme
	polls.Setup(b)      // polls
	tickets.Setup(b)    // tickets
	reactroles.Setup(b) // reaction roles
	meta.Setup(b)       // ping, help

	if conf.HTTPListen != "" {
		srv := server.New(b.Tracker, b.DB, conf.HTTPToken)
		go func() {
			err := srv.Run(ctx, conf.HTTPListen)
			if err != nil {
				log.Errorf("running HTTP API: %v", err)
			}
		}()
	}

	// actually run bot!
	err = b.Open(ctx)
	if err != nil {
		return errors.Wrap(err, "opening gateway connection")
	}

	go b.StatusLoop(ctx)

	defer func() {
		err = b.Close()
		if err != nil {
			log.Errorf("closing bot: %v", err)
		}
	}()

	log.Info("Connected to Discord. Press Ctrl-C or send an interrupt signal to stop.")

	<-ctx.Done()

	log.Infof("Interrupt signal received. Shutting down...")
	return nil
}
