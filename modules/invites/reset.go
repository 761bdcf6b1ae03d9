package invites

import (
	"context"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/starshine-sys/bcr"
)

func (bot *Bot) reset(ctx *bcr.Context) (err error) {
	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	refs, err := bot.DB.GuildReferrals(c, ctx.Message.GuildID)
	if err != nil {
		return err
	}

	if len(refs) == 0 {
		return ctx.SendX("There are no invite records to clear.")
	}

	m, err := ctx.Sendf("⚠️ **Are you sure you want to clear this server's invite records?** This will delete %v %v, and can't be undone.", humanize.Comma(int64(len(refs))), english.PluralWord(len(refs), "record", ""))
	if err != nil {
		return err
	}

	yes, timeout := ctx.YesNoHandler(*m, ctx.Author.ID)
	if timeout {
		return ctx.SendX("Operation timed out.")
	}
	if !yes {
		return ctx.SendX("Operation cancelled.")
	}

	c, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	n, err := bot.DB.DeleteGuildReferrals(c, ctx.Message.GuildID)
	if err != nil {
		return err
	}

	_, err = ctx.Reply("Cleared %v invite %v.", humanize.Comma(n), english.PluralWord(int(n), "record", ""))
	return err
}
