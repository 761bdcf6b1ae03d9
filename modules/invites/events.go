package invites

import (
	"context"
	"time"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/warden-bot/warden/common/log"
	"github.com/warden-bot/warden/stats"
)

// guildCreate takes the first snapshot of a guild's invites.
// This also runs when the bot reconnects, which is fine: joins during the outage can't be attributed anyway.
func (bot *Bot) guildCreate(ev *gateway.GuildCreateEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := bot.DB.CreateGuild(ctx, ev.ID)
	if err != nil {
		log.Errorf("creating guild %v in database: %v", ev.ID, err)
	}

	snap, err := bot.Tracker.Refresh(ctx, ev.ID)
	if err != nil {
		bot.Stats.Inc(stats.RefreshError)
		log.Errorf("refreshing invites for new guild %v: %v", ev.ID, err)
		return
	}
	log.Debugf("stored %v invites for %v", len(snap.Uses), ev.ID)
}

func (bot *Bot) guildDelete(ev *gateway.GuildDeleteEvent) {
	// outages, we'll get a guild create once it's back
	if ev.Unavailable {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := bot.Tracker.Forget(ctx, ev.ID)
	if err != nil {
		log.Errorf("forgetting invites for %v: %v", ev.ID, err)
	}
}

func (bot *Bot) inviteCreate(ev *gateway.InviteCreateEvent) {
	bot.refresh(ev.GuildID, "invite create")
}

func (bot *Bot) inviteDelete(ev *gateway.InviteDeleteEvent) {
	bot.refresh(ev.GuildID, "invite delete")
}

func (bot *Bot) refresh(guildID discord.GuildID, reason string) {
	if !guildID.IsValid() {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := bot.Tracker.Refresh(ctx, guildID)
	if err != nil {
		bot.Stats.Inc(stats.RefreshError)
		log.Errorf("refreshing invites for %v after %v: %v", guildID, reason, err)
	}
}

func (bot *Bot) guildMemberAdd(ev *gateway.GuildMemberAddEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a, ok, err := bot.Tracker.Attribute(ctx, ev.GuildID, ev.User, ev.Joined.Time())
	if err != nil {
		log.Errorf("attributing join of %v in %v: %v", ev.User.ID, ev.GuildID, err)
		return
	}

	if !ok {
		bot.Stats.Inc(stats.Unattributed)
		log.Debugf("couldn't work out which invite %v used to join %v", ev.User.ID, ev.GuildID)
		return
	}

	bot.Stats.Inc(stats.Attributed)
	if a.Referral.Suspicious {
		bot.Stats.Inc(stats.Suspicious)
	}

	log.Debugf("%v joined %v through %v (invited by %v)", ev.User.ID, ev.GuildID, a.Referral.InviteCode, a.Referral.InviterID)

	bot.announce(ev.GuildID, ev.User, a)
}
