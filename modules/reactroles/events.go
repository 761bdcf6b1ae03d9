package reactroles

import (
	"context"
	"time"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/warden-bot/warden/common/log"
	"github.com/warden-bot/warden/db"
	"github.com/warden-bot/warden/platform"
)

// ignoreReaction returns true if a reaction by userID shouldn't change roles:
// outside of guilds, and for the bot itself or any other bot.
func ignoreReaction(guildID discord.GuildID, self, userID discord.UserID, m *discord.Member) bool {
	if !guildID.IsValid() || userID == self {
		return true
	}
	return m != nil && m.User.Bot
}

func (bot *Bot) reactionAdd(ev *gateway.MessageReactionAddEvent) {
	if ignoreReaction(ev.GuildID, bot.Router.Bot.ID, ev.UserID, ev.Member) {
		return
	}

	rr, ok := bot.reactionRole(ev.MessageID, ev.Emoji)
	if !ok {
		return
	}

	err := bot.State(ev.GuildID).AddRole(ev.GuildID, ev.UserID, rr.RoleID, api.AddRoleData{
		AuditLogReason: "Reaction role",
	})
	if err != nil {
		log.Errorf("adding reaction role %v to %v in %v: %v", rr.RoleID, ev.UserID, ev.GuildID, platform.Classify("add role", err))
	}
}

func (bot *Bot) reactionRemove(ev *gateway.MessageReactionRemoveEvent) {
	if ignoreReaction(ev.GuildID, bot.Router.Bot.ID, ev.UserID, nil) {
		return
	}

	// remove events don't include the member
	m, err := bot.Member(ev.GuildID, ev.UserID)
	if err != nil {
		log.Debugf("getting member %v in %v: %v", ev.UserID, ev.GuildID, platform.Classify("get member", err))
		return
	}
	if ignoreReaction(ev.GuildID, bot.Router.Bot.ID, ev.UserID, m) {
		return
	}

	rr, ok := bot.reactionRole(ev.MessageID, ev.Emoji)
	if !ok {
		return
	}

	err = bot.State(ev.GuildID).RemoveRole(ev.GuildID, ev.UserID, rr.RoleID, "Reaction role")
	if err != nil {
		log.Errorf("removing reaction role %v from %v in %v: %v", rr.RoleID, ev.UserID, ev.GuildID, platform.Classify("remove role", err))
	}
}

func (bot *Bot) reactionRole(msgID discord.MessageID, e discord.Emoji) (rr db.ReactionRole, ok bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	rr, err := bot.DB.ReactionRole(ctx, msgID, EmojiKey(e))
	if err != nil {
		if !errors.Is(err, db.ErrNotFound) {
			log.Errorf("getting reaction role for %v: %v", msgID, err)
		}
		return rr, false
	}
	return rr, true
}
