package reactroles

import (
	"context"
	"fmt"
	"time"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/bcr"
	"github.com/warden-bot/warden/common/log"
	"github.com/warden-bot/warden/db"
	"github.com/warden-bot/warden/platform"
)

func (bot *Bot) list(ctx *bcr.Context) (err error) {
	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	rrs, err := bot.DB.GuildReactionRoles(c, ctx.Message.GuildID)
	if err != nil {
		return err
	}

	if len(rrs) == 0 {
		return ctx.SendX(fmt.Sprintf("There are no reaction roles in this server. Add one with ``%vreactrole add``.", ctx.Prefix))
	}

	fields := make([]discord.EmbedField, 0, len(rrs))
	for _, rr := range rrs {
		fields = append(fields, discord.EmbedField{
			Name: fmt.Sprintf("%v → %v", Mention(rr.Emoji), rr.MessageID),
			Value: fmt.Sprintf("%v in %v\n[Jump to message](https://discord.com/channels/%v/%v/%v)",
				rr.RoleID.Mention(), rr.ChannelID.Mention(), rr.GuildID, rr.ChannelID, rr.MessageID),
		})
	}

	s := bot.Settings(ctx.Message.GuildID)

	_, err = ctx.PagedEmbed(
		bcr.FieldPaginator("Reaction roles", "", s.Theme(), fields, 10), false,
	)
	return err
}

func (bot *Bot) add(ctx *bcr.Context) (err error) {
	ch, err := ctx.ParseChannel(ctx.Args[0])
	if err != nil || ch.GuildID != ctx.Message.GuildID {
		return platform.NotFound("I couldn't find a channel called ``%v`` in this server.", bcr.EscapeBackticks(ctx.Args[0]))
	}

	sf, err := discord.ParseSnowflake(ctx.Args[1])
	if err != nil {
		return platform.Malformed("``%v`` isn't a valid message ID.", bcr.EscapeBackticks(ctx.Args[1]))
	}
	msgID := discord.MessageID(sf)

	emoji, err := ParseEmoji(ctx.Args[2])
	if err != nil {
		return err
	}

	role, err := ctx.ParseRole(ctx.Args[3])
	if err != nil {
		return platform.NotFound("I couldn't find a role called ``%v``.", bcr.EscapeBackticks(ctx.Args[3]))
	}
	if role.Managed || discord.GuildID(role.ID) == ctx.Message.GuildID {
		return platform.Malformed("%v can't be given to members.", role.Mention())
	}

	_, err = ctx.State.Message(ch.ID, msgID)
	if err != nil {
		if platform.IsNotFound(err) {
			return platform.NotFound("I couldn't find that message in %v.", ch.Mention())
		}
		return platform.Classify("get message", err)
	}

	// react first: if the emoji can't be used, nothing is stored
	err = ctx.State.React(ch.ID, msgID, discord.APIEmoji(emoji))
	if err != nil {
		err = platform.Classify("add reaction", err)
		if errors.Is(err, platform.ErrPermissionDenied) {
			return err
		}
		return platform.Malformed("I couldn't react with %v. Is it an emoji I can use?", Mention(emoji))
	}

	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = bot.DB.AddReactionRole(c, db.ReactionRole{
		MessageID: msgID,
		Emoji:     emoji,
		GuildID:   ctx.Message.GuildID,
		ChannelID: ch.ID,
		RoleID:    role.ID,
	})
	if err != nil {
		return err
	}

	_, err = ctx.Reply("Members who react with %v will now be given %v.", Mention(emoji), role.Mention())
	return err
}

func (bot *Bot) remove(ctx *bcr.Context) (err error) {
	sf, err := discord.ParseSnowflake(ctx.Args[0])
	if err != nil {
		return platform.Malformed("``%v`` isn't a valid message ID.", bcr.EscapeBackticks(ctx.Args[0]))
	}
	msgID := discord.MessageID(sf)

	emoji, err := ParseEmoji(ctx.Args[1])
	if err != nil {
		return err
	}

	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	rr, err := bot.DB.ReactionRole(c, msgID, emoji)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return platform.NotFound("There's no reaction role for %v on that message.", Mention(emoji))
		}
		return err
	}

	err = bot.DB.RemoveReactionRole(c, ctx.Message.GuildID, msgID, emoji)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return platform.NotFound("There's no reaction role for %v on that message.", Mention(emoji))
		}
		return err
	}

	err = ctx.State.Unreact(rr.ChannelID, msgID, discord.APIEmoji(emoji))
	if err != nil {
		log.Errorf("removing own reaction %v from %v: %v", emoji, msgID, platform.Classify("remove reaction", err))
	}

	_, err = ctx.Reply("Removed the reaction role for %v.", Mention(emoji))
	return err
}
