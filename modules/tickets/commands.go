package tickets

import (
	"context"
	"fmt"
	"strings"
	"time"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/bcr"
	"github.com/warden-bot/warden/common/log"
	"github.com/warden-bot/warden/db"
	"github.com/warden-bot/warden/platform"
)

func (bot *Bot) help(ctx *bcr.Context) (err error) {
	s := bot.Settings(ctx.Message.GuildID)

	desc := fmt.Sprintf("Use ``%vticket open [reason]`` to open a ticket. Only you and the support team can see it.", ctx.Prefix)
	if !s.TicketCategory.IsValid() {
		desc = fmt.Sprintf("Tickets aren't set up in this server yet. A moderator can set them up with ``%vticket setup <category> <support role>``.", ctx.Prefix)
	}

	return ctx.SendX("", discord.Embed{
		Title:       "Tickets",
		Description: desc,
		Color:       s.Theme(),
	})
}

func (bot *Bot) setup(ctx *bcr.Context) (err error) {
	cat, err := ctx.ParseChannel(ctx.Args[0])
	if err != nil || cat.GuildID != ctx.Message.GuildID || cat.Type != discord.GuildCategory {
		return platform.NotFound("I couldn't find a category called ``%v``.", bcr.EscapeBackticks(ctx.Args[0]))
	}

	role, err := ctx.ParseRole(strings.TrimSpace(strings.TrimPrefix(ctx.RawArgs, ctx.Args[0])))
	if err != nil {
		return platform.NotFound("I couldn't find a role called ``%v``.", bcr.EscapeBackticks(ctx.Args[1]))
	}

	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = bot.DB.SetSetting(c, ctx.Message.GuildID, db.SettingTicketCategory, cat.ID)
	if err != nil {
		return err
	}

	err = bot.DB.SetSetting(c, ctx.Message.GuildID, db.SettingTicketSupportRole, role.ID)
	if err != nil {
		return err
	}

	_, err = ctx.Reply("Tickets will be created in **%v**, and can be seen by %v.", cat.Name, role.Mention())
	return err
}

func (bot *Bot) open(ctx *bcr.Context) (err error) {
	s := bot.Settings(ctx.Message.GuildID)
	if !s.TicketCategory.IsValid() || !s.TicketSupportRole.IsValid() {
		return platform.NotFound("Tickets aren't set up in this server yet.")
	}

	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	existing, err := bot.DB.OpenTicketFor(c, ctx.Message.GuildID, ctx.Author.ID)
	if err == nil {
		return platform.Malformed("You already have an open ticket: %v", existing.ChannelID.Mention())
	} else if !errors.Is(err, db.ErrNotFound) {
		return err
	}

	reason := truncate(ctx.RawArgs, maxReason)

	ch, err := ctx.State.CreateChannel(ctx.Message.GuildID, api.CreateChannelData{
		Name:       channelName(ctx.Author),
		Type:       discord.GuildText,
		Topic:      fmt.Sprintf("Ticket opened by %v (%v)", ctx.Author.Tag(), ctx.Author.ID),
		CategoryID: s.TicketCategory,
		Overwrites: overwrites(ctx.Message.GuildID, ctx.Author.ID, bot.Router.Bot.ID, s.TicketSupportRole),

		AuditLogReason: api.AuditLogReason(fmt.Sprintf("Ticket for %v", ctx.Author.Tag())),
	})
	if err != nil {
		err = platform.Classify("create channel", err)
		if errors.Is(err, platform.ErrNotFound) {
			return platform.NotFound("The ticket category was deleted. A moderator needs to run ``%vticket setup`` again.", ctx.Prefix)
		}
		return err
	}

	t, err := bot.DB.OpenTicket(c, db.Ticket{
		GuildID:   ctx.Message.GuildID,
		ChannelID: ch.ID,
		OwnerID:   ctx.Author.ID,
		Reason:    reason,
	})
	if err != nil {
		// don't leave an orphaned channel behind
		if derr := ctx.State.DeleteChannel(ch.ID, "Ticket could not be opened"); derr != nil {
			log.Errorf("deleting orphaned ticket channel %v: %v", ch.ID, derr)
		}

		if errors.Is(err, db.ErrTicketExists) {
			return platform.Malformed("You already have an open ticket.")
		}
		return err
	}

	e := discord.Embed{
		Title:       fmt.Sprintf("Ticket #%v", t.ID),
		Description: fmt.Sprintf("%v, the support team will be with you soon. Use ``%vticket close`` when you're done.", ctx.Author.Mention(), ctx.Prefix),
		Color:       s.Theme(),
		Timestamp:   discord.NowTimestamp(),
	}
	if reason != "" {
		e.Fields = append(e.Fields, discord.EmbedField{Name: "Reason", Value: reason})
	}

	_, err = ctx.State.SendMessageComplex(ch.ID, api.SendMessageData{
		Content: ctx.Author.Mention() + " " + s.TicketSupportRole.Mention(),
		Embeds:  []discord.Embed{e},
		AllowedMentions: &api.AllowedMentions{
			Users: []discord.UserID{ctx.Author.ID},
			Roles: []discord.RoleID{s.TicketSupportRole},
		},
	})
	if err != nil {
		log.Errorf("sending ticket greeting in %v: %v", ch.ID, err)
	}

	_, err = ctx.Reply("Your ticket has been opened: %v", ch.Mention())
	return err
}

// currentTicket returns the ticket for the channel the command was run in,
// checking that the author is its owner or can manage channels.
func (bot *Bot) currentTicket(ctx *bcr.Context) (t db.Ticket, err error) {
	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	t, err = bot.DB.TicketByChannel(c, ctx.Message.ChannelID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return t, platform.NotFound("This channel isn't a ticket.")
		}
		return t, err
	}

	if t.OwnerID == ctx.Author.ID {
		return t, nil
	}

	perms, err := ctx.State.Permissions(ctx.Message.ChannelID, ctx.Author.ID)
	if err != nil || !perms.Has(discord.PermissionManageChannels) {
		return t, platform.Denied("Only the ticket's owner (or someone with **Manage Channels**) can do that.")
	}
	return t, nil
}

func (bot *Bot) add(ctx *bcr.Context) (err error) {
	t, err := bot.currentTicket(ctx)
	if err != nil {
		return err
	}

	m, err := ctx.ParseMember(ctx.RawArgs)
	if err != nil {
		return platform.NotFound("I couldn't find a member called ``%v``.", bcr.EscapeBackticks(ctx.RawArgs))
	}

	err = ctx.State.EditChannelPermission(t.ChannelID, discord.Snowflake(m.User.ID), api.EditChannelPermissionData{
		Type:  discord.OverwriteMember,
		Allow: memberPerms,
	})
	if err != nil {
		return platform.Classify("edit channel permissions", err)
	}

	_, err = ctx.Reply("Added %v to this ticket.", m.User.Mention())
	return err
}

func (bot *Bot) close(ctx *bcr.Context) (err error) {
	t, err := bot.currentTicket(ctx)
	if err != nil {
		return err
	}

	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = bot.DB.CloseTicket(c, t.ID)
	if err != nil {
		return err
	}

	err = ctx.State.DeleteChannel(t.ChannelID, api.AuditLogReason(fmt.Sprintf("Ticket closed by %v", ctx.Author.Tag())))
	if err != nil {
		return platform.Classify("delete channel", err)
	}

	log.Debugf("closed ticket %v in %v", t.ID, t.GuildID)
	return nil
}
