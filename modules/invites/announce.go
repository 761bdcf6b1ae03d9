package invites

import (
	"fmt"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/warden-bot/warden/common"
	"github.com/warden-bot/warden/common/duration"
	"github.com/warden-bot/warden/common/log"
	tracker "github.com/warden-bot/warden/invites"
	"github.com/warden-bot/warden/platform"
)

// announce sends an attribution to the guild's invite log channel, if it has one.
func (bot *Bot) announce(guildID discord.GuildID, u discord.User, a tracker.Attribution) {
	s := bot.Settings(guildID)
	if !s.InviteLogChannel.IsValid() {
		return
	}

	_, err := bot.State(guildID).SendMessage(s.InviteLogChannel, "", attributionEmbed(u, a, s.Theme()))
	if err != nil {
		log.Errorf("announcing attribution in %v: %v", s.InviteLogChannel, platform.Classify("send message", err))
	}
}

func attributionEmbed(u discord.User, a tracker.Attribution, theme discord.Color) discord.Embed {
	r := a.Referral

	e := discord.Embed{
		Title: "Member joined",
		Description: fmt.Sprintf("%v joined using invite **%v**, created by %v.",
			u.Mention(), r.InviteCode, r.InviterID.Mention()),
		Color: theme,
		Thumbnail: &discord.EmbedThumbnail{
			URL: u.AvatarURL(),
		},
		Fields: []discord.EmbedField{
			{
				Name: "Account created",
				Value: fmt.Sprintf("<t:%v>\n%v old",
					r.MemberID.Time().Unix(), duration.Format(r.JoinedAt.Sub(r.MemberID.Time()))),
				Inline: true,
			},
			{
				Name:   "Invite uses",
				Value:  fmt.Sprint(a.Invite.Uses),
				Inline: true,
			},
		},
		Footer: &discord.EmbedFooter{
			Text: fmt.Sprintf("Member ID: %v | Inviter ID: %v", r.MemberID, r.InviterID),
		},
		Timestamp: discord.NewTimestamp(r.JoinedAt),
	}

	if r.Suspicious {
		e.Color = common.ColourOrange
		e.Fields = append(e.Fields, discord.EmbedField{
			Name:  "⚠️ New account",
			Value: fmt.Sprintf("This account is less than %v old. It won't count towards %v's invites.", duration.Format(tracker.SuspiciousAge), r.InviterID.Mention()),
		})
	}

	if a.Rejoin {
		e.Fields = append(e.Fields, discord.EmbedField{
			Name:  "Rejoin",
			Value: "This member has been in the server before. Their original inviter is kept.",
		})
	}

	return e
}
