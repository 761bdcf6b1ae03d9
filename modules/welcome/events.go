package welcome

import (
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/warden-bot/warden/common/log"
	"github.com/warden-bot/warden/db"
	"github.com/warden-bot/warden/platform"
	"github.com/warden-bot/warden/render"
)

// joinActions returns the role to give a new member (if any) and whether to send a welcome message.
// Bots are welcomed but never given the auto role.
func joinActions(s db.GuildSettings, u discord.User) (role discord.RoleID, welcome bool) {
	if s.AutoRole.IsValid() && !u.Bot {
		role = s.AutoRole
	}
	return role, s.WelcomeChannel.IsValid() && s.WelcomeTemplate != ""
}

func (bot *Bot) guildMemberAdd(ev *gateway.GuildMemberAddEvent) {
	s := bot.Settings(ev.GuildID)

	role, welcome := joinActions(s, ev.User)
	if role.IsValid() {
		err := bot.State(ev.GuildID).AddRole(ev.GuildID, ev.User.ID, role, api.AddRoleData{
			AuditLogReason: "Auto role",
		})
		if err != nil {
			log.Errorf("adding auto role %v to %v in %v: %v", role, ev.User.ID, ev.GuildID, platform.Classify("add role", err))
		}
	}

	if !welcome {
		return
	}

	err := bot.sendWelcome(s, s.WelcomeChannel, ev.User)
	if err != nil {
		log.Errorf("sending welcome message for %v in %v: %v", ev.User.ID, ev.GuildID, err)
	}
}

// sendWelcome renders the guild's welcome template for u and sends it to channelID.
func (bot *Bot) sendWelcome(s db.GuildSettings, channelID discord.ChannelID, u discord.User) error {
	vars := render.Vars{User: u}

	g, err := bot.State(s.ID).GuildWithCount(s.ID)
	if err == nil {
		vars.Server = g.Name
		vars.MemberCount = g.ApproximateMembers
	} else {
		log.Debugf("getting guild %v for welcome message: %v", s.ID, err)
	}

	data, err := welcomeMessage(s, vars)
	if err != nil {
		return err
	}

	_, err = bot.State(s.ID).SendMessageComplex(channelID, data)
	return platform.Classify("send message", err)
}

// welcomeMessage renders the guild's welcome template. Only user mentions are allowed to ping.
func welcomeMessage(s db.GuildSettings, vars render.Vars) (api.SendMessageData, error) {
	m, err := render.Render(s.WelcomeTemplate, vars, s.Theme())
	if err != nil {
		return api.SendMessageData{}, err
	}

	return api.SendMessageData{
		Content: m.Content,
		Embeds:  m.Embeds,
		AllowedMentions: &api.AllowedMentions{
			Parse: []api.AllowedMentionType{api.AllowUserMention},
		},
	}, nil
}
