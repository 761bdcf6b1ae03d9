package tickets

import (
	"strings"
	"unicode/utf8"

	"github.com/diamondburned/arikawa/v3/discord"
)

const maxChannelName = 100

// channelName returns a valid text channel name for a member's ticket.
func channelName(u discord.User) string {
	var b strings.Builder
	b.WriteString("ticket-")

	dash := true
	for _, r := range strings.ToLower(u.Username) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
			dash = false
		case !dash:
			b.WriteByte('-')
			dash = true
		}
	}

	name := strings.TrimRight(b.String(), "-")
	if name == "ticket" {
		name = "ticket-" + u.ID.String()
	}

	if len(name) > maxChannelName {
		name = name[:maxChannelName]
	}
	return name
}

const maxReason = 1024

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}

	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

const (
	memberPerms = discord.PermissionViewChannel |
		discord.PermissionSendMessages |
		discord.PermissionReadMessageHistory |
		discord.PermissionAttachFiles |
		discord.PermissionEmbedLinks

	botPerms = memberPerms | discord.PermissionManageChannels
)

// overwrites returns the permission overwrites for a new ticket channel:
// hidden from everyone except the owner, the support role, and the bot.
func overwrites(guildID discord.GuildID, owner, self discord.UserID, supportRole discord.RoleID) []discord.Overwrite {
	return []discord.Overwrite{
		{
			// @everyone
			ID:   discord.Snowflake(guildID),
			Type: discord.OverwriteRole,
			Deny: discord.PermissionViewChannel,
		},
		{
			ID:    discord.Snowflake(supportRole),
			Type:  discord.OverwriteRole,
			Allow: memberPerms,
		},
		{
			ID:    discord.Snowflake(owner),
			Type:  discord.OverwriteMember,
			Allow: memberPerms,
		},
		{
			ID:    discord.Snowflake(self),
			Type:  discord.OverwriteMember,
			Allow: botPerms,
		},
	}
}
