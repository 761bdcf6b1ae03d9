// Package platform describes the parts of the chat platform that the invite tracker depends on,
// and classifies the platform's failures into a small error taxonomy.
package platform

import (
	"github.com/diamondburned/arikawa/v3/discord"
)

// Invites lists a guild's invites, in the order the platform returns them.
// *state.State and *api.Client both implement this.
type Invites interface {
	GuildInvites(guildID discord.GuildID) ([]discord.Invite, error)
}

// Members fetches a single guild member. A missing member is reported as an HTTP 404 error.
// *state.State and *api.Client both implement this.
type Members interface {
	Member(guildID discord.GuildID, userID discord.UserID) (*discord.Member, error)
}

// Platform is everything the tracker needs from the platform.
type Platform interface {
	Invites
	Members
}
