package common

import "github.com/diamondburned/arikawa/v3/discord"

// Perm is a single permission
type Perm struct {
	Permission discord.Permissions
	Name       string
}

// RequiredPerms are the permissions the bot needs, and what it needs them for.
var RequiredPerms = []Perm{
	{discord.PermissionManageGuild, "Manage Server"},
	{discord.PermissionManageRoles, "Manage Roles"},
	{discord.PermissionManageChannels, "Manage Channels"},
	{discord.PermissionViewChannel, "View Channels"},
	{discord.PermissionSendMessages, "Send Messages"},
	{discord.PermissionEmbedLinks, "Embed Links"},
	{discord.PermissionAddReactions, "Add Reactions"},
	{discord.PermissionReadMessageHistory, "Read Message History"},
	{discord.PermissionUseExternalEmojis, "Use External Emojis"},
}

// RequiredPermissions returns all of RequiredPerms combined.
func RequiredPermissions() (p discord.Permissions) {
	for _, perm := range RequiredPerms {
		p |= perm.Permission
	}
	return p
}

// PermStrings gives permission strings for the required permissions that p has.
func PermStrings(p discord.Permissions) []string {
	return PermStringsFor(RequiredPerms, p)
}

// PermStringsFor gives permission strings for the given Perm slice
func PermStringsFor(m []Perm, p discord.Permissions) []string {
	var out []string
	for _, perm := range m {
		if p.Has(perm.Permission) {
			out = append(out, perm.Name)
		}
	}
	return out
}

// MissingPermStrings gives permission strings for the required permissions that p doesn't have.
func MissingPermStrings(p discord.Permissions) []string {
	var out []string
	for _, perm := range RequiredPerms {
		if !p.Has(perm.Permission) {
			out = append(out, perm.Name)
		}
	}
	return out
}
