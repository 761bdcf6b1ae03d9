package common

import (
	"testing"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/stretchr/testify/assert"
)

func TestPermStrings(t *testing.T) {
	p := discord.PermissionManageRoles | discord.PermissionSendMessages | discord.PermissionBanMembers

	assert.Equal(t, []string{"Manage Roles", "Send Messages"}, PermStrings(p))
	assert.NotContains(t, MissingPermStrings(p), "Manage Roles")
	assert.Contains(t, MissingPermStrings(p), "Manage Server")

	assert.Empty(t, MissingPermStrings(RequiredPermissions()))
	assert.Len(t, PermStrings(RequiredPermissions()), len(RequiredPerms))
}
