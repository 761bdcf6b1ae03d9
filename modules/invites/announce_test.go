package invites

import (
	"strings"
	"testing"
	"time"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/stretchr/testify/assert"
	"github.com/warden-bot/warden/common"
	"github.com/warden-bot/warden/db"
	tracker "github.com/warden-bot/warden/invites"
)

const theme discord.Color = 0x9b59b6

func attribution(accountAge time.Duration, suspicious, rejoin bool) (discord.User, tracker.Attribution) {
	joined := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	u := discord.User{ID: discord.UserID(discord.NewSnowflake(joined.Add(-accountAge))), Username: "ferris"}

	inv := discord.Invite{Code: "abc", Inviter: &discord.User{ID: 42}}
	inv.Uses = 7

	return u, tracker.Attribution{
		Referral: db.Referral{
			GuildID:    100,
			MemberID:   u.ID,
			InviterID:  42,
			InviteCode: "abc",
			Suspicious: suspicious,
			JoinedAt:   joined,
		},
		Invite: inv,
		Rejoin: rejoin,
	}
}

func fieldNames(e discord.Embed) []string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Name)
	}
	return names
}

func TestAttributionEmbed(t *testing.T) {
	tests := []struct {
		name       string
		age        time.Duration
		suspicious bool
		rejoin     bool
		colour     discord.Color
		fields     []string
	}{
		{"normal", 365 * 24 * time.Hour, false, false, theme, []string{"Account created", "Invite uses"}},
		{"suspicious", time.Hour, true, false, common.ColourOrange, []string{"Account created", "Invite uses", "⚠️ New account"}},
		{"rejoin", 365 * 24 * time.Hour, false, true, theme, []string{"Account created", "Invite uses", "Rejoin"}},
		{"suspicious rejoin", time.Hour, true, true, common.ColourOrange, []string{"Account created", "Invite uses", "⚠️ New account", "Rejoin"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, a := attribution(tt.age, tt.suspicious, tt.rejoin)
			e := attributionEmbed(u, a, theme)

			assert.Equal(t, tt.colour, e.Color)
			assert.Equal(t, tt.fields, fieldNames(e))
			assert.Contains(t, e.Description, "**abc**")
			assert.Contains(t, e.Description, "<@42>")
			assert.Equal(t, "7", e.Fields[1].Value)
		})
	}
}

func TestAttributionEmbedAccountAge(t *testing.T) {
	u, a := attribution(2*time.Hour, true, false)
	e := attributionEmbed(u, a, theme)

	assert.True(t, strings.HasSuffix(e.Fields[0].Value, "2 hours old"), e.Fields[0].Value)
}
