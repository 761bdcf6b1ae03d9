package reactroles

import (
	"testing"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warden-bot/warden/platform"
)

func TestParseEmoji(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"👍", "👍"},
		{" ❤️ ", "❤️"},
		{"<:blobcat:846101236426571816>", "blobcat:846101236426571816"},
		{"<a:blobdance:846101236426571816>", "blobdance:846101236426571816"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseEmoji(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseEmojiInvalid(t *testing.T) {
	for _, in := range []string{"", "thumbsup", ":thumbsup:", "👍 👎", "<:blobcat:123>"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseEmoji(in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, platform.ErrMalformedInput))
		})
	}
}

func TestEmojiKeyMatchesParse(t *testing.T) {
	custom, err := ParseEmoji("<:blobcat:846101236426571816>")
	require.NoError(t, err)
	assert.Equal(t, custom, EmojiKey(discord.Emoji{ID: 846101236426571816, Name: "blobcat"}))

	unicode, err := ParseEmoji("👍")
	require.NoError(t, err)
	assert.Equal(t, unicode, EmojiKey(discord.Emoji{Name: "👍"}))
}

func TestMention(t *testing.T) {
	assert.Equal(t, "👍", Mention("👍"))
	assert.Equal(t, "<:blobcat:846101236426571816>", Mention("blobcat:846101236426571816"))
}

func TestIgnoreReaction(t *testing.T) {
	const (
		guildID discord.GuildID = 1
		self    discord.UserID  = 2
		user    discord.UserID  = 3
	)

	tests := []struct {
		name    string
		guildID discord.GuildID
		userID  discord.UserID
		member  *discord.Member
		want    bool
	}{
		{"member", guildID, user, &discord.Member{User: discord.User{ID: user}}, false},
		{"unknown member", guildID, user, nil, false},
		{"own reaction", guildID, self, nil, true},
		{"other bot", guildID, user, &discord.Member{User: discord.User{ID: user, Bot: true}}, true},
		{"direct message", 0, user, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ignoreReaction(tt.guildID, self, tt.userID, tt.member))
		})
	}
}
