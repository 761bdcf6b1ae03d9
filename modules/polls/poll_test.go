package polls

import (
	"testing"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warden-bot/warden/db"
	"github.com/warden-bot/warden/platform"
)

func TestParse(t *testing.T) {
	q, opts, err := Parse(" What should we play? | Minecraft |Terraria| | Stardew Valley ")
	require.NoError(t, err)

	assert.Equal(t, "What should we play?", q)
	assert.Equal(t, []string{"Minecraft", "Terraria", "Stardew Valley"}, opts)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"no question", " | a | b"},
		{"no options", "question"},
		{"one option", "question | a"},
		{"empty options", "question | | "},
		{"too many options", "q | 1 | 2 | 3 | 4 | 5 | 6 | 7 | 8 | 9 | 10 | 11"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Parse(tt.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, platform.ErrMalformedInput))
		})
	}
}

func TestParseMaxOptions(t *testing.T) {
	_, opts, err := Parse("q | 1 | 2 | 3 | 4 | 5 | 6 | 7 | 8 | 9 | 10")
	require.NoError(t, err)
	assert.Len(t, opts, MaxOptions)
}

func TestTally(t *testing.T) {
	options := []string{"a", "b", "c"}
	reactions := []discord.Reaction{
		{Count: 4, Me: true, Emoji: discord.Emoji{Name: Keycaps[0]}},
		{Count: 1, Me: true, Emoji: discord.Emoji{Name: Keycaps[1]}},
		{Count: 2, Me: false, Emoji: discord.Emoji{Name: Keycaps[2]}},
		// not an option
		{Count: 10, Emoji: discord.Emoji{Name: "👍"}},
		{Count: 5, Emoji: discord.Emoji{Name: Keycaps[3]}},
	}

	assert.Equal(t, []int{3, 0, 2}, Tally(options, reactions))
}

func TestWinners(t *testing.T) {
	assert.Equal(t, []int{1}, Winners([]int{1, 3, 2}))
	assert.Equal(t, []int{0, 2}, Winners([]int{2, 1, 2}))
	assert.Empty(t, Winners([]int{0, 0}))
}

func TestResultEmbed(t *testing.T) {
	p := db.Poll{Question: "Best colour?", Options: []string{"purple", "green"}}

	e := resultEmbed(p, []int{3, 1}, 0x9b59b6)
	assert.Equal(t, "Results: Best colour?", e.Title)
	assert.Contains(t, e.Description, "**1️⃣ purple: 3 votes (75%)**")
	assert.Contains(t, e.Description, "2️⃣ green: 1 vote (25%)")
	require.NotNil(t, e.Footer)
	assert.Equal(t, "4 votes in total", e.Footer.Text)
}
