package embeds

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/warden-bot/warden/platform"
)

// ParseHex parses a hex colour, with or without a leading # or 0x.
// Both six-digit and three-digit forms are accepted.
func ParseHex(s string) (discord.Color, error) {
	in := s
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "#")
	s = strings.TrimPrefix(strings.ToLower(s), "0x")

	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}

	if len(s) != 6 {
		return 0, platform.Malformed("``%v`` isn't a valid hex colour.", in)
	}

	c, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, platform.Malformed("``%v`` isn't a valid hex colour.", in)
	}

	// discord treats 0 as "no colour"
	if c == 0 {
		c = 0x000001
	}
	return discord.Color(c), nil
}

// FormatHex formats a colour as #rrggbb.
func FormatHex(c discord.Color) string {
	return fmt.Sprintf("#%06x", uint32(c))
}
