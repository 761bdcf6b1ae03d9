package reactroles

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/warden-bot/warden/platform"
)

var customEmojiRe = regexp.MustCompile(`^<a?:(\w+):(\d{15,20})>$`)

// ParseEmoji normalises an emoji argument to the API format: name:id for custom emoji,
// or the emoji itself for unicode emoji. The same format is returned by EmojiKey for reaction events.
func ParseEmoji(s string) (string, error) {
	s = strings.TrimSpace(s)

	if m := customEmojiRe.FindStringSubmatch(s); m != nil {
		return m[1] + ":" + m[2], nil
	}

	if s == "" || strings.IndexFunc(s, unicode.IsSpace) != -1 || isASCII(s) {
		return "", platform.Malformed("``%v`` isn't an emoji.", s)
	}
	return s, nil
}

// EmojiKey returns the API format of a reaction's emoji.
func EmojiKey(e discord.Emoji) string {
	if e.ID.IsValid() {
		return e.Name + ":" + e.ID.String()
	}
	return e.Name
}

// Mention formats a stored emoji for use in a message.
func Mention(key string) string {
	name, id, ok := strings.Cut(key, ":")
	if !ok {
		return key
	}
	return "<:" + name + ":" + id + ">"
}

func isASCII(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return false
		}
	}
	return true
}
