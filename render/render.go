// Package render turns JSON message templates into Discord messages.
//
// A template is a JSON object with an optional "content" string and either an "embed" object
// or an "embeds" array, in the same shape Discord uses. Placeholders in any string are replaced:
//
//	{user}        the member's mention
//	{username}    the member's username
//	{server}      the server's name
//	{membercount} the server's member count
package render

import (
	"encoding/json"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/warden-bot/warden/platform"
)

// Discord's limits for a single message.
const (
	MaxContentLength = 2000
	MaxEmbeds        = 10
)

// Vars are the values substituted into a template.
type Vars struct {
	User discord.User

	// Server and MemberCount are only substituted if they're set.
	Server      string
	MemberCount uint64
}

// Message is a rendered message.
type Message struct {
	Content string
	Embeds  []discord.Embed
}

type template struct {
	Content string          `json:"content"`
	Embed   *discord.Embed  `json:"embed"`
	Embeds  []discord.Embed `json:"embeds"`
}

// Render renders a template. Embeds without a colour are given the theme colour.
// Invalid JSON, an empty message, or a message over Discord's limits returns a rejection wrapping platform.ErrMalformedInput.
func Render(templateJSON string, v Vars, theme discord.Color) (m Message, err error) {
	templateJSON = strings.TrimSpace(templateJSON)
	if templateJSON == "" {
		return m, platform.Malformed("The template is empty.")
	}

	var raw any
	err = json.Unmarshal([]byte(templateJSON), &raw)
	if err != nil {
		return m, platform.Malformed("The template isn't valid JSON: %v", err)
	}
	if _, ok := raw.(map[string]any); !ok {
		return m, platform.Malformed("The template must be a JSON object.")
	}

	raw = substitute(raw, v.replacer())

	// round trip through JSON so the substituted values land in arikawa's types
	b, err := json.Marshal(raw)
	if err != nil {
		return m, platform.Malformed("The template isn't valid JSON: %v", err)
	}

	var t template
	err = json.Unmarshal(b, &t)
	if err != nil {
		return m, platform.Malformed("The template doesn't have the right shape: %v", err)
	}

	m.Content = t.Content
	if t.Embed != nil {
		m.Embeds = append(m.Embeds, *t.Embed)
	}
	m.Embeds = append(m.Embeds, t.Embeds...)

	for i := range m.Embeds {
		if m.Embeds[i].Color == 0 {
			m.Embeds[i].Color = theme
		}
	}

	if m.Content == "" && len(m.Embeds) == 0 {
		return m, platform.Malformed("The template has no content and no embeds.")
	}
	if n := utf8.RuneCountInString(m.Content); n > MaxContentLength {
		return m, platform.Malformed("The message content is too long (%d > %d characters).", n, MaxContentLength)
	}
	if len(m.Embeds) > MaxEmbeds {
		return m, platform.Malformed("The message has too many embeds (%d > %d).", len(m.Embeds), MaxEmbeds)
	}

	return m, nil
}

func (v Vars) replacer() *strings.Replacer {
	pairs := []string{
		"{user}", v.User.Mention(),
		"{username}", v.User.Username,
	}
	if v.Server != "" {
		pairs = append(pairs, "{server}", v.Server)
	}
	if v.MemberCount != 0 {
		pairs = append(pairs, "{membercount}", strconv.FormatUint(v.MemberCount, 10))
	}
	return strings.NewReplacer(pairs...)
}

// substitute replaces placeholders in every string in a decoded JSON value.
func substitute(v any, r *strings.Replacer) any {
	switch v := v.(type) {
	case string:
		return r.Replace(v)
	case map[string]any:
		for k, val := range v {
			v[k] = substitute(val, r)
		}
		return v
	case []any:
		for i, val := range v {
			v[i] = substitute(val, r)
		}
		return v
	default:
		return v
	}
}
