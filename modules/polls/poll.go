package polls

import (
	"strings"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/warden-bot/warden/platform"
)

const (
	MinOptions = 2
	MaxOptions = 10
)

// Keycaps are the reactions used for each option, in order.
var Keycaps = [MaxOptions]string{"1️⃣", "2️⃣", "3️⃣", "4️⃣", "5️⃣", "6️⃣", "7️⃣", "8️⃣", "9️⃣", "🔟"}

// Parse splits "question | option | option..." into a question and its options.
func Parse(s string) (question string, options []string, err error) {
	parts := strings.Split(s, "|")

	question = strings.TrimSpace(parts[0])
	if question == "" {
		return "", nil, platform.Malformed("The poll needs a question.")
	}

	for _, p := range parts[1:] {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		options = append(options, p)
	}

	if len(options) < MinOptions {
		return "", nil, platform.Malformed("A poll needs at least %v options, separated by ``|``.", MinOptions)
	}
	if len(options) > MaxOptions {
		return "", nil, platform.Malformed("A poll can have at most %v options.", MaxOptions)
	}

	return question, options, nil
}

// Tally counts the votes for each option from a message's reactions.
// The bot's own reaction on each option isn't counted.
func Tally(options []string, reactions []discord.Reaction) []int {
	votes := make([]int, len(options))

	for _, r := range reactions {
		for i := range options {
			if r.Emoji.Name != Keycaps[i] {
				continue
			}

			n := r.Count
			if r.Me {
				n--
			}
			if n > 0 {
				votes[i] = n
			}
			break
		}
	}

	return votes
}

// Winners returns the indices of the options with the most votes.
// If nobody voted, there are no winners.
func Winners(votes []int) (winners []int) {
	max := 0
	for i, n := range votes {
		switch {
		case n > max:
			max = n
			winners = []int{i}
		case n == max && n > 0:
			winners = append(winners, i)
		}
	}
	return winners
}
