package invites

import (
	"context"
	"sort"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/warden-bot/warden/platform"
)

// Aggregate counts an inviter's referrals.
// Every referral is in exactly one of the three classes.
type Aggregate struct {
	// Suspicious referrals, whether or not the member is still in the guild.
	Suspicious int `json:"suspicious"`
	// Present is non-suspicious referrals of members who are still in the guild.
	Present int `json:"present"`
	// Left is non-suspicious referrals of members who have left.
	Left int `json:"left"`
}

// Total returns the total number of referrals.
func (a Aggregate) Total() int {
	return a.Suspicious + a.Present + a.Left
}

// InviterAggregate is an Aggregate for a single inviter.
type InviterAggregate struct {
	InviterID discord.UserID `json:"inviter_id"`
	Aggregate
}

// Aggregate counts an inviter's referrals in a guild, checking live membership for every non-suspicious referral.
// This scans every referral in the guild.
func (t *Tracker) Aggregate(ctx context.Context, guildID discord.GuildID, inviterID discord.UserID) (a Aggregate, err error) {
	refs, err := t.Referrals.GuildReferrals(ctx, guildID)
	if err != nil {
		return a, errors.Wrap(err, "getting referrals")
	}

	for _, r := range refs {
		if r.InviterID != inviterID {
			continue
		}

		if r.Suspicious {
			a.Suspicious++
			continue
		}

		present, err := t.isMember(guildID, r.MemberID)
		if err != nil {
			return a, err
		}

		if present {
			a.Present++
		} else {
			a.Left++
		}
	}

	return a, nil
}

// Leaderboard returns aggregates for every inviter in a guild,
// sorted by present members, then by total referrals, then by inviter ID.
func (t *Tracker) Leaderboard(ctx context.Context, guildID discord.GuildID) ([]InviterAggregate, error) {
	refs, err := t.Referrals.GuildReferrals(ctx, guildID)
	if err != nil {
		return nil, errors.Wrap(err, "getting referrals")
	}

	byInviter := map[discord.UserID]*InviterAggregate{}
	for _, r := range refs {
		ia, ok := byInviter[r.InviterID]
		if !ok {
			ia = &InviterAggregate{InviterID: r.InviterID}
			byInviter[r.InviterID] = ia
		}

		if r.Suspicious {
			ia.Suspicious++
			continue
		}

		present, err := t.isMember(guildID, r.MemberID)
		if err != nil {
			return nil, err
		}

		if present {
			ia.Present++
		} else {
			ia.Left++
		}
	}

	board := make([]InviterAggregate, 0, len(byInviter))
	for _, ia := range byInviter {
		board = append(board, *ia)
	}

	sort.Slice(board, func(i, j int) bool {
		if board[i].Present != board[j].Present {
			return board[i].Present > board[j].Present
		}
		if board[i].Total() != board[j].Total() {
			return board[i].Total() > board[j].Total()
		}
		return board[i].InviterID < board[j].InviterID
	})

	return board, nil
}

// isMember checks if the user is currently in the guild.
func (t *Tracker) isMember(guildID discord.GuildID, userID discord.UserID) (bool, error) {
	_, err := t.Platform.Member(guildID, userID)
	if err == nil {
		return true, nil
	}

	if platform.IsNotFound(err) {
		return false, nil
	}
	return false, platform.Classify("get member", err)
}
