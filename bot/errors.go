package bot

import (
	"fmt"
	"strings"
	"time"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/starshine-sys/bcr"
	"github.com/warden-bot/warden/common"
	"github.com/warden-bot/warden/common/log"
	"github.com/warden-bot/warden/platform"
)

// Reject shows an error to the user if it's a rejection or a permission error, and reports it otherwise.
func (bot *Bot) Reject(ctx *bcr.Context, err error) error {
	if r, ok := platform.AsRejection(err); ok {
		return ctx.SendX("", discord.Embed{
			Description: r.Msg,
			Color:       common.ColourRed,
		})
	}

	var perr *platform.Error
	if errors.As(err, &perr) && errors.Is(perr, platform.ErrPermissionDenied) {
		return ctx.SendX("", discord.Embed{
			Description: fmt.Sprintf("I don't have permission to do that (%v). Check my role's permissions and try again.", perr.Op),
			Color:       common.ColourRed,
		})
	}

	return bot.ReportError(ctx, err)
}

// ReportError logs an unexpected error, reports it to Sentry (if configured), and tells the user an error occurred.
func (bot *Bot) ReportError(ctx *bcr.Context, err error) error {
	cmd := strings.Join(ctx.FullCommandPath, " ")
	log.Errorf("error in command %q: %v", cmd, err)

	var id string
	if bot.Config.Sentry != "" {
		hub := sentry.CurrentHub().Clone()
		hub.ConfigureScope(func(scope *sentry.Scope) {
			scope.SetUser(sentry.User{ID: ctx.Author.ID.String()})
			scope.SetTag("command", cmd)
		})

		hub.AddBreadcrumb(&sentry.Breadcrumb{
			Data: map[string]any{
				"user":    ctx.Author.ID,
				"guild":   ctx.Message.GuildID,
				"command": cmd,
			},
			Level:     sentry.LevelError,
			Timestamp: time.Now().UTC(),
		}, nil)

		if eventID := hub.CaptureException(err); eventID != nil {
			id = string(*eventID)
		}
	}
	if id == "" {
		id = uuid.New().String()
	}

	desc := "An internal error has occurred. If this issue persists, please contact the bot developer with the error code above."
	if bot.Config.SupportServer != "" {
		desc = fmt.Sprintf("An internal error has occurred. "+
			"If this issue persists, please contact the developer "+
			"in the [support server](%v) with the error code above.", bot.Config.SupportServer)
	}

	return ctx.SendX(fmt.Sprintf("Error code: ``%v``", bcr.EscapeBackticks(id)), discord.Embed{
		Title:       "Internal error occurred",
		Description: desc,
		Color:       common.ColourRed,
		Footer: &discord.EmbedFooter{
			Text: id,
		},
		Timestamp: discord.NowTimestamp(),
	})
}
