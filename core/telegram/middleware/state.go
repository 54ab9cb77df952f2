package middleware

import (
	"github.com/ketravel/travelbot/core/logger"
	tghelpers "github.com/ketravel/travelbot/core/telegram/helpers"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// UserLocker serializes processing of a single user's updates.
type UserLocker interface {
	LockUser(userID int64) (unlock func())
}

// Sequential returns a middleware that holds the user's session lock for the
// duration of the handler, so concurrent updates from the same user are
// processed one at a time. Updates from different users run in parallel.
func Sequential(locker UserLocker) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if locker == nil || sender == nil {
				return next(c)
			}
			unlock := locker.LockUser(sender.ID)
			defer unlock()
			ctx := tghelpers.BuildContext(c)
			logger.TG.LogAttrs(ctx, slog.LevelDebug, "session.lock",
				slog.Int64("user_id", sender.ID),
				slog.String("rid", logger.RIDFrom(ctx)),
			)
			return next(c)
		}
	}
}
