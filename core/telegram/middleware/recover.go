package middleware

import (
	"runtime/debug"

	"github.com/ketravel/travelbot/core/logger"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// RecoverMiddleware turns a handler panic into an error log with a stack
// trace. One misbehaving update must not take the whole bot down.
func RecoverMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		defer func() {
			if r := recover(); r != nil {
				var userID int64
				if user := c.Sender(); user != nil {
					userID = user.ID
				}
				logger.TG.Error("panic recovered",
					slog.String("event", "tg.panic"),
					slog.Any("err", r),
					slog.Int64("user_id", userID),
					slog.String("stack", string(debug.Stack())),
				)
			}
		}()
		return next(c)
	}
}
