package router

import (
	"strings"
	"time"

	tg "github.com/ketravel/travelbot/core/telegram"
	"github.com/ketravel/travelbot/core/telegram/middleware"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// CallbackOptions customises fallback behaviour for callbacks.
type CallbackOptions struct {
	FSM      FSM
	NotFound tele.HandlerFunc
}

// CallbackRoute returns a handler that routes callbacks. Resolution order:
// exact registry match, registered prefix match, the questionnaire session
// handler for users with an active session, then the not-found fallback.
// Handlers answer the callback query themselves so they can attach alerts.
func CallbackRoute(reg *tg.Registry, opts CallbackOptions) tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		cb := c.Callback()
		if cb == nil {
			return nil
		}

		data := strings.TrimSpace(strings.TrimPrefix(cb.Data, "\f"))
		name := "callback." + normalizeHandlerName(callbackKey(data))
		extras := []slog.Attr{slog.String("cb_data", logHandlerValue(data))}

		if reg != nil {
			if cbHandler, ok := reg.MatchCallback(data); ok && cbHandler != nil {
				return handleWithSummary(c, name, start, "", "", func() error {
					return cbHandler(c)
				}, extras...)
			}
		}

		if opts.FSM != nil && c.Sender() != nil && opts.FSM.InProgress(c.Sender().ID) {
			return handleWithSummary(c, name, start, "", "", func() error {
				return opts.FSM.HandleCallback(c)
			}, append(extras, slog.String("via", "fsm"))...)
		}

		fallback := opts.NotFound
		if fallback == nil && reg != nil {
			fallback = reg.CallbackNotFound()
		}
		extras = append(extras, slog.String("reason", "not_found"))
		return handleWithSummary(c, name, start, "", "", func() error {
			if fallback != nil {
				return fallback(c)
			}
			return c.Respond()
		}, extras...)
	}
	return tg.Route{
		Endpoint: tele.OnCallback,
		Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
	}
}

// callbackKey reduces a payload to a stable handler name: everything up to
// the last underscore-delimited variable part is too fuzzy to guess, so we
// just take the payload's leading token chain without embedded identifiers.
func callbackKey(data string) string {
	if i := strings.IndexAny(data, "0123456789"); i > 1 && data[i-1] == '_' {
		return data[:i-1]
	}
	return data
}

func logHandlerValue(data string) string {
	const max = 64
	if len(data) > max {
		return data[:max]
	}
	return data
}
