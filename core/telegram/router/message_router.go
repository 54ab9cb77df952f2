package router

import (
	"time"

	tg "github.com/ketravel/travelbot/core/telegram"
	"github.com/ketravel/travelbot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// FSM is the questionnaire session manager seen by the routers.
type FSM interface {
	InProgress(userID int64) bool
	HandleMessage(c tele.Context) error
	HandleCallback(c tele.Context) error
}

// MessageOptions controls fallback behaviour for text, contact and location
// updates that no active session claims.
type MessageOptions struct {
	Unknown tele.HandlerFunc
}

// MessageRoutes builds handlers for text, contact and location routing.
// Users with an active questionnaire session get their update delivered to
// the session; everything else falls through to commands and fallbacks.
func MessageRoutes(fsmMgr FSM, reg *tg.Registry, opts MessageOptions) []tg.Route {
	textHandler := func(c tele.Context) error {
		start := time.Now()
		text := c.Text()

		if fsmMgr != nil && c.Sender() != nil && fsmMgr.InProgress(c.Sender().ID) {
			return handleWithSummary(c, "fsm", start, "", "", func() error {
				return fsmMgr.HandleMessage(c)
			})
		}

		if reg != nil {
			if key, cmd, ok := reg.LookupCommand(text); ok && cmd.Handler != nil {
				name := normalizeHandlerName(key)
				return handleWithSummary(c, name, start, "", "", func() error {
					return cmd.Handler(c)
				})
			}
			if fb := reg.TextFallback(); fb != nil {
				return handleWithSummary(c, "fallback", start, "", "", func() error {
					return fb(c)
				})
			}
		}

		if opts.Unknown != nil {
			return handleWithSummary(c, "unknown_text", start, "", "", func() error {
				return opts.Unknown(c)
			})
		}

		logHandlerSummary(c, "unknown_text", start, "skip", "ok", nil)
		return nil
	}

	sessionOnly := func(name string) tele.HandlerFunc {
		return func(c tele.Context) error {
			start := time.Now()
			if fsmMgr != nil && c.Sender() != nil && fsmMgr.InProgress(c.Sender().ID) {
				return handleWithSummary(c, name, start, "", "", func() error {
					return fsmMgr.HandleMessage(c)
				})
			}
			if opts.Unknown != nil {
				return handleWithSummary(c, "unknown_"+name, start, "", "", func() error {
					return opts.Unknown(c)
				})
			}
			logHandlerSummary(c, "unknown_"+name, start, "skip", "ok", nil)
			return nil
		}
	}

	wrap := func(h tele.HandlerFunc) tele.HandlerFunc {
		return middleware.RecoverMiddleware(middleware.LoggerMiddleware(h))
	}

	return []tg.Route{
		{Endpoint: tele.OnText, Handler: wrap(textHandler)},
		{Endpoint: tele.OnContact, Handler: wrap(sessionOnly("fsm_contact"))},
		{Endpoint: tele.OnLocation, Handler: wrap(sessionOnly("fsm_location"))},
	}
}
