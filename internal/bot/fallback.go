package bot

import (
	"github.com/ketravel/travelbot/core/telegram/helpers"
	"github.com/ketravel/travelbot/core/telegram/ui"
	"github.com/ketravel/travelbot/internal/locales"

	tele "gopkg.in/telebot.v4"
)

var _ ui.FallbackProvider = (*App)(nil)

// UnknownText answers messages that belong to no session or command.
func (a *App) UnknownText() tele.HandlerFunc {
	return func(c tele.Context) error {
		sender := c.Sender()
		if sender == nil {
			return nil
		}
		lang := a.userLang(helpers.BuildContext(c), sender.ID)
		return helpers.SendHTML(c, locales.Get(lang, "use_start"))
	}
}

// UnknownCallback acknowledges button presses nothing is listening for,
// typically leftovers of a finished questionnaire.
func (a *App) UnknownCallback() tele.HandlerFunc {
	return func(c tele.Context) error {
		return c.Respond(&tele.CallbackResponse{Text: "Unsupported action"})
	}
}
