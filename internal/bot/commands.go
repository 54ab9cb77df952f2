package bot

import (
	"github.com/ketravel/travelbot/core/telegram/format"
	"github.com/ketravel/travelbot/core/telegram/helpers"
	"github.com/ketravel/travelbot/internal/bot/keyboards"
	"github.com/ketravel/travelbot/internal/form"
	"github.com/ketravel/travelbot/internal/locales"

	tele "gopkg.in/telebot.v4"
)

// cmdStart begins a fresh questionnaire. Users with a persisted language
// preference skip straight to the phone step; first-timers pick a language.
func (a *App) cmdStart(c tele.Context) error {
	sender := c.Sender()
	if sender == nil || c.Chat() == nil {
		return nil
	}
	deleteUserMessage(c)

	a.store.End(sender.ID)
	sess := a.beginSession(c)

	ctx := helpers.BuildContext(c)
	lang, ok, err := a.backends.Languages.Get(ctx, sender.ID)
	if err != nil || !ok {
		sess.Step = form.StepLanguage
		return a.sendPrompt(c, sess, locales.Get(locales.Default, "choose_language"), keyboards.LanguageSelection(""))
	}

	sess.Lang = lang
	sess.Step = form.StepPhone
	welcome := locales.GetF(lang, "welcome", map[string]string{
		"first_name": format.EscapeHTML(sess.FirstName),
	})
	if err := helpers.SendHTML(c, welcome); err != nil {
		return err
	}
	return a.sendPrompt(c, sess, locales.Get(lang, "share_phone"), keyboards.PhoneRequest(lang))
}

// cmdLanguage lets the user change the interface language without starting
// the questionnaire over.
func (a *App) cmdLanguage(c tele.Context) error {
	sender := c.Sender()
	if sender == nil || c.Chat() == nil {
		return nil
	}
	deleteUserMessage(c)

	ctx := helpers.BuildContext(c)
	lang := a.userLang(ctx, sender.ID)

	a.store.End(sender.ID)
	sess := a.beginSession(c)
	sess.Lang = lang
	sess.Step = form.StepLanguage
	sess.ChangeLanguageOnly = true

	return a.sendPrompt(c, sess, locales.Get(lang, "change_language_message"), keyboards.LanguageSelection(lang))
}

func (a *App) cmdHelp(c tele.Context) error {
	return a.infoCommand(c, "help_message")
}

func (a *App) cmdSupport(c tele.Context) error {
	return a.infoCommand(c, "support_message")
}

// infoCommand answers a standalone command and drops any in-flight session.
func (a *App) infoCommand(c tele.Context, key string) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	deleteUserMessage(c)

	lang := a.userLang(helpers.BuildContext(c), sender.ID)
	a.store.End(sender.ID)
	return helpers.SendHTML(c, locales.Get(lang, key))
}

// beginSession opens a session prefilled from the Telegram sender.
func (a *App) beginSession(c tele.Context) *form.Session {
	sender := c.Sender()
	sess := a.store.Begin(sender.ID)
	sess.ChatID = c.Chat().ID
	sess.FirstName, sess.FullName = helpers.ExtractNames(sender)
	sess.Lang = locales.Default
	return sess
}
