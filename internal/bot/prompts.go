package bot

import (
	"github.com/ketravel/travelbot/core/telegram/helpers"
	"github.com/ketravel/travelbot/internal/form"

	tele "gopkg.in/telebot.v4"
)

// sendPrompt sends the next questionnaire prompt as a fresh message, deleting
// the previous one best-effort, and remembers the new message for the same
// treatment later. Sent synchronously because the message ID is needed.
func (a *App) sendPrompt(c tele.Context, sess *form.Session, text string, markup *tele.ReplyMarkup) error {
	if sess.LastPromptID != 0 {
		helpers.DeleteQuiet(c, sess.ChatID, sess.LastPromptID)
		sess.LastPromptID = 0
	}

	opts := &tele.SendOptions{ParseMode: tele.ModeHTML}
	if markup != nil {
		opts.ReplyMarkup = markup
	}
	msg, err := c.Bot().Send(c.Recipient(), text, opts)
	if err != nil {
		return err
	}
	sess.LastPromptID = msg.ID
	return nil
}

// editPrompt rewrites the prompt the callback came from in place. Outside a
// callback it falls back to a fresh prompt.
func (a *App) editPrompt(c tele.Context, sess *form.Session, text string, markup *tele.ReplyMarkup) error {
	cb := c.Callback()
	if cb == nil || cb.Message == nil {
		return a.sendPrompt(c, sess, text, markup)
	}
	sess.LastPromptID = cb.Message.ID
	if markup != nil {
		return c.Edit(text, markup, tele.ModeHTML)
	}
	return c.Edit(text, tele.ModeHTML)
}

// deleteUserMessage removes the user's own input once it has been consumed,
// keeping the chat down to the current prompt.
func deleteUserMessage(c tele.Context) {
	msg := c.Message()
	if msg == nil || c.Chat() == nil {
		return
	}
	helpers.DeleteQuiet(c, c.Chat().ID, msg.ID)
}
