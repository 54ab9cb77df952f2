package bot

import (
	"context"
	"strconv"
	"strings"

	"github.com/ketravel/travelbot/core/telegram/callbacks"
	"github.com/ketravel/travelbot/core/telegram/helpers"
	"github.com/ketravel/travelbot/internal/admin"
	"github.com/ketravel/travelbot/internal/storage"

	tele "gopkg.in/telebot.v4"
)

// cmdAdminPanel opens the review panel and starts its auto-refresh loop.
// Admin access is enforced by the command router.
func (a *App) cmdAdminPanel(c tele.Context) error {
	sender := c.Sender()
	if sender == nil || c.Chat() == nil {
		return nil
	}
	deleteUserMessage(c)

	text, markup, err := a.panelContent(helpers.BuildContext(c))
	if err != nil {
		return err
	}
	msg, err := c.Bot().Send(c.Recipient(), text, &tele.SendOptions{
		ParseMode:   tele.ModeHTML,
		ReplyMarkup: markup,
	})
	if err != nil {
		return err
	}

	ref := panelRef{chatID: c.Chat().ID, messageID: msg.ID}
	a.setPanel(sender.ID, ref)
	a.startPanelRefresh(sender.ID, c.Bot(), ref)
	return nil
}

// handleAdminRefresh redraws the panel in place and restarts auto-refresh.
func (a *App) handleAdminRefresh(c tele.Context) error {
	cb := c.Callback()
	if cb == nil || cb.Message == nil {
		return nil
	}

	text, markup, err := a.panelContent(helpers.BuildContext(c))
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Panel refresh failed", ShowAlert: true})
	}
	if err := c.Edit(text, markup, tele.ModeHTML); err != nil && !sameContent(err) {
		return err
	}

	adminID := c.Sender().ID
	ref := panelRef{chatID: cb.Message.Chat.ID, messageID: cb.Message.ID}
	a.setPanel(adminID, ref)
	a.startPanelRefresh(adminID, c.Bot(), ref)
	return c.Respond()
}

// handleAdminView shows one request in detail. Auto-refresh pauses so the
// detail screen is not overwritten under the admin's finger.
func (a *App) handleAdminView(c tele.Context) error {
	id := strings.TrimPrefix(callbacks.Raw(c), admin.CallbackViewPrefix)
	adminID := c.Sender().ID
	ctx := helpers.BuildContext(c)

	req, ok, err := a.backends.Requests.Get(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		if err := c.Respond(&tele.CallbackResponse{
			Text:      "This request is no longer available.",
			ShowAlert: true,
		}); err != nil {
			return err
		}
		return a.redrawPanel(c)
	}

	a.tracker.Stop(adminID)
	if err := c.Edit(admin.DetailText(req), admin.DetailKeyboard(req.ID), tele.ModeHTML); err != nil && !sameContent(err) {
		return err
	}
	return c.Respond()
}

// handleAdminDone marks a request processed. The status guard in the store
// makes the first admin win when several press the button at once.
func (a *App) handleAdminDone(c tele.Context) error {
	id := strings.TrimPrefix(callbacks.Raw(c), admin.CallbackDonePrefix)
	ctx := helpers.BuildContext(c)

	done, err := a.backends.Requests.MarkProcessed(ctx, id, c.Sender().ID)
	if err != nil {
		return err
	}

	var resp *tele.CallbackResponse
	if done {
		resp = &tele.CallbackResponse{Text: "Request marked as processed ✅"}
	} else {
		resp = &tele.CallbackResponse{Text: "Request already handled or missing.", ShowAlert: true}
	}
	if err := c.Respond(resp); err != nil {
		return err
	}
	return a.redrawPanel(c)
}

// redrawPanel edits the callback's message back into the live panel and
// resumes auto-refresh.
func (a *App) redrawPanel(c tele.Context) error {
	cb := c.Callback()
	if cb == nil || cb.Message == nil {
		return nil
	}

	text, markup, err := a.panelContent(helpers.BuildContext(c))
	if err != nil {
		return err
	}
	if err := c.Edit(text, markup, tele.ModeHTML); err != nil && !sameContent(err) {
		return err
	}

	adminID := c.Sender().ID
	ref := panelRef{chatID: cb.Message.Chat.ID, messageID: cb.Message.ID}
	a.setPanel(adminID, ref)
	a.startPanelRefresh(adminID, c.Bot(), ref)
	return nil
}

// panelContent builds the panel text and keyboard from the pending queue.
func (a *App) panelContent(ctx context.Context) (string, *tele.ReplyMarkup, error) {
	pending, err := a.backends.Requests.List(ctx, storage.StatusNew)
	if err != nil {
		return "", nil, err
	}
	return admin.PanelText(len(pending)), admin.PanelKeyboard(pending), nil
}

func (a *App) setPanel(adminID int64, ref panelRef) {
	a.mu.Lock()
	a.panels[adminID] = ref
	a.mu.Unlock()
}

// startPanelRefresh re-renders the admin's panel message on the tracker
// interval. An edit failure other than "not modified" stops the loop, which
// covers the panel message being deleted.
func (a *App) startPanelRefresh(adminID int64, bot tele.API, ref panelRef) {
	a.tracker.Start(adminID, func(ctx context.Context) error {
		text, markup, err := a.panelContent(ctx)
		if err != nil {
			return err
		}
		msg := tele.StoredMessage{
			MessageID: strconv.Itoa(ref.messageID),
			ChatID:    ref.chatID,
		}
		if _, err := bot.Edit(&msg, text, markup, tele.ModeHTML); err != nil && !sameContent(err) {
			return err
		}
		return nil
	})
}

// sameContent reports the Telegram "message is not modified" edit error,
// which the refresh loop treats as success.
func sameContent(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}
