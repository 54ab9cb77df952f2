// Package admin renders the review panel: the pending request list, the
// request detail view, and the per-admin auto-refresh loop.
package admin

import (
	"fmt"
	"strings"

	"github.com/ketravel/travelbot/core/telegram/format"
	"github.com/ketravel/travelbot/core/telegram/keyboard"
	"github.com/ketravel/travelbot/internal/storage"

	tele "gopkg.in/telebot.v4"
)

// MaxListItems caps how many requests the panel keyboard shows at once.
const MaxListItems = 10

const labelLimit = 40

// Callback payload constants for the panel.
const (
	CallbackRefresh    = "admin_panel_refresh"
	CallbackViewPrefix = "admin_req_"
	CallbackDonePrefix = "admin_req_done_"
)

// PanelText builds the panel overview shown above the request list.
func PanelText(pending int) string {
	instructions := "No new requests right now. Panel auto-refreshes every 10 seconds."
	if pending > 0 {
		instructions = "Tap a user to view full request and mark it as processed."
	}
	return strings.Join([]string{
		"🛠 <b>Admin panel</b>",
		fmt.Sprintf("Pending requests: <b>%d</b>", pending),
		instructions,
	}, "\n")
}

// PanelKeyboard lists pending requests, one button per row, newest first.
func PanelKeyboard(requests []storage.Request) *tele.ReplyMarkup {
	n := len(requests)
	if n > MaxListItems {
		n = MaxListItems
	}
	rows := make([][]tele.InlineButton, 0, n)
	for _, req := range requests[:n] {
		if req.ID == "" {
			continue
		}
		rows = append(rows, keyboard.Row(
			keyboard.Data(previewLabel(req), CallbackViewPrefix+req.ID),
		))
	}
	return keyboard.Inline(rows...)
}

func previewLabel(req storage.Request) string {
	name := strings.TrimSpace(req.Payload.FullName)
	if name == "" {
		name = strings.TrimSpace(req.Payload.FirstName)
	}
	if name == "" {
		name = "Unknown"
	}
	date := "N/A"
	if !req.CreatedAt.IsZero() {
		date = req.CreatedAt.Format("15:04 02 January 2006")
	}
	return format.TruncateLabel(name+" • "+date, labelLimit)
}

// DetailText builds the full request view in HTML with a clickable mention.
func DetailText(req storage.Request) string {
	p := req.Payload

	name := strings.TrimSpace(p.FullName)
	if name == "" {
		name = strings.TrimSpace(p.FirstName)
	}
	if name == "" {
		name = "Unknown"
	}

	cities := "N/A"
	if all := p.AllCities(); len(all) > 0 {
		cities = format.EscapeHTML(strings.Join(all, ", "))
	}

	translatorLine := ""
	if p.NeedTranslator == "Yes" {
		lang := "N/A"
		if p.TranslatorLanguage != "" {
			lang = format.EscapeHTML(p.TranslatorLanguage)
		}
		translatorLine = "\n   ↳ Language: " + lang
	}

	lines := []string{
		"📄 Full travel request",
		"👤 Name: " + format.UserMention(p.UserID, name),
		"🆔 User ID: " + orNA(fmt.Sprint(p.UserID), p.UserID != 0),
		"📱 Phone: " + orNA(format.EscapeHTML(p.Phone), p.Phone != ""),
		"📍 Current city: " + orNA(format.EscapeHTML(p.CurrentCity), p.CurrentCity != ""),
		"🌍 Destinations: " + cities,
		"📅 Days: " + orNA(format.EscapeHTML(p.Days), p.Days != ""),
		"👥 People: " + orNA(format.EscapeHTML(p.People), p.People != ""),
		"🗣️ Translator needed: " + orNA(format.EscapeHTML(p.NeedTranslator), p.NeedTranslator != "") + translatorLine,
		"🗓️ Travel date: " + orNA(format.EscapeHTML(p.StartDate), p.StartDate != ""),
		"📣 Referral: " + orNA(format.EscapeHTML(p.ReferralSource), p.ReferralSource != ""),
	}
	if !req.CreatedAt.IsZero() {
		lines = append(lines, "⏱ Submitted: "+req.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	if req.Status == storage.StatusProcessed {
		lines = append(lines, "\n✅ Already processed")
	}
	return strings.Join(lines, "\n")
}

func orNA(s string, ok bool) string {
	if !ok {
		return "N/A"
	}
	return s
}

// DetailKeyboard offers the processed toggle and the way back to the list.
func DetailKeyboard(requestID string) *tele.ReplyMarkup {
	return keyboard.Inline(
		keyboard.Row(keyboard.Data("✅ Mark processed", CallbackDonePrefix+requestID)),
		keyboard.Row(keyboard.Data("↩️ Back", CallbackRefresh)),
	)
}

// NotificationText is the short message fanned out to admins on submission.
func NotificationText(userID int64, fullName string) string {
	return "📥 New request from " + format.UserMention(userID, fullName)
}
