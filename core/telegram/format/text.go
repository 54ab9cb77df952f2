package format

import (
	"fmt"
	"html"
	"strings"
)

// EscapeHTML escapes text for Telegram's HTML parse mode.
func EscapeHTML(s string) string {
	return html.EscapeString(s)
}

// UserMention renders a tg://user deep link for HTML parse mode. A zero user
// ID yields plain escaped text.
func UserMention(userID int64, name string) string {
	safe := html.EscapeString(strings.TrimSpace(name))
	if safe == "" {
		safe = "Traveler"
	}
	if userID == 0 {
		return safe
	}
	return fmt.Sprintf(`<a href="tg://user?id=%d">%s</a>`, userID, safe)
}

// TruncateLabel trims text to at most limit runes for inline button labels,
// appending an ellipsis when anything was cut.
func TruncateLabel(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	// The ellipsis counts toward the limit.
	return string(runes[:limit-1]) + "…"
}
