package callbacks

import (
	"strings"

	tele "gopkg.in/telebot.v4"
)

// Raw returns the raw callback payload of the pressed button. Buttons built
// by the keyboard package carry plain payloads, so no unique-prefix decoding
// is needed beyond stripping Telebot's leading form feed.
func Raw(c tele.Context) string {
	cb := c.Callback()
	if cb == nil {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(cb.Data, "\f"))
}

// Suffix strips the given prefix from the payload and reports whether it
// was present.
func Suffix(c tele.Context, prefix string) (string, bool) {
	data := Raw(c)
	if !strings.HasPrefix(data, prefix) {
		return "", false
	}
	return data[len(prefix):], true
}
