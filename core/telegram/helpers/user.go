package helpers

import (
	"strings"

	tele "gopkg.in/telebot.v4"
)

const fallbackName = "Traveler"

// ExtractNames derives a display first name and full name from a Telegram
// profile. Falls back to the username, then to a neutral placeholder, so
// templates never render an empty name.
func ExtractNames(u *tele.User) (first, full string) {
	if u == nil {
		return fallbackName, fallbackName
	}
	first = strings.TrimSpace(u.FirstName)
	if first == "" {
		first = strings.TrimSpace(u.Username)
	}
	if first == "" {
		first = fallbackName
	}
	if last := strings.TrimSpace(u.LastName); last != "" {
		return first, first + " " + last
	}
	return first, first
}
