package keyboard

import tele "gopkg.in/telebot.v4"

// Data builds an inline button carrying a raw callback payload. The payload
// is delivered verbatim in the callback query, with no unique-prefix
// encoding, so handlers can match on stable string constants.
func Data(text, data string) tele.InlineButton {
	return tele.InlineButton{Text: text, Data: data}
}

// URL builds an inline button opening an external link.
func URL(text, url string) tele.InlineButton {
	return tele.InlineButton{Text: text, URL: url}
}

// Row groups buttons into a single keyboard row.
func Row(buttons ...tele.InlineButton) []tele.InlineButton {
	return buttons
}

// Inline assembles rows into an inline keyboard markup.
func Inline(rows ...[]tele.InlineButton) *tele.ReplyMarkup {
	return &tele.ReplyMarkup{InlineKeyboard: rows}
}

// Chunk splits a flat list of buttons into rows with up to n buttons per row.
func Chunk(buttons []tele.InlineButton, n int) [][]tele.InlineButton {
	if n < 1 {
		n = 1
	}
	rows := make([][]tele.InlineButton, 0, (len(buttons)+n-1)/n)
	for i := 0; i < len(buttons); i += n {
		end := i + n
		if end > len(buttons) {
			end = len(buttons)
		}
		rows = append(rows, buttons[i:end])
	}
	return rows
}

// ContactRequest builds a one-button reply keyboard asking the user to share
// their phone number.
func ContactRequest(label string) *tele.ReplyMarkup {
	return &tele.ReplyMarkup{
		ResizeKeyboard:  true,
		OneTimeKeyboard: true,
		ReplyKeyboard: [][]tele.ReplyButton{
			{{Text: label, Contact: true}},
		},
	}
}

// LocationRequest builds a one-button reply keyboard asking the user to share
// their current location.
func LocationRequest(label string) *tele.ReplyMarkup {
	return &tele.ReplyMarkup{
		ResizeKeyboard:  true,
		OneTimeKeyboard: true,
		ReplyKeyboard: [][]tele.ReplyButton{
			{{Text: label, Location: true}},
		},
	}
}

// RemoveKeyboard returns a markup that hides the reply keyboard.
func RemoveKeyboard() *tele.ReplyMarkup {
	return &tele.ReplyMarkup{RemoveKeyboard: true}
}
