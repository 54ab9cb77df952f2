// Package keyboards builds every inline and reply keyboard the questionnaire
// shows, localized per user.
package keyboards

import (
	"fmt"
	"time"

	"github.com/ketravel/travelbot/core/telegram/helpers"
	"github.com/ketravel/travelbot/core/telegram/keyboard"
	"github.com/ketravel/travelbot/internal/form"
	"github.com/ketravel/travelbot/internal/locales"

	tele "gopkg.in/telebot.v4"
)

var uiLanguages = []struct {
	Code  string
	Label string
}{
	{"ru", "🇷🇺 Русский"},
	{"en", "🇬🇧 English"},
	{"de", "🇩🇪 Deutsch"},
}

// LanguageLabel returns the display label of an interface language.
func LanguageLabel(code string) string {
	for _, l := range uiLanguages {
		if l.Code == code {
			return l.Label
		}
	}
	return code
}

// LanguageSelection offers the interface languages, marking the current one.
func LanguageSelection(current string) *tele.ReplyMarkup {
	rows := make([][]tele.InlineButton, 0, len(uiLanguages))
	for _, l := range uiLanguages {
		label := l.Label
		if l.Code == current {
			label += " ✅"
		}
		rows = append(rows, keyboard.Row(keyboard.Data(label, "lang_select_"+l.Code)))
	}
	return keyboard.Inline(rows...)
}

// PhoneRequest is the reply keyboard asking for the user's contact.
func PhoneRequest(lang string) *tele.ReplyMarkup {
	return keyboard.ContactRequest(locales.Get(lang, "btn_share_contact"))
}

// LocationShare is the reply keyboard asking for the user's location.
func LocationShare(lang string) *tele.ReplyMarkup {
	return keyboard.LocationRequest(locales.Get(lang, "btn_share_location"))
}

// Cities is the destination multi-select: offered cities two per row with
// selection marks, then any free-text cities, then Other and Done.
func Cities(lang string, a form.Answers) *tele.ReplyMarkup {
	selected := make(map[string]bool, len(a.Cities))
	for _, id := range a.Cities {
		selected[id] = true
	}

	known := make([]tele.InlineButton, 0, len(form.CityIDs))
	for _, id := range form.CityIDs {
		mark := "⬜️"
		if selected[id] {
			mark = "✅"
		}
		known = append(known, keyboard.Data(mark+" "+locales.Get(lang, "city_"+id), "city_"+id))
	}
	rows := keyboard.Chunk(known, 2)

	for _, name := range a.OtherCities {
		rows = append(rows, keyboard.Row(keyboard.Data("✅ "+name, "city_"+name)))
	}
	rows = append(rows,
		keyboard.Row(keyboard.Data(locales.Get(lang, "btn_other_city"), "city_other")),
		keyboard.Row(keyboard.Data(locales.Get(lang, "btn_done"), "city_done")),
	)
	return keyboard.Inline(rows...)
}

// Days offers the preset trip lengths plus a free-text option.
func Days(lang string) *tele.ReplyMarkup {
	return keyboard.Inline(
		keyboard.Row(keyboard.Data("3", "days_3"), keyboard.Data("5", "days_5")),
		keyboard.Row(keyboard.Data("7", "days_7"), keyboard.Data("10", "days_10")),
		keyboard.Row(keyboard.Data(locales.Get(lang, "btn_other"), "days_other")),
	)
}

// People offers the preset group sizes; "4+" leads to a typed number.
func People(lang string) *tele.ReplyMarkup {
	return keyboard.Inline(
		keyboard.Row(keyboard.Data("1", "people_1"), keyboard.Data("2", "people_2")),
		keyboard.Row(keyboard.Data("3", "people_3"), keyboard.Data("4+", "people_4plus")),
	)
}

// Translator is the yes/no question.
func Translator(lang string) *tele.ReplyMarkup {
	return keyboard.Inline(keyboard.Row(
		keyboard.Data(locales.Get(lang, "btn_yes"), "translator_yes"),
		keyboard.Data(locales.Get(lang, "btn_no"), "translator_no"),
	))
}

// TranslatorLanguage offers the common translator languages plus free text.
func TranslatorLanguage(lang string) *tele.ReplyMarkup {
	return keyboard.Inline(
		keyboard.Row(keyboard.Data("🇷🇺 RU", "lang_RU"), keyboard.Data("🇬🇧 EN", "lang_EN")),
		keyboard.Row(keyboard.Data("🇫🇷 FR", "lang_FR"), keyboard.Data("🇩🇪 DE", "lang_DE")),
		keyboard.Row(keyboard.Data(locales.Get(lang, "btn_other"), "lang_other")),
	)
}

// Review offers confirm or edit.
func Review(lang string) *tele.ReplyMarkup {
	return keyboard.Inline(
		keyboard.Row(keyboard.Data(locales.Get(lang, "btn_confirm"), "review_confirm")),
		keyboard.Row(keyboard.Data(locales.Get(lang, "btn_edit"), "review_edit")),
	)
}

// EditMenu lists the revisable fields, two per row.
func EditMenu(lang string) *tele.ReplyMarkup {
	fields := []tele.InlineButton{
		keyboard.Data(locales.Get(lang, "field_phone"), "edit_phone"),
		keyboard.Data(locales.Get(lang, "field_current_city"), "edit_current_city"),
		keyboard.Data(locales.Get(lang, "field_cities"), "edit_cities"),
		keyboard.Data(locales.Get(lang, "field_days"), "edit_days"),
		keyboard.Data(locales.Get(lang, "field_people"), "edit_people"),
		keyboard.Data(locales.Get(lang, "field_translator"), "edit_translator"),
		keyboard.Data(locales.Get(lang, "field_dates"), "edit_dates"),
	}
	return keyboard.Inline(keyboard.Chunk(fields, 2)...)
}

// Calendar renders one month of the date picker. Past days and padding cells
// answer with a no-op payload; the selected day and today carry markers.
func Calendar(lang string, ym form.YearMonth, selected string, today time.Time) *tele.ReplyMarkup {
	todayDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	header := make([]tele.InlineButton, 7)
	for i := 0; i < 7; i++ {
		header[i] = keyboard.Data(locales.WeekdayShort(lang, i), "cal_ignore")
	}
	rows := [][]tele.InlineButton{header}

	for _, week := range form.MonthGrid(ym) {
		row := make([]tele.InlineButton, 7)
		for i, day := range week {
			if day == 0 {
				row[i] = keyboard.Data(" ", "cal_ignore")
				continue
			}
			date := ym.Date(day)
			iso := helpers.ISODate(date)
			label := fmt.Sprintf("%d", day)
			switch {
			case iso == selected:
				label = fmt.Sprintf("✅%d", day)
			case date.Equal(todayDate):
				label = fmt.Sprintf("📍%d", day)
			case date.Before(todayDate):
				label = fmt.Sprintf("·%d", day)
			}
			if date.Before(todayDate) {
				row[i] = keyboard.Data(label, "cal_ignore")
			} else {
				row[i] = keyboard.Data(label, "cal_day_"+iso)
			}
		}
		rows = append(rows, row)
	}

	nav := keyboard.Row(
		keyboard.Data("◀️", fmt.Sprintf("cal_prev_%d_%d", ym.Year, int(ym.Month))),
		keyboard.Data(fmt.Sprintf("%s %d", locales.MonthName(lang, ym.Month), ym.Year), "cal_ignore"),
		keyboard.Data("▶️", fmt.Sprintf("cal_next_%d_%d", ym.Year, int(ym.Month))),
	)
	rows = append(rows, nav, keyboard.Row(
		keyboard.Data(locales.Get(lang, "btn_cal_skip"), "cal_skip"),
	))
	return keyboard.Inline(rows...)
}

// DateConfirm asks to confirm or change the picked date.
func DateConfirm(lang, isoDate string) *tele.ReplyMarkup {
	return keyboard.Inline(keyboard.Row(
		keyboard.Data(locales.Get(lang, "btn_cal_confirm"), "cal_confirm_"+isoDate),
		keyboard.Data(locales.Get(lang, "btn_cal_change"), "cal_change"),
	))
}

// Referral asks where the user found the bot.
func Referral(lang string) *tele.ReplyMarkup {
	options := []tele.InlineButton{
		keyboard.Data(locales.Get(lang, "referral_instagram"), "ref_instagram"),
		keyboard.Data(locales.Get(lang, "referral_youtube"), "ref_youtube"),
		keyboard.Data(locales.Get(lang, "referral_facebook"), "ref_facebook"),
		keyboard.Data(locales.Get(lang, "referral_website"), "ref_website"),
		keyboard.Data(locales.Get(lang, "referral_google"), "ref_google"),
	}
	rows := keyboard.Chunk(options, 2)
	rows = append(rows,
		keyboard.Row(keyboard.Data(locales.Get(lang, "referral_other"), "ref_other")),
		keyboard.Row(keyboard.Data(locales.Get(lang, "referral_skip"), "ref_skip")),
	)
	return keyboard.Inline(rows...)
}
