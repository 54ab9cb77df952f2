package bot

import (
	"strings"

	"github.com/ketravel/travelbot/core/telegram/format"
	"github.com/ketravel/travelbot/internal/form"
	"github.com/ketravel/travelbot/internal/locales"
)

// ReviewText renders the summary screen from the session's answers. Every
// user-provided value is HTML-escaped, missing values fall back to N/A.
func ReviewText(sess *form.Session) string {
	lang := sess.Lang
	na := locales.Get(lang, "n_a")

	orNA := func(s string) string {
		if s == "" {
			return na
		}
		return format.EscapeHTML(s)
	}

	translatorInfo := ""
	needTranslator := locales.Get(lang, "no")
	if sess.Answers.NeedTranslator == "Yes" {
		needTranslator = locales.Get(lang, "yes")
		translatorInfo = locales.GetF(lang, "translator", map[string]string{
			"language": orNA(sess.Answers.TranslatorLanguage),
		})
	}

	datesInfo := ""
	if sess.Answers.StartDate != "" {
		datesInfo = locales.GetF(lang, "travel_date", map[string]string{
			"date": locales.FormatDate(lang, sess.Answers.StartDate),
		})
	}

	return locales.GetF(lang, "review_info", map[string]string{
		"full_name":       orNA(sess.FullName),
		"phone":           orNA(sess.Answers.Phone),
		"current_city":    orNA(sess.Answers.CurrentCity),
		"cities":          orNA(cityList(lang, sess.Answers)),
		"days":            orNA(sess.Answers.Days),
		"people":          orNA(sess.Answers.People),
		"need_translator": needTranslator,
		"translator_info": translatorInfo,
		"dates_info":      datesInfo,
	})
}

// cityList joins selected destinations: localized labels for the offered
// cities followed by free-text entries as typed.
func cityList(lang string, a form.Answers) string {
	names := make([]string, 0, len(a.Cities)+len(a.OtherCities))
	for _, id := range a.Cities {
		names = append(names, locales.Get(lang, "city_"+id))
	}
	names = append(names, a.OtherCities...)
	return strings.Join(names, ", ")
}
