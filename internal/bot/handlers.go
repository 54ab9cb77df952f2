package bot

import (
	"errors"
	"strings"
	"time"

	"log/slog"

	"github.com/ketravel/travelbot/core/logger"
	"github.com/ketravel/travelbot/core/telegram/callbacks"
	"github.com/ketravel/travelbot/core/telegram/format"
	"github.com/ketravel/travelbot/core/telegram/helpers"
	"github.com/ketravel/travelbot/core/telegram/keyboard"
	"github.com/ketravel/travelbot/internal/bot/keyboards"
	"github.com/ketravel/travelbot/internal/form"
	"github.com/ketravel/travelbot/internal/locales"

	tele "gopkg.in/telebot.v4"
)

// HandleMessage routes a text, contact, or location update into the user's
// questionnaire session. Implements router.FSM.
func (a *App) HandleMessage(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	sess, ok := a.store.Get(sender.ID)
	if !ok {
		lang := a.userLang(helpers.BuildContext(c), sender.ID)
		return helpers.SendHTML(c, locales.Get(lang, "use_start"))
	}

	switch sess.Step {
	case form.StepPhone:
		return a.msgPhone(c, sess)
	case form.StepCurrentCity:
		return a.msgCurrentCity(c, sess)
	case form.StepOtherCity:
		return a.msgOtherCity(c, sess)
	case form.StepOtherDays:
		return a.msgOtherDays(c, sess)
	case form.StepOtherPeople:
		return a.msgOtherPeople(c, sess)
	case form.StepOtherLanguage:
		return a.msgOtherLanguage(c, sess)
	case form.StepOtherReferral:
		return a.msgOtherReferral(c, sess)
	default:
		deleteUserMessage(c)
		return helpers.SendHTML(c, locales.Get(sess.Lang, "use_buttons"))
	}
}

// HandleCallback routes an inline-button press into the user's session.
// Payloads are globally unique, so dispatch goes by payload with a step
// guard per handler: presses on stale keyboards are acknowledged silently.
func (a *App) HandleCallback(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	sess, ok := a.store.Get(sender.ID)
	if !ok {
		return c.Respond()
	}

	data := callbacks.Raw(c)
	switch {
	case strings.HasPrefix(data, "lang_select_"):
		return a.cbLanguageSelect(c, sess, strings.TrimPrefix(data, "lang_select_"))
	case strings.HasPrefix(data, "city_"):
		return a.cbCities(c, sess, data)
	case strings.HasPrefix(data, "days_"):
		return a.cbDays(c, sess, strings.TrimPrefix(data, "days_"))
	case strings.HasPrefix(data, "people_"):
		return a.cbPeople(c, sess, strings.TrimPrefix(data, "people_"))
	case strings.HasPrefix(data, "translator_"):
		return a.cbTranslator(c, sess, strings.TrimPrefix(data, "translator_"))
	case strings.HasPrefix(data, "lang_"):
		return a.cbTranslatorLanguage(c, sess, strings.TrimPrefix(data, "lang_"))
	case strings.HasPrefix(data, "cal_"):
		return a.cbCalendar(c, sess, data)
	case data == "review_confirm" || data == "review_edit":
		return a.cbReview(c, sess, data)
	case strings.HasPrefix(data, "edit_"):
		return a.cbEditField(c, sess, strings.TrimPrefix(data, "edit_"))
	case strings.HasPrefix(data, "ref_"):
		return a.cbReferral(c, sess, data)
	default:
		return c.Respond(&tele.CallbackResponse{Text: locales.Get(sess.Lang, "use_buttons")})
	}
}

func (a *App) cbLanguageSelect(c tele.Context, sess *form.Session, code string) error {
	if sess.Step != form.StepLanguage || !locales.IsSupported(code) {
		return c.Respond()
	}
	sess.Lang = code

	ctx := helpers.BuildContext(c)
	if err := a.backends.Languages.Set(ctx, sess.UserID, code); err != nil {
		logger.STORE.Warn("language preference save failed",
			slog.Int64("user_id", sess.UserID),
			slog.String("err", err.Error()),
		)
	}

	if sess.ChangeLanguageOnly {
		text := locales.GetF(code, "language_changed", map[string]string{
			"language": keyboards.LanguageLabel(code),
		})
		if err := a.editPrompt(c, sess, text, nil); err != nil {
			return err
		}
		a.store.End(sess.UserID)
		return c.Respond()
	}

	welcome := locales.GetF(code, "welcome", map[string]string{
		"first_name": format.EscapeHTML(sess.FirstName),
	})
	if err := a.editPrompt(c, sess, welcome, nil); err != nil {
		return err
	}
	// The welcome stays in the chat; only the phone prompt rotates from here.
	sess.LastPromptID = 0
	sess.Step = form.StepPhone
	if err := a.sendPrompt(c, sess, locales.Get(code, "share_phone"), keyboards.PhoneRequest(code)); err != nil {
		return err
	}
	return c.Respond()
}

func (a *App) msgPhone(c tele.Context, sess *form.Session) error {
	raw := c.Text()
	if msg := c.Message(); msg != nil && msg.Contact != nil {
		raw = msg.Contact.PhoneNumber
	}
	deleteUserMessage(c)

	phone, err := form.NormalizePhone(raw)
	if err != nil {
		return a.sendPrompt(c, sess, locales.Get(sess.Lang, errorKey(err, "invalid_phone")), nil)
	}
	sess.Answers.Phone = phone

	if _, wasEdit := sess.Advance(form.StepPhone); wasEdit {
		return a.fieldUpdated(c, sess, "phone_updated")
	}
	return a.sendPrompt(c, sess, locales.Get(sess.Lang, "share_current_city"), keyboards.LocationShare(sess.Lang))
}

func (a *App) msgCurrentCity(c tele.Context, sess *form.Session) error {
	var city string
	if msg := c.Message(); msg != nil && msg.Location != nil {
		city = form.LocationCity(msg.Location.Lat, msg.Location.Lng)
	} else {
		var err error
		city, err = form.ValidateCity(c.Text())
		if err != nil {
			deleteUserMessage(c)
			return a.sendPrompt(c, sess, locales.Get(sess.Lang, errorKey(err, "invalid_city")), nil)
		}
	}
	deleteUserMessage(c)
	sess.Answers.CurrentCity = city

	if _, wasEdit := sess.Advance(form.StepCurrentCity); wasEdit {
		return a.fieldUpdated(c, sess, "city_updated")
	}
	return a.sendPrompt(c, sess, locales.Get(sess.Lang, "select_cities"), keyboards.Cities(sess.Lang, sess.Answers))
}

func (a *App) cbCities(c tele.Context, sess *form.Session, data string) error {
	if sess.Step != form.StepCities {
		return c.Respond()
	}

	switch data {
	case "city_other":
		sess.To(form.StepOtherCity)
		if err := a.editPrompt(c, sess, locales.Get(sess.Lang, "type_other_city"), nil); err != nil {
			return err
		}
		return c.Respond()
	case "city_done":
		if !sess.Answers.HasCities() {
			return c.Respond(&tele.CallbackResponse{
				Text:      locales.Get(sess.Lang, "select_at_least_one_city"),
				ShowAlert: true,
			})
		}
		if _, wasEdit := sess.Advance(form.StepCities); wasEdit {
			if err := a.renderReview(c, sess, true); err != nil {
				return err
			}
			return c.Respond()
		}
		if err := a.editPrompt(c, sess, locales.Get(sess.Lang, "how_many_days"), keyboards.Days(sess.Lang)); err != nil {
			return err
		}
		return c.Respond()
	}

	id := strings.TrimPrefix(data, "city_")
	if form.IsKnownCity(id) {
		sess.Answers.ToggleCity(id)
	} else {
		sess.Answers.RemoveOtherCity(id)
	}
	if err := c.Edit(keyboards.Cities(sess.Lang, sess.Answers)); err != nil {
		return err
	}
	return c.Respond()
}

func (a *App) msgOtherCity(c tele.Context, sess *form.Session) error {
	city, err := form.ValidateCity(c.Text())
	deleteUserMessage(c)
	if err != nil {
		return a.sendPrompt(c, sess, locales.Get(sess.Lang, errorKey(err, "invalid_city")), nil)
	}
	sess.Answers.AddOtherCity(city)
	sess.To(form.StepCities)
	return a.sendPrompt(c, sess, locales.Get(sess.Lang, "select_cities"), keyboards.Cities(sess.Lang, sess.Answers))
}

func (a *App) cbDays(c tele.Context, sess *form.Session, choice string) error {
	if sess.Step != form.StepDays {
		return c.Respond()
	}
	if choice == "other" {
		sess.To(form.StepOtherDays)
		if err := a.editPrompt(c, sess, locales.Get(sess.Lang, "enter_number_of_days"), nil); err != nil {
			return err
		}
		return c.Respond()
	}
	sess.Answers.Days = choice
	if _, wasEdit := sess.Advance(form.StepDays); wasEdit {
		if err := a.renderReview(c, sess, true); err != nil {
			return err
		}
		return c.Respond()
	}
	if err := a.editPrompt(c, sess, locales.Get(sess.Lang, "how_many_people"), keyboards.People(sess.Lang)); err != nil {
		return err
	}
	return c.Respond()
}

func (a *App) msgOtherDays(c tele.Context, sess *form.Session) error {
	days, err := form.ValidateDays(c.Text())
	deleteUserMessage(c)
	if err != nil {
		return a.sendPrompt(c, sess, locales.Get(sess.Lang, errorKey(err, "invalid_number")), nil)
	}
	sess.Answers.Days = days
	if _, wasEdit := sess.Advance(form.StepDays); wasEdit {
		return a.renderReview(c, sess, false)
	}
	return a.sendPrompt(c, sess, locales.Get(sess.Lang, "how_many_people"), keyboards.People(sess.Lang))
}

func (a *App) cbPeople(c tele.Context, sess *form.Session, choice string) error {
	if sess.Step != form.StepPeople {
		return c.Respond()
	}
	if choice == "4plus" {
		sess.To(form.StepOtherPeople)
		if err := a.editPrompt(c, sess, locales.Get(sess.Lang, "enter_number_of_people"), nil); err != nil {
			return err
		}
		return c.Respond()
	}
	sess.Answers.People = choice
	if _, wasEdit := sess.Advance(form.StepPeople); wasEdit {
		if err := a.renderReview(c, sess, true); err != nil {
			return err
		}
		return c.Respond()
	}
	if err := a.editPrompt(c, sess, locales.Get(sess.Lang, "need_translator"), keyboards.Translator(sess.Lang)); err != nil {
		return err
	}
	return c.Respond()
}

func (a *App) msgOtherPeople(c tele.Context, sess *form.Session) error {
	people, err := form.ValidatePeople(c.Text())
	deleteUserMessage(c)
	if err != nil {
		return a.sendPrompt(c, sess, locales.Get(sess.Lang, errorKey(err, "invalid_number_5_or_more")), nil)
	}
	sess.Answers.People = people
	if _, wasEdit := sess.Advance(form.StepPeople); wasEdit {
		return a.renderReview(c, sess, false)
	}
	return a.sendPrompt(c, sess, locales.Get(sess.Lang, "need_translator"), keyboards.Translator(sess.Lang))
}

func (a *App) cbTranslator(c tele.Context, sess *form.Session, answer string) error {
	if sess.Step != form.StepTranslator {
		return c.Respond()
	}
	if answer == "yes" {
		sess.Answers.NeedTranslator = "Yes"
		sess.To(form.StepTranslatorLanguage)
		if err := a.editPrompt(c, sess, locales.Get(sess.Lang, "which_language"), keyboards.TranslatorLanguage(sess.Lang)); err != nil {
			return err
		}
		return c.Respond()
	}

	sess.Answers.NeedTranslator = "No"
	sess.Answers.TranslatorLanguage = ""
	if _, wasEdit := sess.Advance(form.StepTranslator); wasEdit {
		if err := a.renderReview(c, sess, true); err != nil {
			return err
		}
		return c.Respond()
	}
	if err := a.showCalendar(c, sess); err != nil {
		return err
	}
	return c.Respond()
}

func (a *App) cbTranslatorLanguage(c tele.Context, sess *form.Session, choice string) error {
	if sess.Step != form.StepTranslatorLanguage {
		return c.Respond()
	}
	if choice == "other" {
		sess.To(form.StepOtherLanguage)
		if err := a.editPrompt(c, sess, locales.Get(sess.Lang, "enter_language"), nil); err != nil {
			return err
		}
		return c.Respond()
	}
	sess.Answers.TranslatorLanguage = choice
	if _, wasEdit := sess.Advance(form.StepTranslatorLanguage); wasEdit {
		if err := a.renderReview(c, sess, true); err != nil {
			return err
		}
		return c.Respond()
	}
	if err := a.showCalendar(c, sess); err != nil {
		return err
	}
	return c.Respond()
}

func (a *App) msgOtherLanguage(c tele.Context, sess *form.Session) error {
	language, err := form.ValidateLanguage(c.Text())
	deleteUserMessage(c)
	if err != nil {
		return a.sendPrompt(c, sess, locales.Get(sess.Lang, errorKey(err, "invalid_language")), nil)
	}
	sess.Answers.TranslatorLanguage = language
	if _, wasEdit := sess.Advance(form.StepTranslatorLanguage); wasEdit {
		return a.renderReview(c, sess, false)
	}
	text := locales.Get(sess.Lang, "select_travel_date")
	return a.sendPrompt(c, sess, text, a.calendarMarkup(sess, a.startMonth(sess)))
}

func (a *App) cbCalendar(c tele.Context, sess *form.Session, data string) error {
	if sess.Step != form.StepStartDate {
		return c.Respond()
	}

	switch {
	case data == "cal_ignore":
		return c.Respond()

	case strings.HasPrefix(data, "cal_prev_"), strings.HasPrefix(data, "cal_next_"):
		next := strings.HasPrefix(data, "cal_next_")
		suffix := strings.TrimPrefix(strings.TrimPrefix(data, "cal_prev_"), "cal_next_")
		year, month, err := callbacks.TwoInts(suffix, "_")
		if err != nil {
			return c.Respond()
		}
		ym := form.YearMonth{Year: year, Month: time.Month(month)}
		if next {
			ym = ym.Next()
		} else {
			ym = ym.Prev()
		}
		if err := c.Edit(a.calendarMarkup(sess, ym)); err != nil {
			return err
		}
		return c.Respond()

	case strings.HasPrefix(data, "cal_day_"):
		iso := strings.TrimPrefix(data, "cal_day_")
		if _, ok := helpers.ParseISODate(iso); !ok {
			return c.Respond()
		}
		sess.Answers.StartDate = iso
		text := locales.GetF(sess.Lang, "date_selected", map[string]string{
			"date": locales.FormatDate(sess.Lang, iso),
		})
		if err := a.editPrompt(c, sess, text, keyboards.DateConfirm(sess.Lang, iso)); err != nil {
			return err
		}
		return c.Respond()

	case strings.HasPrefix(data, "cal_confirm_"):
		iso := strings.TrimPrefix(data, "cal_confirm_")
		if _, ok := helpers.ParseISODate(iso); !ok {
			return c.Respond()
		}
		sess.Answers.StartDate = iso
		return a.dateDone(c, sess)

	case data == "cal_skip":
		sess.Answers.StartDate = ""
		return a.dateDone(c, sess)

	case data == "cal_change":
		if err := a.editPrompt(c, sess, locales.Get(sess.Lang, "select_travel_date"), a.calendarMarkup(sess, a.startMonth(sess))); err != nil {
			return err
		}
		return c.Respond()
	}
	return c.Respond()
}

// dateDone leaves the calendar: the date step always lands on review,
// whether reached by the forward chain or a revision.
func (a *App) dateDone(c tele.Context, sess *form.Session) error {
	sess.Advance(form.StepStartDate)
	if err := a.renderReview(c, sess, true); err != nil {
		return err
	}
	return c.Respond()
}

func (a *App) cbReview(c tele.Context, sess *form.Session, data string) error {
	if sess.Step != form.StepReview {
		return c.Respond()
	}
	if data == "review_edit" {
		if err := a.editPrompt(c, sess, locales.Get(sess.Lang, "edit_field"), keyboards.EditMenu(sess.Lang)); err != nil {
			return err
		}
		return c.Respond()
	}
	sess.Advance(form.StepReview)
	if err := a.editPrompt(c, sess, locales.Get(sess.Lang, "referral_question"), keyboards.Referral(sess.Lang)); err != nil {
		return err
	}
	return c.Respond()
}

func (a *App) cbEditField(c tele.Context, sess *form.Session, field string) error {
	if sess.Step != form.StepReview {
		return c.Respond()
	}
	step, ok := sess.BeginEdit(form.Field(field))
	if !ok {
		return c.Respond()
	}

	lang := sess.Lang
	var err error
	switch step {
	case form.StepPhone:
		err = a.sendPrompt(c, sess, locales.Get(lang, "share_phone"), keyboards.PhoneRequest(lang))
	case form.StepCurrentCity:
		err = a.sendPrompt(c, sess, locales.Get(lang, "share_current_city"), keyboards.LocationShare(lang))
	case form.StepCities:
		err = a.editPrompt(c, sess, locales.Get(lang, "select_cities"), keyboards.Cities(lang, sess.Answers))
	case form.StepDays:
		err = a.editPrompt(c, sess, locales.Get(lang, "how_many_days"), keyboards.Days(lang))
	case form.StepPeople:
		err = a.editPrompt(c, sess, locales.Get(lang, "how_many_people"), keyboards.People(lang))
	case form.StepTranslator:
		err = a.editPrompt(c, sess, locales.Get(lang, "need_translator"), keyboards.Translator(lang))
	case form.StepStartDate:
		err = a.editPrompt(c, sess, locales.Get(lang, "select_travel_date"), a.calendarMarkup(sess, a.startMonth(sess)))
	}
	if err != nil {
		return err
	}
	return c.Respond()
}

var referralLabels = map[string]string{
	"ref_instagram": "Instagram",
	"ref_youtube":   "YouTube",
	"ref_facebook":  "Facebook",
	"ref_website":   "Website",
	"ref_google":    "Google",
}

func (a *App) cbReferral(c tele.Context, sess *form.Session, data string) error {
	if sess.Step != form.StepReferral {
		return c.Respond()
	}

	switch data {
	case "ref_other":
		sess.To(form.StepOtherReferral)
		if err := a.editPrompt(c, sess, locales.Get(sess.Lang, "enter_other_referral"), nil); err != nil {
			return err
		}
		return c.Respond()
	case "ref_skip":
		sess.Answers.ReferralSource = "Skipped"
	default:
		label, ok := referralLabels[data]
		if !ok {
			return c.Respond()
		}
		sess.Answers.ReferralSource = label
	}
	return a.finalize(c, sess)
}

func (a *App) msgOtherReferral(c tele.Context, sess *form.Session) error {
	ref, err := form.ValidateReferral(c.Text())
	deleteUserMessage(c)
	if err != nil {
		return a.sendPrompt(c, sess, locales.Get(sess.Lang, errorKey(err, "enter_other_referral")), nil)
	}
	sess.Answers.ReferralSource = ref
	return a.finalize(c, sess)
}

// renderReview shows the summary screen with confirm and edit buttons.
func (a *App) renderReview(c tele.Context, sess *form.Session, viaCallback bool) error {
	text := ReviewText(sess)
	markup := keyboards.Review(sess.Lang)
	if viaCallback {
		return a.editPrompt(c, sess, text, markup)
	}
	return a.sendPrompt(c, sess, text, markup)
}

// fieldUpdated confirms a typed revision, drops the reply keyboard the
// revision prompt installed, and returns to the review screen.
func (a *App) fieldUpdated(c tele.Context, sess *form.Session, key string) error {
	if err := c.Send(locales.Get(sess.Lang, key), keyboard.RemoveKeyboard()); err != nil {
		return err
	}
	return a.renderReview(c, sess, false)
}

func (a *App) showCalendar(c tele.Context, sess *form.Session) error {
	return a.editPrompt(c, sess, locales.Get(sess.Lang, "select_travel_date"), a.calendarMarkup(sess, a.startMonth(sess)))
}

func (a *App) calendarMarkup(sess *form.Session, ym form.YearMonth) *tele.ReplyMarkup {
	return keyboards.Calendar(sess.Lang, ym, sess.Answers.StartDate, a.now())
}

// startMonth opens the calendar on the already selected date's month when
// there is one, the current month otherwise.
func (a *App) startMonth(sess *form.Session) form.YearMonth {
	if t, ok := helpers.ParseISODate(sess.Answers.StartDate); ok {
		return form.YearMonth{Year: t.Year(), Month: t.Month()}
	}
	return form.CurrentYearMonth(a.now())
}

// errorKey extracts the locale key from a validation error.
func errorKey(err error, fallback string) string {
	var ve *form.ValidationError
	if errors.As(err, &ve) && ve.Key != "" {
		return ve.Key
	}
	return fallback
}
