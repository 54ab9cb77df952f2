package bot

import (
	"log/slog"

	"github.com/ketravel/travelbot/core/logger"
	"github.com/ketravel/travelbot/core/telegram/helpers"
	"github.com/ketravel/travelbot/internal/admin"
	"github.com/ketravel/travelbot/internal/form"
	"github.com/ketravel/travelbot/internal/locales"
	"github.com/ketravel/travelbot/internal/storage"

	tele "gopkg.in/telebot.v4"
)

// finalize persists the completed questionnaire, notifies admins, thanks the
// user, and ends the session.
func (a *App) finalize(c tele.Context, sess *form.Session) error {
	ctx := helpers.BuildContext(c)

	// Offered destinations are logged under their English labels so the
	// permanent record reads the same regardless of the user's language.
	cities := make([]string, 0, len(sess.Answers.Cities))
	for _, id := range sess.Answers.Cities {
		cities = append(cities, locales.Get(locales.Default, "city_"+id))
	}
	allCities := make([]string, 0, len(cities)+len(sess.Answers.OtherCities))
	allCities = append(allCities, cities...)
	allCities = append(allCities, sess.Answers.OtherCities...)

	rec := storage.Record{
		Timestamp:          a.now(),
		FullName:           sess.FullName,
		Phone:              sess.Answers.Phone,
		CurrentCity:        sess.Answers.CurrentCity,
		Cities:             allCities,
		Days:               sess.Answers.Days,
		People:             sess.Answers.People,
		NeedTranslator:     sess.Answers.NeedTranslator,
		TranslatorLanguage: sess.Answers.TranslatorLanguage,
		StartDate:          sess.Answers.StartDate,
		ReferralSource:     sess.Answers.ReferralSource,
	}
	if err := a.backends.Log.Append(ctx, rec); err != nil {
		logger.STORE.Error("submission log append failed",
			slog.Int64("user_id", sess.UserID),
			slog.String("err", err.Error()),
		)
	}

	payload := storage.Payload{
		UserID:             sess.UserID,
		FirstName:          sess.FirstName,
		FullName:           sess.FullName,
		Phone:              sess.Answers.Phone,
		CurrentCity:        sess.Answers.CurrentCity,
		CitiesToVisit:      cities,
		OtherCities:        sess.Answers.OtherCities,
		Days:               sess.Answers.Days,
		People:             sess.Answers.People,
		NeedTranslator:     sess.Answers.NeedTranslator,
		TranslatorLanguage: sess.Answers.TranslatorLanguage,
		StartDate:          sess.Answers.StartDate,
		ReferralSource:     sess.Answers.ReferralSource,
		LangCode:           sess.Lang,
	}
	req, err := a.backends.Requests.Add(ctx, payload)
	if err != nil {
		logger.STORE.Error("review request enqueue failed",
			slog.Int64("user_id", sess.UserID),
			slog.String("err", err.Error()),
		)
	} else {
		a.notifyAdmins(c, req)
	}

	lang := sess.Lang
	fromCallback := c.Callback() != nil
	if fromCallback {
		if err := a.editPrompt(c, sess, locales.Get(lang, "referral_saved"), nil); err != nil {
			return err
		}
	} else {
		if err := a.sendPrompt(c, sess, locales.Get(lang, "referral_saved"), nil); err != nil {
			return err
		}
	}
	a.store.End(sess.UserID)

	if err := helpers.SendHTML(c, locales.Get(lang, "thank_you")); err != nil {
		return err
	}
	if fromCallback {
		return c.Respond()
	}
	return nil
}

// notifyAdmins fans the new-submission alert out to every configured admin.
// Best-effort: failures are logged per admin and never reach the user.
func (a *App) notifyAdmins(c tele.Context, req storage.Request) {
	text := admin.NotificationText(req.Payload.UserID, req.Payload.FullName)
	opts := &tele.SendOptions{ParseMode: tele.ModeHTML}
	bot := c.Bot()
	for _, adminID := range a.cfg.Telegram.AdminIDs {
		adminID := adminID
		go func() {
			if _, err := bot.Send(&tele.User{ID: adminID}, text, opts); err != nil {
				logger.NTF.Warn("admin notification failed",
					slog.Int64("admin_id", adminID),
					slog.String("request_id", req.ID),
					slog.String("err", err.Error()),
				)
			}
		}()
	}
}
