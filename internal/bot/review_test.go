package bot

import (
	"testing"

	"github.com/ketravel/travelbot/internal/form"
	"github.com/stretchr/testify/assert"
)

func sampleSession() *form.Session {
	return &form.Session{
		UserID:   42,
		FullName: "Jane <Doe>",
		Lang:     "en",
		Step:     form.StepReview,
		Answers: form.Answers{
			Phone:              "+41791234567",
			CurrentCity:        "Zurich",
			Cities:             []string{"mecca", "medina"},
			OtherCities:        []string{"Amman"},
			Days:               "7",
			People:             "2",
			NeedTranslator:     "Yes",
			TranslatorLanguage: "DE",
			StartDate:          "2026-09-15",
		},
	}
}

func TestReviewTextFullAnswers(t *testing.T) {
	text := ReviewText(sampleSession())

	assert.Contains(t, text, "Jane &lt;Doe&gt;")
	assert.Contains(t, text, "+41791234567")
	assert.Contains(t, text, "Zurich")
	assert.Contains(t, text, "Mecca, Medina, Amman")
	assert.Contains(t, text, "Translator language: DE")
	assert.Contains(t, text, "September 15, 2026")
}

func TestReviewTextNoTranslatorNoDate(t *testing.T) {
	sess := sampleSession()
	sess.Answers.NeedTranslator = "No"
	sess.Answers.TranslatorLanguage = ""
	sess.Answers.StartDate = ""

	text := ReviewText(sess)

	assert.NotContains(t, text, "Translator language")
	assert.NotContains(t, text, "Travel date")
	assert.Contains(t, text, "No")
}

func TestReviewTextMissingValuesFallBack(t *testing.T) {
	sess := &form.Session{Lang: "en", Answers: form.Answers{NeedTranslator: "Yes"}}

	text := ReviewText(sess)

	assert.Contains(t, text, "N/A")
}

func TestErrorKey(t *testing.T) {
	_, err := form.ValidateDays("zero")
	assert.Equal(t, "invalid_number", errorKey(err, "fallback"))
	assert.Equal(t, "fallback", errorKey(assert.AnError, "fallback"))
}
