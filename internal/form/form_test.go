package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvanceFollowsForwardChain(t *testing.T) {
	s := &Session{Step: StepPhone}

	steps := []struct {
		completed Step
		want      Step
	}{
		{StepPhone, StepCurrentCity},
		{StepCurrentCity, StepCities},
		{StepCities, StepDays},
		{StepDays, StepPeople},
		{StepPeople, StepTranslator},
		{StepTranslator, StepStartDate},
		{StepStartDate, StepReview},
		{StepReview, StepReferral},
	}
	for _, tc := range steps {
		next, wasEdit := s.Advance(tc.completed)
		assert.Equal(t, tc.want, next, "after %s", tc.completed)
		assert.False(t, wasEdit)
		assert.Equal(t, tc.want, s.Step)
	}
}

func TestAdvanceAfterTranslatorLanguage(t *testing.T) {
	s := &Session{Step: StepTranslatorLanguage}
	next, _ := s.Advance(StepTranslatorLanguage)
	assert.Equal(t, StepStartDate, next)
}

func TestAdvanceDuringEditReturnsToReview(t *testing.T) {
	s := &Session{Step: StepReview}

	step, ok := s.BeginEdit(FieldDays)
	require.True(t, ok)
	assert.Equal(t, StepDays, step)
	assert.Equal(t, FieldDays, s.Editing)

	next, wasEdit := s.Advance(StepDays)
	assert.Equal(t, StepReview, next)
	assert.True(t, wasEdit)
	assert.Empty(t, s.Editing)
}

func TestEditTranslatorSpansLanguageStep(t *testing.T) {
	s := &Session{Step: StepReview}
	_, ok := s.BeginEdit(FieldTranslator)
	require.True(t, ok)

	// "Yes" sends the user to the language question without consulting
	// the edit marker; completing the language ends the revision.
	s.To(StepTranslatorLanguage)
	assert.Equal(t, FieldTranslator, s.Editing)

	next, wasEdit := s.Advance(StepTranslatorLanguage)
	assert.Equal(t, StepReview, next)
	assert.True(t, wasEdit)
}

func TestBeginEditUnknownField(t *testing.T) {
	s := &Session{Step: StepReview}
	step, ok := s.BeginEdit(Field("bogus"))
	assert.False(t, ok)
	assert.Equal(t, StepReview, step)
	assert.Empty(t, s.Editing)
}

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"+7 (999) 123-45-67", "+79991234567", true},
		{"19991234567", "+19991234567", true},
		{"00 49 170 1234567", "", false}, // leading zeros
		{"phone", "", false},
		{"", "", false},
		{"+123456789012345678", "", false}, // too long
	}
	for _, tc := range cases {
		got, err := NormalizePhone(tc.in)
		if tc.ok {
			require.NoError(t, err, tc.in)
			assert.Equal(t, tc.want, got)
		} else {
			var verr *ValidationError
			require.ErrorAs(t, err, &verr, tc.in)
			assert.Equal(t, "invalid_phone", verr.Key)
		}
	}
}

func TestValidateCity(t *testing.T) {
	city, err := ValidateCity("  Casablanca ")
	require.NoError(t, err)
	assert.Equal(t, "Casablanca", city)

	_, err = ValidateCity("x")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "invalid_city", verr.Key)
}

func TestLocationCity(t *testing.T) {
	assert.Equal(t, "Lat: 21.42, Lon: 39.82", LocationCity(21.42, 39.82))
}

func TestValidateDays(t *testing.T) {
	days, err := ValidateDays(" 14 ")
	require.NoError(t, err)
	assert.Equal(t, "14", days)

	for _, in := range []string{"0", "-3", "soon", ""} {
		_, err := ValidateDays(in)
		assert.Error(t, err, in)
	}
}

func TestValidatePeople(t *testing.T) {
	people, err := ValidatePeople("12")
	require.NoError(t, err)
	assert.Equal(t, "12", people)

	for _, in := range []string{"4", "0", "many"} {
		_, err := ValidatePeople(in)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, in)
		assert.Equal(t, "invalid_number_5_or_more", verr.Key)
	}
}

func TestValidateLanguageAcceptsAnyNonEmptyName(t *testing.T) {
	for _, in := range []string{"Urdu", " фарси ", "粤"} {
		lang, err := ValidateLanguage(in)
		require.NoError(t, err, in)
		assert.NotEmpty(t, lang)
	}

	for _, in := range []string{"", "   "} {
		_, err := ValidateLanguage(in)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, in)
		assert.Equal(t, "invalid_language", verr.Key)
	}
}

func TestToggleCity(t *testing.T) {
	a := &Answers{}
	assert.True(t, a.ToggleCity("mecca"))
	assert.True(t, a.ToggleCity("medina"))
	assert.Equal(t, []string{"mecca", "medina"}, a.Cities)

	assert.False(t, a.ToggleCity("mecca"))
	assert.Equal(t, []string{"medina"}, a.Cities)
}

func TestAddOtherCityDeduplicates(t *testing.T) {
	a := &Answers{}
	a.AddOtherCity("Amman")
	a.AddOtherCity("Amman")
	assert.Equal(t, []string{"Amman"}, a.OtherCities)
}

func TestHasCities(t *testing.T) {
	a := &Answers{}
	assert.False(t, a.HasCities())
	a.AddOtherCity("Amman")
	assert.True(t, a.HasCities())
}
