// Package form holds the questionnaire state machine: the steps a traveler
// walks through, the answers collected along the way, and the in-memory
// session store.
package form

// Step identifies a single questionnaire step.
type Step string

const (
	StepLanguage           Step = "lang_code"
	StepPhone              Step = "phone"
	StepCurrentCity        Step = "current_city"
	StepCities             Step = "cities_to_visit"
	StepOtherCity          Step = "other_city"
	StepDays               Step = "days"
	StepOtherDays          Step = "other_days"
	StepPeople             Step = "people"
	StepOtherPeople        Step = "other_people"
	StepTranslator         Step = "need_translator"
	StepTranslatorLanguage Step = "translator_language"
	StepOtherLanguage      Step = "other_language"
	StepStartDate          Step = "start_date"
	StepReview             Step = "review"
	StepReferral           Step = "referral_source"
	StepOtherReferral      Step = "other_referral"
)

// Field names an answer that can be revised from the review screen.
type Field string

const (
	FieldPhone       Field = "phone"
	FieldCurrentCity Field = "current_city"
	FieldCities      Field = "cities"
	FieldDays        Field = "days"
	FieldPeople      Field = "people"
	FieldTranslator  Field = "translator"
	FieldDates       Field = "dates"
)

// forwardOf is the forward chain of the questionnaire. Sub-prompts such as
// "type another city" are detours inside a step and do not appear here.
var forwardOf = map[Step]Step{
	StepPhone:              StepCurrentCity,
	StepCurrentCity:        StepCities,
	StepCities:             StepDays,
	StepDays:               StepPeople,
	StepPeople:             StepTranslator,
	StepTranslator:         StepStartDate,
	StepTranslatorLanguage: StepStartDate,
	StepStartDate:          StepReview,
	StepReview:             StepReferral,
}

// stepOfField maps a revisable field to the step that collects it.
var stepOfField = map[Field]Step{
	FieldPhone:       StepPhone,
	FieldCurrentCity: StepCurrentCity,
	FieldCities:      StepCities,
	FieldDays:        StepDays,
	FieldPeople:      StepPeople,
	FieldTranslator:  StepTranslator,
	FieldDates:       StepStartDate,
}

// Answers collects everything the questionnaire asks.
type Answers struct {
	Phone              string
	CurrentCity        string
	Cities             []string // canonical city IDs, selection order
	OtherCities        []string // free-text cities, entry order
	Days               string
	People             string
	NeedTranslator     string // "Yes" or "No"
	TranslatorLanguage string
	StartDate          string // ISO date or empty when skipped
	ReferralSource     string
}

// Session is the per-user questionnaire state. It is mutated only while the
// owner's store lock is held.
type Session struct {
	UserID    int64
	ChatID    int64
	FirstName string
	FullName  string
	Lang      string

	Step    Step
	Editing Field // set while revising a single field from review

	// ChangeLanguageOnly marks a /language flow: after the language pick
	// the session ends instead of starting the questionnaire.
	ChangeLanguageOnly bool

	// LastPromptID is the bot's most recent prompt, deleted best-effort
	// before the next one is sent.
	LastPromptID int

	Answers Answers
}

// Advance moves the session past a completed field. During a revision the
// session returns straight to the review screen and the marker is cleared;
// otherwise it follows the forward chain. The returned flag reports whether
// this completion ended a revision.
func (s *Session) Advance(completed Step) (Step, bool) {
	if s.Editing != "" {
		s.Editing = ""
		s.Step = StepReview
		return StepReview, true
	}
	next, ok := forwardOf[completed]
	if !ok {
		next = StepReview
	}
	s.Step = next
	return next, false
}

// BeginEdit marks a field for revision and moves the session onto the step
// that collects it.
func (s *Session) BeginEdit(f Field) (Step, bool) {
	step, ok := stepOfField[f]
	if !ok {
		return s.Step, false
	}
	s.Editing = f
	s.Step = step
	return step, true
}

// To moves the session onto an intra-field sub-prompt, e.g. the free-text
// entry behind an "Other" button.
func (s *Session) To(step Step) {
	s.Step = step
}
