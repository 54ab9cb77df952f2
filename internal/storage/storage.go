// Package storage persists completed questionnaires: the permanent
// submission log, the admin review queue, and per-user language preferences.
// Two backends exist, flat files matching the legacy data layout and an
// embedded SQLite database.
package storage

import (
	"context"
	"time"
)

// Status of a review request.
type Status string

const (
	StatusNew       Status = "new"
	StatusProcessed Status = "processed"
)

// Payload is the questionnaire snapshot attached to a review request.
type Payload struct {
	UserID             int64    `json:"user_id"`
	FirstName          string   `json:"first_name"`
	FullName           string   `json:"full_name"`
	Phone              string   `json:"phone"`
	CurrentCity        string   `json:"current_city"`
	CitiesToVisit      []string `json:"cities_to_visit"`
	OtherCities        []string `json:"other_cities,omitempty"`
	Days               string   `json:"days"`
	People             string   `json:"people"`
	NeedTranslator     string   `json:"need_translator"`
	TranslatorLanguage string   `json:"translator_language,omitempty"`
	StartDate          string   `json:"start_date,omitempty"`
	ReferralSource     string   `json:"referral_source"`
	LangCode           string   `json:"lang_code"`
}

// AllCities merges the selected and free-text destinations.
func (p Payload) AllCities() []string {
	out := make([]string, 0, len(p.CitiesToVisit)+len(p.OtherCities))
	out = append(out, p.CitiesToVisit...)
	out = append(out, p.OtherCities...)
	return out
}

// Request is one submission waiting for admin review.
type Request struct {
	ID          string     `json:"id"`
	Status      Status     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	ProcessedBy int64      `json:"processed_by,omitempty"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	Payload     Payload    `json:"payload"`
}

// Record is one row of the permanent submission log.
type Record struct {
	Timestamp          time.Time
	FullName           string
	Phone              string
	CurrentCity        string
	Cities             []string
	Days               string
	People             string
	NeedTranslator     string
	TranslatorLanguage string
	StartDate          string
	ReferralSource     string
}

// RequestStore holds submissions awaiting admin review, newest first.
type RequestStore interface {
	// Add enqueues a new request and returns it with ID and timestamps set.
	Add(ctx context.Context, p Payload) (Request, error)
	// List returns requests with the given status, newest first. An empty
	// status returns everything.
	List(ctx context.Context, status Status) ([]Request, error)
	// Get fetches a single request by ID.
	Get(ctx context.Context, id string) (Request, bool, error)
	// MarkProcessed stamps a new request as handled by the given admin.
	// It reports false when the request is missing or already processed.
	MarkProcessed(ctx context.Context, id string, adminID int64) (bool, error)
}

// SubmissionLog appends completed questionnaires to the permanent record.
type SubmissionLog interface {
	Append(ctx context.Context, rec Record) error
}

// LanguageStore persists per-user interface language preferences.
type LanguageStore interface {
	Get(ctx context.Context, userID int64) (string, bool, error)
	Set(ctx context.Context, userID int64, lang string) error
}

// Backends bundles the three persistence concerns of one backend.
type Backends struct {
	Requests  RequestStore
	Log       SubmissionLog
	Languages LanguageStore
}
