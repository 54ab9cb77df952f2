package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// SQLRequestStore keeps the review queue in the requests table.
type SQLRequestStore struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewSQLRequestStore creates a request store backed by the given database.
func NewSQLRequestStore(db *sqlx.DB) *SQLRequestStore {
	return &SQLRequestStore{db: db, now: time.Now}
}

type requestRow struct {
	ID          string        `db:"id"`
	Status      string        `db:"status"`
	CreatedAt   time.Time     `db:"created_at"`
	ProcessedBy sql.NullInt64 `db:"processed_by"`
	ProcessedAt sql.NullTime  `db:"processed_at"`
	Payload     string        `db:"payload"`
}

func (r requestRow) toRequest() (Request, error) {
	var p Payload
	if err := json.Unmarshal([]byte(r.Payload), &p); err != nil {
		return Request{}, fmt.Errorf("storage: decode payload for %s: %w", r.ID, err)
	}
	req := Request{
		ID:        r.ID,
		Status:    Status(r.Status),
		CreatedAt: r.CreatedAt,
		Payload:   p,
	}
	if r.ProcessedBy.Valid {
		req.ProcessedBy = r.ProcessedBy.Int64
	}
	if r.ProcessedAt.Valid {
		at := r.ProcessedAt.Time
		req.ProcessedAt = &at
	}
	return req, nil
}

// Add implements RequestStore.
func (s *SQLRequestStore) Add(ctx context.Context, p Payload) (Request, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return Request{}, fmt.Errorf("storage: encode payload: %w", err)
	}
	req := Request{
		ID:        uuid.NewString(),
		Status:    StatusNew,
		CreatedAt: s.now(),
		Payload:   p,
	}
	const q = `INSERT INTO requests (id, status, created_at, payload) VALUES (?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, q, req.ID, string(req.Status), req.CreatedAt, string(payload)); err != nil {
		return Request{}, fmt.Errorf("storage: insert request: %w", err)
	}
	return req, nil
}

// List implements RequestStore.
func (s *SQLRequestStore) List(ctx context.Context, status Status) ([]Request, error) {
	q := `SELECT id, status, created_at, processed_by, processed_at, payload
	      FROM requests ORDER BY created_at DESC, id`
	args := []any{}
	if status != "" {
		q = `SELECT id, status, created_at, processed_by, processed_at, payload
		     FROM requests WHERE status = ? ORDER BY created_at DESC, id`
		args = append(args, string(status))
	}
	var rows []requestRow
	if err := s.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, fmt.Errorf("storage: list requests: %w", err)
	}
	out := make([]Request, 0, len(rows))
	for _, row := range rows {
		req, err := row.toRequest()
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, nil
}

// Get implements RequestStore.
func (s *SQLRequestStore) Get(ctx context.Context, id string) (Request, bool, error) {
	const q = `SELECT id, status, created_at, processed_by, processed_at, payload
	           FROM requests WHERE id = ?`
	var row requestRow
	err := s.db.GetContext(ctx, &row, q, id)
	if err == sql.ErrNoRows {
		return Request{}, false, nil
	}
	if err != nil {
		return Request{}, false, fmt.Errorf("storage: get request: %w", err)
	}
	req, err := row.toRequest()
	if err != nil {
		return Request{}, false, err
	}
	return req, true, nil
}

// MarkProcessed implements RequestStore. The status guard in the WHERE
// clause makes the first admin win when two press the button at once.
func (s *SQLRequestStore) MarkProcessed(ctx context.Context, id string, adminID int64) (bool, error) {
	const q = `UPDATE requests SET status = ?, processed_by = ?, processed_at = ?
	           WHERE id = ? AND status = ?`
	res, err := s.db.ExecContext(ctx, q, string(StatusProcessed), adminID, s.now(), id, string(StatusNew))
	if err != nil {
		return false, fmt.Errorf("storage: mark processed: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: mark processed rows: %w", err)
	}
	return n > 0, nil
}

// SQLSubmissionLog appends completed questionnaires to the submissions table.
type SQLSubmissionLog struct {
	db *sqlx.DB
}

// NewSQLSubmissionLog creates a submission log backed by the given database.
func NewSQLSubmissionLog(db *sqlx.DB) *SQLSubmissionLog {
	return &SQLSubmissionLog{db: db}
}

// Append implements SubmissionLog.
func (l *SQLSubmissionLog) Append(ctx context.Context, rec Record) error {
	const q = `INSERT INTO submissions (
	               submitted_at, full_name, phone, current_city, cities,
	               days, people, need_translator, translator_language,
	               start_date, referral_source
	           ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := l.db.ExecContext(ctx, q,
		rec.Timestamp,
		rec.FullName,
		rec.Phone,
		rec.CurrentCity,
		strings.Join(rec.Cities, ", "),
		rec.Days,
		rec.People,
		rec.NeedTranslator,
		rec.TranslatorLanguage,
		rec.StartDate,
		rec.ReferralSource,
	)
	if err != nil {
		return fmt.Errorf("storage: insert submission: %w", err)
	}
	return nil
}

// SQLLanguageStore keeps language preferences in the user_languages table.
type SQLLanguageStore struct {
	db *sqlx.DB
}

// NewSQLLanguageStore creates a language store backed by the given database.
func NewSQLLanguageStore(db *sqlx.DB) *SQLLanguageStore {
	return &SQLLanguageStore{db: db}
}

// Get implements LanguageStore.
func (s *SQLLanguageStore) Get(ctx context.Context, userID int64) (string, bool, error) {
	var lang string
	err := s.db.GetContext(ctx, &lang, `SELECT lang FROM user_languages WHERE user_id = ?`, userID)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: get language: %w", err)
	}
	return lang, true, nil
}

// Set implements LanguageStore.
func (s *SQLLanguageStore) Set(ctx context.Context, userID int64, lang string) error {
	const q = `INSERT INTO user_languages (user_id, lang, updated_at) VALUES (?, ?, ?)
	           ON CONFLICT (user_id) DO UPDATE SET lang = excluded.lang, updated_at = excluded.updated_at`
	if _, err := s.db.ExecContext(ctx, q, userID, lang, time.Now()); err != nil {
		return fmt.Errorf("storage: set language: %w", err)
	}
	return nil
}
