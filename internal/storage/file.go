package storage

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ketravel/travelbot/core/logger"
	"github.com/google/uuid"
	"log/slog"
)

// File names inside the storage directory, matching the legacy layout.
const (
	submissionsFile = "users.csv"
	requestsFile    = "pending_requests.json"
	languagesFile   = "user_languages.json"
)

var csvHeader = []string{
	"timestamp",
	"full_name",
	"phone",
	"current_city",
	"cities_to_visit",
	"days",
	"people",
	"need_translator",
	"translator_language",
	"start_date",
	"referral_source",
}

// FileRequestStore keeps the review queue in a single JSON file. Every
// operation is a whole-file read-modify-write under a mutex; the queue is
// small by design (admins drain it).
type FileRequestStore struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// NewFileRequestStore creates a request store backed by dir/pending_requests.json.
func NewFileRequestStore(dir string) *FileRequestStore {
	return &FileRequestStore{path: filepath.Join(dir, requestsFile), now: time.Now}
}

func (s *FileRequestStore) load() []Request {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}
	var requests []Request
	if err := json.Unmarshal(raw, &requests); err != nil {
		logger.STORE.LogAttrs(context.Background(), slog.LevelWarn, "requests.load.malformed",
			slog.String("path", s.path),
			slog.String("err", err.Error()),
		)
		return nil
	}
	return requests
}

func (s *FileRequestStore) save(requests []Request) error {
	raw, err := json.MarshalIndent(requests, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: encode requests: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("storage: write %s: %w", s.path, err)
	}
	return nil
}

// Add implements RequestStore. New entries go to the front of the list.
func (s *FileRequestStore) Add(_ context.Context, p Payload) (Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req := Request{
		ID:        uuid.NewString(),
		Status:    StatusNew,
		CreatedAt: s.now(),
		Payload:   p,
	}
	requests := append([]Request{req}, s.load()...)
	if err := s.save(requests); err != nil {
		return Request{}, err
	}
	return req, nil
}

// List implements RequestStore.
func (s *FileRequestStore) List(_ context.Context, status Status) ([]Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.load()
	if status == "" {
		return all, nil
	}
	out := make([]Request, 0, len(all))
	for _, req := range all {
		if req.Status == status {
			out = append(out, req)
		}
	}
	return out, nil
}

// Get implements RequestStore.
func (s *FileRequestStore) Get(_ context.Context, id string) (Request, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, req := range s.load() {
		if req.ID == id {
			return req, true, nil
		}
	}
	return Request{}, false, nil
}

// MarkProcessed implements RequestStore. Requests already processed by
// another admin stay attributed to whoever got there first.
func (s *FileRequestStore) MarkProcessed(_ context.Context, id string, adminID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	requests := s.load()
	for i := range requests {
		if requests[i].ID != id {
			continue
		}
		if requests[i].Status == StatusProcessed {
			return false, nil
		}
		at := s.now()
		requests[i].Status = StatusProcessed
		requests[i].ProcessedBy = adminID
		requests[i].ProcessedAt = &at
		if err := s.save(requests); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// FileSubmissionLog appends completed questionnaires to a CSV file, writing
// the header when the file is first created.
type FileSubmissionLog struct {
	mu   sync.Mutex
	path string
}

// NewFileSubmissionLog creates a submission log backed by dir/users.csv.
func NewFileSubmissionLog(dir string) *FileSubmissionLog {
	return &FileSubmissionLog{path: filepath.Join(dir, submissionsFile)}
}

// Append implements SubmissionLog.
func (l *FileSubmissionLog) Append(_ context.Context, rec Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, statErr := os.Stat(l.path)
	writeHeader := os.IsNotExist(statErr)

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("storage: open %s: %w", l.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(csvHeader); err != nil {
			return fmt.Errorf("storage: write csv header: %w", err)
		}
	}
	if err := w.Write(rec.row()); err != nil {
		return fmt.Errorf("storage: write csv row: %w", err)
	}
	w.Flush()
	return w.Error()
}

func (r Record) row() []string {
	return []string{
		r.Timestamp.Format(time.RFC3339),
		r.FullName,
		r.Phone,
		r.CurrentCity,
		strings.Join(r.Cities, ", "),
		r.Days,
		r.People,
		r.NeedTranslator,
		r.TranslatorLanguage,
		r.StartDate,
		r.ReferralSource,
	}
}

// FileLanguageStore keeps language preferences in a JSON object keyed by the
// decimal user ID.
type FileLanguageStore struct {
	mu   sync.Mutex
	path string
}

// NewFileLanguageStore creates a language store backed by dir/user_languages.json.
func NewFileLanguageStore(dir string) *FileLanguageStore {
	return &FileLanguageStore{path: filepath.Join(dir, languagesFile)}
}

func (s *FileLanguageStore) load() map[string]string {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return map[string]string{}
	}
	langs := map[string]string{}
	if err := json.Unmarshal(raw, &langs); err != nil {
		logger.STORE.LogAttrs(context.Background(), slog.LevelWarn, "languages.load.malformed",
			slog.String("path", s.path),
			slog.String("err", err.Error()),
		)
		return map[string]string{}
	}
	return langs
}

// Get implements LanguageStore.
func (s *FileLanguageStore) Get(_ context.Context, userID int64) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lang, ok := s.load()[strconv.FormatInt(userID, 10)]
	return lang, ok, nil
}

// Set implements LanguageStore.
func (s *FileLanguageStore) Set(_ context.Context, userID int64, lang string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	langs := s.load()
	langs[strconv.FormatInt(userID, 10)] = lang
	raw, err := json.MarshalIndent(langs, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: encode languages: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("storage: write %s: %w", s.path, err)
	}
	return nil
}
