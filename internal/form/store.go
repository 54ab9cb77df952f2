package form

import (
	"context"
	"sync"

	"github.com/ketravel/travelbot/core/logger"
	"log/slog"
)

// Store keeps in-memory questionnaire sessions keyed by user ID. Sessions
// are not persisted: a restart drops everyone back to /start.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
	locks    map[int64]*sync.Mutex
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[int64]*Session),
		locks:    make(map[int64]*sync.Mutex),
	}
}

// Begin creates a fresh session for the user, replacing any existing one.
func (s *Store) Begin(userID int64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := &Session{UserID: userID}
	s.sessions[userID] = sess
	logger.FORM.LogAttrs(context.Background(), slog.LevelDebug, "session.begin",
		slog.Int64("user_id", userID),
	)
	return sess
}

// Get returns the user's active session, if any. The caller must hold the
// user's lock before mutating it.
func (s *Store) Get(userID int64) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[userID]
	return sess, ok
}

// End discards the user's session.
func (s *Store) End(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[userID]; !ok {
		return
	}
	delete(s.sessions, userID)
	logger.FORM.LogAttrs(context.Background(), slog.LevelDebug, "session.end",
		slog.Int64("user_id", userID),
	)
}

// InProgress reports whether the user has an active session.
func (s *Store) InProgress(userID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[userID]
	return ok
}

// Count returns the number of active sessions.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// LockUser acquires the user's serialization lock so concurrent updates from
// the same user are handled one at a time. The lock outlives the session:
// it also guards the begin/end transitions themselves.
func (s *Store) LockUser(userID int64) (unlock func()) {
	s.mu.Lock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	s.mu.Unlock()
	l.Lock()
	return l.Unlock
}
