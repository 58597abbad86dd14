package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/attendance-insights-api/internal/analytics"
	"github.com/noah-isme/attendance-insights-api/internal/models"
	appErrors "github.com/noah-isme/attendance-insights-api/pkg/errors"
)

// SessionService keeps per-session filter and drill-down state in memory.
// Every mutation runs the corresponding pure reducer and stores the returned
// state; stored states are never mutated in place.
type SessionService struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry
	ttl      time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

type sessionEntry struct {
	state   models.SessionState
	touched time.Time
}

// NewSessionService constructs a session service. ttl <= 0 defaults to two
// hours.
func NewSessionService(ttl time.Duration, logger *zap.Logger) *SessionService {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{
		sessions: make(map[string]*sessionEntry),
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
	}
}

// Create opens a new session and returns its ID with the initial state.
func (s *SessionService) Create() (string, models.SessionState) {
	id := uuid.NewString()
	state := analytics.NewSessionState()
	now := s.now()

	s.mu.Lock()
	s.sessions[id] = &sessionEntry{state: state, touched: now}
	s.evictExpiredLocked(now)
	s.mu.Unlock()

	s.logger.Debug("session created", zap.String("session_id", id))
	return id, state
}

// Get returns the current state of a session. The entry is copied while the
// read lock is held so concurrent mutations never share memory with callers.
func (s *SessionService) Get(id string) (models.SessionState, error) {
	now := s.now()

	s.mu.RLock()
	entry, ok := s.sessions[id]
	var state models.SessionState
	var touched time.Time
	if ok {
		state = entry.state
		touched = entry.touched
	}
	s.mu.RUnlock()

	if !ok || now.Sub(touched) > s.ttl {
		return models.SessionState{}, appErrors.Clone(appErrors.ErrSessionGone, fmt.Sprintf("session %s not found or expired", id))
	}
	return state, nil
}

// ApplyFilters merges chart-driven cross filters into the session.
func (s *SessionService) ApplyFilters(id string, filters map[string]string) (models.SessionState, error) {
	return s.apply(id, func(state models.SessionState) models.SessionState {
		return analytics.ApplyCrossFilter(state, filters)
	})
}

// ChangeFilter records a named selector action in the session history.
func (s *SessionService) ChangeFilter(id, key, value, source string) (models.SessionState, error) {
	switch source {
	case analytics.SourceDepartmentChange, analytics.SourceRiskChange, analytics.SourceTimeRangeChange:
	default:
		return models.SessionState{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported filter source %q", source))
	}
	return s.apply(id, func(state models.SessionState) models.SessionState {
		return analytics.RecordFilterChange(state, key, value, source, s.now())
	})
}

// ClearFilter removes one active filter from the session.
func (s *SessionService) ClearFilter(id, key string) (models.SessionState, error) {
	return s.apply(id, func(state models.SessionState) models.SessionState {
		return analytics.ClearFilter(state, key)
	})
}

// Reset returns the session to its initial state.
func (s *SessionService) Reset(id string) (models.SessionState, error) {
	return s.apply(id, analytics.ResetAll)
}

// DrillInto descends one drill-down level inside the session.
func (s *SessionService) DrillInto(id string, level models.DrillLevel, data map[string]string) (models.SessionState, error) {
	if !level.Valid() {
		return models.SessionState{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported drill level %q", level))
	}
	return s.apply(id, func(state models.SessionState) models.SessionState {
		return analytics.DrillInto(state, level, data)
	})
}

// Navigate moves through the session's breadcrumb trail.
func (s *SessionService) Navigate(id string, index int) (models.SessionState, error) {
	return s.apply(id, func(state models.SessionState) models.SessionState {
		return analytics.Navigate(state, index)
	})
}

// Count returns the number of live sessions.
func (s *SessionService) Count() int {
	now := s.now()
	s.mu.Lock()
	s.evictExpiredLocked(now)
	count := len(s.sessions)
	s.mu.Unlock()
	return count
}

func (s *SessionService) apply(id string, reduce func(models.SessionState) models.SessionState) (models.SessionState, error) {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[id]
	if !ok || s.expired(entry) {
		delete(s.sessions, id)
		return models.SessionState{}, appErrors.Clone(appErrors.ErrSessionGone, fmt.Sprintf("session %s not found or expired", id))
	}
	entry.state = reduce(entry.state)
	entry.touched = now
	return entry.state, nil
}

func (s *SessionService) expired(entry *sessionEntry) bool {
	return s.now().Sub(entry.touched) > s.ttl
}

func (s *SessionService) evictExpiredLocked(now time.Time) {
	for id, entry := range s.sessions {
		if now.Sub(entry.touched) > s.ttl {
			delete(s.sessions, id)
		}
	}
}
