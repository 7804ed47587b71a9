package usecase

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/greasemeter/place-index/internal/pkg/errors"
	"github.com/greasemeter/place-index/internal/usecase/dto"
)

// SessionUseCase owns the live map sessions, one PlaceIndex each. A session
// is touched by every request against it; idle sessions are evicted by the
// janitor via Sweep.
type SessionUseCase struct {
	logger   *zap.Logger
	ttl      time.Duration
	newIndex func() *PlaceIndex

	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	index    *PlaceIndex
	lastSeen time.Time
}

func NewSessionUseCase(newIndex func() *PlaceIndex, ttl time.Duration, logger *zap.Logger) *SessionUseCase {
	return &SessionUseCase{
		logger:   logger,
		ttl:      ttl,
		newIndex: newIndex,
		sessions: make(map[string]*session),
	}
}

// Create opens a new map session with an empty index.
func (uc *SessionUseCase) Create() *dto.SessionResponse {
	id := uuid.NewString()

	uc.mu.Lock()
	uc.sessions[id] = &session{
		index:    uc.newIndex(),
		lastSeen: time.Now(),
	}
	uc.mu.Unlock()

	uc.logger.Info("Map session created", zap.String("session_id", id))
	return &dto.SessionResponse{SessionID: id}
}

// Get returns the index of a live session and refreshes its idle timer.
func (uc *SessionUseCase) Get(id string) (*PlaceIndex, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	s, ok := uc.sessions[id]
	if !ok {
		return nil, errors.ErrSessionNotFound
	}
	s.lastSeen = time.Now()
	return s.index, nil
}

// Delete closes a session explicitly.
func (uc *SessionUseCase) Delete(id string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if _, ok := uc.sessions[id]; !ok {
		return errors.ErrSessionNotFound
	}
	delete(uc.sessions, id)

	uc.logger.Info("Map session deleted", zap.String("session_id", id))
	return nil
}

// Sweep evicts sessions idle longer than the TTL and returns the count.
func (uc *SessionUseCase) Sweep(now time.Time) int {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	evicted := 0
	for id, s := range uc.sessions {
		if now.Sub(s.lastSeen) > uc.ttl {
			delete(uc.sessions, id)
			evicted++
		}
	}

	if evicted > 0 {
		uc.logger.Info("Evicted idle map sessions",
			zap.Int("evicted", evicted),
			zap.Int("remaining", len(uc.sessions)))
	}
	return evicted
}

// Count returns the number of live sessions.
func (uc *SessionUseCase) Count() int {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return len(uc.sessions)
}
