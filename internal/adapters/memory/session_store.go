package memory_adapter

import (
	"accomodate-service/internal/core/domain"
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type sessionEntry struct {
	session   domain.CurrentUser
	expiresAt time.Time
}

// SessionStore - хранилище сессий в памяти, когда REDIS_ADDR не задан.
// Истекшие записи удаляются при чтении.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]sessionEntry
	now      func() time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[uuid.UUID]sessionEntry),
		now:      time.Now,
	}
}

func (s *SessionStore) Save(ctx context.Context, session domain.CurrentUser, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.SessionID] = sessionEntry{session: session, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *SessionStore) Find(ctx context.Context, sessionID uuid.UUID) (*domain.CurrentUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	if !s.now().Before(entry.expiresAt) {
		delete(s.sessions, sessionID)
		return nil, nil
	}
	session := entry.session
	return &session, nil
}

func (s *SessionStore) Delete(ctx context.Context, sessionID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
