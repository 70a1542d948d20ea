package usecase

import (
	"accomodate-service/internal/core/domain"
	"sync"

	"github.com/google/uuid"
)

// ExplorerSession - состояние просмотра одной авторизованной сессии:
// выбор, фильтры и строка поиска.
type ExplorerSession struct {
	mu        sync.Mutex
	selection domain.Selection
	criteria  domain.FilterCriteria
	search    string
}

func NewExplorerSession() *ExplorerSession {
	return &ExplorerSession{criteria: domain.DefaultFilterCriteria()}
}

// query собирает входы фильтра. Вызывается под мьютексом сессии.
func (s *ExplorerSession) query() domain.ListingQuery {
	return domain.ListingQuery{
		Street:   s.selection.Street,
		Criteria: s.criteria,
		Search:   s.search,
	}
}

// SessionRegistry хранит ExplorerSession по id сессии.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*ExplorerSession
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[uuid.UUID]*ExplorerSession)}
}

// Open создает свежее состояние для сессии, заменяя прежнее.
func (r *SessionRegistry) Open(sessionID uuid.UUID) *ExplorerSession {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := NewExplorerSession()
	r.sessions[sessionID] = s
	return s
}

// Get возвращает состояние сессии, создавая его при первом обращении
// (например, если процесс перезапустился, а запись сессии осталась в хранилище).
func (r *SessionRegistry) Get(sessionID uuid.UUID) *ExplorerSession {
	r.mu.RLock()
	s, ok := r.sessions[sessionID]
	r.mu.RUnlock()
	if ok {
		return s
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[sessionID]; ok {
		return s
	}
	s = NewExplorerSession()
	r.sessions[sessionID] = s
	return s
}

func (r *SessionRegistry) Drop(sessionID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
}

// SelectListing выбирает объявление в сессии sessionID.
func (r *SessionRegistry) SelectListing(sessionID uuid.UUID, listing domain.Listing) {
	s := r.Get(sessionID)
	s.mu.Lock()
	s.selection.SelectListing(listing)
	s.mu.Unlock()
}

// ClearListingEverywhere снимает выбор удаленного объявления во всех сессиях.
func (r *SessionRegistry) ClearListingEverywhere(listingID string) int {
	r.mu.RLock()
	sessions := make([]*ExplorerSession, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	r.mu.RUnlock()

	cleared := 0
	for _, s := range sessions {
		s.mu.Lock()
		if s.selection.ClearIfSelected(listingID) {
			cleared++
		}
		s.mu.Unlock()
	}
	return cleared
}

func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
