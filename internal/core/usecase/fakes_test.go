package usecase

import (
	"accomodate-service/internal/core/domain"
	"accomodate-service/internal/core/port"
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

type fakeGeocoder struct {
	mu      sync.Mutex
	calls   []string
	results map[string]*port.GeocodeResult
	err     error
}

func newFakeGeocoder() *fakeGeocoder {
	return &fakeGeocoder{results: make(map[string]*port.GeocodeResult)}
}

func (g *fakeGeocoder) Geocode(ctx context.Context, address string) (*port.GeocodeResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, address)
	if g.err != nil {
		return nil, g.err
	}
	return g.results[address], nil
}

func (g *fakeGeocoder) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

// blockingProvider отвечает только после release; каждый вызов считается.
type blockingProvider struct {
	calls   atomic.Int32
	release chan struct{}
	err     error
	data    []domain.StreetGeometry
}

func newBlockingProvider() *blockingProvider {
	return &blockingProvider{release: make(chan struct{})}
}

func (p *blockingProvider) FetchGeometry(ctx context.Context, names []string) ([]domain.StreetGeometry, error) {
	p.calls.Add(1)
	<-p.release
	if p.err != nil {
		return nil, p.err
	}
	return p.data, nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []port.Event
}

func (n *recordingNotifier) Notify(ctx context.Context, event port.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) types() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.events))
	for i, e := range n.events {
		out[i] = e.Type
	}
	return out
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.ListingEvent
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, event domain.ListingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

// fakeTokenService выдает в качестве токена id сессии.
type fakeTokenService struct {
	mu     sync.Mutex
	claims map[string]domain.Claims
}

func newFakeTokenService() *fakeTokenService {
	return &fakeTokenService{claims: make(map[string]domain.Claims)}
}

func (s *fakeTokenService) GenerateToken(ctx context.Context, session domain.CurrentUser, ttl time.Duration) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	token := "token-" + session.SessionID.String()
	s.claims[token] = domain.Claims{SessionID: session.SessionID, UserID: session.UserID, Email: session.Email}
	return token, nil
}

func (s *fakeTokenService) ValidateToken(ctx context.Context, token string) (*domain.Claims, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.claims[token]
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	return &c, nil
}

// fakeListingRepo - минимальный репозиторий для тестов сценариев.
type fakeListingRepo struct {
	mu       sync.RWMutex
	listings []domain.Listing
	streets  []string
}

func (r *fakeListingRepo) List(ctx context.Context) ([]domain.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Listing, len(r.listings))
	for i, l := range r.listings {
		out[i] = l.Clone()
	}
	return out, nil
}

func (r *fakeListingRepo) Get(ctx context.Context, id string) (*domain.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, l := range r.listings {
		if l.ID == id {
			c := l.Clone()
			return &c, nil
		}
	}
	return nil, domain.ErrListingNotFound
}

func (r *fakeListingRepo) Add(ctx context.Context, listing domain.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listings = append(r.listings, listing.Clone())
	return nil
}

func (r *fakeListingRepo) Update(ctx context.Context, listing domain.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, l := range r.listings {
		if l.ID == listing.ID {
			r.listings[i] = listing.Clone()
			return nil
		}
	}
	return domain.ErrListingNotFound
}

func (r *fakeListingRepo) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, l := range r.listings {
		if l.ID == id {
			r.listings = append(r.listings[:i], r.listings[i+1:]...)
			return nil
		}
	}
	return domain.ErrListingNotFound
}

func (r *fakeListingRepo) Streets(ctx context.Context) []string {
	return append([]string(nil), r.streets...)
}

func (r *fakeListingRepo) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.listings)
}

type memorySessions struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]domain.CurrentUser
}

func newMemorySessions() *memorySessions {
	return &memorySessions{sessions: make(map[uuid.UUID]domain.CurrentUser)}
}

func (s *memorySessions) Save(ctx context.Context, session domain.CurrentUser, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.SessionID] = session
	return nil
}

func (s *memorySessions) Find(ctx context.Context, id uuid.UUID) (*domain.CurrentUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	return &session, nil
}

func (s *memorySessions) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

type memoryUsers struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: make(map[string]domain.User)}
}

func (r *memoryUsers) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.Email] = *user
	return nil
}

func (r *memoryUsers) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *memoryUsers) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *memoryUsers) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

var errTransport = errors.New("connection refused")

type noopLogger struct{}

func (noopLogger) Info(string, port.Fields)                  {}
func (noopLogger) Warn(string, port.Fields)                  {}
func (noopLogger) Error(string, error, port.Fields)          {}
func (noopLogger) Debug(string, port.Fields)                 {}
func (l noopLogger) WithFields(port.Fields) port.LoggerPort { return l }

func seededListing(id, street string, diet domain.Diet, looking bool, pref domain.RoommatePreference) domain.Listing {
	l := domain.Listing{
		ID:                  id,
		Street:              street,
		Address:             "10 " + street,
		Position:            domain.Coordinate{Lat: 40.72, Lng: -74.04},
		Residents:           []domain.Resident{{ID: "r-0", Name: "Seed", Diet: diet}},
		LookingForRoommates: looking,
		RoommatePreference:  pref,
	}
	l.Normalize()
	return l
}
