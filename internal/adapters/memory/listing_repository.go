package memory_adapter

import (
	"accomodate-service/internal/contextkeys"
	"accomodate-service/internal/core/domain"
	"accomodate-service/internal/core/port"
	"context"
	"fmt"
	"sync"
)

// ListingRepository - хранилище объявлений в памяти процесса.
// Порядок вставки сохраняется; Update заменяет элемент на месте.
type ListingRepository struct {
	mu       sync.RWMutex
	listings []domain.Listing
	index    map[string]int
	streets  []string
}

func NewListingRepository(streets []string, seed []domain.Listing) (*ListingRepository, error) {
	r := &ListingRepository{
		listings: make([]domain.Listing, 0, len(seed)),
		index:    make(map[string]int, len(seed)),
		streets:  append([]string(nil), streets...),
	}
	for _, l := range seed {
		if err := r.insert(l); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *ListingRepository) insert(l domain.Listing) error {
	if err := l.Validate(); err != nil {
		return err
	}
	if _, exists := r.index[l.ID]; exists {
		return domain.NewValidationError("id", fmt.Sprintf("listing %q already exists", l.ID))
	}
	r.index[l.ID] = len(r.listings)
	r.listings = append(r.listings, l.Clone())
	return nil
}

func (r *ListingRepository) List(ctx context.Context) ([]domain.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Listing, len(r.listings))
	for i, l := range r.listings {
		out[i] = l.Clone()
	}
	return out, nil
}

func (r *ListingRepository) Get(ctx context.Context, id string) (*domain.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	l := r.listings[i].Clone()
	return &l, nil
}

func (r *ListingRepository) Add(ctx context.Context, listing domain.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.insert(listing); err != nil {
		return err
	}
	contextkeys.LoggerFromContext(ctx).Debug("Listing added", port.Fields{
		"component":  "ListingRepository",
		"listing_id": listing.ID,
		"total":      len(r.listings),
	})
	return nil
}

func (r *ListingRepository) Update(ctx context.Context, listing domain.Listing) error {
	if err := listing.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[listing.ID]
	if !ok {
		return domain.ErrListingNotFound
	}
	r.listings[i] = listing.Clone()
	return nil
}

func (r *ListingRepository) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[id]
	if !ok {
		return domain.ErrListingNotFound
	}
	r.listings = append(r.listings[:i], r.listings[i+1:]...)
	delete(r.index, id)
	for j := i; j < len(r.listings); j++ {
		r.index[r.listings[j].ID] = j
	}
	return nil
}

func (r *ListingRepository) Streets(ctx context.Context) []string {
	return append([]string(nil), r.streets...)
}
