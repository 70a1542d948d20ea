package port

import (
	"accomodate-service/internal/core/domain"
	"context"
)

// ListingRepositoryPort - каноническое хранилище объявлений на время жизни процесса.
type ListingRepositoryPort interface {
	// List возвращает все объявления в порядке добавления.
	List(ctx context.Context) ([]domain.Listing, error)
	Get(ctx context.Context, id string) (*domain.Listing, error)
	Add(ctx context.Context, listing domain.Listing) error
	// Update заменяет объявление с тем же id. domain.ErrListingNotFound, если его нет.
	Update(ctx context.Context, listing domain.Listing) error
	Remove(ctx context.Context, id string) error
	// Streets - имена улиц области поиска.
	Streets(ctx context.Context) []string
}
