package usecases_port

import (
	"accomodate-service/internal/core/domain"
	"context"

	"github.com/google/uuid"
)

// ExplorerUseCasePort - операции над состоянием просмотра одной сессии.
// Каждая операция возвращает свежий кадр после согласования выбора.
type ExplorerUseCasePort interface {
	View(ctx context.Context, sessionID uuid.UUID) (*domain.ExplorerView, error)
	SetFilters(ctx context.Context, sessionID uuid.UUID, criteria domain.FilterCriteria) (*domain.ExplorerView, error)
	SetSearch(ctx context.Context, sessionID uuid.UUID, search string) (*domain.ExplorerView, error)
	SelectStreet(ctx context.Context, sessionID uuid.UUID, street *string) (*domain.ExplorerView, error)
	SelectListing(ctx context.Context, sessionID uuid.UUID, listingID string) (*domain.ExplorerView, error)
	ClearSelection(ctx context.Context, sessionID uuid.UUID) (*domain.ExplorerView, error)
	Streets(ctx context.Context) []string
}

type ClusterListingsUseCasePort interface {
	Execute(ctx context.Context, sessionID uuid.UUID, precision int) ([]domain.MarkerCluster, error)
}
