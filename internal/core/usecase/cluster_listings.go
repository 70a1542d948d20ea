package usecase

import (
	"accomodate-service/internal/core/domain"
	"accomodate-service/internal/core/port/usecases_port"
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mmcloughlin/geohash"
)

const maxClusterPrecision = 12

// ClusterListingsUseCase группирует видимые объявления сессии по ячейкам geohash.
type ClusterListingsUseCase struct {
	explorer usecases_port.ExplorerUseCasePort
}

func NewClusterListingsUseCase(explorer usecases_port.ExplorerUseCasePort) *ClusterListingsUseCase {
	return &ClusterListingsUseCase{explorer: explorer}
}

func (uc *ClusterListingsUseCase) Execute(ctx context.Context, sessionID uuid.UUID, precision int) ([]domain.MarkerCluster, error) {
	if precision < 1 || precision > maxClusterPrecision {
		return nil, domain.NewValidationError("precision", fmt.Sprintf("precision must be between 1 and %d", maxClusterPrecision))
	}

	view, err := uc.explorer.View(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return ClusterListings(view.Listings, uint(precision)), nil
}

// ClusterListings: ячейки идут в порядке первого появления.
func ClusterListings(listings []domain.Listing, precision uint) []domain.MarkerCluster {
	index := make(map[string]int)
	clusters := make([]domain.MarkerCluster, 0)

	for _, l := range listings {
		hash := geohash.EncodeWithPrecision(l.Position.Lat, l.Position.Lng, precision)
		i, ok := index[hash]
		if !ok {
			lat, lng := geohash.DecodeCenter(hash)
			clusters = append(clusters, domain.MarkerCluster{
				Geohash: hash,
				Center:  domain.Coordinate{Lat: lat, Lng: lng},
			})
			i = len(clusters) - 1
			index[hash] = i
		}
		clusters[i].Count++
		clusters[i].ListingIDs = append(clusters[i].ListingIDs, l.ID)
	}
	return clusters
}
