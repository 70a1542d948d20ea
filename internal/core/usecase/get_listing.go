package usecase

import (
	"accomodate-service/internal/core/domain"
	"accomodate-service/internal/core/port"
	"context"
)

type GetListingUseCase struct {
	repo port.ListingRepositoryPort
}

func NewGetListingUseCase(repo port.ListingRepositoryPort) *GetListingUseCase {
	return &GetListingUseCase{repo: repo}
}

func (uc *GetListingUseCase) Execute(ctx context.Context, listingID string) (*domain.Listing, error) {
	return uc.repo.Get(ctx, listingID)
}
