package usecases_port

import (
	"accomodate-service/internal/core/domain"
	"context"
)

type GetListingUseCasePort interface {
	Execute(ctx context.Context, listingID string) (*domain.Listing, error)
}

type CreateListingUseCasePort interface {
	Execute(ctx context.Context, actor domain.CurrentUser, form domain.ListingForm) (*domain.Listing, error)
}

type UpdateListingUseCasePort interface {
	Execute(ctx context.Context, actor domain.CurrentUser, listingID string, form domain.ListingForm) (*domain.Listing, error)
}

type DeleteListingUseCasePort interface {
	Execute(ctx context.Context, actor domain.CurrentUser, listingID string) error
}
