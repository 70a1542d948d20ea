package usecase

import (
	"accomodate-service/internal/contextkeys"
	"accomodate-service/internal/core/domain"
	"accomodate-service/internal/core/port"
	"context"
	"fmt"

	"github.com/google/uuid"
)

type CreateListingUseCase struct {
	repo     port.ListingRepositoryPort
	geocoder port.GeocoderPort
	sessions *SessionRegistry
	events   listingEvents
}

func NewCreateListingUseCase(
	repo port.ListingRepositoryPort,
	geocoder port.GeocoderPort,
	sessions *SessionRegistry,
	publisher port.ListingEventsPort,
	notifier port.NotifierPort,
) *CreateListingUseCase {
	return &CreateListingUseCase{
		repo:     repo,
		geocoder: geocoder,
		sessions: sessions,
		events:   listingEvents{publisher: publisher, notifier: notifier},
	}
}

func (uc *CreateListingUseCase) Execute(ctx context.Context, actor domain.CurrentUser, form domain.ListingForm) (*domain.Listing, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "CreateListing",
		"user_id":  actor.UserID.String(),
	})
	ucLogger.Info("Use case started: creating listing", nil)

	form = form.WithDefaults()
	if err := form.Validate(); err != nil {
		ucLogger.Warn("Listing form is invalid", port.Fields{"error": err.Error()})
		return nil, err
	}

	position, street, err := resolveLocation(contextkeys.ContextWithLogger(ctx, ucLogger), uc.geocoder, form.Address, nil)
	if err != nil {
		return nil, err
	}

	residents := buildResidents(form, actor, nil)
	listing, err := buildListing("new-"+uuid.NewString(), form, position, street, actor.UserID.String(), residents)
	if err != nil {
		ucLogger.Error("Built listing violates invariants", err, nil)
		return nil, err
	}

	if err := uc.repo.Add(ctx, listing); err != nil {
		ucLogger.Error("Repository failed to add listing", err, nil)
		return nil, fmt.Errorf("failed to add listing: %w", err)
	}

	uc.sessions.SelectListing(actor.SessionID, listing)
	uc.events.emit(ctx, domain.ListingCreated, listing)

	ucLogger.Info("Use case finished: listing created", port.Fields{"listing_id": listing.ID, "street": listing.Street})
	return &listing, nil
}
