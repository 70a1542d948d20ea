package usecase

import (
	"accomodate-service/internal/contextkeys"
	"accomodate-service/internal/core/domain"
	"accomodate-service/internal/core/port"
	"context"
)

type UpdateListingUseCase struct {
	repo     port.ListingRepositoryPort
	geocoder port.GeocoderPort
	sessions *SessionRegistry
	events   listingEvents
}

func NewUpdateListingUseCase(
	repo port.ListingRepositoryPort,
	geocoder port.GeocoderPort,
	sessions *SessionRegistry,
	publisher port.ListingEventsPort,
	notifier port.NotifierPort,
) *UpdateListingUseCase {
	return &UpdateListingUseCase{
		repo:     repo,
		geocoder: geocoder,
		sessions: sessions,
		events:   listingEvents{publisher: publisher, notifier: notifier},
	}
}

func (uc *UpdateListingUseCase) Execute(ctx context.Context, actor domain.CurrentUser, listingID string, form domain.ListingForm) (*domain.Listing, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "UpdateListing",
		"user_id":    actor.UserID.String(),
		"listing_id": listingID,
	})
	ucLogger.Info("Use case started: updating listing", nil)

	existing, err := uc.repo.Get(ctx, listingID)
	if err != nil {
		ucLogger.Warn("Listing to update not found", nil)
		return nil, err
	}
	if !ownedBy(*existing, actor) {
		ucLogger.Warn("Update rejected: user is not the owner", port.Fields{"owner_id": existing.OwnerID})
		return nil, domain.ErrForbidden
	}

	form = form.WithDefaults()
	if err := form.Validate(); err != nil {
		ucLogger.Warn("Listing form is invalid", port.Fields{"error": err.Error()})
		return nil, err
	}

	position, street, err := resolveLocation(contextkeys.ContextWithLogger(ctx, ucLogger), uc.geocoder, form.Address, existing)
	if err != nil {
		return nil, err
	}

	residents := buildResidents(form, actor, existing)
	listing, err := buildListing(existing.ID, form, position, street, existing.OwnerID, residents)
	if err != nil {
		ucLogger.Error("Built listing violates invariants", err, nil)
		return nil, err
	}

	if err := uc.repo.Update(ctx, listing); err != nil {
		ucLogger.Warn("Repository failed to update listing", port.Fields{"error": err.Error()})
		return nil, err
	}

	uc.sessions.SelectListing(actor.SessionID, listing)
	uc.events.emit(ctx, domain.ListingUpdated, listing)

	ucLogger.Info("Use case finished: listing updated", nil)
	return &listing, nil
}

// ownedBy: у объявлений из генератора владельца нет, их нельзя менять.
func ownedBy(listing domain.Listing, actor domain.CurrentUser) bool {
	return listing.OwnerID != "" && listing.OwnerID == actor.UserID.String()
}
