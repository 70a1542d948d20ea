package usecase

import (
	"accomodate-service/internal/contextkeys"
	"accomodate-service/internal/core/domain"
	"accomodate-service/internal/core/port"
	"context"
)

type DeleteListingUseCase struct {
	repo     port.ListingRepositoryPort
	sessions *SessionRegistry
	events   listingEvents
}

func NewDeleteListingUseCase(repo port.ListingRepositoryPort, sessions *SessionRegistry, publisher port.ListingEventsPort, notifier port.NotifierPort) *DeleteListingUseCase {
	return &DeleteListingUseCase{
		repo:     repo,
		sessions: sessions,
		events:   listingEvents{publisher: publisher, notifier: notifier},
	}
}

func (uc *DeleteListingUseCase) Execute(ctx context.Context, actor domain.CurrentUser, listingID string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "DeleteListing",
		"user_id":    actor.UserID.String(),
		"listing_id": listingID,
	})
	ucLogger.Info("Use case started: deleting listing", nil)

	existing, err := uc.repo.Get(ctx, listingID)
	if err != nil {
		ucLogger.Warn("Listing to delete not found", nil)
		return err
	}
	if !ownedBy(*existing, actor) {
		ucLogger.Warn("Delete rejected: user is not the owner", port.Fields{"owner_id": existing.OwnerID})
		return domain.ErrForbidden
	}

	if err := uc.repo.Remove(ctx, listingID); err != nil {
		ucLogger.Warn("Repository failed to remove listing", port.Fields{"error": err.Error()})
		return err
	}

	cleared := uc.sessions.ClearListingEverywhere(listingID)
	uc.events.emit(ctx, domain.ListingDeleted, *existing)

	ucLogger.Info("Use case finished: listing deleted", port.Fields{"selections_cleared": cleared})
	return nil
}
