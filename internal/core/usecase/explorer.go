package usecase

import (
	"accomodate-service/internal/contextkeys"
	"accomodate-service/internal/core/domain"
	"accomodate-service/internal/core/port"
	"accomodate-service/internal/core/port/usecases_port"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ExplorerUseCase связывает репозиторий, фильтр и выбор одной сессии в кадр просмотра.
type ExplorerUseCase struct {
	repo     port.ListingRepositoryPort
	sessions *SessionRegistry
	geometry usecases_port.GeometryCachePort
}

func NewExplorerUseCase(repo port.ListingRepositoryPort, sessions *SessionRegistry, geometry usecases_port.GeometryCachePort) *ExplorerUseCase {
	return &ExplorerUseCase{
		repo:     repo,
		sessions: sessions,
		geometry: geometry,
	}
}

func (uc *ExplorerUseCase) View(ctx context.Context, sessionID uuid.UUID) (*domain.ExplorerView, error) {
	return uc.apply(ctx, sessionID, "View", nil)
}

func (uc *ExplorerUseCase) SetFilters(ctx context.Context, sessionID uuid.UUID, criteria domain.FilterCriteria) (*domain.ExplorerView, error) {
	if criteria.Diet == "" {
		criteria.Diet = domain.DietFilterAll
	}
	if criteria.Gender == "" {
		criteria.Gender = domain.GenderFilterAny
	}
	if err := criteria.Validate(); err != nil {
		return nil, err
	}
	return uc.apply(ctx, sessionID, "SetFilters", func(s *ExplorerSession) {
		s.criteria = criteria
	})
}

func (uc *ExplorerUseCase) SetSearch(ctx context.Context, sessionID uuid.UUID, search string) (*domain.ExplorerView, error) {
	return uc.apply(ctx, sessionID, "SetSearch", func(s *ExplorerSession) {
		s.search = search
	})
}

func (uc *ExplorerUseCase) SelectStreet(ctx context.Context, sessionID uuid.UUID, street *string) (*domain.ExplorerView, error) {
	if street != nil {
		name := strings.TrimSpace(*street)
		if !uc.knownStreet(ctx, name) {
			return nil, domain.NewValidationError("street", fmt.Sprintf("unknown street %q", name))
		}
		street = &name
	}
	return uc.apply(ctx, sessionID, "SelectStreet", func(s *ExplorerSession) {
		s.selection.SelectStreet(street)
	})
}

func (uc *ExplorerUseCase) SelectListing(ctx context.Context, sessionID uuid.UUID, listingID string) (*domain.ExplorerView, error) {
	listing, err := uc.repo.Get(ctx, listingID)
	if err != nil {
		return nil, err
	}
	return uc.apply(ctx, sessionID, "SelectListing", func(s *ExplorerSession) {
		s.selection.SelectListing(*listing)
	})
}

func (uc *ExplorerUseCase) ClearSelection(ctx context.Context, sessionID uuid.UUID) (*domain.ExplorerView, error) {
	return uc.apply(ctx, sessionID, "ClearSelection", func(s *ExplorerSession) {
		s.selection.ClearListing()
	})
}

func (uc *ExplorerUseCase) Streets(ctx context.Context) []string {
	return uc.repo.Streets(ctx)
}

func (uc *ExplorerUseCase) knownStreet(ctx context.Context, name string) bool {
	for _, s := range uc.repo.Streets(ctx) {
		if s == name {
			return true
		}
	}
	listings, err := uc.repo.List(ctx)
	if err != nil {
		return false
	}
	for _, l := range listings {
		if l.Street == name {
			return true
		}
	}
	return false
}

// apply меняет состояние сессии, пересчитывает видимые объявления и согласует выбор.
func (uc *ExplorerUseCase) apply(ctx context.Context, sessionID uuid.UUID, op string, mutate func(s *ExplorerSession)) (*domain.ExplorerView, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "Explorer." + op,
		"session_id": sessionID.String(),
	})

	listings, err := uc.repo.List(ctx)
	if err != nil {
		logger.Error("Repository failed to list listings", err, nil)
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}

	session := uc.sessions.Get(sessionID)
	session.mu.Lock()
	if mutate != nil {
		mutate(session)
	}
	visible := domain.VisibleListings(listings, session.query())
	if session.selection.Reconcile(visible) {
		logger.Debug("Selected listing is no longer visible, selection cleared", nil)
	}
	view := &domain.ExplorerView{
		Listings:          visible,
		SelectedListingID: copyString(session.selection.ListingID),
		SelectedStreet:    copyString(session.selection.Street),
		Filters:           session.criteria,
		Search:            session.search,
		TotalListings:     len(listings),
	}
	session.mu.Unlock()

	if view.SelectedListingID != nil {
		for i := range visible {
			if visible[i].ID == *view.SelectedListingID {
				selected := visible[i].Clone()
				view.SelectedListing = &selected
				break
			}
		}
	}
	view.Streets = uc.repo.Streets(ctx)
	view.Geometry = uc.geometry.State()

	logger.Debug("Explorer view composed", port.Fields{"visible": len(visible), "total": len(listings)})
	return view, nil
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
