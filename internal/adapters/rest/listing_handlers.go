package rest

import (
	"accomodate-service/internal/contextkeys"
	"accomodate-service/internal/contracts"
	"accomodate-service/internal/core/domain"
	"accomodate-service/internal/core/port"
	"accomodate-service/internal/core/port/usecases_port"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type ListingHandlers struct {
	getUC    usecases_port.GetListingUseCasePort
	createUC usecases_port.CreateListingUseCasePort
	updateUC usecases_port.UpdateListingUseCasePort
	deleteUC usecases_port.DeleteListingUseCasePort
}

func NewListingHandlers(
	getUC usecases_port.GetListingUseCasePort,
	createUC usecases_port.CreateListingUseCasePort,
	updateUC usecases_port.UpdateListingUseCasePort,
	deleteUC usecases_port.DeleteListingUseCasePort,
) *ListingHandlers {
	return &ListingHandlers{getUC: getUC, createUC: createUC, updateUC: updateUC, deleteUC: deleteUC}
}

// GetListing обрабатывает GET /listings/{listingID}
func (h *ListingHandlers) GetListing(w http.ResponseWriter, r *http.Request) {
	listingID := chi.URLParam(r, "listingID")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetListing", "listing_id": listingID})

	listing, err := h.getUC.Execute(r.Context(), listingID)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, listing)
}

// GetListingForm обрабатывает GET /listings/{listingID}/form: форма редактирования, заполненная текущими значениями.
func (h *ListingHandlers) GetListingForm(w http.ResponseWriter, r *http.Request) {
	listingID := chi.URLParam(r, "listingID")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetListingForm", "listing_id": listingID})

	listing, err := h.getUC.Execute(r.Context(), listingID)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toListingFormResponse(domain.FormFromListing(*listing)))
}

// CreateListing обрабатывает POST /listings
func (h *ListingHandlers) CreateListing(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreateListing"})
	current, _ := CurrentUserFromContext(r.Context())

	var req ListingFormRequest
	if err := decodeBody(r, contracts.ListingFormRequest, &req); err != nil {
		writeUseCaseError(w, logger, err)
		return
	}

	listing, err := h.createUC.Execute(r.Context(), current, req.toDomain())
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}

	logger.Info("Listing created", port.Fields{"listing_id": listing.ID})
	RespondWithJSON(w, http.StatusCreated, listing)
}

// UpdateListing обрабатывает PUT /listings/{listingID}
func (h *ListingHandlers) UpdateListing(w http.ResponseWriter, r *http.Request) {
	listingID := chi.URLParam(r, "listingID")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdateListing", "listing_id": listingID})
	current, _ := CurrentUserFromContext(r.Context())

	var req ListingFormRequest
	if err := decodeBody(r, contracts.ListingFormRequest, &req); err != nil {
		writeUseCaseError(w, logger, err)
		return
	}

	listing, err := h.updateUC.Execute(r.Context(), current, listingID, req.toDomain())
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, listing)
}

// DeleteListing обрабатывает DELETE /listings/{listingID}
func (h *ListingHandlers) DeleteListing(w http.ResponseWriter, r *http.Request) {
	listingID := chi.URLParam(r, "listingID")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "DeleteListing", "listing_id": listingID})
	current, _ := CurrentUserFromContext(r.Context())

	if err := h.deleteUC.Execute(r.Context(), current, listingID); err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
