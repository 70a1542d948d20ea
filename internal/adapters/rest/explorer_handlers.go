package rest

import (
	"accomodate-service/internal/constants"
	"accomodate-service/internal/contextkeys"
	"accomodate-service/internal/contracts"
	"accomodate-service/internal/core/domain"
	"accomodate-service/internal/core/port"
	"accomodate-service/internal/core/port/usecases_port"
	"net/http"
	"strconv"
)

type ExplorerHandlers struct {
	explorerUC usecases_port.ExplorerUseCasePort
	clustersUC usecases_port.ClusterListingsUseCasePort
}

func NewExplorerHandlers(explorerUC usecases_port.ExplorerUseCasePort, clustersUC usecases_port.ClusterListingsUseCasePort) *ExplorerHandlers {
	return &ExplorerHandlers{explorerUC: explorerUC, clustersUC: clustersUC}
}

// respondView - общий хвост для всех операций над состоянием просмотра.
func (h *ExplorerHandlers) respondView(w http.ResponseWriter, logger port.LoggerPort, view *domain.ExplorerView, err error) {
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, view)
}

// GetView обрабатывает GET /explorer
func (h *ExplorerHandlers) GetView(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetExplorerView"})
	current, _ := CurrentUserFromContext(r.Context())

	view, err := h.explorerUC.View(r.Context(), current.SessionID)
	h.respondView(w, logger, view, err)
}

// SetFilters обрабатывает PUT /explorer/filters
func (h *ExplorerHandlers) SetFilters(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "SetFilters"})
	current, _ := CurrentUserFromContext(r.Context())

	var req FiltersRequest
	if err := decodeBody(r, contracts.FiltersRequest, &req); err != nil {
		writeUseCaseError(w, logger, err)
		return
	}

	view, err := h.explorerUC.SetFilters(r.Context(), current.SessionID, domain.FilterCriteria{Diet: req.Diet, Gender: req.Gender})
	h.respondView(w, logger, view, err)
}

// SetSearch обрабатывает PUT /explorer/search
func (h *ExplorerHandlers) SetSearch(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "SetSearch"})
	current, _ := CurrentUserFromContext(r.Context())

	var req SearchRequest
	if err := decodeBody(r, contracts.SearchRequest, &req); err != nil {
		writeUseCaseError(w, logger, err)
		return
	}

	view, err := h.explorerUC.SetSearch(r.Context(), current.SessionID, req.Search)
	h.respondView(w, logger, view, err)
}

// SelectStreet обрабатывает PUT /explorer/street
func (h *ExplorerHandlers) SelectStreet(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "SelectStreet"})
	current, _ := CurrentUserFromContext(r.Context())

	var req StreetRequest
	if err := decodeBody(r, contracts.StreetRequest, &req); err != nil {
		writeUseCaseError(w, logger, err)
		return
	}

	view, err := h.explorerUC.SelectStreet(r.Context(), current.SessionID, req.Street)
	h.respondView(w, logger, view, err)
}

// SelectListing обрабатывает PUT /explorer/selection
func (h *ExplorerHandlers) SelectListing(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "SelectListing"})
	current, _ := CurrentUserFromContext(r.Context())

	var req SelectionRequest
	if err := decodeBody(r, contracts.SelectionRequest, &req); err != nil {
		writeUseCaseError(w, logger, err)
		return
	}

	view, err := h.explorerUC.SelectListing(r.Context(), current.SessionID, req.ListingID)
	h.respondView(w, logger, view, err)
}

// ClearSelection обрабатывает DELETE /explorer/selection
func (h *ExplorerHandlers) ClearSelection(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ClearSelection"})
	current, _ := CurrentUserFromContext(r.Context())

	view, err := h.explorerUC.ClearSelection(r.Context(), current.SessionID)
	h.respondView(w, logger, view, err)
}

// Clusters обрабатывает GET /explorer/clusters?precision=N
func (h *ExplorerHandlers) Clusters(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Clusters"})
	current, _ := CurrentUserFromContext(r.Context())

	precision := constants.DefaultClusterPrecision
	if raw := r.URL.Query().Get("precision"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			WriteFieldError(w, http.StatusBadRequest, "precision", "precision must be an integer")
			return
		}
		precision = parsed
	}

	clusters, err := h.clustersUC.Execute(r.Context(), current.SessionID, precision)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, ClustersResponse{Precision: precision, Clusters: clusters})
}

// Streets обрабатывает GET /streets
func (h *ExplorerHandlers) Streets(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, StreetsResponse{Streets: h.explorerUC.Streets(r.Context())})
}
