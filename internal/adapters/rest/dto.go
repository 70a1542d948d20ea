package rest

import (
	"accomodate-service/internal/core/domain"
	"accomodate-service/internal/core/port/usecases_port"
	"time"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse - публичная часть записи сессии.
type SessionResponse struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

type AuthResponse struct {
	Token   string          `json:"token"`
	Session SessionResponse `json:"session"`
}

func toSessionResponse(u domain.CurrentUser) SessionResponse {
	return SessionResponse{
		SessionID: u.SessionID.String(),
		UserID:    u.UserID.String(),
		Name:      u.Name,
		Email:     u.Email,
		ExpiresAt: u.ExpiresAt,
	}
}

func toAuthResponse(res *usecases_port.AuthResult) AuthResponse {
	return AuthResponse{Token: res.Token, Session: toSessionResponse(res.Session)}
}

type FiltersRequest struct {
	Diet   domain.DietFilter   `json:"diet"`
	Gender domain.GenderFilter `json:"gender"`
}

type SearchRequest struct {
	Search string `json:"search"`
}

// StreetRequest: null снимает фильтр улицы.
type StreetRequest struct {
	Street *string `json:"street"`
}

type SelectionRequest struct {
	ListingID string `json:"listing_id"`
}

// ListingFormRequest - тело POST/PUT /listings. Незаданные поля получают значения формы по умолчанию.
type ListingFormRequest struct {
	Address             string                    `json:"address"`
	Diet                domain.Diet               `json:"diet,omitempty"`
	LookingForRoommates *bool                     `json:"looking_for_roommates,omitempty"`
	RoommatePreference  domain.RoommatePreference `json:"roommate_preference,omitempty"`
	University          string                    `json:"university,omitempty"`
	ResidentCount       int                       `json:"resident_count,omitempty"`
}

func (r ListingFormRequest) toDomain() domain.ListingForm {
	return domain.ListingForm{
		Address:             r.Address,
		Diet:                r.Diet,
		LookingForRoommates: r.LookingForRoommates,
		RoommatePreference:  r.RoommatePreference,
		University:          r.University,
		ResidentCount:       r.ResidentCount,
	}
}

func toListingFormResponse(f domain.ListingForm) ListingFormRequest {
	return ListingFormRequest{
		Address:             f.Address,
		Diet:                f.Diet,
		LookingForRoommates: f.LookingForRoommates,
		RoommatePreference:  f.RoommatePreference,
		University:          f.University,
		ResidentCount:       f.ResidentCount,
	}
}

type StreetsResponse struct {
	Streets []string `json:"streets"`
}

type ClustersResponse struct {
	Precision int                    `json:"precision"`
	Clusters  []domain.MarkerCluster `json:"clusters"`
}

type HealthResponse struct {
	Status         string `json:"status"`
	GeometryStatus string `json:"geometry_status"`
}
