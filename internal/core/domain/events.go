package domain

import "time"

const (
	ListingCreated = "listing.created"
	ListingUpdated = "listing.updated"
	ListingDeleted = "listing.deleted"
)

// ListingEvent - факт изменения объявления, уходит в брокер и в SSE.
type ListingEvent struct {
	Type       string    `json:"type"`
	ListingID  string    `json:"listing_id"`
	Street     string    `json:"street"`
	OwnerID    string    `json:"owner_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewListingEvent(eventType string, l Listing) ListingEvent {
	return ListingEvent{
		Type:       eventType,
		ListingID:  l.ID,
		Street:     l.Street,
		OwnerID:    l.OwnerID,
		OccurredAt: time.Now().UTC(),
	}
}

// MarkerCluster - группа маркеров в одной ячейке geohash.
type MarkerCluster struct {
	Geohash    string     `json:"geohash"`
	Center     Coordinate `json:"center"`
	Count      int        `json:"count"`
	ListingIDs []string   `json:"listing_ids"`
}
