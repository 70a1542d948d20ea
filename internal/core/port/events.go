package port

import (
	"accomodate-service/internal/core/domain"
	"context"
)

// ListingEventsPort публикует изменения объявлений во внешний брокер.
type ListingEventsPort interface {
	Publish(ctx context.Context, event domain.ListingEvent) error
}

// Event - событие, которое мы отправляем подписчикам.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

const (
	EventGeometryState  = "geometry_state"
	EventListingChanged = "listing_changed"
)

// NotifierPort - контракт для отправки уведомлений в реальном времени.
type NotifierPort interface {
	Notify(ctx context.Context, event Event)
}
