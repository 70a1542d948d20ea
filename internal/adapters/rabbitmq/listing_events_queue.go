package rabbitmq_adapter

import (
	"accomodate-service/internal/constants"
	"accomodate-service/internal/contracts"
	"accomodate-service/internal/contextkeys"
	"accomodate-service/internal/core/domain"
	"accomodate-service/internal/core/port"
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	publishTimeout = 10 * time.Second
	eventName      = "ListingEvent"
	eventVersion   = "1.0.0"
)

// MessagePublisher - то, что нужно адаптеру от rabbitmq_producer.Publisher.
type MessagePublisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

// listingEventDTO соответствует контракту listing-event/v1.
type listingEventDTO struct {
	Type       string    `json:"type"`
	ListingID  string    `json:"listingId"`
	Street     string    `json:"street"`
	OwnerID    string    `json:"ownerId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// ListingEventsQueueAdapter отправляет события объявлений в topic-обменник.
type ListingEventsQueueAdapter struct {
	producer MessagePublisher
}

func NewListingEventsQueueAdapter(producer MessagePublisher) (*ListingEventsQueueAdapter, error) {
	if producer == nil {
		return nil, fmt.Errorf("producer cannot be nil")
	}
	return &ListingEventsQueueAdapter{producer: producer}, nil
}

func routingKeyFor(eventType string) (string, error) {
	switch eventType {
	case domain.ListingCreated:
		return constants.RoutingKeyListingCreated, nil
	case domain.ListingUpdated:
		return constants.RoutingKeyListingUpdated, nil
	case domain.ListingDeleted:
		return constants.RoutingKeyListingDeleted, nil
	default:
		return "", fmt.Errorf("unknown listing event type %q", eventType)
	}
}

func (a *ListingEventsQueueAdapter) Publish(ctx context.Context, event domain.ListingEvent) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":  "ListingEventsQueueAdapter",
		"event_type": event.Type,
		"listing_id": event.ListingID,
	})

	routingKey, err := routingKeyFor(event.Type)
	if err != nil {
		return err
	}

	body, err := json.Marshal(listingEventDTO{
		Type:       event.Type,
		ListingID:  event.ListingID,
		Street:     event.Street,
		OwnerID:    event.OwnerID,
		OccurredAt: event.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal listing event %s: %w", event.ListingID, err)
	}
	if err := contracts.ValidateEvent(eventName, eventVersion, body); err != nil {
		logger.Error("Listing event does not match its contract", err, nil)
		return err
	}

	headers := amqp.Table{
		"event-type":    eventName,
		"event-version": eventVersion,
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		headers["x-trace-id"] = traceID
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Headers:      headers,
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	logger.Debug("Publishing listing event", port.Fields{"routing_key": routingKey})
	if err := a.producer.Publish(publishCtx, routingKey, msg); err != nil {
		return fmt.Errorf("failed to publish listing event: %w", err)
	}
	return nil
}

// NoopListingEvents используется, когда брокер не настроен.
type NoopListingEvents struct{}

func (NoopListingEvents) Publish(ctx context.Context, event domain.ListingEvent) error {
	return nil
}
