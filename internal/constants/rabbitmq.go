package constants

// Обменник событий объявлений
const (
	ExchangeListingEvents = "listing_events"
	ExchangeTypeTopic     = "topic"
)

// Ключи маршрутизации
const (
	RoutingKeyListingCreated = "listing.created"
	RoutingKeyListingUpdated = "listing.updated"
	RoutingKeyListingDeleted = "listing.deleted"
)
