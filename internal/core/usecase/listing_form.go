package usecase

import (
	"accomodate-service/internal/constants"
	"accomodate-service/internal/contextkeys"
	"accomodate-service/internal/core/domain"
	"accomodate-service/internal/core/port"
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var houseNumberPrefix = regexp.MustCompile(`^\d+[A-Za-z]?(-\d+)?\s+`)

// StreetFromAddress: первый сегмент до запятой без номера дома, в Title Case.
// "12 grove st, Jersey City, NJ" -> "Grove St".
func StreetFromAddress(address string) string {
	first := strings.TrimSpace(strings.SplitN(address, ",", 2)[0])
	street := strings.TrimSpace(houseNumberPrefix.ReplaceAllString(first, ""))
	if street == "" {
		street = first
	}
	// Caser хранит состояние, поэтому создаем его на каждый вызов.
	return cases.Title(language.English).String(street)
}

// resolveLocation геокодирует адрес при создании или смене адреса,
// иначе возвращает позицию и улицу существующего объявления.
func resolveLocation(ctx context.Context, geocoder port.GeocoderPort, address string, previous *domain.Listing) (domain.Coordinate, string, error) {
	logger := contextkeys.LoggerFromContext(ctx)

	if previous != nil && previous.Address == address {
		logger.Debug("Address unchanged, reusing stored position", port.Fields{"listing_id": previous.ID})
		return previous.Position, previous.Street, nil
	}

	result, err := geocoder.Geocode(ctx, address)
	if err != nil {
		logger.Error("Geocoder request failed", err, port.Fields{"address": address})
		return domain.Coordinate{}, "", fmt.Errorf("%w: %v", domain.ErrGeocoding, err)
	}
	if result == nil {
		logger.Warn("Address could not be geocoded", port.Fields{"address": address})
		return domain.Coordinate{}, "", domain.ErrAddressNotFound
	}

	return domain.Coordinate{Lat: result.Lat, Lng: result.Lng}, StreetFromAddress(address), nil
}

// buildResidents: первый жилец - автор (при редактировании сохраняет id, имя и аватар),
// остальные - соседи-заглушки с той же диетой, что и дом.
func buildResidents(form domain.ListingForm, actor domain.CurrentUser, previous *domain.Listing) []domain.Resident {
	looking := form.Looking()
	university := form.University
	if university == "" {
		university = constants.DefaultUniversity
	}

	batch := uuid.NewString()
	lead := domain.Resident{
		ID:         "r-new-" + batch + "-0",
		Name:       actor.Name,
		University: university,
		Diet:       form.Diet,
		LookingFor: domain.PreferenceFor(looking, form.RoommatePreference),
		Image:      constants.AvatarURLPrefix + batch,
	}
	if lead.Name == "" {
		lead.Name = constants.AnonymousResidentName
	}
	if previous != nil {
		if prevLead, ok := previous.LeadResident(); ok {
			lead.ID = prevLead.ID
			if prevLead.Name != "" {
				lead.Name = prevLead.Name
			}
			if prevLead.Image != "" {
				lead.Image = prevLead.Image
			}
		}
	}

	residents := make([]domain.Resident, 0, form.ResidentCount)
	residents = append(residents, lead)
	for i := 1; i < form.ResidentCount; i++ {
		id := fmt.Sprintf("r-new-%s-%d", batch, i)
		residents = append(residents, domain.Resident{
			ID:         id,
			Name:       fmt.Sprintf("Housemate %d", i+1),
			University: constants.HousemateUniversity,
			Diet:       form.Diet,
			LookingFor: domain.RoommateNone,
			Image:      constants.AvatarURLPrefix + id,
		})
	}
	return residents
}

// buildListing собирает объявление из формы и проверяет его инварианты.
func buildListing(id string, form domain.ListingForm, position domain.Coordinate, street, ownerID string, residents []domain.Resident) (domain.Listing, error) {
	listing := domain.Listing{
		ID:                  id,
		Street:              street,
		Address:             form.Address,
		Position:            position,
		Residents:           residents,
		LookingForRoommates: form.Looking(),
		RoommatePreference:  form.RoommatePreference,
		OwnerID:             ownerID,
	}
	listing.Normalize()
	if err := listing.Validate(); err != nil {
		return domain.Listing{}, err
	}
	return listing, nil
}

// listingEvents публикует факт изменения в брокер и подписчикам SSE.
// Ошибка брокера не отменяет уже примененное изменение.
type listingEvents struct {
	publisher port.ListingEventsPort
	notifier  port.NotifierPort
}

func (e listingEvents) emit(ctx context.Context, eventType string, listing domain.Listing) {
	logger := contextkeys.LoggerFromContext(ctx)
	event := domain.NewListingEvent(eventType, listing)

	if e.publisher != nil {
		if err := e.publisher.Publish(ctx, event); err != nil {
			logger.Warn("Failed to publish listing event", port.Fields{"event_type": eventType, "error": err.Error()})
		}
	}
	if e.notifier != nil {
		e.notifier.Notify(ctx, port.Event{Type: port.EventListingChanged, Data: event})
	}
}
