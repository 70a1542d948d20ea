package usecase

import (
	"accomodate-service/internal/constants"
	"accomodate-service/internal/core/domain"
	"fmt"
	"math/rand/v2"
	"net/url"
	"strings"

	"github.com/brianvoe/gofakeit/v7"
)

const (
	minHousesPerStreet       = 5
	maxHousesPerStreet       = 10
	maxResidentsPerSeedHouse = 4
	positionJitter           = 0.0004
	lookingThreshold         = 0.35
)

var (
	seedDiets       = []domain.Diet{domain.DietVegetarian, domain.DietNonVegetarian}
	seedPreferences = []domain.RoommatePreference{domain.RoommateAny, domain.RoommateMale, domain.RoommateFemale}
)

// ListingGenerator генерирует синтетические объявления вдоль заданных улиц.
type ListingGenerator struct {
	rng   *rand.Rand
	faker *gofakeit.Faker
}

// NewListingGenerator: seed == 0 - случайный запуск, иначе результат воспроизводим.
func NewListingGenerator(seed uint64) *ListingGenerator {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &ListingGenerator{
		rng:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		faker: gofakeit.New(seed),
	}
}

// Generate возвращает от 5 до 10 домов на каждую улицу, в порядке улиц.
func (g *ListingGenerator) Generate(streets []domain.StreetDefinition) []domain.Listing {
	var listings []domain.Listing
	for _, street := range streets {
		count := minHousesPerStreet + g.rng.IntN(maxHousesPerStreet-minHousesPerStreet+1)
		for i := 0; i < count; i++ {
			listings = append(listings, g.house(street, i))
		}
	}
	return listings
}

func (g *ListingGenerator) house(street domain.StreetDefinition, index int) domain.Listing {
	t := g.rng.Float64()
	position := domain.Coordinate{
		Lat: street.Start.Lat + (street.End.Lat-street.Start.Lat)*t + g.jitter(),
		Lng: street.Start.Lng + (street.End.Lng-street.Start.Lng)*t + g.jitter(),
	}

	residents := make([]domain.Resident, 1+g.rng.IntN(maxResidentsPerSeedHouse))
	for i := range residents {
		residents[i] = g.resident(i)
	}

	looking := g.rng.Float64() > lookingThreshold
	preference := domain.RoommateNone
	if looking {
		preference = seedPreferences[g.rng.IntN(len(seedPreferences))]
	}

	return domain.Listing{
		ID:                  fmt.Sprintf("h-%s-%d", strings.ReplaceAll(street.Name, " ", ""), index),
		Street:              street.Name,
		Address:             fmt.Sprintf("%d %s", 1+g.rng.IntN(200), street.Name),
		Position:            position,
		Residents:           residents,
		LookingForRoommates: looking,
		RoommatePreference:  preference,
		DietPreference:      domain.DeriveDietPreference(residents),
	}
}

func (g *ListingGenerator) resident(index int) domain.Resident {
	name := g.faker.Name()
	return domain.Resident{
		ID:         fmt.Sprintf("r-%d", index),
		Name:       name,
		University: constants.Universities[g.rng.IntN(len(constants.Universities))],
		Diet:       seedDiets[g.rng.IntN(len(seedDiets))],
		LookingFor: seedPreferences[g.rng.IntN(len(seedPreferences))],
		Image:      constants.AvatarURLPrefix + url.QueryEscape(name),
	}
}

// jitter - равномерно в [-0.0002, 0.0002].
func (g *ListingGenerator) jitter() float64 {
	return g.rng.Float64()*positionJitter - positionJitter/2
}
