package usecase

import (
	"accomodate-service/internal/core/domain"
	"accomodate-service/internal/core/port"
	"context"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertListingInvariants: предпочтение None ровно тогда, когда дом не ищет соседей,
// а диета дома всегда выводится из диет жильцов.
func assertListingInvariants(t *testing.T, listings []domain.Listing, step int) {
	t.Helper()
	for _, l := range listings {
		assert.Equal(t, !l.LookingForRoommates, l.RoommatePreference == domain.RoommateNone,
			"step %d listing %s: looking=%v preference=%s", step, l.ID, l.LookingForRoommates, l.RoommatePreference)
		assert.Equal(t, domain.DeriveDietPreference(l.Residents), l.DietPreference, "step %d listing %s", step, l.ID)
		assert.NoError(t, l.Validate(), "step %d listing %s", step, l.ID)
	}
}

func TestRandomMutationSequenceKeepsInvariants(t *testing.T) {
	r := rand.New(rand.NewPCG(2024, 11))
	diets := []domain.Diet{domain.DietVegetarian, domain.DietNonVegetarian}
	prefs := []domain.RoommatePreference{domain.RoommateAny, domain.RoommateMale, domain.RoommateFemale}

	f := newListingFixture(t,
		seededListing("h-seed-0", "Grove St", domain.DietVegetarian, true, domain.RoommateMale),
		seededListing("h-seed-1", "Newark Ave", domain.DietNonVegetarian, false, domain.RoommateNone),
	)
	addresses := []string{"12 grove st, Jersey City", "40 newark ave, Jersey City", "7 grove st, Jersey City"}
	for i, addr := range addresses[1:] {
		f.geocoder.results[addr] = &port.GeocodeResult{Lat: 40.72 + float64(i)/1000, Lng: -74.04}
	}

	randomForm := func() domain.ListingForm {
		looking := r.IntN(2) == 0
		return domain.ListingForm{
			Address:             addresses[r.IntN(len(addresses))],
			Diet:                diets[r.IntN(len(diets))],
			LookingForRoommates: &looking,
			RoommatePreference:  prefs[r.IntN(len(prefs))],
			ResidentCount:       1 + r.IntN(5),
		}
	}

	ctx := context.Background()
	var owned []string
	for step := 0; step < 200; step++ {
		switch op := r.IntN(10); {
		case op < 4 || len(owned) == 0:
			listing, err := f.create.Execute(ctx, f.actor, randomForm())
			require.NoError(t, err, "step %d", step)
			owned = append(owned, listing.ID)
		case op < 8:
			id := owned[r.IntN(len(owned))]
			listing, err := f.update.Execute(ctx, f.actor, id, randomForm())
			require.NoError(t, err, "step %d", step)
			assert.Equal(t, id, listing.ID)
		case op < 9:
			i := r.IntN(len(owned))
			require.NoError(t, f.delete.Execute(ctx, f.actor, owned[i]), "step %d", step)
			owned = append(owned[:i], owned[i+1:]...)
		default:
			_, err := f.update.Execute(ctx, f.actor, fmt.Sprintf("h-seed-%d", r.IntN(2)), randomForm())
			assert.ErrorIs(t, err, domain.ErrForbidden, "step %d", step)
		}

		listings, err := f.repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, listings, len(owned)+2, "step %d", step)
		assertListingInvariants(t, listings, step)
	}
}
