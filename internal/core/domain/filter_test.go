package domain

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStreets = []string{"Newark Ave", "Grove St", "Columbus Dr", "Jersey Ave"}

func randomListings(r *rand.Rand, n int) []Listing {
	diets := []Diet{DietVegetarian, DietNonVegetarian}
	prefs := []RoommatePreference{RoommateAny, RoommateMale, RoommateFemale}

	listings := make([]Listing, 0, n)
	for i := 0; i < n; i++ {
		street := testStreets[r.IntN(len(testStreets))]
		residents := make([]Resident, 1+r.IntN(4))
		for j := range residents {
			residents[j] = Resident{ID: fmt.Sprintf("r-%d", j), Diet: diets[r.IntN(len(diets))]}
		}
		l := Listing{
			ID:                  fmt.Sprintf("h-%d", i),
			Street:              street,
			Address:             fmt.Sprintf("%d %s", 1+r.IntN(200), street),
			Residents:           residents,
			LookingForRoommates: r.Float64() > 0.35,
			RoommatePreference:  prefs[r.IntN(len(prefs))],
		}
		l.Normalize()
		listings = append(listings, l)
	}
	return listings
}

// naiveVisible - эталон: каждое условие проверяется отдельно и буквально.
func naiveVisible(listings []Listing, street *string, c FilterCriteria, search string) []Listing {
	var out []Listing
	for _, l := range listings {
		streetOK := street == nil || l.Street == *street
		dietOK := c.Diet == DietFilterAll || string(l.DietPreference) == string(c.Diet)
		genderOK := c.Gender == GenderFilterAny ||
			(l.LookingForRoommates && (string(l.RoommatePreference) == string(c.Gender) || l.RoommatePreference == RoommateAny))
		searchOK := strings.TrimSpace(search) == "" ||
			strings.Contains(strings.ToLower(l.Address), strings.ToLower(search)) ||
			strings.Contains(strings.ToLower(l.Street), strings.ToLower(search))
		if streetOK && dietOK && genderOK && searchOK {
			out = append(out, l)
		}
	}
	return out
}

func TestVisibleListingsMatchesNaiveReference(t *testing.T) {
	r := rand.New(rand.NewPCG(42, 7))
	diets := []DietFilter{DietFilterAll, DietFilterVegetarian, DietFilterNonVegetarian, DietFilterMixed}
	genders := []GenderFilter{GenderFilterAny, GenderFilterMale, GenderFilterFemale}
	searches := []string{"", "   ", "grove", "AVE", "1", "newark ave", "nothing-here"}

	for iter := 0; iter < 300; iter++ {
		listings := randomListings(r, r.IntN(40))

		var street *string
		if r.IntN(3) > 0 {
			s := testStreets[r.IntN(len(testStreets))]
			street = &s
		}
		criteria := FilterCriteria{Diet: diets[r.IntN(len(diets))], Gender: genders[r.IntN(len(genders))]}
		search := searches[r.IntN(len(searches))]

		got := VisibleListings(listings, ListingQuery{Street: street, Criteria: criteria, Search: search})
		want := naiveVisible(listings, street, criteria, search)

		require.Len(t, got, len(want), "iteration %d", iter)
		for i := range want {
			assert.Equal(t, want[i].ID, got[i].ID, "iteration %d position %d", iter, i)
		}
	}
}

func TestGenderFilterRequiresLookingForRoommates(t *testing.T) {
	notLooking := Listing{ID: "a", LookingForRoommates: false, RoommatePreference: RoommateNone}
	anyPref := Listing{ID: "b", LookingForRoommates: true, RoommatePreference: RoommateAny}
	female := Listing{ID: "c", LookingForRoommates: true, RoommatePreference: RoommateFemale}

	q := ListingQuery{Criteria: FilterCriteria{Diet: DietFilterAll, Gender: GenderFilterMale}}
	got := VisibleListings([]Listing{notLooking, anyPref, female}, q)

	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)
}

func TestSearchIsCaseInsensitiveOnAddressOrStreet(t *testing.T) {
	l := Listing{ID: "a", Street: "Grove St", Address: "12 Grove St"}
	for _, search := range []string{"GROVE", "12 gr", "st"} {
		q := ListingQuery{Criteria: DefaultFilterCriteria(), Search: search}
		assert.Len(t, VisibleListings([]Listing{l}, q), 1, search)
	}

	q := ListingQuery{Criteria: DefaultFilterCriteria(), Search: "jersey"}
	assert.Empty(t, VisibleListings([]Listing{l}, q))
}

func TestFilterCriteriaValidate(t *testing.T) {
	require.NoError(t, DefaultFilterCriteria().Validate())

	err := FilterCriteria{Diet: "Vegan", Gender: GenderFilterAny}.Validate()
	require.Error(t, err)
	assert.Equal(t, "diet", FieldOf(err))

	err = FilterCriteria{Diet: DietFilterAll, Gender: "Other"}.Validate()
	require.Error(t, err)
	assert.Equal(t, "gender", FieldOf(err))
}
