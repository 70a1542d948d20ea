package usecase

import (
	"accomodate-service/internal/constants"
	"accomodate-service/internal/core/domain"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSeedListingsShape(t *testing.T) {
	listings := NewListingGenerator(12345).Generate(constants.Streets)

	perStreet := make(map[string]int)
	for _, l := range listings {
		perStreet[l.Street]++
		require.NoError(t, l.Validate(), l.ID)
		assert.Empty(t, l.OwnerID)
		assert.GreaterOrEqual(t, len(l.Residents), 1)
		assert.LessOrEqual(t, len(l.Residents), 4)
		assert.True(t, strings.HasSuffix(l.Address, " "+l.Street), l.Address)
		for _, r := range l.Residents {
			assert.Contains(t, constants.Universities, r.University)
			assert.NotEqual(t, domain.DietUnknown, r.Diet)
			assert.NotEmpty(t, r.Name)
			assert.True(t, strings.HasPrefix(r.Image, constants.AvatarURLPrefix))
		}
	}

	for _, s := range constants.Streets {
		count := perStreet[s.Name]
		assert.GreaterOrEqual(t, count, 5, s.Name)
		assert.LessOrEqual(t, count, 10, s.Name)
		assert.Equal(t, fmt.Sprintf("h-%s-0", strings.ReplaceAll(s.Name, " ", "")), firstIDOnStreet(listings, s.Name))
	}
}

func TestGenerateSeedListingsStayNearStreet(t *testing.T) {
	const jitter = 0.0002 + 1e-12
	listings := NewListingGenerator(7).Generate(constants.Streets)

	byName := make(map[string]domain.StreetDefinition)
	for _, s := range constants.Streets {
		byName[s.Name] = s
	}
	for _, l := range listings {
		s := byName[l.Street]
		assert.GreaterOrEqual(t, l.Position.Lat, math.Min(s.Start.Lat, s.End.Lat)-jitter, l.ID)
		assert.LessOrEqual(t, l.Position.Lat, math.Max(s.Start.Lat, s.End.Lat)+jitter, l.ID)
		assert.GreaterOrEqual(t, l.Position.Lng, math.Min(s.Start.Lng, s.End.Lng)-jitter, l.ID)
		assert.LessOrEqual(t, l.Position.Lng, math.Max(s.Start.Lng, s.End.Lng)+jitter, l.ID)
	}
}

func TestGenerateSeedListingsIsDeterministicForSeed(t *testing.T) {
	a := NewListingGenerator(99).Generate(constants.Streets)
	b := NewListingGenerator(99).Generate(constants.Streets)

	assert.Equal(t, a, b)
}

func firstIDOnStreet(listings []domain.Listing, street string) string {
	for _, l := range listings {
		if l.Street == street {
			return l.ID
		}
	}
	return ""
}
