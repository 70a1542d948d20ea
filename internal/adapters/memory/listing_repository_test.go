package memory_adapter

import (
	"context"
	"testing"

	"accomodate-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listing(id, street string) domain.Listing {
	l := domain.Listing{
		ID:                  id,
		Street:              street,
		Address:             "1 " + street,
		Residents:           []domain.Resident{{ID: "r-0", Diet: domain.DietVegetarian}},
		LookingForRoommates: true,
		RoommatePreference:  domain.RoommateAny,
	}
	l.Normalize()
	return l
}

func ids(listings []domain.Listing) []string {
	out := make([]string, len(listings))
	for i, l := range listings {
		out[i] = l.ID
	}
	return out
}

func TestListingRepositoryKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo, err := NewListingRepository([]string{"Grove St"}, []domain.Listing{listing("a", "Grove St"), listing("b", "Grove St")})
	require.NoError(t, err)

	require.NoError(t, repo.Add(ctx, listing("c", "Grove St")))

	updated := listing("a", "Grove St")
	updated.Address = "99 Grove St"
	require.NoError(t, repo.Update(ctx, updated))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, ids(all))
	assert.Equal(t, "99 Grove St", all[0].Address)
}

func TestListingRepositoryUpdateAndRemoveMissing(t *testing.T) {
	ctx := context.Background()
	repo, err := NewListingRepository(nil, nil)
	require.NoError(t, err)

	assert.ErrorIs(t, repo.Update(ctx, listing("ghost", "Grove St")), domain.ErrListingNotFound)
	assert.ErrorIs(t, repo.Remove(ctx, "ghost"), domain.ErrListingNotFound)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all, "update must never create")
}

func TestListingRepositoryRemoveReindexes(t *testing.T) {
	ctx := context.Background()
	repo, err := NewListingRepository(nil, []domain.Listing{listing("a", "X"), listing("b", "X"), listing("c", "X")})
	require.NoError(t, err)

	require.NoError(t, repo.Remove(ctx, "a"))

	got, err := repo.Get(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, "c", got.ID)

	_, err = repo.Get(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
}

func TestListingRepositoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo, err := NewListingRepository(nil, []domain.Listing{listing("a", "X")})
	require.NoError(t, err)

	got, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	got.Residents[0].Name = "mutated"

	again, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	assert.Empty(t, again.Residents[0].Name)
}

func TestListingRepositoryRejectsInvalid(t *testing.T) {
	bad := listing("a", "X")
	bad.Residents = nil

	_, err := NewListingRepository(nil, []domain.Listing{bad})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
