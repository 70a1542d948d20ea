package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestSelectListingNarrowsStreet(t *testing.T) {
	var s Selection
	s.SelectStreet(strPtr("Grove St"))

	s.SelectListing(Listing{ID: "h-Jersey Ave-0", Street: "Jersey Ave"})

	require.NotNil(t, s.ListingID)
	require.NotNil(t, s.Street)
	assert.Equal(t, "h-Jersey Ave-0", *s.ListingID)
	assert.Equal(t, "Jersey Ave", *s.Street)
}

func TestSelectStreetKeepsListing(t *testing.T) {
	var s Selection
	s.SelectListing(Listing{ID: "a", Street: "Grove St"})

	s.SelectStreet(nil)

	assert.Nil(t, s.Street)
	assert.True(t, s.IsSelected("a"))
}

func TestReconcileIsIdempotent(t *testing.T) {
	visible := []Listing{{ID: "a"}, {ID: "b"}}

	var kept Selection
	kept.ListingID = strPtr("a")
	assert.False(t, kept.Reconcile(visible))
	assert.False(t, kept.Reconcile(visible))
	assert.True(t, kept.IsSelected("a"))

	var dropped Selection
	dropped.ListingID = strPtr("z")
	assert.True(t, dropped.Reconcile(visible))
	assert.False(t, dropped.Reconcile(visible))
	assert.Nil(t, dropped.ListingID)
}

func TestClearIfSelected(t *testing.T) {
	var s Selection
	s.ListingID = strPtr("a")

	assert.False(t, s.ClearIfSelected("b"))
	assert.True(t, s.ClearIfSelected("a"))
	assert.Nil(t, s.ListingID)
}
