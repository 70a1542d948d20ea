package domain

// ExplorerView - все, что нужно виджету карты для отрисовки одного кадра.
type ExplorerView struct {
	Listings          []Listing         `json:"listings"`
	SelectedListingID *string           `json:"selected_listing_id"`
	SelectedListing   *Listing          `json:"selected_listing,omitempty"`
	SelectedStreet    *string           `json:"selected_street"`
	Filters           FilterCriteria    `json:"filters"`
	Search            string            `json:"search"`
	Streets           []string          `json:"streets"`
	Geometry          GeometryLoadState `json:"geometry"`
	TotalListings     int               `json:"total_listings"`
}
