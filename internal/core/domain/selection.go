package domain

// Selection - состояние выбора: активное объявление и выбранная улица.
// Все переходы явные, чтобы связь "выбор дома сужает фильтр улицы" была видна в одном месте.
type Selection struct {
	ListingID *string
	Street    *string
}

// SelectListing выбирает объявление и, если оно на другой улице, переключает фильтр улицы на нее.
func (s *Selection) SelectListing(l Listing) {
	id := l.ID
	s.ListingID = &id
	if s.Street == nil || *s.Street != l.Street {
		s.narrowStreetTo(l.Street)
	}
}

func (s *Selection) narrowStreetTo(street string) {
	s.Street = &street
}

// SelectStreet задает фильтр улицы напрямую (nil - все улицы). Выбранное объявление не трогает.
func (s *Selection) SelectStreet(street *string) {
	if street == nil {
		s.Street = nil
		return
	}
	name := *street
	s.Street = &name
}

// ClearListing снимает выбор объявления.
func (s *Selection) ClearListing() {
	s.ListingID = nil
}

// ClearIfSelected снимает выбор, если выбрано объявление id. Возвращает true, если выбор снят.
func (s *Selection) ClearIfSelected(id string) bool {
	if s.ListingID != nil && *s.ListingID == id {
		s.ListingID = nil
		return true
	}
	return false
}

// Reconcile снимает выбор, если выбранное объявление отсутствует среди видимых.
// Возвращает true, если выбор был снят.
func (s *Selection) Reconcile(visible []Listing) bool {
	if s.ListingID == nil {
		return false
	}
	for _, l := range visible {
		if l.ID == *s.ListingID {
			return false
		}
	}
	s.ListingID = nil
	return true
}

// IsSelected - выбрано ли объявление id.
func (s Selection) IsSelected(id string) bool {
	return s.ListingID != nil && *s.ListingID == id
}
