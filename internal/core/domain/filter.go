package domain

import "strings"

// DietFilter - значение фильтра по диете. DietFilterAll отключает фильтр.
type DietFilter string

const (
	DietFilterAll           DietFilter = "All"
	DietFilterVegetarian    DietFilter = "Vegetarian"
	DietFilterNonVegetarian DietFilter = "Non-Vegetarian"
	DietFilterMixed         DietFilter = "Mixed"
)

// GenderFilter - значение фильтра по полу соседа. GenderFilterAny отключает фильтр.
type GenderFilter string

const (
	GenderFilterAny    GenderFilter = "Any"
	GenderFilterMale   GenderFilter = "Male"
	GenderFilterFemale GenderFilter = "Female"
)

// FilterCriteria - критерии фильтрации списка.
type FilterCriteria struct {
	Diet   DietFilter   `json:"diet"`
	Gender GenderFilter `json:"gender"`
}

// DefaultFilterCriteria - фильтры выключены.
func DefaultFilterCriteria() FilterCriteria {
	return FilterCriteria{Diet: DietFilterAll, Gender: GenderFilterAny}
}

func (c FilterCriteria) Validate() error {
	switch c.Diet {
	case DietFilterAll, DietFilterVegetarian, DietFilterNonVegetarian, DietFilterMixed:
	default:
		return NewValidationError("diet", "unknown diet filter: "+string(c.Diet))
	}
	switch c.Gender {
	case GenderFilterAny, GenderFilterMale, GenderFilterFemale:
	default:
		return NewValidationError("gender", "unknown gender filter: "+string(c.Gender))
	}
	return nil
}

// ListingQuery - все входы фильтра.
type ListingQuery struct {
	Street   *string
	Criteria FilterCriteria
	Search   string
}

// Matches проверяет все четыре условия фильтра для одного объявления.
func (q ListingQuery) Matches(l Listing) bool {
	if q.Street != nil && l.Street != *q.Street {
		return false
	}

	if q.Criteria.Diet != "" && q.Criteria.Diet != DietFilterAll &&
		string(l.DietPreference) != string(q.Criteria.Diet) {
		return false
	}

	if q.Criteria.Gender != "" && q.Criteria.Gender != GenderFilterAny {
		if !l.LookingForRoommates {
			return false
		}
		if string(l.RoommatePreference) != string(q.Criteria.Gender) && l.RoommatePreference != RoommateAny {
			return false
		}
	}

	if strings.TrimSpace(q.Search) != "" {
		search := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(l.Address), search) &&
			!strings.Contains(strings.ToLower(l.Street), search) {
			return false
		}
	}

	return true
}

// VisibleListings - чистая функция фильтрации. Порядок исходного среза сохраняется.
func VisibleListings(listings []Listing, q ListingQuery) []Listing {
	visible := make([]Listing, 0, len(listings))
	for _, l := range listings {
		if q.Matches(l) {
			visible = append(visible, l)
		}
	}
	return visible
}
