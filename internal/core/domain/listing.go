package domain

import "fmt"

// Diet - пищевые привычки жильца.
type Diet string

const (
	DietVegetarian    Diet = "Vegetarian"
	DietNonVegetarian Diet = "Non-Vegetarian"
	DietUnknown       Diet = "Unknown"
)

// DietPreference - итоговая характеристика дома, выводится из диет жильцов.
type DietPreference string

const (
	DietPreferenceVegetarian    DietPreference = "Vegetarian"
	DietPreferenceNonVegetarian DietPreference = "Non-Vegetarian"
	DietPreferenceMixed         DietPreference = "Mixed"
)

// RoommatePreference - кого ищут в соседи.
type RoommatePreference string

const (
	RoommateAny    RoommatePreference = "Any"
	RoommateMale   RoommatePreference = "Male"
	RoommateFemale RoommatePreference = "Female"
	RoommateNone   RoommatePreference = "None"
)

// IsSeeking - допустимое значение для дома, который ищет соседей.
func (p RoommatePreference) IsSeeking() bool {
	return p == RoommateAny || p == RoommateMale || p == RoommateFemale
}

// Coordinate - пара (широта, долгота).
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Resident - житель дома.
type Resident struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	University string             `json:"university"`
	Diet       Diet               `json:"diet"`
	LookingFor RoommatePreference `json:"looking_for"`
	Image      string             `json:"image"`
}

// Listing - объявление о доме. Residents[0] - ведущий жилец (владелец).
type Listing struct {
	ID                  string             `json:"id"`
	Street              string             `json:"street"`
	Address             string             `json:"address"`
	Position            Coordinate         `json:"position"`
	Residents           []Resident         `json:"residents"`
	LookingForRoommates bool               `json:"looking_for_roommates"`
	RoommatePreference  RoommatePreference `json:"roommate_preference"`
	DietPreference      DietPreference     `json:"diet_preference"`
	OwnerID             string             `json:"owner_id,omitempty"`
}

// DeriveDietPreference: Mixed, если у жильцов больше одной различной диеты.
// Единственное значение Vegetarian дает Vegetarian, любое другое - Non-Vegetarian.
func DeriveDietPreference(residents []Resident) DietPreference {
	unique := make(map[Diet]struct{}, len(residents))
	for _, r := range residents {
		unique[r.Diet] = struct{}{}
	}
	if len(unique) > 1 {
		return DietPreferenceMixed
	}
	if _, ok := unique[DietVegetarian]; ok {
		return DietPreferenceVegetarian
	}
	return DietPreferenceNonVegetarian
}

// PreferenceFor возвращает предпочтение, согласованное с флагом поиска соседей.
func PreferenceFor(looking bool, pref RoommatePreference) RoommatePreference {
	if !looking {
		return RoommateNone
	}
	return pref
}

// Normalize пересчитывает производные поля: диету дома и None для тех, кто не ищет соседей.
func (l *Listing) Normalize() {
	l.RoommatePreference = PreferenceFor(l.LookingForRoommates, l.RoommatePreference)
	l.DietPreference = DeriveDietPreference(l.Residents)
}

// Validate проверяет инварианты объявления.
func (l Listing) Validate() error {
	if l.ID == "" {
		return NewValidationError("id", "listing id is required")
	}
	if len(l.Residents) == 0 {
		return NewValidationError("residents", "listing must have at least one resident")
	}
	if l.LookingForRoommates && !l.RoommatePreference.IsSeeking() {
		return NewValidationError("roommate_preference",
			fmt.Sprintf("preference %q is not allowed for a listing looking for roommates", l.RoommatePreference))
	}
	if !l.LookingForRoommates && l.RoommatePreference != RoommateNone {
		return NewValidationError("roommate_preference", "preference must be None when not looking for roommates")
	}
	if l.DietPreference != DeriveDietPreference(l.Residents) {
		return NewValidationError("diet_preference", "diet preference does not match residents")
	}
	return nil
}

// LeadResident - первый жилец, если он есть.
func (l Listing) LeadResident() (Resident, bool) {
	if len(l.Residents) == 0 {
		return Resident{}, false
	}
	return l.Residents[0], true
}

// Clone возвращает копию, не разделяющую срез жильцов.
func (l Listing) Clone() Listing {
	c := l
	c.Residents = append([]Resident(nil), l.Residents...)
	return c
}

// StreetDefinition - улица для генератора: имя и две конечные точки.
type StreetDefinition struct {
	Name  string
	Start Coordinate
	End   Coordinate
}
