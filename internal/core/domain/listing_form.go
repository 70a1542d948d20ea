package domain

import (
	"fmt"
	"strings"
)

const maxResidentCount = 10

// ListingForm - данные формы создания или редактирования объявления.
type ListingForm struct {
	Address             string
	Diet                Diet
	LookingForRoommates *bool
	RoommatePreference  RoommatePreference
	University          string
	ResidentCount       int
}

// WithDefaults заполняет незаданные поля значениями формы по умолчанию.
func (f ListingForm) WithDefaults() ListingForm {
	if f.Diet == "" {
		f.Diet = DietNonVegetarian
	}
	if f.LookingForRoommates == nil {
		looking := true
		f.LookingForRoommates = &looking
	}
	if f.RoommatePreference == "" {
		f.RoommatePreference = RoommateAny
	}
	if f.ResidentCount == 0 {
		f.ResidentCount = 1
	}
	f.Address = strings.TrimSpace(f.Address)
	f.University = strings.TrimSpace(f.University)
	return f
}

func (f ListingForm) Looking() bool {
	return f.LookingForRoommates == nil || *f.LookingForRoommates
}

// Validate ожидает форму после WithDefaults.
func (f ListingForm) Validate() error {
	if f.Address == "" {
		return NewValidationError("address", "address is required")
	}
	if f.Diet != DietVegetarian && f.Diet != DietNonVegetarian {
		return NewValidationError("diet", fmt.Sprintf("unsupported diet %q", f.Diet))
	}
	if !f.RoommatePreference.IsSeeking() {
		return NewValidationError("roommate_preference", fmt.Sprintf("unsupported roommate preference %q", f.RoommatePreference))
	}
	if f.ResidentCount < 1 || f.ResidentCount > maxResidentCount {
		return NewValidationError("resident_count", fmt.Sprintf("resident count must be between 1 and %d", maxResidentCount))
	}
	return nil
}

// FormFromListing восстанавливает форму по существующему объявлению.
func FormFromListing(l Listing) ListingForm {
	looking := l.LookingForRoommates
	pref := l.RoommatePreference
	if !looking {
		pref = RoommateAny
	}
	diet := DietNonVegetarian
	if l.DietPreference == DietPreferenceVegetarian {
		diet = DietVegetarian
	}
	university := ""
	if lead, ok := l.LeadResident(); ok {
		university = lead.University
	}
	return ListingForm{
		Address:             l.Address,
		Diet:                diet,
		LookingForRoommates: &looking,
		RoommatePreference:  pref,
		University:          university,
		ResidentCount:       len(l.Residents),
	}
}
