package constants

import "accomodate-service/internal/core/domain"

// Улицы района Grove St / Downtown, Jersey City.
var Streets = []domain.StreetDefinition{
	{Name: "Newark Ave", Start: domain.Coordinate{Lat: 40.7214, Lng: -74.0450}, End: domain.Coordinate{Lat: 40.7200, Lng: -74.0400}},
	{Name: "Grove St", Start: domain.Coordinate{Lat: 40.7170, Lng: -74.0430}, End: domain.Coordinate{Lat: 40.7230, Lng: -74.0430}},
	{Name: "Columbus Dr", Start: domain.Coordinate{Lat: 40.7180, Lng: -74.0460}, End: domain.Coordinate{Lat: 40.7180, Lng: -74.0380}},
	{Name: "Jersey Ave", Start: domain.Coordinate{Lat: 40.7160, Lng: -74.0480}, End: domain.Coordinate{Lat: 40.7240, Lng: -74.0480}},
}

// StreetNames - имена улиц в порядке объявления.
func StreetNames() []string {
	names := make([]string, len(Streets))
	for i, s := range Streets {
		names[i] = s.Name
	}
	return names
}

var Universities = []string{
	"Stevens Institute of Tech",
	"NJIT",
	"NYU",
	"Pace University",
	"Columbia",
}

const (
	DefaultUniversity         = "Unknown University"
	AvatarURLPrefix           = "https://api.dicebear.com/7.x/avataaars/svg?seed="
	GeometryLoadFailedMessage = "Unable to load street geometry. Please try again."
	AddressNotFoundMessage    = "Could not find this address in New Jersey. Please try being more specific."
	HousemateUniversity       = "Housemate"
	AnonymousResidentName     = "Anonymous"
	DefaultClusterPrecision   = 7
)
