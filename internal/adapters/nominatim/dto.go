package nominatim_client

// searchResultDTO - элемент ответа /search?format=json. Координаты приходят строками.
type searchResultDTO struct {
	PlaceID     int64  `json:"place_id"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}
