package port

import (
	"accomodate-service/internal/core/domain"
	"context"
)

// GeocodeResult - лучшее совпадение для адреса.
type GeocodeResult struct {
	Lat         float64
	Lng         float64
	DisplayName string
}

// GeocoderPort переводит адрес в координату.
// (nil, nil) - адрес не найден; ошибка - сбой транспорта.
type GeocoderPort interface {
	Geocode(ctx context.Context, address string) (*GeocodeResult, error)
}

// GeometryProviderPort возвращает геометрию улиц одним пакетным запросом.
// Результат выровнен по входному срезу имен.
type GeometryProviderPort interface {
	FetchGeometry(ctx context.Context, streetNames []string) ([]domain.StreetGeometry, error)
}
