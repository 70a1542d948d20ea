package usecases_port

import (
	"accomodate-service/internal/core/domain"
	"context"
)

type GeometryCachePort interface {
	// Load запускает загрузку, если она допустима, и сразу возвращает состояние.
	Load(ctx context.Context) domain.GeometryLoadState
	State() domain.GeometryLoadState
	// Wait ждет завершения текущей загрузки, если она идет.
	Wait(ctx context.Context) (domain.GeometryLoadState, error)
}
