package port

import (
	"accomodate-service/internal/core/domain"
	"context"

	"github.com/google/uuid"
)

// UserRepositoryPort - каталог учетных записей (credential store).
type UserRepositoryPort interface {
	Create(ctx context.Context, user *domain.User) error
	// FindByEmail возвращает (nil, nil), если пользователь не найден.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}
