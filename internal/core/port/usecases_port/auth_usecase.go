package usecases_port

import (
	"accomodate-service/internal/core/domain"
	"context"

	"github.com/google/uuid"
)

// AuthResult - результат успешного входа: пользователь сессии и токен доступа.
type AuthResult struct {
	Session domain.CurrentUser
	Token   string
}

type RegisterUserUseCasePort interface {
	Execute(ctx context.Context, name, email, password string) (*AuthResult, error)
}

type LoginUserUseCasePort interface {
	Execute(ctx context.Context, email, password string) (*AuthResult, error)
}

type LogoutUserUseCasePort interface {
	Execute(ctx context.Context, sessionID uuid.UUID) error
}

type ValidateSessionUseCasePort interface {
	Execute(ctx context.Context, tokenString string) (*domain.CurrentUser, error)
}
