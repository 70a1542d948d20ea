package port

import (
	"accomodate-service/internal/core/domain"
	"context"
	"time"
)

// TokenServicePort определяет, что мы хотим делать с токенами.
type TokenServicePort interface {
	GenerateToken(ctx context.Context, session domain.CurrentUser, ttl time.Duration) (string, error)
	// ValidateToken проверяет подпись и срок и возвращает claims.
	ValidateToken(ctx context.Context, tokenString string) (*domain.Claims, error)
}
