package port

import (
	"accomodate-service/internal/core/domain"
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionStorePort хранит запись о текущем пользователе каждой сессии.
type SessionStorePort interface {
	Save(ctx context.Context, session domain.CurrentUser, ttl time.Duration) error
	// Find возвращает (nil, nil), если сессии нет или она истекла.
	Find(ctx context.Context, sessionID uuid.UUID) (*domain.CurrentUser, error)
	Delete(ctx context.Context, sessionID uuid.UUID) error
}
