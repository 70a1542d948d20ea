package usecase

import (
	"accomodate-service/internal/core/domain"
	"accomodate-service/internal/core/port"
	"accomodate-service/internal/core/port/usecases_port"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// sessionStarter открывает новую сессию: запись в хранилище, токен и состояние просмотра.
type sessionStarter struct {
	sessionStore port.SessionStorePort
	tokenSvc     port.TokenServicePort
	registry     *SessionRegistry
	ttl          time.Duration
}

func (s sessionStarter) start(ctx context.Context, user *domain.User) (*usecases_port.AuthResult, error) {
	session := domain.CurrentUser{
		SessionID: uuid.New(),
		UserID:    user.ID,
		Name:      user.Name,
		Email:     user.Email,
		ExpiresAt: time.Now().UTC().Add(s.ttl),
	}

	if err := s.sessionStore.Save(ctx, session, s.ttl); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	token, err := s.tokenSvc.GenerateToken(ctx, session, s.ttl)
	if err != nil {
		_ = s.sessionStore.Delete(ctx, session.SessionID)
		return nil, err
	}

	s.registry.Open(session.SessionID)
	return &usecases_port.AuthResult{Session: session, Token: token}, nil
}
