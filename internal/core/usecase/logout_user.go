package usecase

import (
	"accomodate-service/internal/contextkeys"
	"accomodate-service/internal/core/port"
	"context"
	"fmt"

	"github.com/google/uuid"
)

type LogoutUserUseCase struct {
	sessionStore port.SessionStorePort
	registry     *SessionRegistry
}

func NewLogoutUserUseCase(sessionStore port.SessionStorePort, registry *SessionRegistry) *LogoutUserUseCase {
	return &LogoutUserUseCase{sessionStore: sessionStore, registry: registry}
}

// Execute удаляет запись сессии и ее состояние просмотра. Токен сессии перестает действовать.
func (uc *LogoutUserUseCase) Execute(ctx context.Context, sessionID uuid.UUID) error {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "LogoutUser",
		"session_id": sessionID.String(),
	})

	if err := uc.sessionStore.Delete(ctx, sessionID); err != nil {
		ucLogger.Error("Session store failed to delete session", err, nil)
		return fmt.Errorf("failed to delete session: %w", err)
	}
	uc.registry.Drop(sessionID)

	ucLogger.Info("Use case finished: user logged out", nil)
	return nil
}
