package usecase

import (
	"accomodate-service/internal/contextkeys"
	"accomodate-service/internal/core/domain"
	"accomodate-service/internal/core/port"
	"context"
	"fmt"
)

type ValidateSessionUseCase struct {
	tokenSvc     port.TokenServicePort
	sessionStore port.SessionStorePort
}

func NewValidateSessionUseCase(tokenSvc port.TokenServicePort, sessionStore port.SessionStorePort) *ValidateSessionUseCase {
	return &ValidateSessionUseCase{tokenSvc: tokenSvc, sessionStore: sessionStore}
}

// Execute проверяет токен и наличие его сессии в хранилище.
func (uc *ValidateSessionUseCase) Execute(ctx context.Context, tokenString string) (*domain.CurrentUser, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "ValidateSession",
	})

	claims, err := uc.tokenSvc.ValidateToken(ctx, tokenString)
	if err != nil {
		ucLogger.Warn("Token validation failed", port.Fields{"error": err.Error()})
		return nil, err
	}

	session, err := uc.sessionStore.Find(ctx, claims.SessionID)
	if err != nil {
		ucLogger.Error("Session store lookup failed", err, port.Fields{"session_id": claims.SessionID.String()})
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	if session == nil {
		ucLogger.Warn("Session not found or expired", port.Fields{"session_id": claims.SessionID.String()})
		return nil, domain.ErrSessionNotFound
	}
	if session.UserID != claims.UserID {
		ucLogger.Warn("Token user does not match session user", port.Fields{"session_id": claims.SessionID.String()})
		return nil, domain.ErrTokenInvalid
	}

	ucLogger.Debug("Session validated", port.Fields{"user_id": session.UserID.String()})
	return session, nil
}
