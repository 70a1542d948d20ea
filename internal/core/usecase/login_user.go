package usecase

import (
	"accomodate-service/internal/contextkeys"
	"accomodate-service/internal/core/domain"
	"accomodate-service/internal/core/port"
	"accomodate-service/internal/core/port/usecases_port"
	"context"
	"fmt"
	"time"
)

type LoginUserUseCase struct {
	userRepo port.UserRepositoryPort
	sessions sessionStarter
}

func NewLoginUserUseCase(
	userRepo port.UserRepositoryPort,
	sessionStore port.SessionStorePort,
	tokenSvc port.TokenServicePort,
	registry *SessionRegistry,
	sessionTTL time.Duration,
) *LoginUserUseCase {
	return &LoginUserUseCase{
		userRepo: userRepo,
		sessions: sessionStarter{sessionStore: sessionStore, tokenSvc: tokenSvc, registry: registry, ttl: sessionTTL},
	}
}

func (uc *LoginUserUseCase) Execute(ctx context.Context, email, password string) (*usecases_port.AuthResult, error) {
	email = domain.NormalizeEmail(email)
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "LoginUser",
		"email":    email,
	})
	ucLogger.Info("Use case started: attempting to login user", nil)

	user, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		ucLogger.Error("Repository failed to find user by email", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if user == nil {
		ucLogger.Warn("Login failed: user not found", nil)
		return nil, domain.ErrInvalidCredentials
	}

	ucLogger = ucLogger.WithFields(port.Fields{"user_id": user.ID.String()})

	if !user.CheckPassword(password) {
		ucLogger.Warn("Login failed: invalid credentials", nil)
		return nil, domain.ErrInvalidCredentials
	}

	result, err := uc.sessions.start(ctx, user)
	if err != nil {
		ucLogger.Error("Failed to start session after successful login", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished: user logged in successfully", port.Fields{"session_id": result.Session.SessionID.String()})
	return result, nil
}
