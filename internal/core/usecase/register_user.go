package usecase

import (
	"accomodate-service/internal/contextkeys"
	"accomodate-service/internal/core/domain"
	"accomodate-service/internal/core/port"
	"accomodate-service/internal/core/port/usecases_port"
	"context"
	"fmt"
	"strings"
	"time"
)

type RegisterUserUseCase struct {
	userRepo port.UserRepositoryPort
	sessions sessionStarter
}

func NewRegisterUserUseCase(
	userRepo port.UserRepositoryPort,
	sessionStore port.SessionStorePort,
	tokenSvc port.TokenServicePort,
	registry *SessionRegistry,
	sessionTTL time.Duration,
) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		userRepo: userRepo,
		sessions: sessionStarter{sessionStore: sessionStore, tokenSvc: tokenSvc, registry: registry, ttl: sessionTTL},
	}
}

func (uc *RegisterUserUseCase) Execute(ctx context.Context, name, email, password string) (*usecases_port.AuthResult, error) {
	email = domain.NormalizeEmail(email)
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "RegisterUser",
		"email":    email,
	})
	ucLogger.Info("Use case started: attempting to register user", nil)

	switch {
	case strings.TrimSpace(name) == "":
		return nil, domain.NewValidationError("name", "name is required")
	case email == "":
		return nil, domain.NewValidationError("email", "email is required")
	case password == "":
		return nil, domain.NewValidationError("password", "password is required")
	}

	existingUser, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		ucLogger.Error("Repository failed while checking for existing email", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if existingUser != nil {
		ucLogger.Warn("Registration failed: email already in use", nil)
		return nil, domain.ErrEmailInUse
	}

	// Хэширование пароля происходит внутри NewUser
	user, err := domain.NewUser(name, email, password)
	if err != nil {
		ucLogger.Error("Failed to create new user domain object", err, nil)
		return nil, err
	}
	ucLogger = ucLogger.WithFields(port.Fields{"user_id": user.ID.String()})

	if err := uc.userRepo.Create(ctx, user); err != nil {
		ucLogger.Error("Repository failed to create user", err, nil)
		return nil, err
	}

	// Сразу после регистрации пользователь входит в систему
	result, err := uc.sessions.start(ctx, user)
	if err != nil {
		ucLogger.Error("Failed to start session after successful registration", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished: user registered successfully", port.Fields{"session_id": result.Session.SessionID.String()})
	return result, nil
}
