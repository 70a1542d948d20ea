package rest

import (
	"accomodate-service/internal/contextkeys"
	"accomodate-service/internal/contracts"
	"accomodate-service/internal/core/port"
	"accomodate-service/internal/core/port/usecases_port"
	"net/http"
)

type AuthHandlers struct {
	registerUC usecases_port.RegisterUserUseCasePort
	loginUC    usecases_port.LoginUserUseCasePort
	logoutUC   usecases_port.LogoutUserUseCasePort
}

func NewAuthHandlers(
	registerUC usecases_port.RegisterUserUseCasePort,
	loginUC usecases_port.LoginUserUseCasePort,
	logoutUC usecases_port.LogoutUserUseCasePort,
) *AuthHandlers {
	return &AuthHandlers{registerUC: registerUC, loginUC: loginUC, logoutUC: logoutUC}
}

// Register обрабатывает POST /auth/register. Успешная регистрация сразу открывает сессию.
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Register"})

	var req RegisterRequest
	if err := decodeBody(r, contracts.RegisterRequest, &req); err != nil {
		writeUseCaseError(w, logger, err)
		return
	}

	// пароль в лог не пишем
	handlerLogger := logger.WithFields(port.Fields{"email": req.Email})
	handlerLogger.Info("Processing register request", nil)

	result, err := h.registerUC.Execute(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeUseCaseError(w, handlerLogger, err)
		return
	}

	handlerLogger.Info("User registered successfully", port.Fields{"user_id": result.Session.UserID.String()})
	RespondWithJSON(w, http.StatusCreated, toAuthResponse(result))
}

// Login обрабатывает POST /auth/login
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Login"})

	var req LoginRequest
	if err := decodeBody(r, contracts.LoginRequest, &req); err != nil {
		writeUseCaseError(w, logger, err)
		return
	}

	handlerLogger := logger.WithFields(port.Fields{"email": req.Email})
	handlerLogger.Info("Processing login request", nil)

	result, err := h.loginUC.Execute(r.Context(), req.Email, req.Password)
	if err != nil {
		writeUseCaseError(w, handlerLogger, err)
		return
	}

	handlerLogger.Info("User logged in successfully", port.Fields{"user_id": result.Session.UserID.String()})
	RespondWithJSON(w, http.StatusOK, toAuthResponse(result))
}

// Logout обрабатывает POST /auth/logout: токен текущей сессии перестает действовать.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Logout"})

	current, ok := CurrentUserFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Session not found in context")
		return
	}

	if err := h.logoutUC.Execute(r.Context(), current.SessionID); err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me обрабатывает GET /auth/me
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	current, ok := CurrentUserFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Session not found in context")
		return
	}
	RespondWithJSON(w, http.StatusOK, toSessionResponse(current))
}
