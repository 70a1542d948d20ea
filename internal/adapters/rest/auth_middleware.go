package rest

import (
	"accomodate-service/internal/contextkeys"
	"accomodate-service/internal/core/domain"
	"accomodate-service/internal/core/port"
	"accomodate-service/internal/core/port/usecases_port"
	"context"
	"net/http"
	"strings"
)

type contextKey string

const currentUserKey = contextKey("currentUser")

type AuthMiddleware struct {
	validateUC usecases_port.ValidateSessionUseCasePort
}

func NewAuthMiddleware(validateUC usecases_port.ValidateSessionUseCasePort) *AuthMiddleware {
	return &AuthMiddleware{validateUC: validateUC}
}

// Authenticate проверяет Bearer-токен и кладет пользователя сессии в контекст.
func (am *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"middleware": "Authenticate"})

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			WriteJSONError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			WriteJSONError(w, http.StatusUnauthorized, "Invalid token format")
			return
		}

		current, err := am.validateUC.Execute(r.Context(), tokenString)
		if err != nil {
			logger.Warn("Session validation failed", port.Fields{"error": err.Error()})
			writeUseCaseError(w, logger, err)
			return
		}

		ctx := context.WithValue(r.Context(), currentUserKey, *current)
		ctx = contextkeys.ContextWithLogger(ctx, contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
			"user_id":    current.UserID.String(),
			"session_id": current.SessionID.String(),
		}))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CurrentUserFromContext возвращает пользователя, положенного Authenticate.
func CurrentUserFromContext(ctx context.Context) (domain.CurrentUser, bool) {
	current, ok := ctx.Value(currentUserKey).(domain.CurrentUser)
	return current, ok
}
