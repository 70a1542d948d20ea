package domain

import (
	"errors"
	"fmt"
)

// Определяем переменные-ошибки, которые могут быть возвращены из Use Cases.
var (
	ErrValidation         = errors.New("validation failed")
	ErrListingNotFound    = errors.New("listing not found")
	ErrAddressNotFound    = errors.New("address not found")
	ErrGeocoding          = errors.New("geocoding service unavailable")
	ErrForbidden          = errors.New("operation is not allowed for this user")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailInUse         = errors.New("user with this email already exists")
	ErrTokenInvalid       = errors.New("invalid jwt token")
	ErrSessionNotFound    = errors.New("session not found or expired")
)

// ValidationError - ошибка конкретного поля формы.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// FieldOf возвращает имя поля, к которому относится ошибка, если оно известно.
func FieldOf(err error) string {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Field
	}
	if errors.Is(err, ErrAddressNotFound) {
		return "address"
	}
	return ""
}
