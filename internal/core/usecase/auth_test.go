package usecase

import (
	"accomodate-service/internal/core/domain"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	users    *memoryUsers
	store    *memorySessions
	tokens   *fakeTokenService
	registry *SessionRegistry
	register *RegisterUserUseCase
	login    *LoginUserUseCase
	logout   *LogoutUserUseCase
	validate *ValidateSessionUseCase
}

func newAuthFixture() authFixture {
	f := authFixture{
		users:    newMemoryUsers(),
		store:    newMemorySessions(),
		tokens:   newFakeTokenService(),
		registry: NewSessionRegistry(),
	}
	f.register = NewRegisterUserUseCase(f.users, f.store, f.tokens, f.registry, time.Hour)
	f.login = NewLoginUserUseCase(f.users, f.store, f.tokens, f.registry, time.Hour)
	f.logout = NewLogoutUserUseCase(f.store, f.registry)
	f.validate = NewValidateSessionUseCase(f.tokens, f.store)
	return f
}

func TestRegisterAutoLogsIn(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	result, err := f.register.Execute(ctx, "Priya", "  Priya@Example.com", "secret")
	require.NoError(t, err)

	assert.Equal(t, "priya@example.com", result.Session.Email)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, 1, f.registry.Len())

	current, err := f.validate.Execute(ctx, result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.Session.UserID, current.UserID)
	assert.Equal(t, "Priya", current.Name)
}

func TestRegisterExistingEmailConflicts(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	_, err := f.register.Execute(ctx, "Priya", "priya@example.com", "secret")
	require.NoError(t, err)
	sessionsBefore := f.registry.Len()

	result, err := f.register.Execute(ctx, "Other", "PRIYA@example.com", "another")

	assert.ErrorIs(t, err, domain.ErrEmailInUse)
	assert.Nil(t, result)
	assert.Equal(t, 1, f.users.count())
	assert.Equal(t, sessionsBefore, f.registry.Len())
}

func TestRegisterRequiresFields(t *testing.T) {
	f := newAuthFixture()

	_, err := f.register.Execute(context.Background(), "", "a@b.c", "x")
	assert.Equal(t, "name", domain.FieldOf(err))
	_, err = f.register.Execute(context.Background(), "A", " ", "x")
	assert.Equal(t, "email", domain.FieldOf(err))
	_, err = f.register.Execute(context.Background(), "A", "a@b.c", "")
	assert.Equal(t, "password", domain.FieldOf(err))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	_, err := f.register.Execute(ctx, "Priya", "priya@example.com", "secret")
	require.NoError(t, err)

	_, err = f.login.Execute(ctx, "priya@example.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = f.login.Execute(ctx, "nobody@example.com", "secret")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	result, err := f.login.Execute(ctx, "PRIYA@example.com", "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
}

func TestLogoutRevokesToken(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	result, err := f.register.Execute(ctx, "Priya", "priya@example.com", "secret")
	require.NoError(t, err)

	require.NoError(t, f.logout.Execute(ctx, result.Session.SessionID))

	_, err = f.validate.Execute(ctx, result.Token)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.Zero(t, f.registry.Len())
}

func TestValidateRejectsUnknownToken(t *testing.T) {
	f := newAuthFixture()

	_, err := f.validate.Execute(context.Background(), "garbage")

	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}
