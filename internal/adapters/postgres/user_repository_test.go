package postgres_adapter

import (
	"context"
	"os"
	"testing"
	"time"

	"accomodate-service/internal/core/domain"
	"accomodate-service/pkg/postgres"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Требует живой PostgreSQL: TEST_DATABASE_URL=postgres://... go test ./...
func TestUserRepositoryAgainstDatabase(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := postgres.NewClient(ctx, postgres.Config{DatabaseURL: url})
	require.NoError(t, err)
	defer pool.Close()

	repo, err := NewUserRepository(pool)
	require.NoError(t, err)
	require.NoError(t, repo.Migrate(ctx))

	email := uuid.NewString() + "@Example.com"
	user, err := domain.NewUser("Priya", email, "secret")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, user))

	found, err := repo.FindByEmail(ctx, email)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.ID, found.ID)
	assert.True(t, found.CheckPassword("secret"))

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "Priya", byID.Name)

	assert.ErrorIs(t, repo.Create(ctx, user), domain.ErrEmailInUse)

	missing, err := repo.FindByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestNewUserRepositoryRequiresPool(t *testing.T) {
	_, err := NewUserRepository(nil)
	assert.Error(t, err)
}
