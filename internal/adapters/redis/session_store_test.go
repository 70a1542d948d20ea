package redis_adapter

import (
	"context"
	"testing"
	"time"

	"accomodate-service/internal/core/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client, err := NewClient(context.Background(), Config{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	store, err := NewSessionStore(client)
	require.NoError(t, err)
	return store, mr
}

func TestRedisSessionStoreRoundTripAndTTL(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()
	session := domain.CurrentUser{
		SessionID: uuid.New(),
		UserID:    uuid.New(),
		Name:      "Priya",
		Email:     "priya@example.com",
		ExpiresAt: time.Now().UTC().Add(time.Hour).Truncate(time.Second),
	}

	require.NoError(t, store.Save(ctx, session, time.Hour))
	assert.Equal(t, time.Hour, mr.TTL(sessionKey(session.SessionID)))

	found, err := store.Find(ctx, session.SessionID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, session.UserID, found.UserID)
	assert.Equal(t, "Priya", found.Name)
	assert.True(t, session.ExpiresAt.Equal(found.ExpiresAt))

	mr.FastForward(2 * time.Hour)
	found, err = store.Find(ctx, session.SessionID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestRedisSessionStoreDelete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	session := domain.CurrentUser{SessionID: uuid.New(), UserID: uuid.New()}
	require.NoError(t, store.Save(ctx, session, time.Hour))

	require.NoError(t, store.Delete(ctx, session.SessionID))

	found, err := store.Find(ctx, session.SessionID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestRedisSessionStoreCorruptPayload(t *testing.T) {
	store, mr := newTestStore(t)
	id := uuid.New()
	require.NoError(t, mr.Set(sessionKey(id), "not-json"))

	_, err := store.Find(context.Background(), id)
	assert.Error(t, err)
}

func TestNewClientRequiresAddr(t *testing.T) {
	_, err := NewClient(context.Background(), Config{})
	assert.Error(t, err)

	_, err = NewSessionStore((*redis.Client)(nil))
	assert.Error(t, err)
}
