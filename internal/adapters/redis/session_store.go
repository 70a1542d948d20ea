package redis_adapter

import (
	"accomodate-service/internal/contextkeys"
	"accomodate-service/internal/core/domain"
	"accomodate-service/internal/core/port"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "accomodate:session:"

// SessionStore хранит записи сессий в Redis; срок жизни задается TTL ключа.
type SessionStore struct {
	client *redis.Client
}

type Config struct {
	Addr     string
	Password string
	DB       int
}

func NewClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis address is required")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("unable to ping redis: %w", err)
	}
	return client, nil
}

func NewSessionStore(client *redis.Client) (*SessionStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client cannot be nil")
	}
	return &SessionStore{client: client}, nil
}

func sessionKey(id uuid.UUID) string {
	return keyPrefix + id.String()
}

func (s *SessionStore) Save(ctx context.Context, session domain.CurrentUser, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(session.SessionID), payload, ttl).Err(); err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to save session to redis", err, port.Fields{
			"component":  "RedisSessionStore",
			"session_id": session.SessionID.String(),
		})
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Find возвращает (nil, nil), если ключа нет: redis.Nil означает отсутствие или истечение.
func (s *SessionStore) Find(ctx context.Context, sessionID uuid.UUID) (*domain.CurrentUser, error) {
	raw, err := s.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var session domain.CurrentUser
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &session, nil
}

func (s *SessionStore) Delete(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
