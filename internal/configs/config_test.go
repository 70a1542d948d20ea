package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	for _, key := range []string{"PORT", "SESSION_TTL", "SEED", "RABBITMQ_ENABLED", "GEOCODER_USER_AGENT", "GEOCODER_REGION", "OVERPASS_BBOX"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Rest.Port)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, "AccomodateMe/1.0", cfg.Geocoder.UserAgent)
	assert.Equal(t, "New Jersey", cfg.Geocoder.Region)
	assert.Equal(t, "40.710,-74.060,40.730,-74.030", cfg.Overpass.BBox)
	assert.False(t, cfg.RabbitMQ.Enabled)
	assert.Equal(t, uint64(0), cfg.Seed)
}

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig(missingEnvFile(t))
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoadConfigFromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "JWT_SECRET=from-file\nSESSION_TTL=90m\nCORS_ALLOWED_ORIGINS=http://a.test, http://b.test\nSEED=42\nREDIS_DB=3\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	for _, key := range []string{"JWT_SECRET", "SESSION_TTL", "CORS_ALLOWED_ORIGINS", "SEED", "REDIS_DB"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.Auth.JWTSecret)
	assert.Equal(t, 90*time.Minute, cfg.Auth.SessionTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Rest.AllowedOrigins)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, 3, cfg.Redis.DB)
}

func TestRabbitMQNeedsURLWhenEnabled(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("RABBITMQ_ENABLED", "true")
	t.Setenv("RABBITMQ_URL", "")

	_, err := LoadConfig(missingEnvFile(t))
	assert.ErrorContains(t, err, "RABBITMQ_URL")
}

func TestBadDurationFallsBackToDefault(t *testing.T) {
	t.Setenv("SESSION_TTL", "forever")
	assert.Equal(t, time.Hour, getEnvAsDuration("SESSION_TTL", time.Hour))
}
