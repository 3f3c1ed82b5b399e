package config

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresMongoURI(t *testing.T) {
	t.Setenv("MONGO_URI", "")
	t.Setenv("JWT_SECRET", "secret")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGO_URI")
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "skyweb", cfg.Database.Database)
	assert.Equal(t, 168*time.Hour, cfg.Auth.JWTExpiry)
	assert.Equal(t, int64(5*1024*1024), cfg.Media.MaxUploadSize)
	assert.False(t, cfg.Email.Enabled)
	assert.Equal(t, "development", cfg.Environment)
}

func TestLoad_EmailEnabledRequiresAPIKey(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("EMAIL_ENABLED", "true")
	t.Setenv("RESEND_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RESEND_API_KEY")
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("JWT_EXPIRY_HOURS", "24")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("MEDIA_BUCKET", "assets")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 24*time.Hour, cfg.Auth.JWTExpiry)
	assert.Equal(t, "assets", cfg.Media.Bucket)
}

func TestNewLoggerTagsService(t *testing.T) {
	logger := NewLogger(LoggingConfig{Level: "warn", Format: "json"})

	var buf bytes.Buffer
	out := logger.Output(&buf)

	out.Info().Msg("dropped")
	assert.Empty(t, buf.String())

	out.Warn().Msg("kept")
	assert.Contains(t, buf.String(), `"service":"skyweb-api"`)
	assert.Contains(t, buf.String(), "kept")
}
