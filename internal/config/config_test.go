package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("DB_MAX_OPEN_CONNS", "")
	t.Setenv("JWT_EXPIRATION_HOURS", "")

	cfg := Load("shopstock")

	assert.Equal(t, "shopstock", cfg.ServiceName)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 25, cfg.DB.MaxOpenConns)
	assert.Equal(t, 24, cfg.JWT.ExpirationHours)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_MAX_OPEN_CONNS", "50")
	t.Setenv("DB_CONN_MAX_LIFETIME", "30m")
	t.Setenv("JWT_SIGNING_KEY", "s3cret")

	cfg := Load("shopstock")

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 50, cfg.DB.MaxOpenConns)
	assert.Equal(t, 30*time.Minute, cfg.DB.ConnMaxLifetime)
	assert.Equal(t, "s3cret", cfg.JWT.SigningKey)
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("DB_MAX_IDLE_CONNS", "many")
	t.Setenv("APP_SHUTDOWN_TIMEOUT", "soon")

	cfg := Load("shopstock")

	assert.Equal(t, 5, cfg.DB.MaxIdleConns)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
}

func TestValidateSigningKey(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		key     string
		wantErr bool
	}{
		{"production with default key", "production", "", true},
		{"production with explicit default", "production", DefaultJWTSigningKey, true},
		{"production with real key", "production", "s3cret", false},
		{"development with default key", "development", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("APP_ENV", tt.env)
			t.Setenv("JWT_SIGNING_KEY", tt.key)

			err := Load("shopstock").Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInsecureSigningKey)
				return
			}
			assert.NoError(t, err)
		})
	}

	cfg := &Config{Server: ServerConfig{Env: "production"}}
	assert.ErrorIs(t, cfg.Validate(), ErrInsecureSigningKey, "empty key")
}
