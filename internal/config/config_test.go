// internal/config/config_test.go
package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wallet-ledger/pkg/db"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	for _, key := range []string{"SERVER_PORT", "LOG_LEVEL", "DB_DRIVER", "DB_PORT", "DB_MIGRATE", "REDIS_ADDR", "ACCESS_TOKEN_TTL", "REFRESH_TOKEN_TTL", "STORE_TX_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, db.DriverPQ, cfg.DB.Driver)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.False(t, cfg.DBMigrate)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, time.Hour, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.RefreshTokenTTL)
	assert.Equal(t, 5*time.Second, cfg.TxTimeout)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DB_DRIVER", "pgx")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_MIGRATE", "true")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("ACCESS_TOKEN_TTL", "15m")
	t.Setenv("STORE_TX_TIMEOUT", "250ms")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, db.DriverPGX, cfg.DB.Driver)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.True(t, cfg.DBMigrate)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, 250*time.Millisecond, cfg.TxTimeout)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{name: "missing secret", env: map[string]string{"JWT_SECRET": ""}, want: "JWT_SECRET is required"},
		{name: "bad port", env: map[string]string{"DB_PORT": "abc"}, want: "invalid DB_PORT"},
		{name: "bad bool", env: map[string]string{"DB_MIGRATE": "maybe"}, want: "invalid DB_MIGRATE"},
		{name: "bad duration", env: map[string]string{"ACCESS_TOKEN_TTL": "soon"}, want: "invalid ACCESS_TOKEN_TTL"},
		{name: "negative duration", env: map[string]string{"STORE_TX_TIMEOUT": "-1s"}, want: "invalid STORE_TX_TIMEOUT"},
		{name: "bad log level", env: map[string]string{"LOG_LEVEL": "loud"}, want: "invalid LOG_LEVEL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "secret")
			for key, value := range tt.env {
				t.Setenv(key, value)
			}
			_, err := LoadConfig()
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
