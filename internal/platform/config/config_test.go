package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(values map[string]any) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(newViper(nil))
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.StoreDriver)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "./data/ledger.db", cfg.SQLitePath)
	assert.Equal(t, "file://migrations", cfg.MigrationsPath)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, time.Hour, cfg.JWTExpiryDuration)
	assert.Equal(t, "300-M", cfg.RateLimit)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.EnableMetrics)
}

func TestFromViper_Overrides(t *testing.T) {
	cfg, err := fromViper(newViper(map[string]any{
		"STORE_DRIVER":         "SQLite",
		"LOG_LEVEL":            "debug",
		"JWT_EXPIRY_DURATION":  "15m",
		"CORS_ALLOWED_ORIGINS": "https://a.example, ,https://b.example",
		"ENABLE_METRICS":       false,
	}))
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.StoreDriver)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 15*time.Minute, cfg.JWTExpiryDuration)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.EnableMetrics)
}

func TestFromViper_FallsBackOnBadValues(t *testing.T) {
	cfg, err := fromViper(newViper(map[string]any{
		"LOG_LEVEL":           "loud",
		"JWT_EXPIRY_DURATION": "soon",
	}))
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, time.Hour, cfg.JWTExpiryDuration)
}

func TestFromViper_Rejects(t *testing.T) {
	_, err := fromViper(newViper(map[string]any{"STORE_DRIVER": "mongo"}))
	assert.Error(t, err)

	_, err = fromViper(newViper(map[string]any{"IS_PRODUCTION": true}))
	assert.Error(t, err)
}
