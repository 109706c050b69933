package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"FARE_HTTP_ADDR", "FARE_LOG_LEVEL", "FARE_LOG_FORMAT", "FARE_ROUTES_SOURCE",
		"FARE_DB_DSN", "FARE_REDIS_ADDR", "FARE_REDIS_ROUTES_KEY", "FARE_METRICS_NAMESPACE",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, RoutesStatic, cfg.Routes.Source)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "fare:routes", cfg.Redis.RoutesKey)
	assert.Equal(t, "ridefare", cfg.Metrics.Namespace)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("FARE_HTTP_ADDR", ":9090")
	t.Setenv("FARE_LOG_LEVEL", "DEBUG")
	t.Setenv("FARE_ROUTES_SOURCE", "Redis")
	t.Setenv("FARE_REDIS_ADDR", "cache:6379")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, RoutesRedis, cfg.Routes.Source)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
}

func TestLoad_PostgresNeedsDSN(t *testing.T) {
	t.Setenv("FARE_ROUTES_SOURCE", "postgres")
	t.Setenv("FARE_DB_DSN", "")

	_, err := Load()
	require.ErrorIs(t, err, ErrInvalidConfig)

	t.Setenv("FARE_DB_DSN", "postgres://localhost/fares")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/fares", cfg.DB.DSN)
}

func TestLoad_UnknownSource(t *testing.T) {
	t.Setenv("FARE_ROUTES_SOURCE", "csv")
	_, err := Load()
	require.ErrorIs(t, err, ErrInvalidConfig)
}
