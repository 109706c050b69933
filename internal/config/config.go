// README: Config loader with env defaults for HTTP, logging and the route table source.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const (
	RoutesStatic   = "static"
	RoutesPostgres = "postgres"
	RoutesRedis    = "redis"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	HTTP struct {
		Addr string
	}
	Log struct {
		Level  string
		Format string
	}
	Routes struct {
		Source string
	}
	DB struct {
		DSN string
	}
	Redis struct {
		Addr      string
		RoutesKey string
	}
	Metrics struct {
		Namespace string
	}
}

// Load reads FARE_* variables from the environment and an optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("FARE_", ".", func(s string) string { return s }), nil); err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}
	return fromKoanf(k)
}

func fromKoanf(k *koanf.Koanf) (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = envOrDefault(k, "FARE_HTTP_ADDR", ":8080")
	cfg.Log.Level = strings.ToLower(envOrDefault(k, "FARE_LOG_LEVEL", "info"))
	cfg.Log.Format = strings.ToLower(envOrDefault(k, "FARE_LOG_FORMAT", "json"))
	cfg.Routes.Source = strings.ToLower(envOrDefault(k, "FARE_ROUTES_SOURCE", RoutesStatic))
	cfg.DB.DSN = envOrDefault(k, "FARE_DB_DSN", "")
	cfg.Redis.Addr = envOrDefault(k, "FARE_REDIS_ADDR", "localhost:6379")
	cfg.Redis.RoutesKey = envOrDefault(k, "FARE_REDIS_ROUTES_KEY", "fare:routes")
	cfg.Metrics.Namespace = envOrDefault(k, "FARE_METRICS_NAMESPACE", "ridefare")

	switch cfg.Routes.Source {
	case RoutesStatic, RoutesRedis:
	case RoutesPostgres:
		if cfg.DB.DSN == "" {
			return Config{}, fmt.Errorf("%w: FARE_DB_DSN is required when FARE_ROUTES_SOURCE=postgres", ErrInvalidConfig)
		}
	default:
		return Config{}, fmt.Errorf("%w: unknown FARE_ROUTES_SOURCE %q", ErrInvalidConfig, cfg.Routes.Source)
	}
	return cfg, nil
}

func envOrDefault(k *koanf.Koanf, key, def string) string {
	if v := strings.TrimSpace(k.String(key)); v != "" {
		return v
	}
	return def
}
