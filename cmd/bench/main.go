// README: Scenario runner for the fare API; executes HTTP/DB/Redis checks and prints results.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

func main() {
	cfg := loadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	bench := NewRunner(cfg)
	results := bench.RunAll(ctx)

	fmt.Println("\n== Summary ==")
	pass, fail, skipped := summarize(results)
	fmt.Printf("PASS=%d FAIL=%d SKIP=%d\n", pass, fail, skipped)

	if fail > 0 {
		os.Exit(1)
	}
}

type Config struct {
	BaseURL        string
	DSN            string
	RedisAddr      string
	RedisKey       string
	MigrationPath  string
	ApplyMigration bool
	SeedRedis      bool
	Timeout        time.Duration
	Concurrency    int
	Duration       time.Duration
}

func loadConfig() Config {
	k := koanf.New(".")
	_ = k.Load(env.Provider("FARE_", ".", func(s string) string { return s }), nil)

	var cfg Config
	flag.StringVar(&cfg.BaseURL, "base-url", stringOr(k, "FARE_BENCH_BASE_URL", "http://localhost:8080"), "API base URL")
	flag.StringVar(&cfg.DSN, "dsn", stringOr(k, "FARE_DB_DSN", ""), "Postgres DSN (empty skips DB checks)")
	flag.StringVar(&cfg.RedisAddr, "redis", stringOr(k, "FARE_BENCH_REDIS_ADDR", ""), "Redis address (empty skips Redis checks)")
	flag.StringVar(&cfg.RedisKey, "redis-key", stringOr(k, "FARE_REDIS_ROUTES_KEY", "fare:routes"), "Redis route hash key")
	flag.StringVar(&cfg.MigrationPath, "migration", stringOr(k, "FARE_BENCH_MIGRATION", "migrations/0001_routes.sql"), "Migration SQL path")
	flag.BoolVar(&cfg.ApplyMigration, "apply-migration", k.Bool("FARE_BENCH_APPLY_MIGRATION"), "Apply migration SQL before tests")
	flag.BoolVar(&cfg.SeedRedis, "seed-redis", k.Bool("FARE_BENCH_SEED_REDIS"), "Write the built-in routes to the Redis hash")
	flag.DurationVar(&cfg.Timeout, "timeout", durationOr(k, "FARE_BENCH_TIMEOUT", 60*time.Second), "Total timeout")
	flag.IntVar(&cfg.Concurrency, "concurrency", intOr(k, "FARE_BENCH_CONCURRENCY", 20), "Concurrency for perf tests")
	flag.DurationVar(&cfg.Duration, "duration", durationOr(k, "FARE_BENCH_DURATION", 5*time.Second), "Duration for perf tests")
	flag.Parse()
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return cfg
}

func summarize(results []Result) (pass, fail, skipped int) {
	for _, r := range results {
		switch r.Status {
		case statusPass:
			pass++
		case statusFail:
			fail++
		case statusSkip:
			skipped++
		}
	}
	return
}

func stringOr(k *koanf.Koanf, key, def string) string {
	if v := strings.TrimSpace(k.String(key)); v != "" {
		return v
	}
	return def
}

func intOr(k *koanf.Koanf, key string, def int) int {
	if n := k.Int(key); n > 0 {
		return n
	}
	return def
}

func durationOr(k *koanf.Koanf, key string, def time.Duration) time.Duration {
	if d := k.Duration(key); d > 0 {
		return d
	}
	return def
}
