// README: Scenario cases for the fare API; includes HTTP, DB, Redis, and performance checks.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"ridefare/internal/modules/distance"
)

const (
	statusPass = "PASS"
	statusFail = "FAIL"
	statusSkip = "SKIP"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
	db    *pgxpool.Pool
	redis *redis.Client
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name string
	Run  func(ctx context.Context, r *Runner) Result
}

// fareResp is the subset of the summary/booking payload the cases inspect.
type fareResp struct {
	Fare struct {
		DistanceKm  float64 `json:"distance_km"`
		DistanceFee float64 `json:"distance_fee"`
		Discount    float64 `json:"discount"`
		Total       float64 `json:"total"`
	} `json:"fare"`
	Error string `json:"error"`
}

type fareWant struct {
	fee      float64
	discount float64
	total    float64
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 10 * time.Second},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))

	for _, tc := range tests {
		res := tc.Run(ctx, r)
		res.Name = tc.Name
		results = append(results, res)
		fmt.Printf("%-5s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}

	if r.db != nil {
		r.db.Close()
	}
	if r.redis != nil {
		_ = r.redis.Close()
	}

	return results
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	summary := base + "/api/fares/summary"
	bookings := base + "/api/bookings"

	return []TestCase{
		{
			Name: "Env: Postgres connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: statusSkip, Note: "dsn not set"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.db.Ping(ctx); err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				return Result{Status: statusPass}
			},
		},
		{
			Name: "Migration: apply (optional)",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.ApplyMigration {
					return Result{Status: statusSkip, Note: "apply-migration=false"}
				}
				if r.db == nil {
					return Result{Status: statusFail, Note: "db not configured"}
				}
				sql, err := os.ReadFile(r.cfg.MigrationPath)
				if err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				for _, s := range splitSQL(string(sql)) {
					if _, err := r.db.Exec(ctx, s); err != nil {
						return Result{Status: statusFail, Note: err.Error()}
					}
				}
				return Result{Status: statusPass}
			},
		},
		{
			Name: "Migration: tables exist",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: statusSkip, Note: "dsn not set"}
				}
				tables, err := extractTables(r.cfg.MigrationPath)
				if err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				for _, t := range tables {
					var exists bool
					err := r.db.QueryRow(ctx,
						"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name=$1)",
						t,
					).Scan(&exists)
					if err != nil {
						return Result{Status: statusFail, Note: err.Error()}
					}
					if !exists {
						return Result{Status: statusFail, Note: "missing table: " + t}
					}
				}
				return Result{Status: statusPass}
			},
		},
		{
			Name: "Routes: Postgres table builds",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: statusSkip, Note: "dsn not set"}
				}
				return tableResult(distance.LoadTable(ctx, distance.NewPostgresStore(r.db)))
			},
		},
		{
			Name: "Env: Redis connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: statusSkip, Note: "redis not set"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.redis.Ping(ctx).Err(); err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				return Result{Status: statusPass}
			},
		},
		{
			Name: "Routes: Redis seed (optional)",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.SeedRedis {
					return Result{Status: statusSkip, Note: "seed-redis=false"}
				}
				if r.redis == nil {
					return Result{Status: statusFail, Note: "redis not configured"}
				}
				store := distance.NewRedisStore(r.redis, r.cfg.RedisKey)
				if err := store.SaveRoutes(ctx, distance.DefaultRoutes()); err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				return Result{Status: statusPass}
			},
		},
		{
			Name: "Routes: Redis table builds",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: statusSkip, Note: "redis not set"}
				}
				return tableResult(distance.LoadTable(ctx, distance.NewRedisStore(r.redis, r.cfg.RedisKey)))
			},
		},
		{
			Name: "API: health",
			Run: func(ctx context.Context, r *Runner) Result {
				start := time.Now()
				req, _ := http.NewRequestWithContext(ctx, http.MethodGet, base+"/health", nil)
				resp, err := r.httpc.Do(req)
				if err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				_ = resp.Body.Close()
				if resp.StatusCode != http.StatusOK {
					return Result{Status: statusFail, Note: fmt.Sprintf("status=%d", resp.StatusCode)}
				}
				return Result{Status: statusPass, Latency: time.Since(start)}
			},
		},

		fareCase("Fare: regular normal Marquee-AUF", summary,
			selection("Marquee", "AUF", "regular", "normal"), http.StatusOK, fareWant{fee: 60, total: 160}),
		fareCase("Fare: student normal Marquee-AUF", summary,
			selection("Marquee", "AUF", "student", "normal"), http.StatusOK, fareWant{fee: 60, discount: 32, total: 128}),
		fareCase("Fare: student premium Marquee-AUF", summary,
			selection("Marquee", "AUF", "student", "premium"), http.StatusOK, fareWant{fee: 60, discount: 32, total: 192}),
		fareCase("Fare: SMC-Marquee resolves stored Marquee-SMC", summary,
			selection("SMC", "Marquee", "regular", "normal"), http.StatusOK, fareWant{fee: 96, total: 196}),
		fareCase("Fare: identical endpoints flat rate", summary,
			selection("AUF", "AUF", "student", "premium"), http.StatusOK, fareWant{total: 100}),
		fareCase("Fare: missing drop-off -> 400", summary,
			selection("AUF", "", "regular", "normal"), http.StatusBadRequest, fareWant{}),

		fareCase("Booking: confirm Marquee-AUF", bookings,
			selection("Marquee", "AUF", "regular", "premium"), http.StatusCreated, fareWant{fee: 60, total: 240}),
		fareCase("Booking: identical endpoints -> 422", bookings,
			selection("AUF", "AUF", "regular", "normal"), http.StatusUnprocessableEntity, fareWant{}),

		{
			Name: "Fare: concurrent identical requests agree",
			Run: func(ctx context.Context, r *Runner) Result {
				return concurrentSummary(ctx, r, summary, selection("AUF", "SMC", "student", "premium"))
			},
		},
		{
			Name: "Perf: summary load",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, summary, selection("Marquee", "SMC", "student", "normal"))
			},
		},
	}
}

func selection(pickup, dropoff, passenger, class string) map[string]any {
	return map[string]any{
		"pickup":         pickup,
		"dropoff":        dropoff,
		"passenger_type": passenger,
		"ride_class":     class,
	}
}

func tableResult(t *distance.Table, err error) Result {
	if err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	if t.Len() == 0 {
		return Result{Status: statusFail, Note: "no routes"}
	}
	return Result{Status: statusPass, Note: fmt.Sprintf("routes=%d", t.Len())}
}

func fareCase(name, url string, payload any, wantStatus int, want fareWant) TestCase {
	return TestCase{
		Name: name,
		Run: func(ctx context.Context, r *Runner) Result {
			start := time.Now()
			status, body, err := r.postJSON(ctx, url, payload)
			latency := time.Since(start)
			if err != nil {
				return Result{Status: statusFail, Latency: latency, Note: err.Error()}
			}
			if status != wantStatus {
				return Result{Status: statusFail, Latency: latency, Note: fmt.Sprintf("status=%d want=%d", status, wantStatus)}
			}
			if status >= 300 {
				return Result{Status: statusPass, Latency: latency}
			}
			if note := checkFare(body, want); note != "" {
				return Result{Status: statusFail, Latency: latency, Note: note}
			}
			return Result{Status: statusPass, Latency: latency}
		},
	}
}

// checkFare returns an empty string when body carries the wanted amounts.
func checkFare(body []byte, want fareWant) string {
	var got fareResp
	if err := json.Unmarshal(body, &got); err != nil {
		return "decode: " + err.Error()
	}
	if got.Fare.DistanceFee != want.fee || got.Fare.Discount != want.discount || got.Fare.Total != want.total {
		return fmt.Sprintf("got fee=%.2f discount=%.2f total=%.2f want fee=%.2f discount=%.2f total=%.2f",
			got.Fare.DistanceFee, got.Fare.Discount, got.Fare.Total, want.fee, want.discount, want.total)
	}
	return ""
}

func (r *Runner) postJSON(ctx context.Context, url string, payload any) (int, []byte, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := r.httpc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	return resp.StatusCode, body, err
}

func concurrentSummary(ctx context.Context, r *Runner, url string, payload any) Result {
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		bodies = make(map[string]int)
		errs   int
	)
	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			status, body, err := r.postJSON(ctx, url, payload)
			mu.Lock()
			defer mu.Unlock()
			if err != nil || status != http.StatusOK {
				errs++
				return
			}
			var got fareResp
			if err := json.Unmarshal(body, &got); err != nil {
				errs++
				return
			}
			bodies[fmt.Sprintf("%v", got.Fare)]++
		}()
	}
	wg.Wait()

	if errs > 0 {
		return Result{Status: statusFail, Note: fmt.Sprintf("errors=%d", errs)}
	}
	if len(bodies) != 1 {
		return Result{Status: statusFail, Note: fmt.Sprintf("distinct results=%d", len(bodies))}
	}
	return Result{Status: statusPass, Note: fmt.Sprintf("requests=%d", r.cfg.Concurrency)}
}

func perfLoad(ctx context.Context, r *Runner, url string, payload any) Result {
	end := time.Now().Add(r.cfg.Duration)
	var count, errCount int64
	var mu sync.Mutex
	wg := sync.WaitGroup{}

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) && ctx.Err() == nil {
				status, _, err := r.postJSON(ctx, url, payload)
				mu.Lock()
				if err != nil || status != http.StatusOK {
					errCount++
				} else {
					count++
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if count == 0 {
		return Result{Status: statusFail, Note: "no requests completed"}
	}
	rps := float64(count) / r.cfg.Duration.Seconds()
	return Result{Status: statusPass, Note: fmt.Sprintf("rps=%.1f errors=%d", rps, errCount)}
}

func extractTables(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	re := regexp.MustCompile(`(?i)create\s+table\s+if\s+not\s+exists\s+([a-zA-Z0-9_]+)`)
	matches := re.FindAllStringSubmatch(string(b), -1)
	tables := make([]string, 0, len(matches))
	for _, m := range matches {
		tables = append(tables, m[1])
	}
	return tables, nil
}

func splitSQL(sql string) []string {
	lines := strings.Split(sql, "\n")
	filtered := make([]string, 0, len(lines))
	for _, line := range lines {
		l := strings.TrimSpace(line)
		if strings.HasPrefix(l, "--") || l == "" {
			continue
		}
		filtered = append(filtered, line)
	}
	cleaned := strings.Join(filtered, "\n")
	parts := strings.Split(cleaned, ";")
	stmts := make([]string, 0, len(parts))
	for _, p := range parts {
		s := strings.TrimSpace(p)
		if s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}
