package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSQL(t *testing.T) {
	stmts := splitSQL("-- comment\nCREATE TABLE a (x int);\n\nINSERT INTO a VALUES (1);\n")
	assert.Equal(t, []string{"CREATE TABLE a (x int)", "INSERT INTO a VALUES (1)"}, stmts)
}

func TestExtractTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.sql")
	require.NoError(t, os.WriteFile(path, []byte("CREATE TABLE IF NOT EXISTS route_distances (x int);"), 0o600))
	tables, err := extractTables(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"route_distances"}, tables)
}

func TestCheckFare(t *testing.T) {
	body := []byte(`{"fare":{"distance_km":5,"distance_fee":60,"discount":32,"total":128}}`)
	assert.Empty(t, checkFare(body, fareWant{fee: 60, discount: 32, total: 128}))
	assert.NotEmpty(t, checkFare(body, fareWant{fee: 60, total: 160}))
	assert.NotEmpty(t, checkFare([]byte("{"), fareWant{}))
}

func TestFareCase_AgainstStub(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"fare":{"distance_fee":60,"discount":0,"total":160}}`))
	}))
	defer srv.Close()

	r := NewRunner(Config{BaseURL: srv.URL, Concurrency: 4, Duration: 50 * time.Millisecond})
	ctx := context.Background()

	res := fareCase("ok", srv.URL, selection("Marquee", "AUF", "regular", "normal"), http.StatusOK, fareWant{fee: 60, total: 160}).Run(ctx, r)
	assert.Equal(t, statusPass, res.Status, res.Note)

	res = fareCase("wrong status", srv.URL, nil, http.StatusCreated, fareWant{}).Run(ctx, r)
	assert.Equal(t, statusFail, res.Status)

	res = concurrentSummary(ctx, r, srv.URL, nil)
	assert.Equal(t, statusPass, res.Status, res.Note)
}

func TestSummarize(t *testing.T) {
	pass, fail, skip := summarize([]Result{{Status: statusPass}, {Status: statusFail}, {Status: statusSkip}, {Status: statusPass}})
	assert.Equal(t, 2, pass)
	assert.Equal(t, 1, fail)
	assert.Equal(t, 1, skip)
}

func TestConfigDefaultsFromKoanf(t *testing.T) {
	k := koanf.New(".")
	require.NoError(t, k.Set("FARE_BENCH_CONCURRENCY", "8"))
	require.NoError(t, k.Set("FARE_BENCH_TIMEOUT", "2s"))
	require.NoError(t, k.Set("FARE_BENCH_BASE_URL", " "))

	assert.Equal(t, 8, intOr(k, "FARE_BENCH_CONCURRENCY", 20))
	assert.Equal(t, 2*time.Second, durationOr(k, "FARE_BENCH_TIMEOUT", time.Minute))
	assert.Equal(t, "http://localhost:8080", stringOr(k, "FARE_BENCH_BASE_URL", "http://localhost:8080"))
	assert.Equal(t, 5*time.Second, durationOr(k, "FARE_BENCH_DURATION", 5*time.Second))
	assert.Equal(t, 20, intOr(k, "FARE_BENCH_MISSING", 20))
}
