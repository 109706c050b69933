package distance

import (
	"context"
	"errors"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_SaveAndLoad(t *testing.T) {
	_, client := newTestRedis(t)
	store := NewRedisStore(client, "")
	ctx := context.Background()

	require.NoError(t, store.SaveRoutes(ctx, DefaultRoutes()))

	table, err := LoadTable(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, 3, table.Len())

	r := NewResolver(table)
	assert.Equal(t, 8.0, r.Resolve("SMC", "Marquee"))
	assert.Equal(t, 5.0, r.Resolve("AUF", "Marquee"))
}

func TestRedisStore_SaveReplacesPrevious(t *testing.T) {
	_, client := newTestRedis(t)
	store := NewRedisStore(client, "routes:test")
	ctx := context.Background()

	require.NoError(t, store.SaveRoutes(ctx, DefaultRoutes()))
	require.NoError(t, store.SaveRoutes(ctx, []Route{{From: "Clark", To: "AUF", DistanceKm: 2.5}}))

	routes, err := store.LoadRoutes(ctx)
	require.NoError(t, err)
	require.Len(t, routes, 1)
	assert.Equal(t, Route{From: "Clark", To: "AUF", DistanceKm: 2.5}, routes[0])
}

func TestRedisStore_MalformedEntries(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewRedisStore(client, DefaultRedisKey)
	ctx := context.Background()

	mr.HSet(DefaultRedisKey, "MarqueeAUF", "5")
	_, err := store.LoadRoutes(ctx)
	require.ErrorIs(t, err, ErrMalformedRoute)

	mr.Del(DefaultRedisKey)
	mr.HSet(DefaultRedisKey, "Marquee|AUF", "five")
	_, err = store.LoadRoutes(ctx)
	require.ErrorIs(t, err, ErrMalformedRoute)
}

func TestRedisStore_SeparatorInName(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewRedisStore(client, DefaultRedisKey)
	ctx := context.Background()

	err := store.SaveRoutes(ctx, []Route{{From: "A|X", To: "B", DistanceKm: 3}})
	require.ErrorIs(t, err, ErrReservedName)
	assert.False(t, mr.Exists(DefaultRedisKey))

	mr.HSet(DefaultRedisKey, "A|X|B", "3")
	_, err = store.LoadRoutes(ctx)
	require.ErrorIs(t, err, ErrMalformedRoute)
}

func TestRedisStore_EmptyHash(t *testing.T) {
	_, client := newTestRedis(t)
	table, err := LoadTable(context.Background(), NewRedisStore(client, "missing"))
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
	assert.Equal(t, DefaultDistanceKm, NewResolver(table).Resolve("AUF", "SMC"))
}

func TestStaticStore_ReturnsCopy(t *testing.T) {
	routes := DefaultRoutes()
	store := NewStaticStore(routes)

	got, err := store.LoadRoutes(context.Background())
	require.NoError(t, err)
	got[0].DistanceKm = 99

	again, err := store.LoadRoutes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5.0, again[0].DistanceKm)
}

type fakeRows struct {
	rows    [][]any
	pos     int
	scanErr error
	err     error
}

func (f *fakeRows) Next() bool {
	if f.pos >= len(f.rows) {
		return false
	}
	f.pos++
	return true
}

func (f *fakeRows) Scan(dest ...any) error {
	if f.scanErr != nil {
		return f.scanErr
	}
	row := f.rows[f.pos-1]
	*dest[0].(*string) = row[0].(string)
	*dest[1].(*string) = row[1].(string)
	*dest[2].(*float64) = row[2].(float64)
	return nil
}

func (f *fakeRows) Err() error { return f.err }

func TestScanRoutes(t *testing.T) {
	rows := &fakeRows{rows: [][]any{
		{"AUF", "Marquee", 5.0},
		{"AUF", "SMC", 6.0},
	}}
	routes, err := scanRoutes(rows)
	require.NoError(t, err)
	assert.Equal(t, []Route{
		{From: "AUF", To: "Marquee", DistanceKm: 5},
		{From: "AUF", To: "SMC", DistanceKm: 6},
	}, routes)
}

func TestScanRoutes_Errors(t *testing.T) {
	boom := errors.New("boom")

	_, err := scanRoutes(&fakeRows{rows: [][]any{{"AUF", "SMC", 6.0}}, scanErr: boom})
	require.ErrorIs(t, err, boom)

	_, err = scanRoutes(&fakeRows{err: boom})
	require.ErrorIs(t, err, boom)
}
