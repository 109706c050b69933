// README: Route table sources: built-in, PostgreSQL and Redis.
package distance

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"ridefare/internal/types"
)

// Source supplies the rows of the route table. It is read once at startup.
type Source interface {
	LoadRoutes(ctx context.Context) ([]Route, error)
}

// LoadTable reads every route from src and builds the immutable table.
func LoadTable(ctx context.Context, src Source) (*Table, error) {
	routes, err := src.LoadRoutes(ctx)
	if err != nil {
		return nil, fmt.Errorf("load routes: %w", err)
	}
	return NewTable(routes)
}

type StaticStore struct {
	routes []Route
}

func NewStaticStore(routes []Route) *StaticStore {
	return &StaticStore{routes: routes}
}

func (s *StaticStore) LoadRoutes(_ context.Context) ([]Route, error) {
	out := make([]Route, len(s.routes))
	copy(out, s.routes)
	return out, nil
}

// PostgresStore reads routes from the route_distances table:
//
//	CREATE TABLE route_distances (
//	    origin      TEXT NOT NULL,
//	    destination TEXT NOT NULL,
//	    distance_km DOUBLE PRECISION NOT NULL CHECK (distance_km >= 0),
//	    PRIMARY KEY (origin, destination)
//	);
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) LoadRoutes(ctx context.Context) ([]Route, error) {
	rows, err := s.db.Query(ctx, `
		SELECT origin, destination, distance_km
		FROM route_distances
		ORDER BY origin, destination`)
	if err != nil {
		return nil, fmt.Errorf("query route_distances: %w", err)
	}
	defer rows.Close()
	return scanRoutes(rows)
}

// routeRows is the subset of pgx.Rows that scanRoutes reads.
type routeRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanRoutes(rows routeRows) ([]Route, error) {
	var routes []Route
	for rows.Next() {
		var from, to string
		var km float64
		if err := rows.Scan(&from, &to, &km); err != nil {
			return nil, fmt.Errorf("scan route_distances: %w", err)
		}
		routes = append(routes, Route{From: types.Location(from), To: types.Location(to), DistanceKm: km})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate route_distances: %w", err)
	}
	return routes, nil
}

// RedisStore keeps routes in a single hash. Each field is "<from>|<to>" and
// each value is the distance in km.
type RedisStore struct {
	redis *redis.Client
	key   string
}

const (
	DefaultRedisKey = "fare:routes"
	fieldSeparator  = "|"
)

var ErrMalformedRoute = errors.New("malformed route entry")

func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{redis: client, key: key}
}

func (s *RedisStore) LoadRoutes(ctx context.Context) ([]Route, error) {
	fields, err := s.redis.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("hgetall %s: %w", s.key, err)
	}
	routes := make([]Route, 0, len(fields))
	for field, value := range fields {
		r, err := parseRouteField(field, value)
		if err != nil {
			return nil, err
		}
		routes = append(routes, r)
	}
	return routes, nil
}

// SaveRoutes writes routes into the hash, replacing any previous content.
func (s *RedisStore) SaveRoutes(ctx context.Context, routes []Route) error {
	values := make([]interface{}, 0, len(routes)*2)
	for _, r := range routes {
		if err := checkLocationName(r.From); err != nil {
			return err
		}
		if err := checkLocationName(r.To); err != nil {
			return err
		}
		values = append(values,
			string(r.From)+fieldSeparator+string(r.To),
			strconv.FormatFloat(r.DistanceKm, 'f', -1, 64),
		)
	}
	pipe := s.redis.TxPipeline()
	pipe.Del(ctx, s.key)
	if len(values) > 0 {
		pipe.HSet(ctx, s.key, values...)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save routes to %s: %w", s.key, err)
	}
	return nil
}

func parseRouteField(field, value string) (Route, error) {
	from, to, ok := strings.Cut(field, fieldSeparator)
	if !ok || strings.Contains(to, fieldSeparator) {
		return Route{}, fmt.Errorf("%w: field %q", ErrMalformedRoute, field)
	}
	km, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return Route{}, fmt.Errorf("%w: %q=%q: %v", ErrMalformedRoute, field, value, err)
	}
	return Route{From: types.Location(from), To: types.Location(to), DistanceKm: km}, nil
}
