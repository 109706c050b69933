// README: Route pair and distance table definitions.
package distance

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"ridefare/internal/types"
)

// DefaultDistanceKm is used for any pair of distinct locations missing from the table.
const DefaultDistanceKm = 10.0

var (
	ErrSelfRoute        = errors.New("route endpoints must differ")
	ErrEmptyLocation    = errors.New("route endpoint is empty")
	ErrNegativeDistance = errors.New("distance must be a finite non-negative number")
	ErrConflictingRoute = errors.New("route defined twice with different distances")
	ErrReservedName     = errors.New("location name contains a reserved character")
)

// RoutePair is an unordered pair of distinct locations. A and B are kept in
// lexicographic order so (X,Y) and (Y,X) produce the same key.
type RoutePair struct {
	A types.Location
	B types.Location
}

func NewRoutePair(a, b types.Location) RoutePair {
	if b < a {
		a, b = b, a
	}
	return RoutePair{A: a, B: b}
}

// Route is one row of the distance table as stored in a route source.
type Route struct {
	From       types.Location
	To         types.Location
	DistanceKm float64
}

// Table is built once and never mutated afterwards.
type Table struct {
	routes    map[RoutePair]float64
	locations []types.Location
}

// NewTable validates the rows and canonicalises them into an immutable table.
func NewTable(routes []Route) (*Table, error) {
	t := &Table{routes: make(map[RoutePair]float64, len(routes))}
	seen := make(map[types.Location]struct{})
	for _, r := range routes {
		if r.From.IsZero() || r.To.IsZero() {
			return nil, fmt.Errorf("%w: %q-%q", ErrEmptyLocation, r.From, r.To)
		}
		if err := checkLocationName(r.From); err != nil {
			return nil, err
		}
		if err := checkLocationName(r.To); err != nil {
			return nil, err
		}
		if r.From == r.To {
			return nil, fmt.Errorf("%w: %s", ErrSelfRoute, r.From)
		}
		if r.DistanceKm < 0 || math.IsNaN(r.DistanceKm) || math.IsInf(r.DistanceKm, 0) {
			return nil, fmt.Errorf("%w: %s-%s=%v", ErrNegativeDistance, r.From, r.To, r.DistanceKm)
		}
		key := NewRoutePair(r.From, r.To)
		if existing, ok := t.routes[key]; ok && existing != r.DistanceKm {
			return nil, fmt.Errorf("%w: %s-%s (%v vs %v)", ErrConflictingRoute, key.A, key.B, existing, r.DistanceKm)
		}
		t.routes[key] = r.DistanceKm
		seen[r.From] = struct{}{}
		seen[r.To] = struct{}{}
	}
	t.locations = make([]types.Location, 0, len(seen))
	for l := range seen {
		t.locations = append(t.locations, l)
	}
	sort.Slice(t.locations, func(i, j int) bool { return t.locations[i] < t.locations[j] })
	return t, nil
}

// Lookup reports the stored distance for the unordered pair {a,b}.
func (t *Table) Lookup(a, b types.Location) (float64, bool) {
	if t == nil {
		return 0, false
	}
	d, ok := t.routes[NewRoutePair(a, b)]
	return d, ok
}

// Locations returns every stop named in the table, sorted. The slice is a copy.
func (t *Table) Locations() []types.Location {
	if t == nil {
		return nil
	}
	out := make([]types.Location, len(t.locations))
	copy(out, t.locations)
	return out
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.routes)
}

// DefaultRoutes is the built-in route table used when no external source is configured.
func DefaultRoutes() []Route {
	return []Route{
		{From: "Marquee", To: "AUF", DistanceKm: 5.0},
		{From: "Marquee", To: "SMC", DistanceKm: 8.0},
		{From: "AUF", To: "SMC", DistanceKm: 6.0},
	}
}

// checkLocationName rejects names that cannot round-trip through a keyed
// route source such as the Redis hash field "<from>|<to>".
func checkLocationName(l types.Location) error {
	if strings.Contains(string(l), fieldSeparator) {
		return fmt.Errorf("%w: %q", ErrReservedName, l)
	}
	return nil
}
