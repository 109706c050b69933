// README: Distance resolver over the immutable route table.
package distance

import "ridefare/internal/types"

// Resolver answers distance queries. It holds no mutable state and may be
// shared by any number of goroutines.
type Resolver struct {
	table *Table
}

func NewResolver(table *Table) *Resolver {
	return &Resolver{table: table}
}

// NewDefaultResolver builds a resolver over DefaultRoutes.
func NewDefaultResolver() *Resolver {
	table, err := NewTable(DefaultRoutes())
	if err != nil {
		panic("distance: built-in routes are invalid: " + err.Error())
	}
	return NewResolver(table)
}

// Resolve returns the distance in km between a and b. Identical endpoints
// resolve to zero and pairs missing from the table fall back to DefaultDistanceKm.
func (r *Resolver) Resolve(a, b types.Location) float64 {
	if a == b {
		return 0.0
	}
	if d, ok := r.table.Lookup(a, b); ok {
		return d
	}
	return DefaultDistanceKm
}

// Known reports whether {a,b} has an explicit table entry.
func (r *Resolver) Known(a, b types.Location) bool {
	_, ok := r.table.Lookup(a, b)
	return ok
}

func (r *Resolver) Locations() []types.Location {
	return r.table.Locations()
}
