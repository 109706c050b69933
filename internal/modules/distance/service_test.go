package distance

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ridefare/internal/types"
)

func TestResolver_Resolve(t *testing.T) {
	r := NewDefaultResolver()

	tests := []struct {
		name string
		a    types.Location
		b    types.Location
		want float64
	}{
		{name: "stored order", a: "Marquee", b: "AUF", want: 5.0},
		{name: "reversed order", a: "AUF", b: "Marquee", want: 5.0},
		{name: "SMC queried first", a: "SMC", b: "Marquee", want: 8.0},
		{name: "Marquee queried first", a: "Marquee", b: "SMC", want: 8.0},
		{name: "AUF to SMC", a: "AUF", b: "SMC", want: 6.0},
		{name: "same location", a: "AUF", b: "AUF", want: 0.0},
		{name: "unknown location on both sides", a: "Clark", b: "Angeles", want: DefaultDistanceKm},
		{name: "one unknown side", a: "Marquee", b: "Clark", want: 10.0},
		{name: "unknown same location", a: "Clark", b: "Clark", want: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Resolve(tt.a, tt.b))
		})
	}
}

func TestResolver_Symmetry(t *testing.T) {
	r := NewDefaultResolver()
	locs := append(r.Locations(), "Clark")
	for _, a := range locs {
		for _, b := range locs {
			assert.Equal(t, r.Resolve(a, b), r.Resolve(b, a), "%s-%s", a, b)
		}
	}
}

func TestResolver_ConcurrentReads(t *testing.T) {
	r := NewDefaultResolver()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if got := r.Resolve("SMC", "AUF"); got != 6.0 {
					t.Errorf("Resolve() = %v, want 6", got)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestResolver_Known(t *testing.T) {
	r := NewDefaultResolver()
	assert.True(t, r.Known("AUF", "Marquee"))
	assert.False(t, r.Known("AUF", "Clark"))
	assert.False(t, r.Known("AUF", "AUF"))
}

func TestNewTable_Validation(t *testing.T) {
	tests := []struct {
		name    string
		routes  []Route
		wantErr error
	}{
		{name: "self route", routes: []Route{{From: "AUF", To: "AUF", DistanceKm: 1}}, wantErr: ErrSelfRoute},
		{name: "empty endpoint", routes: []Route{{From: "", To: "AUF", DistanceKm: 1}}, wantErr: ErrEmptyLocation},
		{name: "separator in name", routes: []Route{{From: "A|X", To: "B", DistanceKm: 3}}, wantErr: ErrReservedName},
		{name: "negative distance", routes: []Route{{From: "A", To: "B", DistanceKm: -1}}, wantErr: ErrNegativeDistance},
		{
			name: "conflicting reverse entry",
			routes: []Route{
				{From: "A", To: "B", DistanceKm: 1},
				{From: "B", To: "A", DistanceKm: 2},
			},
			wantErr: ErrConflictingRoute,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(tt.routes)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewTable_DuplicateSameDistance(t *testing.T) {
	table, err := NewTable([]Route{
		{From: "A", To: "B", DistanceKm: 3},
		{From: "B", To: "A", DistanceKm: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())
}

func TestTable_Locations(t *testing.T) {
	table, err := NewTable(DefaultRoutes())
	require.NoError(t, err)

	locs := table.Locations()
	assert.Equal(t, []types.Location{"AUF", "Marquee", "SMC"}, locs)

	locs[0] = "mutated"
	assert.Equal(t, types.Location("AUF"), table.Locations()[0])
}

func TestNewRoutePair_Canonical(t *testing.T) {
	assert.Equal(t, NewRoutePair("SMC", "AUF"), NewRoutePair("AUF", "SMC"))
	assert.Equal(t, types.Location("AUF"), NewRoutePair("SMC", "AUF").A)
}
