package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundMoney(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{name: "already rounded", in: 160, want: 160},
		{name: "two decimals kept", in: 12.34, want: 12.34},
		{name: "round down", in: 12.344, want: 12.34},
		{name: "round up", in: 12.346, want: 12.35},
		{name: "half to even down", in: 0.125, want: 0.12},
		{name: "half to even up", in: 0.135, want: 0.14},
		{name: "zero", in: 0, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RoundMoney(tt.in))
		})
	}
}

func TestLocationIsZero(t *testing.T) {
	assert.True(t, Location("").IsZero())
	assert.True(t, Location("   ").IsZero())
	assert.False(t, Location("AUF").IsZero())
}
