package safeconv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntToUint32(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   int
		want uint32
		ok   bool
	}{
		{in: 0, want: 0, ok: true},
		{in: 42, want: 42, ok: true},
		{in: int(MaxUint32), want: MaxUint32, ok: true},
		{in: -1},
		{in: int(MaxUint32) + 1},
	}

	for _, tc := range tests {
		got, ok := IntToUint32(tc.in)
		assert.Equal(t, tc.ok, ok, "%d", tc.in)
		assert.Equal(t, tc.want, got, "%d", tc.in)
	}
}

func TestMustIntToUint32(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint32(7), MustIntToUint32(7))
	assert.PanicsWithValue(t, "safeconv: int to uint32 out of bounds", func() {
		MustIntToUint32(-1)
	})
}

func TestFloatToUint32(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want uint32
		ok   bool
	}{
		{in: 0, want: 0, ok: true},
		{in: 12, want: 12, ok: true},
		{in: float64(MaxUint32), want: MaxUint32, ok: true},
		{in: 1.5},
		{in: -3},
		{in: float64(MaxUint32) + 1},
		{in: math.NaN()},
		{in: math.Inf(1)},
	}

	for _, tc := range tests {
		got, ok := FloatToUint32(tc.in)
		assert.Equal(t, tc.ok, ok, "%v", tc.in)
		assert.Equal(t, tc.want, got, "%v", tc.in)
	}
}
