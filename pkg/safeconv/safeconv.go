// Package safeconv converts between the integer widths used by buffers
// (int) and by editor protocols (uint32, JSON float64).
package safeconv

import "math"

// MaxUint32 is the maximum value for uint32 type.
const MaxUint32 = uint32(math.MaxUint32)

// IntToUint32 converts v when it lies within [0, MaxUint32].
func IntToUint32(v int) (uint32, bool) {
	if v < 0 || uint64(v) > uint64(MaxUint32) {
		return 0, false
	}

	return uint32(v), true
}

// MustIntToUint32 converts int to uint32, panics on bounds violation.
// Use only when bounds violations are logically impossible.
func MustIntToUint32(v int) uint32 {
	n, ok := IntToUint32(v)
	if !ok {
		panic("safeconv: int to uint32 out of bounds")
	}

	return n
}

// FloatToUint32 converts a decoded JSON number when it is a whole value
// within [0, MaxUint32].
func FloatToUint32(v float64) (uint32, bool) {
	if v != math.Trunc(v) || v < 0 || v > float64(MaxUint32) {
		return 0, false
	}

	return uint32(v), true
}
