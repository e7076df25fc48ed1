// Package conv provides conversion helpers shared by the engine and its
// bindings.
package conv

import (
	"math"
	"time"
	"unsafe"
)

// StringBytes returns the bytes of s without copying. The result must not be
// modified.
//
//go:inline
func StringBytes(s string) []byte {
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

// FloatToInt converts a host-language number to an int, truncating toward
// zero and saturating at the int range. NaN converts to 0.
func FloatToInt(f float64) int {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt:
		return math.MaxInt
	case f <= math.MinInt:
		return math.MinInt
	}
	return int(f)
}

// NanosToDuration converts a number of nanoseconds to a Duration, saturating
// at the Duration range. Non-positive and NaN values convert to 0.
func NanosToDuration(ns float64) time.Duration {
	if math.IsNaN(ns) || ns <= 0 {
		return 0
	}
	if ns >= math.MaxInt64 {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(ns)
}
