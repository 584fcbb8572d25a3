package sim

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Numeric coercion helpers. Output determinism depends on exact rounding
// behavior, so every boundary rounds through these instead of ad-hoc casts.

// roundToInt rounds half away from zero (math.Round semantics).
func roundToInt(v float64) int {
	return int(math.Round(v))
}

// clampNonNegativeInt floors v at zero.
func clampNonNegativeInt(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

// clampMinInt floors v at min.
func clampMinInt(v, min int) int {
	if v < min {
		return min
	}
	return v
}

// meanOfIntMap returns the arithmetic mean of the map's values, 0 for an
// empty map. Iteration order does not affect the result.
func meanOfIntMap(m map[string]int) float64 {
	if len(m) == 0 {
		return 0
	}
	vals := make([]float64, 0, len(m))
	for _, v := range m {
		vals = append(vals, float64(v))
	}
	return stat.Mean(vals, nil)
}
