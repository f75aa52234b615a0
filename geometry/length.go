package geometry

import (
	"fmt"
	"math"
)

// Length resolves a collaborator-supplied row length. Absent lengths use
// fallback. Negative, NaN or infinite lengths are contract violations: they
// panic when built with the dyntabledebug tag and fall back otherwise.
func Length(value float64, ok bool, fallback float64) float64 {
	if !ok {
		return fallback
	}
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		if failFast {
			panic(fmt.Sprintf("geometry: invalid row length %v", value))
		}
		return fallback
	}
	return value
}
