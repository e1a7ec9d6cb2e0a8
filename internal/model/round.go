package model

import "math"

// Round rounds half away from negative infinity (2.5 -> 3, -2.5 -> -2), the
// rounding every published figure in a report uses.
func Round(x float64) float64 {
	return math.Floor(x + 0.5)
}

// RoundInt is Round converted to a whole base-unit amount.
func RoundInt(x float64) int64 {
	return int64(Round(x))
}

// Round1 rounds to one decimal place.
func Round1(x float64) float64 {
	return Round(x*10) / 10
}
