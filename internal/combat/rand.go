package combat

import "math"

// Rand is the randomness source combat rolls draw from.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// Chance rolls p in [0,1].
func Chance(r Rand, p float64) bool {
	if p <= 0 {
		return false
	}
	return r.Float64() < p
}

// Variance returns a uniform integer in [-spread, spread].
func Variance(r Rand, spread int) int {
	if spread <= 0 {
		return 0
	}
	return r.IntN(2*spread+1) - spread
}

// Pick returns a uniform index in [0, n).
func Pick(r Rand, n int) int {
	if n <= 1 {
		return 0
	}
	return r.IntN(n)
}

// Round rounds half up.
func Round(x float64) int {
	return int(math.Floor(x + 0.5))
}

// mult treats unset multipliers as neutral.
func mult(v float64) float64 {
	if v <= 0 {
		return 1
	}
	return v
}
