package testutil

import "math/rand/v2"

// Rand — детерминированный источник случайности для боевых тестов.
// Queued values are consumed in order; once a queue is empty Float64 returns
// FloatFallback and IntN returns n/2, which is a zero roll for symmetric
// variance.
type Rand struct {
	Floats        []float64
	Ints          []int
	FloatFallback float64
}

// NewRand returns a Rand whose fallback fails every chance roll below 0.99.
func NewRand() *Rand {
	return &Rand{FloatFallback: 0.99}
}

// PushFloats queues Float64 results.
func (r *Rand) PushFloats(v ...float64) *Rand {
	r.Floats = append(r.Floats, v...)
	return r
}

// PushInts queues IntN results. Values are clamped into [0, n).
func (r *Rand) PushInts(v ...int) *Rand {
	r.Ints = append(r.Ints, v...)
	return r
}

func (r *Rand) Float64() float64 {
	if len(r.Floats) == 0 {
		return r.FloatFallback
	}
	v := r.Floats[0]
	r.Floats = r.Floats[1:]
	return v
}

func (r *Rand) IntN(n int) int {
	if len(r.Ints) == 0 {
		return n / 2
	}
	v := r.Ints[0]
	r.Ints = r.Ints[1:]
	return min(max(v, 0), n-1)
}

// Seeded returns a reproducible PCG-backed generator for distribution tests.
func Seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
