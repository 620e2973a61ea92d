package core

import "math/rand/v2"

// Rand is the random source used for placement, velocities, drops and picks.
// *rand.Rand satisfies it; tests pass scripted sources.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// NewRand returns a PCG-backed source
func NewRand(seed uint64) Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
