package engine

import "math/rand/v2"

// Rand is the randomness the engine consumes. Every draw goes through it so a
// fixed implementation makes an encounter fully deterministic.
type Rand interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// IntN returns a uniform value in [0, n).
	IntN(n int) int
}

// NewRand returns a seeded PCG source.
func NewRand(seed uint64) Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

type neutralRand struct{}

func (neutralRand) Float64() float64 { return 0.5 }
func (neutralRand) IntN(int) int     { return 0 }

// Neutral yields mid-range draws: variance 1.0, no critical hit. It is used
// for damage estimates that must not consume the encounter's random stream.
var Neutral Rand = neutralRand{}

// chance draws once against p in [0, 1].
func chance(r Rand, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return r.Float64() < p
}
