package sand

import (
	"math/rand/v2"
	"time"
)

// Rand is the random source the engine draws slip decisions from.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// NewRand returns a PCG backed generator. A zero seed is replaced by the current time.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewPCG(uint64(seed), 0))
}
