package sand

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRand_SameSeedSameSequence(t *testing.T) {
	a, b := NewRand(42), NewRand(42)
	for i := 0; i < 32; i++ {
		assert.Equal(t, a.IntN(1000), b.IntN(1000))
	}
}

func TestNewRand_ZeroSeed(t *testing.T) {
	r := NewRand(0)
	for i := 0; i < 32; i++ {
		n := r.IntN(7)
		assert.True(t, n >= 0 && n < 7)
	}
}
