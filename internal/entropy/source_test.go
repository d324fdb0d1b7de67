package entropy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeededReproducibility(t *testing.T) {
	a := NewSeeded(42)
	b := NewSeeded(42)

	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Float(), b.Float(), "same seed must yield the same stream")
	}
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Intn(10), b.Intn(10))
	}
}

func TestSeededDifferentSeedsDiverge(t *testing.T) {
	a := NewSeeded(1)
	b := NewSeeded(2)

	same := true
	for i := 0; i < 10; i++ {
		if a.Float() != b.Float() {
			same = false
		}
	}
	assert.False(t, same, "different seeds should not produce identical streams")
}

func TestCryptoRanges(t *testing.T) {
	src := NewCrypto()
	for i := 0; i < 100; i++ {
		f := src.Float()
		assert.GreaterOrEqual(t, f, 0.0)
		assert.Less(t, f, 1.0)

		n := src.Intn(7)
		assert.GreaterOrEqual(t, n, 0)
		assert.Less(t, n, 7)
	}
}

func TestJitterBounds(t *testing.T) {
	src := NewSeeded(9)
	for i := 0; i < 1000; i++ {
		j := Jitter(src, 0.25)
		assert.GreaterOrEqual(t, j, 0.75)
		assert.LessOrEqual(t, j, 1.25)
	}
}
