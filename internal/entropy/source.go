// Package entropy provides the randomness source for stochastic
// simulation events. Every roll in the engine goes through a Source so
// a seeded source reproduces identical quarters for testing and replay.
// Falls back to crypto/rand when no seed is configured.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	"math"
	mrand "math/rand"
	"sync"
)

// Source supplies random values to the simulation. Implementations
// must be safe for single-session sequential use; they are not shared
// across sessions.
type Source interface {
	// Float returns a uniform float64 in [0, 1).
	Float() float64
	// Intn returns a uniform int in [0, n). n must be > 0.
	Intn(n int) int
}

// Seeded is a deterministic Source backed by math/rand. Two Seeded
// sources with the same seed produce identical streams.
type Seeded struct {
	mu  sync.Mutex
	rng *mrand.Rand
}

// NewSeeded creates a deterministic source from a seed.
func NewSeeded(seed int64) *Seeded {
	return &Seeded{rng: mrand.New(mrand.NewSource(seed))}
}

// Float returns a uniform float64 in [0, 1).
func (s *Seeded) Float() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// Intn returns a uniform int in [0, n).
func (s *Seeded) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

// Crypto is a non-deterministic Source backed by crypto/rand, used
// when no seed is configured (normal play).
type Crypto struct{}

// NewCrypto creates a crypto/rand-backed source.
func NewCrypto() *Crypto {
	return &Crypto{}
}

// Float returns a uniform float64 in [0, 1).
func (Crypto) Float() float64 {
	return cryptoRandFloat()
}

// Intn returns a uniform int in [0, n).
func (Crypto) Intn(n int) int {
	v := int(math.Floor(cryptoRandFloat() * float64(n)))
	if v >= n {
		v = n - 1
	}
	return v
}

// cryptoRandFloat generates a random float64 using crypto/rand.
func cryptoRandFloat() float64 {
	var buf [8]byte
	_, err := rand.Read(buf[:])
	if err != nil {
		// This should never happen but return 0.5 as a safe default.
		return 0.5
	}
	// Use only 53 bits for a uniform float64 in [0, 1).
	n := binary.LittleEndian.Uint64(buf[:]) >> 11
	return float64(n) / float64(1<<53)
}

// Jitter returns a multiplier in [1-spread, 1+spread] drawn from src.
// Used for the ±20–30% variability applied to unit estimates.
func Jitter(src Source, spread float64) float64 {
	return 1 - spread + src.Float()*2*spread
}
