// Package rng provides the injectable random source used by round resolution.
//
// Every roll the engine makes (speed ties, flee and capture rolls, ailment
// durations, hit and crit checks) goes through a Source so a battle can be
// replayed from its seed.
package rng

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// Source yields uniform integers in [0, n).
type Source interface {
	IntN(n int) int
}

// PCG is a deterministic Source seeded once per battle.
type PCG struct {
	r    *rand.Rand
	seed uint64
}

// New returns a deterministic source for seed.
func New(seed uint64) *PCG {
	return &PCG{
		r:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		seed: seed,
	}
}

// IntN implements Source. Non-positive n yields 0.
func (p *PCG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return p.r.IntN(n)
}

// Seed returns the seed the source was created with.
func (p *PCG) Seed() uint64 {
	return p.seed
}

// NewSeed reads a high-entropy seed from crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// Chance rolls a percentage. Values <= 0 never succeed, >= 100 always do.
func Chance(src Source, percent int) bool {
	if percent <= 0 {
		return false
	}
	if percent >= 100 {
		return true
	}
	return src.IntN(100) < percent
}

// Between returns a uniform integer in [lo, hi]. Swapped bounds are tolerated.
func Between(src Source, lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	if lo == hi {
		return lo
	}
	return lo + src.IntN(hi-lo+1)
}

// CoinFlip returns true half of the time.
func CoinFlip(src Source) bool {
	return src.IntN(2) == 0
}
