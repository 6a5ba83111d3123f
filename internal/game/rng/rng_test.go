package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestNew_Deterministic(t *testing.T) {
	a := New(42)
	b := New(42)
	for range 64 {
		assert.Equal(t, a.IntN(1000), b.IntN(1000))
	}
	assert.Equal(t, uint64(42), a.Seed())
	assert.Zero(t, a.IntN(0))
}

func TestChance_Bounds(t *testing.T) {
	assert.False(t, Chance(Fixed(0), 0))
	assert.True(t, Chance(Fixed(99), 100))
	assert.True(t, Chance(Fixed(69), 70))
	assert.False(t, Chance(Fixed(70), 70))
}

func TestBetween(t *testing.T) {
	assert.Equal(t, 3, Between(Fixed(0), 3, 3))
	assert.Equal(t, 2, Between(Fixed(0), 2, 5))
	assert.Equal(t, 5, Between(Fixed(99), 2, 5))
	assert.Equal(t, 2, Between(Fixed(0), 5, 2), "swapped bounds")
}

func TestSequence_Replays(t *testing.T) {
	s := NewSequence(1, 50, 7)
	assert.Equal(t, 1, s.IntN(10))
	assert.Equal(t, 9, s.IntN(10), "clamped into range")
	assert.Equal(t, 7, s.IntN(10))
	assert.Equal(t, 7, s.IntN(10), "sticks to last value")
	assert.Equal(t, 3, s.Drawn())
}

func TestPropertyBetween_InRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		lo := rapid.IntRange(-50, 50).Draw(rt, "lo")
		hi := rapid.IntRange(-50, 50).Draw(rt, "hi")
		src := New(rapid.Uint64().Draw(rt, "seed"))

		v := Between(src, lo, hi)
		if v < min(lo, hi) || v > max(lo, hi) {
			rt.Fatalf("Between(%d,%d) = %d", lo, hi, v)
		}
	})
}
