// Package rng provides the injectable randomness every engine operation
// draws from. Engines never use a global source.
package rng

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// Source is the randomness an engine operation consumes.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// IntN returns a value in [0, n). Panics if n <= 0.
	IntN(n int) int
	// Uint64 returns a uniformly distributed 64-bit value.
	Uint64() uint64
}

// New returns a deterministic PCG-backed source for seed.
func New(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Derive returns a child source keyed by (parent seed, stream). Distinct
// streams never share draws, so consumers of one stream cannot shift another.
func Derive(seed, stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, stream))
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// Chance draws once and reports whether the draw fell under p.
// p is clamped to [0, 1]; p <= 0 never succeeds, p >= 1 always does.
func Chance(src Source, p float64) bool {
	return src.Float64() < max(0, min(p, 1))
}

// Weighted picks an index with probability weights[i]/sum(weights).
// Negative weights count as zero. Returns false when every weight is zero.
// Exactly one draw is consumed when a pick is possible.
func Weighted(src Source, weights []float64) (int, bool) {
	var total float64
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return 0, false
	}

	roll := src.Float64() * total
	last := -1
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		last = i
		if roll < w {
			return i, true
		}
		roll -= w
	}
	// float rounding can leave roll just past the final bucket
	return last, true
}
