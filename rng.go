package sapling

import (
	"crypto/sha256"
	"encoding/binary"
)

// Linear-congruential constants (Knuth MMIX). The recurrence is part of the
// determinism contract: changing it changes every plant ever grown.
const (
	lcgMul = 6364136223846793005
	lcgInc = 1442695040888963407
)

// Rand is a deterministic pseudo-random stream derived from a seed string.
// For a fixed seed the exact sequence of outputs is reproducible across
// processes, platforms, and releases — this is the cornerstone invariant of
// the whole engine ("seed #123 always grows the same plant"). The structure
// builder draws exclusively from one Rand in a fixed call order; no other
// source of randomness may be used anywhere in generation.
//
// Not safe for concurrent use. Each generation request owns its own Rand.
type Rand struct {
	state uint64
}

// NewRand derives a generator state from the SHA-256 hash of the seed
// string (the first 8 digest bytes, big-endian).
func NewRand(seed string) *Rand {
	sum := sha256.Sum256([]byte(seed))
	return &Rand{state: binary.BigEndian.Uint64(sum[:8])}
}

// Float64 advances the state and returns a value in [0, 1).
func (r *Rand) Float64() float64 {
	r.state = r.state*lcgMul + lcgInc
	// Top 53 bits: the low bits of an LCG have short periods.
	return float64(r.state>>11) / (1 << 53)
}

// FloatRange returns a value in [min, max).
func (r *Rand) FloatRange(min, max float64) float64 {
	return min + r.Float64()*(max-min)
}

// IntRange returns an integer in [min, max] inclusive.
func (r *Rand) IntRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + int(r.Float64()*float64(max-min+1))
}

// Chance returns true with probability p.
func (r *Rand) Chance(p float64) bool {
	return r.Float64() < p
}
