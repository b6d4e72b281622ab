// Package rng provides the seeded, replayable pseudo-random generator that
// every randomized decision of a battle or reward evaluation routes through.
package rng

import "unicode/utf16"

// RNG is a Mulberry32 generator.
//
// It is not safe for concurrent use. Exactly one RNG is shared by reference
// across all draws of a single battle or reward sequence; concurrent
// sequences must each own an independent instance.
type RNG struct {
	state uint32
	seed  uint32
}

// New returns a generator seeded with seed, truncated to 32 bits.
//
// Postcondition: Seed() == uint32(seed).
func New(seed int64) *RNG {
	s := uint32(seed)
	return &RNG{state: s, seed: s}
}

// NewFromString returns a generator seeded with the rolling hash of s.
//
// Postcondition: Seed() == HashString(s).
func NewFromString(s string) *RNG {
	h := HashString(s)
	return &RNG{state: h, seed: h}
}

// HashString folds s into a 32-bit seed with hash = hash*31 + code unit,
// iterating UTF-16 code units and wrapping at 2^32.
func HashString(s string) uint32 {
	var h uint32
	for _, cu := range utf16.Encode([]rune(s)) {
		h = h*31 + uint32(cu)
	}
	return h
}

// Next advances the generator and returns a float in [0, 1).
func (r *RNG) Next() float64 {
	r.state += 0x6D2B79F5
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296
}

// NextInt returns an integer in [min, max], inclusive on both bounds.
//
// Precondition: min <= max.
func (r *RNG) NextInt(min, max int) int {
	return int(r.Next()*float64(max-min+1)) + min
}

// NextFloat returns a float in [min, max).
//
// Precondition: min <= max.
func (r *RNG) NextFloat(min, max float64) float64 {
	return r.Next()*(max-min) + min
}

// Roll reports whether a draw falls below probability.
//
// Postcondition: Roll(0) is always false; Roll(1) is always true.
func (r *RNG) Roll(probability float64) bool {
	return r.Next() < probability
}

// RollPercent is Roll(percent / 100).
func (r *RNG) RollPercent(percent float64) bool {
	return r.Roll(percent / 100)
}

// Seed returns the original seed, unaffected by any draws.
func (r *RNG) Seed() uint32 {
	return r.seed
}
