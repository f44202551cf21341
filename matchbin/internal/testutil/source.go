// Package testutil provides shared test infrastructure for the matchbin
// packages: instrumented random sources and snapshot fixtures.
package testutil

import "math/rand"

// CountingSource wraps a seeded *rand.Rand and counts Float64 draws.
type CountingSource struct {
	rng   *rand.Rand
	Draws int
}

// NewCountingSource creates a CountingSource seeded with seed.
func NewCountingSource(seed int64) *CountingSource {
	return &CountingSource{rng: rand.New(rand.NewSource(seed))}
}

// Float64 draws from the wrapped source and increments Draws.
func (s *CountingSource) Float64() float64 {
	s.Draws++
	return s.rng.Float64()
}

// ScriptedSource replays fixed values in order, cycling when exhausted.
type ScriptedSource struct {
	Values []float64
	next   int
}

// Float64 returns the next scripted value.
func (s *ScriptedSource) Float64() float64 {
	v := s.Values[s.next%len(s.Values)]
	s.next++
	return v
}
