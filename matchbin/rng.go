package matchbin

import (
	"fmt"
	"hash/fnv"
	"math/rand"

	"lukechampine.com/frand"
)

// Source supplies uniform draws in [0, 1). *math/rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// === Subsystem Constants ===

const (
	// SubsystemSelector is the RNG subsystem for roulette draws.
	// Uses the master seed directly so --seed reproduces a single selection run.
	SubsystemSelector = "selector"
)

// SubsystemSnapshot returns the subsystem name for the i-th snapshot of a batch.
func SubsystemSnapshot(i int) string {
	return fmt.Sprintf("snapshot_%d", i)
}

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem,
// so that draws for one snapshot never shift the sequence seen by another.
//
// Derivation formula:
//   - For SubsystemSelector: uses seed directly
//   - For all other subsystems: seed XOR fnv1a64(subsystemName)
//
// Thread-safety: NOT thread-safe. Derive all subsystems from one goroutine;
// each returned *rand.Rand then belongs to a single consumer.
type PartitionedRNG struct {
	seed       int64
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a seed.
func NewPartitionedRNG(seed int64) *PartitionedRNG {
	return &PartitionedRNG{
		seed:       seed,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}

	derivedSeed := p.seed
	if name != SubsystemSelector {
		derivedSeed = p.seed ^ fnv1a64(name)
	}

	rng := rand.New(rand.NewSource(derivedSeed))
	p.subsystems[name] = rng
	return rng
}

// Seed returns the seed used to create this PartitionedRNG.
func (p *PartitionedRNG) Seed() int64 {
	return p.seed
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}

// === EntropySource ===

// EntropySource is an unseeded Source backed by frand's fast CSPRNG.
// Use it when selections need not be reproducible. Safe for concurrent use.
type EntropySource struct{}

// Float64 returns a uniform value in [0, 1) with 53 bits of precision.
func (EntropySource) Float64() float64 {
	return float64(frand.Uint64n(1<<53)) / (1 << 53)
}
