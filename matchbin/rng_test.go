package matchbin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartitionedRNG_DeterministicDerivation(t *testing.T) {
	// Same seed+name produces same sequence
	rng1 := NewPartitionedRNG(42)
	rng2 := NewPartitionedRNG(42)

	for i := 0; i < 3; i++ {
		assert.Equal(t, rng1.ForSubsystem(SubsystemSnapshot(0)).Float64(), rng2.ForSubsystem(SubsystemSnapshot(0)).Float64())
	}
}

func TestPartitionedRNG_SubsystemIsolation(t *testing.T) {
	// Drawing from subsystem A doesn't affect subsystem B
	rngA := NewPartitionedRNG(42)
	rngB := NewPartitionedRNG(42)

	for i := 0; i < 10; i++ {
		rngA.ForSubsystem(SubsystemSnapshot(1)).Float64()
	}

	assert.Equal(t,
		rngB.ForSubsystem(SubsystemSnapshot(2)).Float64(),
		rngA.ForSubsystem(SubsystemSnapshot(2)).Float64())
}

func TestPartitionedRNG_SubsystemsDiffer(t *testing.T) {
	p := NewPartitionedRNG(42)
	assert.NotEqual(t,
		p.ForSubsystem(SubsystemSnapshot(0)).Int63(),
		p.ForSubsystem(SubsystemSnapshot(1)).Int63())
}

func TestPartitionedRNG_CachesInstances(t *testing.T) {
	p := NewPartitionedRNG(7)
	assert.Same(t, p.ForSubsystem(SubsystemSelector), p.ForSubsystem(SubsystemSelector))
	assert.Equal(t, int64(7), p.Seed())
}

func TestEntropySource_Range(t *testing.T) {
	var src EntropySource
	for i := 0; i < 1000; i++ {
		v := src.Float64()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}
