package matchbin

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSelector_ByName(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	cfg := DefaultSelectorConfig()

	tests := []struct {
		name     string
		wantType any
		wantName string
	}{
		{"", &RankedSelector{}, SelectorRanked},
		{SelectorRanked, &RankedSelector{}, SelectorRanked},
		{SelectorRoulette, &RouletteSelector{}, SelectorRoulette},
		{SelectorExpRoulette, &ExpRouletteSelector{}, SelectorExpRoulette},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := NewSelector(tt.name, cfg, rng)
			assert.IsType(t, tt.wantType, sel)
			assert.Equal(t, tt.wantName, sel.Name())
		})
	}
}

func TestNewSelector_UnknownName_Panics(t *testing.T) {
	assert.Panics(t, func() { NewSelector("tournament", DefaultSelectorConfig(), nil) })
}

func TestNewSelector_RankedIgnoresSource(t *testing.T) {
	// The ranked policy is deterministic and needs no random source.
	assert.NotPanics(t, func() { NewSelector(SelectorRanked, DefaultSelectorConfig(), nil) })
}

func TestNewSelector_CacheStatesMatchPolicy(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	uids, scores := abcSnapshot()

	assert.IsType(t, &RankedCacheState{}, NewSelector(SelectorRanked, DefaultSelectorConfig(), rng).Select(uids, scores, 1))
	assert.IsType(t, &RouletteCacheState{}, NewSelector(SelectorRoulette, DefaultSelectorConfig(), rng).Select(uids, scores, 1))
	assert.IsType(t, &RouletteCacheState{}, NewSelector(SelectorExpRoulette, DefaultSelectorConfig(), rng).Select(uids, scores, 1))
}

func TestSelectors_ZeroRequestEquivalentToDefault(t *testing.T) {
	// GIVEN every policy with a non-trivial default count
	cfg := DefaultSelectorConfig()
	cfg.Ranked.DefaultN = 2
	cfg.Roulette.DefaultN = 3
	cfg.ExpRoulette.DefaultN = 4
	cfg.ExpRoulette.Threshold = Unbounded
	uids, scores := abcSnapshot()

	for _, name := range ValidSelectorNames() {
		t.Run(name, func(t *testing.T) {
			// WHEN selecting with n=0 and n=DefaultN from identically seeded sources
			zero := NewSelector(name, cfg, rand.New(rand.NewSource(5))).Select(uids, scores, 0)
			explicit := NewSelector(name, cfg, rand.New(rand.NewSource(5))).Select(uids, scores, defaultNFor(cfg, name))

			// THEN every query behaves identically
			for n := 0; n <= 5; n++ {
				gotZero, okZero := zero.Query(n)
				gotExplicit, okExplicit := explicit.Query(n)
				assert.Equal(t, okExplicit, okZero, "n=%d", n)
				assert.Equal(t, gotExplicit, gotZero, "n=%d", n)
			}
		})
	}
}

func defaultNFor(cfg SelectorConfig, name string) int {
	switch name {
	case SelectorRoulette:
		return cfg.Roulette.DefaultN
	case SelectorExpRoulette:
		return cfg.ExpRoulette.DefaultN
	default:
		return cfg.Ranked.DefaultN
	}
}

func TestValidSelectorNames(t *testing.T) {
	assert.Equal(t, []string{SelectorExpRoulette, SelectorRanked, SelectorRoulette}, ValidSelectorNames())
	assert.True(t, IsValidSelector(""))
	assert.False(t, IsValidSelector("weighted"))
}
