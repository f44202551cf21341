package matchbin

import (
	"fmt"
	"sort"
)

// Selector names accepted by NewSelector and the selector bundle.
const (
	SelectorRanked      = "ranked"
	SelectorRoulette    = "roulette"
	SelectorExpRoulette = "exp-roulette"
)

// validSelectorNames maps selector names to validity. Empty selects ranked.
var validSelectorNames = map[string]bool{
	"":                  true,
	SelectorRanked:      true,
	SelectorRoulette:    true,
	SelectorExpRoulette: true,
}

// IsValidSelector returns true if name is a recognized selector.
func IsValidSelector(name string) bool { return validSelectorNames[name] }

// ValidSelectorNames returns sorted valid selector names (excluding empty).
func ValidSelectorNames() []string { return validNamesList(validSelectorNames) }

func validNamesList(m map[string]bool) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		if name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Selector chooses among scored candidates according to a fixed policy.
//
// Select is a pure function of its arguments and the selector's
// configuration. It reads uids and scores only for the duration of the call;
// the returned CacheState holds its own copies. Every uid must have a score
// (contract violation otherwise: panics). n == 0 requests the configured
// default count.
type Selector interface {
	Select(uids []UID, scores Scores, n int) CacheState
	// Name returns the selector's registered name.
	Name() string
	// String returns a descriptor listing every parameter value.
	String() string
}

// CacheState is a frozen result generator bound to one scored snapshot.
//
// Query returns n results (the configured default when n == 0). ok is false
// only when the policy refuses to under-fill: a ranked cache state asked for
// more matches than qualified. Roulette cache states always return ok.
type CacheState interface {
	Query(n int) (uids []UID, ok bool)
	String() string
}

// SelectorConfig carries the per-policy configurations NewSelector picks from.
type SelectorConfig struct {
	Ranked      RankedConfig
	Roulette    RouletteConfig
	ExpRoulette ExpRouletteConfig
}

// DefaultSelectorConfig returns the defaults of every policy.
func DefaultSelectorConfig() SelectorConfig {
	return SelectorConfig{
		Ranked:      DefaultRankedConfig(),
		Roulette:    DefaultRouletteConfig(),
		ExpRoulette: DefaultExpRouletteConfig(),
	}
}

// NewSelector creates a selector by name using the matching entry of cfg.
// Empty name defaults to ranked. The ranked selector ignores rng.
// Panics on unrecognized names and invalid configurations; use
// SelectorBundle.Validate to check user input first.
func NewSelector(name string, cfg SelectorConfig, rng Source) Selector {
	if !IsValidSelector(name) {
		panic(fmt.Sprintf("unknown selector %q", name))
	}
	switch name {
	case "", SelectorRanked:
		return NewRankedSelector(cfg.Ranked)
	case SelectorRoulette:
		return NewRouletteSelector(cfg.Roulette, rng)
	case SelectorExpRoulette:
		return NewExpRouletteSelector(cfg.ExpRoulette, rng)
	default:
		panic(fmt.Sprintf("unhandled selector %q", name))
	}
}
