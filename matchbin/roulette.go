package matchbin

import (
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/matchbin/matchbin/weighted"
)

// roulette is the partition/baseline/weighting pipeline shared by the
// linear and exponential roulette selectors.
type roulette struct {
	op          string
	threshold   Bound
	maxBaseline Bound
	defaultN    int
	weight      func(normalized float64) float64
	rng         Source
}

func (r roulette) build(uids []UID, scores Scores, n int) *RouletteCacheState {
	// The request size does not shape a roulette table; only default
	// substitution applies.
	resolveN(r.op, n, r.defaultN)

	candidates := lookupScores(r.op, uids, scores)
	qualifying := partitionQualifying(candidates, r.threshold)
	base := baseline(candidates, r.maxBaseline)

	index := weighted.New(len(qualifying))
	kept := make([]UID, len(qualifying))
	for p, c := range qualifying {
		index.Adjust(p, r.weight(normalize(r.op, c, base)))
		kept[p] = c.uid
	}

	return &RouletteCacheState{
		index:    index,
		uids:     kept,
		rng:      r.rng,
		defaultN: r.defaultN,
	}
}

// RouletteSelector draws candidates with replacement, with probability
// proportional to 1 / (skew + score - baseline).
type RouletteSelector struct {
	cfg  RouletteConfig
	core roulette
}

// NewRouletteSelector creates a RouletteSelector drawing from rng.
// Panics on an invalid config or nil rng.
func NewRouletteSelector(cfg RouletteConfig, rng Source) *RouletteSelector {
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("NewRouletteSelector: %v", err))
	}
	if rng == nil {
		panic("NewRouletteSelector: nil random source")
	}
	return &RouletteSelector{
		cfg: cfg,
		core: roulette{
			op:          "RouletteSelector.Select",
			threshold:   cfg.Threshold,
			maxBaseline: cfg.MaxBaseline,
			defaultN:    cfg.DefaultN,
			weight:      linearWeight(cfg.Skew),
			rng:         rng,
		},
	}
}

// Config returns the selector's configuration.
func (s *RouletteSelector) Config() RouletteConfig { return s.cfg }

// Name implements Selector.
func (s *RouletteSelector) Name() string { return SelectorRoulette }

// String implements Selector.
func (s *RouletteSelector) String() string {
	return fmt.Sprintf("Roulette Selector (Threshold: %s, Skew: %g, MaxBaseline: %s, DefaultN: %d)",
		s.cfg.Threshold, s.cfg.Skew, s.cfg.MaxBaseline, s.cfg.DefaultN)
}

// Select implements Selector.
func (s *RouletteSelector) Select(uids []UID, scores Scores, n int) CacheState {
	return s.SelectRoulette(uids, scores, n)
}

// SelectRoulette builds the weighted table over the qualifying candidates.
func (s *RouletteSelector) SelectRoulette(uids []UID, scores Scores, n int) *RouletteCacheState {
	return s.core.build(uids, scores, n)
}

// ExpRouletteSelector draws candidates with replacement, with probability
// proportional to b ^ ((c * (score - baseline)) ^ z).
type ExpRouletteSelector struct {
	cfg  ExpRouletteConfig
	core roulette
}

// NewExpRouletteSelector creates an ExpRouletteSelector drawing from rng.
// Panics on an invalid config or nil rng.
func NewExpRouletteSelector(cfg ExpRouletteConfig, rng Source) *ExpRouletteSelector {
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("NewExpRouletteSelector: %v", err))
	}
	if rng == nil {
		panic("NewExpRouletteSelector: nil random source")
	}
	return &ExpRouletteSelector{
		cfg: cfg,
		core: roulette{
			op:          "ExpRouletteSelector.Select",
			threshold:   cfg.Threshold,
			maxBaseline: cfg.MaxBaseline,
			defaultN:    cfg.DefaultN,
			weight:      expWeight(cfg.B, cfg.C, cfg.Z),
			rng:         rng,
		},
	}
}

// Config returns the selector's configuration.
func (s *ExpRouletteSelector) Config() ExpRouletteConfig { return s.cfg }

// Name implements Selector.
func (s *ExpRouletteSelector) Name() string { return SelectorExpRoulette }

// String implements Selector.
func (s *ExpRouletteSelector) String() string {
	return fmt.Sprintf("Exponential Roulette Selector (Threshold: %s, B: %g, C: %g, Z: %g, MaxBaseline: %s, DefaultN: %d)",
		s.cfg.Threshold, s.cfg.B, s.cfg.C, s.cfg.Z, s.cfg.MaxBaseline, s.cfg.DefaultN)
}

// Select implements Selector.
func (s *ExpRouletteSelector) Select(uids []UID, scores Scores, n int) CacheState {
	return s.SelectRoulette(uids, scores, n)
}

// SelectRoulette builds the weighted table over the qualifying candidates.
func (s *ExpRouletteSelector) SelectRoulette(uids []UID, scores Scores, n int) *RouletteCacheState {
	return s.core.build(uids, scores, n)
}

// RouletteCacheState samples qualifying candidates with replacement.
// uids[i] is the candidate behind slot i of index.
//
// Thread-safety: NOT thread-safe. Queries consume draws from the shared
// random source.
type RouletteCacheState struct {
	index    *weighted.Index
	uids     []UID
	rng      Source
	defaultN int
}

// UIDs returns the qualifying candidates in slot order.
func (c *RouletteCacheState) UIDs() []UID { return slices.Clone(c.uids) }

// Weights returns the selection weight of each qualifying candidate, aligned
// with UIDs.
func (c *RouletteCacheState) Weights() []float64 { return c.index.Weights() }

// TotalWeight returns the summed selection weight.
func (c *RouletteCacheState) TotalWeight() float64 { return c.index.Total() }

// Query draws n candidates independently with replacement. It always
// returns ok; the result is empty only when nothing qualified.
//
// An empty table is never drawn from, and a single qualifying candidate is
// repeated without consuming randomness.
func (c *RouletteCacheState) Query(n int) ([]UID, bool) {
	n = resolveN("RouletteCacheState.Query", n, c.defaultN)

	switch len(c.uids) {
	case 0:
		logrus.Debugf("roulette query: no qualifying candidates, returning empty result")
		return []UID{}, true
	case 1:
		logrus.Debugf("roulette query: single qualifying candidate %d, repeating %d times", c.uids[0], n)
		res := make([]UID, n)
		for i := range res {
			res[i] = c.uids[0]
		}
		return res, true
	}

	total := c.index.Total()
	if total <= 0 {
		logrus.Debugf("roulette query: all %d weights underflowed to zero, drawing uniformly", len(c.uids))
	}
	res := make([]UID, 0, n)
	for i := 0; i < n; i++ {
		res = append(res, c.uids[c.draw(total)])
	}
	return res, true
}

func (c *RouletteCacheState) draw(total float64) int {
	if total <= 0 {
		return min(int(c.rng.Float64()*float64(len(c.uids))), len(c.uids)-1)
	}
	return c.index.Find(c.rng.Float64() * total)
}

// String implements CacheState.
func (c *RouletteCacheState) String() string {
	return fmt.Sprintf("Roulette Cache State (Qualifying: %d, TotalWeight: %g, DefaultN: %d)",
		len(c.uids), c.index.Total(), c.defaultN)
}
