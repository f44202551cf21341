package matchbin

import (
	"container/heap"
	"fmt"
	"slices"
)

// RankedSelector returns the best-scoring candidates within its threshold,
// best first. Ties are broken by position in the candidate sequence.
type RankedSelector struct {
	cfg RankedConfig
}

// NewRankedSelector creates a RankedSelector. Panics on an invalid config.
func NewRankedSelector(cfg RankedConfig) *RankedSelector {
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("NewRankedSelector: %v", err))
	}
	return &RankedSelector{cfg: cfg}
}

// Config returns the selector's configuration.
func (s *RankedSelector) Config() RankedConfig { return s.cfg }

// Name implements Selector.
func (s *RankedSelector) Name() string { return SelectorRanked }

// String implements Selector.
func (s *RankedSelector) String() string {
	return fmt.Sprintf("Ranked Selector (Threshold: %s, DefaultN: %d)", s.cfg.Threshold, s.cfg.DefaultN)
}

// Select implements Selector.
func (s *RankedSelector) Select(uids []UID, scores Scores, n int) CacheState {
	return s.SelectRanked(uids, scores, n)
}

// SelectRanked orders the n best candidates ascending by score and keeps the
// leading run whose scores are within the threshold. The scan stops at the
// first candidate over the threshold.
func (s *RankedSelector) SelectRanked(uids []UID, scores Scores, n int) *RankedCacheState {
	n = resolveN("RankedSelector.Select", n, s.cfg.DefaultN)
	candidates := lookupScores("RankedSelector.Select", uids, scores)
	best := smallestByScore(candidates, min(n, len(candidates)))

	available := 0
	for available < len(best) && s.cfg.Threshold.Admits(best[available].score) {
		available++
	}

	kept := make([]UID, available)
	for i := range kept {
		kept[i] = best[i].uid
	}
	return &RankedCacheState{uids: kept, defaultN: s.cfg.DefaultN}
}

// byScore orders by ascending score, then by position in the candidate sequence.
func byScore(a, b scored) int {
	switch {
	case a.score < b.score:
		return -1
	case a.score > b.score:
		return 1
	}
	return a.pos - b.pos
}

// smallestByScore returns the k smallest candidates in byScore order.
// For k well below len(items) it keeps a bounded max-heap instead of
// sorting everything.
func smallestByScore(items []scored, k int) []scored {
	if k <= 0 {
		return nil
	}
	if k*2 >= len(items) {
		sorted := slices.Clone(items)
		slices.SortFunc(sorted, byScore)
		return sorted[:k]
	}

	h := &worstFirst{items: make([]scored, 0, k)}
	for _, it := range items {
		if h.Len() < k {
			heap.Push(h, it)
			continue
		}
		if byScore(it, h.items[0]) < 0 {
			h.items[0] = it
			heap.Fix(h, 0)
		}
	}
	best := h.items
	slices.SortFunc(best, byScore)
	return best
}

// worstFirst is a max-heap in byScore order: the root is the worst kept item.
type worstFirst struct {
	items []scored
}

var _ heap.Interface = (*worstFirst)(nil)

func (h *worstFirst) Len() int           { return len(h.items) }
func (h *worstFirst) Less(i, j int) bool { return byScore(h.items[i], h.items[j]) > 0 }
func (h *worstFirst) Swap(i, j int)      { h.items[i], h.items[j] = h.items[j], h.items[i] }
func (h *worstFirst) Push(x any)         { h.items = append(h.items, x.(scored)) }
func (h *worstFirst) Pop() any {
	old := h.items
	it := old[len(old)-1]
	h.items = old[:len(old)-1]
	return it
}

// RankedCacheState holds the qualifying best-first prefix of one snapshot.
type RankedCacheState struct {
	uids     []UID
	defaultN int
}

// Available returns the number of qualifying candidates held.
func (c *RankedCacheState) Available() int { return len(c.uids) }

// Query returns the n best qualifying candidates. When fewer than n
// qualified it returns ok == false rather than a short list.
func (c *RankedCacheState) Query(n int) ([]UID, bool) {
	n = resolveN("RankedCacheState.Query", n, c.defaultN)
	if n > len(c.uids) {
		return nil, false
	}
	return slices.Clone(c.uids[:n]), true
}

// String implements CacheState.
func (c *RankedCacheState) String() string {
	return fmt.Sprintf("Ranked Cache State (Available: %d, DefaultN: %d)", len(c.uids), c.defaultN)
}
