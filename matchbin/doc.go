// Package matchbin selects among scored candidates of a match bin and caches
// the result so repeated queries need not re-rank or re-weight the snapshot.
//
// # Reading Guide
//
//   - selector.go: Selector and CacheState interfaces, NewSelector factory
//   - ranked.go: deterministic best-N selection within a threshold
//   - roulette.go: weighted sampling with replacement (linear and exponential)
//   - normalize.go: threshold partition, baseline and weight functions
//
// A Selector is a pure function of (uids, scores, n) and its configuration.
// It returns a CacheState holding private copies of everything it needs, so
// the caller may mutate or drop the snapshot afterwards. A CacheState is a
// frozen view: it never reflects later score changes.
//
// Lower scores are better matches throughout.
//
// # Sub-packages
//
//   - matchbin/weighted: cumulative-weight table backing roulette draws
//   - matchbin/trace: selection query records for diagnostics
package matchbin
