// Package trace provides query recording for selection diagnostics.
// This package has no dependencies on matchbin; it stores pure data types.
package trace

// QueryRecord captures a single cache-state query.
type QueryRecord struct {
	Snapshot  string   // snapshot name the cache state was built from
	Selector  string   // selector descriptor
	Query     int      // 0-based query number against this cache state
	Requested int      // n after default substitution
	Returned  []uint64 // returned uids, in order (nil when unsatisfied)
	Satisfied bool     // false when the selector refused to under-fill
}
