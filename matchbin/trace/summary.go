package trace

// TraceSummary aggregates statistics from a SelectionTrace.
type TraceSummary struct {
	TotalQueries     int
	SatisfiedCount   int
	UnsatisfiedCount int
	TotalReturned    int
	UniqueUIDs       int
	UIDDistribution  map[uint64]int // uid → number of times returned
}

// Summarize computes aggregate statistics from a SelectionTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SelectionTrace) *TraceSummary {
	summary := &TraceSummary{
		UIDDistribution: make(map[uint64]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalQueries = len(st.Queries)
	for _, q := range st.Queries {
		if !q.Satisfied {
			summary.UnsatisfiedCount++
			continue
		}
		summary.SatisfiedCount++
		summary.TotalReturned += len(q.Returned)
		for _, uid := range q.Returned {
			summary.UIDDistribution[uid]++
		}
	}
	summary.UniqueUIDs = len(summary.UIDDistribution)

	return summary
}
