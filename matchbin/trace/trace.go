package trace

// TraceLevel controls the verbosity of query tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing.
	TraceLevelNone TraceLevel = "none"
	// TraceLevelQueries captures every cache-state query.
	TraceLevelQueries TraceLevel = "queries"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:    true,
	TraceLevelQueries: true,
	"":                true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// SelectionTrace collects query records for one or more snapshots.
type SelectionTrace struct {
	Level   TraceLevel
	Queries []QueryRecord
}

// NewSelectionTrace creates a SelectionTrace ready for recording.
func NewSelectionTrace(level TraceLevel) *SelectionTrace {
	return &SelectionTrace{
		Level:   level,
		Queries: make([]QueryRecord, 0),
	}
}

// Enabled reports whether records are kept. Safe on a nil trace.
func (st *SelectionTrace) Enabled() bool {
	return st != nil && st.Level == TraceLevelQueries
}

// RecordQuery appends a query record if tracing is enabled.
func (st *SelectionTrace) RecordQuery(record QueryRecord) {
	if !st.Enabled() {
		return
	}
	st.Queries = append(st.Queries, record)
}
