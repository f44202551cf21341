package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/matchbin/matchbin"
	"github.com/inference-sim/matchbin/matchbin/trace"
)

func TestRunBatch_DeterministicPerSnapshot(t *testing.T) {
	// GIVEN a roulette bundle and several independent snapshots
	bundle := &matchbin.SelectorBundle{Selector: matchbin.SelectorRoulette}
	snaps := []*matchbin.Snapshot{abcSnapshot("s0"), abcSnapshot("s1"), abcSnapshot("s2")}
	opts := queryOptions{Queries: 2, QueryN: 8}

	// WHEN the batch runs twice with the same seed
	a, err := runBatch(bundle, snaps, matchbin.NewPartitionedRNG(42), opts, trace.TraceLevelQueries)
	require.NoError(t, err)
	b, err := runBatch(bundle, snaps, matchbin.NewPartitionedRNG(42), opts, trace.TraceLevelQueries)
	require.NoError(t, err)

	// THEN reports come back in input order with identical draws
	require.Len(t, a, 3)
	for i := range a {
		assert.Equal(t, snaps[i].Name, a[i].Snapshot)
		for q := range a[i].Results {
			assert.Equal(t, a[i].Results[q].UIDs, b[i].Results[q].UIDs)
		}
	}

	// AND the merged trace holds every query
	merged := mergeTraces(a, trace.TraceLevelQueries)
	assert.Len(t, merged.Queries, 6)
	assert.Equal(t, 48, trace.Summarize(merged).TotalReturned)
}

func TestRunBatch_SnapshotsUseIsolatedSources(t *testing.T) {
	// Snapshot i draws from its own subsystem, so a batch of one reproduces
	// the first report of a larger batch.
	bundle := &matchbin.SelectorBundle{Selector: matchbin.SelectorRoulette}
	opts := queryOptions{Queries: 1, QueryN: 16}

	single, err := runBatch(bundle, []*matchbin.Snapshot{abcSnapshot("s0")}, matchbin.NewPartitionedRNG(5), opts, trace.TraceLevelNone)
	require.NoError(t, err)
	many, err := runBatch(bundle, []*matchbin.Snapshot{abcSnapshot("s0"), abcSnapshot("s1")}, matchbin.NewPartitionedRNG(5), opts, trace.TraceLevelNone)
	require.NoError(t, err)

	assert.Equal(t, single[0].Results[0].UIDs, many[0].Results[0].UIDs)
}

func TestRunBatch_PropagatesErrors(t *testing.T) {
	bundle := &matchbin.SelectorBundle{}
	_, err := runBatch(bundle, []*matchbin.Snapshot{abcSnapshot("s0")}, matchbin.NewPartitionedRNG(1), queryOptions{Queries: 0}, trace.TraceLevelNone)
	assert.ErrorContains(t, err, "snapshot s0")
}

func TestWriteTraceSummary_SortedDistribution(t *testing.T) {
	st := trace.NewSelectionTrace(trace.TraceLevelQueries)
	st.RecordQuery(trace.QueryRecord{Returned: []uint64{3, 1, 3}, Satisfied: true})

	var buf bytes.Buffer
	writeTraceSummary(&buf, trace.Summarize(st))

	out := buf.String()
	assert.Contains(t, out, "Queries: 1 (satisfied 1, unsatisfied 0)")
	assert.Contains(t, out, "Returned: 3 uids (2 unique)")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("uid 1: 1")), bytes.Index(buf.Bytes(), []byte("uid 3: 2")))
}
