package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/matchbin/matchbin"
	"github.com/inference-sim/matchbin/matchbin/trace"
)

var (
	// CLI flags for select and batch
	requestN int // n passed to the selector (0 = selector default)
	queries  int // Number of queries against each cache state
	queryN   int // n passed to each query (0 = selector default)
)

// queryOptions controls how a cache state is exercised.
type queryOptions struct {
	RequestN int
	Queries  int
	QueryN   int
}

// queryResult is the outcome of one cache-state query.
type queryResult struct {
	Index     int
	Requested int
	UIDs      []matchbin.UID
	Satisfied bool
	Summary   matchbin.ScoreSummary
}

// selectionReport is the outcome of one selector call and its queries.
type selectionReport struct {
	Snapshot   string
	Candidates int
	Selector   string
	CacheState string
	Results    []queryResult
	Trace      *trace.SelectionTrace
}

// runSelection selects once over snap and queries the cache state
// opts.Queries times. Records go to a trace owned by the report.
func runSelection(sel matchbin.Selector, snap *matchbin.Snapshot, opts queryOptions, level trace.TraceLevel) (*selectionReport, error) {
	if opts.RequestN < 0 || opts.QueryN < 0 {
		return nil, fmt.Errorf("result counts must be non-negative (request %d, query %d)", opts.RequestN, opts.QueryN)
	}
	if opts.Queries < 1 {
		return nil, fmt.Errorf("queries must be at least 1, got %d", opts.Queries)
	}

	uids, scores := snap.UIDs(), snap.Scores()
	cs := sel.Select(uids, scores, opts.RequestN)
	logrus.Debugf("Selected over %s: %s", snap.Name, cs)

	report := &selectionReport{
		Snapshot:   snap.Name,
		Candidates: len(uids),
		Selector:   sel.String(),
		CacheState: cs.String(),
		Trace:      trace.NewSelectionTrace(level),
	}
	for i := 0; i < opts.Queries; i++ {
		got, ok := cs.Query(opts.QueryN)
		res := queryResult{Index: i, Requested: opts.QueryN, UIDs: got, Satisfied: ok}
		if ok {
			summary, err := matchbin.Summarize(got, scores)
			if err != nil {
				return nil, err
			}
			res.Summary = summary
		}
		report.Results = append(report.Results, res)
		report.Trace.RecordQuery(trace.QueryRecord{
			Snapshot:  snap.Name,
			Selector:  sel.Name(),
			Query:     i,
			Requested: opts.QueryN,
			Returned:  toUint64s(got),
			Satisfied: ok,
		})
	}
	return report, nil
}

func toUint64s(uids []matchbin.UID) []uint64 {
	if uids == nil {
		return nil
	}
	out := make([]uint64, len(uids))
	for i, uid := range uids {
		out[i] = uint64(uid)
	}
	return out
}

// Write renders the report in a human-readable form.
func (r *selectionReport) Write(w io.Writer) {
	fmt.Fprintf(w, "Snapshot:    %s (%d candidates)\n", r.Snapshot, r.Candidates)
	fmt.Fprintf(w, "Selector:    %s\n", r.Selector)
	fmt.Fprintf(w, "Cache state: %s\n", r.CacheState)
	for _, res := range r.Results {
		if !res.Satisfied {
			fmt.Fprintf(w, "query %d: insufficient matches\n", res.Index)
			continue
		}
		fmt.Fprintf(w, "query %d: %v", res.Index, res.UIDs)
		if res.Summary.Count > 0 {
			fmt.Fprintf(w, " (mean=%.4f median=%.4f min=%.4f max=%.4f)",
				res.Summary.Mean, res.Summary.Median, res.Summary.Min, res.Summary.Max)
		}
		fmt.Fprintln(w)
	}
	if r.Trace.Enabled() {
		writeTraceSummary(w, trace.Summarize(r.Trace))
	}
}

// newSource returns the random source for one selector: frand when
// --entropy is set, otherwise the seeded subsystem RNG.
func newSource(rng *matchbin.PartitionedRNG, subsystem string) matchbin.Source {
	if useEntropy {
		return matchbin.EntropySource{}
	}
	return rng.ForSubsystem(subsystem)
}

// selectCmd runs one selection over a snapshot file
var selectCmd = &cobra.Command{
	Use:   "select <snapshot.yaml>",
	Short: "Select candidates from a snapshot and query the cache state",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		bundle, err := loadBundle()
		if err != nil {
			logrus.Fatalf("Invalid selector config: %v", err)
		}
		snap, err := matchbin.LoadSnapshot(args[0])
		if err != nil {
			logrus.Fatalf("Unable to load snapshot: %v", err)
		}

		sel, err := bundle.NewSelector(newSource(matchbin.NewPartitionedRNG(seed), matchbin.SubsystemSelector))
		if err != nil {
			logrus.Fatalf("Unable to build selector: %v", err)
		}

		report, err := runSelection(sel, snap, queryOptions{RequestN: requestN, Queries: queries, QueryN: queryN}, trace.TraceLevel(traceLevel))
		if err != nil {
			logrus.Fatalf("Selection failed: %v", err)
		}
		report.Write(os.Stdout)
		logrus.Info("Selection complete.")
	},
}

func init() {
	for _, c := range []*cobra.Command{selectCmd, batchCmd} {
		c.Flags().IntVar(&requestN, "n", 0, "Result count passed to the selector (0 = selector default)")
		c.Flags().IntVar(&queries, "queries", 1, "Number of queries against each cache state")
		c.Flags().IntVar(&queryN, "query-n", 0, "Result count per query (0 = selector default)")
	}
}
