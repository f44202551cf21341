package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/inference-sim/matchbin/matchbin"
	"github.com/inference-sim/matchbin/matchbin/trace"
)

// runBatch selects over every snapshot concurrently. Each snapshot gets its
// own selector and its own RNG subsystem, so results do not depend on
// goroutine scheduling. Reports are returned in input order.
func runBatch(bundle *matchbin.SelectorBundle, snaps []*matchbin.Snapshot, rng *matchbin.PartitionedRNG, opts queryOptions, level trace.TraceLevel) ([]*selectionReport, error) {
	// PartitionedRNG is not thread-safe: derive every source up front.
	sources := make([]matchbin.Source, len(snaps))
	for i := range snaps {
		sources[i] = newSource(rng, matchbin.SubsystemSnapshot(i))
	}

	reports := make([]*selectionReport, len(snaps))
	var g errgroup.Group
	for i, snap := range snaps {
		i, snap := i, snap
		g.Go(func() error {
			sel, err := bundle.NewSelector(sources[i])
			if err != nil {
				return err
			}
			report, err := runSelection(sel, snap, opts, level)
			if err != nil {
				return fmt.Errorf("snapshot %s: %w", snap.Name, err)
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// mergeTraces concatenates per-snapshot traces in report order.
func mergeTraces(reports []*selectionReport, level trace.TraceLevel) *trace.SelectionTrace {
	merged := trace.NewSelectionTrace(level)
	for _, r := range reports {
		for _, q := range r.Trace.Queries {
			merged.RecordQuery(q)
		}
	}
	return merged
}

func writeTraceSummary(w io.Writer, summary *trace.TraceSummary) {
	fmt.Fprintf(w, "=== Trace Summary ===\n")
	fmt.Fprintf(w, "Queries: %d (satisfied %d, unsatisfied %d)\n", summary.TotalQueries, summary.SatisfiedCount, summary.UnsatisfiedCount)
	fmt.Fprintf(w, "Returned: %d uids (%d unique)\n", summary.TotalReturned, summary.UniqueUIDs)
	uids := make([]uint64, 0, len(summary.UIDDistribution))
	for uid := range summary.UIDDistribution {
		uids = append(uids, uid)
	}
	sort.Slice(uids, func(i, j int) bool { return uids[i] < uids[j] })
	for _, uid := range uids {
		fmt.Fprintf(w, "  uid %d: %d\n", uid, summary.UIDDistribution[uid])
	}
}

// batchCmd runs independent selections over several snapshot files
var batchCmd = &cobra.Command{
	Use:   "batch <snapshot.yaml>...",
	Short: "Select over several independent snapshots concurrently",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		bundle, err := loadBundle()
		if err != nil {
			logrus.Fatalf("Invalid selector config: %v", err)
		}
		snaps := make([]*matchbin.Snapshot, len(args))
		for i, path := range args {
			if snaps[i], err = matchbin.LoadSnapshot(path); err != nil {
				logrus.Fatalf("Unable to load snapshot: %v", err)
			}
		}

		level := trace.TraceLevel(traceLevel)
		reports, err := runBatch(bundle, snaps, matchbin.NewPartitionedRNG(seed), queryOptions{RequestN: requestN, Queries: queries, QueryN: queryN}, level)
		if err != nil {
			logrus.Fatalf("Batch failed: %v", err)
		}
		for _, r := range reports {
			r.Write(os.Stdout)
			fmt.Fprintln(os.Stdout)
		}
		if merged := mergeTraces(reports, level); merged.Enabled() {
			fmt.Fprintln(os.Stdout, "All snapshots:")
			writeTraceSummary(os.Stdout, trace.Summarize(merged))
		}
		logrus.Infof("Batch complete: %d snapshots.", len(reports))
	},
}
