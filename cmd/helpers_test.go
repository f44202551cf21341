package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inference-sim/matchbin/matchbin"
)

func writeTempYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// abcSnapshot is {1:0.1, 2:0.4, 3:0.9} in shuffled order.
func abcSnapshot(name string) *matchbin.Snapshot {
	return &matchbin.Snapshot{
		Name: name,
		Candidates: []matchbin.Candidate{
			{UID: 3, Score: 0.9},
			{UID: 1, Score: 0.1},
			{UID: 2, Score: 0.4},
		},
	}
}
