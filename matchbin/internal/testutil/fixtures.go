package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteTempFile writes content to name inside a per-test temp directory and
// returns the path.
func WriteTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

// Frequencies returns the fraction of draws each value accounts for.
func Frequencies[T comparable](draws []T) map[T]float64 {
	counts := make(map[T]int)
	for _, d := range draws {
		counts[d]++
	}
	freq := make(map[T]float64, len(counts))
	for k, c := range counts {
		freq[k] = float64(c) / float64(len(draws))
	}
	return freq
}
