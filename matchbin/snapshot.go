package matchbin

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"github.com/montanaflynn/stats"
	"gopkg.in/yaml.v3"
)

// Candidate is one scored entry of a snapshot file.
type Candidate struct {
	UID   UID     `yaml:"uid"`
	Score float64 `yaml:"score"`
}

// Snapshot is a candidate sequence with a total score lookup, as handed to
// Selector.Select. Candidate order is preserved from the file.
type Snapshot struct {
	Name       string      `yaml:"name"`
	Candidates []Candidate `yaml:"candidates"`
}

// LoadSnapshot reads and validates a YAML snapshot file:
//
//	name: demo
//	candidates:
//	  - {uid: 1, score: 0.1}
//	  - {uid: 2, score: 0.4}
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	var snap Snapshot
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&snap); err != nil {
		return nil, fmt.Errorf("parsing snapshot %s: %w", path, err)
	}
	if err := snap.Validate(); err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", path, err)
	}
	if snap.Name == "" {
		snap.Name = path
	}
	return &snap, nil
}

// Validate rejects duplicate uids and NaN scores.
func (s *Snapshot) Validate() error {
	seen := make(map[UID]bool, len(s.Candidates))
	for i, c := range s.Candidates {
		if seen[c.UID] {
			return fmt.Errorf("candidate %d: duplicate uid %d", i, c.UID)
		}
		seen[c.UID] = true
		if math.IsNaN(c.Score) {
			return fmt.Errorf("candidate %d: uid %d has NaN score", i, c.UID)
		}
	}
	return nil
}

// UIDs returns the candidate sequence.
func (s *Snapshot) UIDs() []UID {
	uids := make([]UID, len(s.Candidates))
	for i, c := range s.Candidates {
		uids[i] = c.UID
	}
	return uids
}

// Scores returns the score lookup.
func (s *Snapshot) Scores() Scores {
	scores := make(Scores, len(s.Candidates))
	for _, c := range s.Candidates {
		scores[c.UID] = c.Score
	}
	return scores
}

// ScoreSummary describes the scores of a selection result.
type ScoreSummary struct {
	Count  int
	Mean   float64
	Median float64
	Min    float64
	Max    float64
}

// Summarize computes score statistics over uids (repeats count each time).
// An empty selection yields a zero summary.
func Summarize(uids []UID, scores Scores) (ScoreSummary, error) {
	if len(uids) == 0 {
		return ScoreSummary{}, nil
	}
	data := make(stats.Float64Data, len(uids))
	for i, uid := range uids {
		s, ok := scores[uid]
		if !ok {
			return ScoreSummary{}, fmt.Errorf("summarize: uid %d has no score", uid)
		}
		data[i] = s
	}

	summary := ScoreSummary{Count: len(data)}
	var err error
	if summary.Mean, err = data.Mean(); err != nil {
		return ScoreSummary{}, fmt.Errorf("summarize: %w", err)
	}
	if summary.Median, err = data.Median(); err != nil {
		return ScoreSummary{}, fmt.Errorf("summarize: %w", err)
	}
	if summary.Min, err = data.Min(); err != nil {
		return ScoreSummary{}, fmt.Errorf("summarize: %w", err)
	}
	if summary.Max, err = data.Max(); err != nil {
		return ScoreSummary{}, fmt.Errorf("summarize: %w", err)
	}
	return summary, nil
}
