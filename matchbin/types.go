package matchbin

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// UID is an opaque candidate identifier.
type UID uint64

// Scores maps each candidate to its match score. Lower is better.
type Scores map[UID]float64

// Bound is an upper limit on a score: a match threshold or a baseline cap.
// Unbounded (positive infinity) replaces any limit.
//
// In YAML a Bound is written as a number, or as "none" (also "inf", ".inf"
// or "unbounded").
type Bound float64

// Unbounded is the "no limit" Bound.
var Unbounded = Bound(math.Inf(1))

// IsUnbounded reports whether b imposes no limit.
func (b Bound) IsUnbounded() bool { return math.IsInf(float64(b), 1) }

// Admits reports whether score is within the bound. Infinite scores are never
// admitted, so an Unbounded threshold admits exactly the finite scores.
func (b Bound) Admits(score float64) bool {
	return !math.IsInf(score, 0) && score <= float64(b)
}

// String renders the bound for descriptors ("+Inf" for Unbounded).
func (b Bound) String() string {
	return strconv.FormatFloat(float64(b), 'g', -1, 64)
}

// UnmarshalYAML accepts a number or an unbounded keyword.
func (b *Bound) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: bound must be a scalar", value.Line)
	}
	switch strings.ToLower(strings.TrimSpace(value.Value)) {
	case "none", "inf", "+inf", ".inf", "+.inf", "unbounded":
		*b = Unbounded
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(value.Value), 64)
	if err != nil {
		return fmt.Errorf("line %d: invalid bound %q (expected a number or \"none\")", value.Line, value.Value)
	}
	if math.IsNaN(v) {
		return fmt.Errorf("line %d: bound must not be NaN", value.Line)
	}
	*b = Bound(v)
	return nil
}

// MarshalYAML writes Unbounded as "none" so it round-trips.
func (b Bound) MarshalYAML() (interface{}, error) {
	if b.IsUnbounded() {
		return "none", nil
	}
	return float64(b), nil
}

// scored pairs a candidate with its score and sequence position.
type scored struct {
	uid   UID
	score float64
	pos   int
}

// lookupScores resolves the score of every uid, in order.
// Panics (prefixed with op) when a uid has no score or a NaN score:
// the snapshot must be a total lookup over its candidates.
func lookupScores(op string, uids []UID, scores Scores) []scored {
	out := make([]scored, len(uids))
	for i, uid := range uids {
		s, ok := scores[uid]
		if !ok {
			panic(fmt.Sprintf("%s: uid %d has no score", op, uid))
		}
		if math.IsNaN(s) {
			panic(fmt.Sprintf("%s: uid %d has NaN score", op, uid))
		}
		out[i] = scored{uid: uid, score: s, pos: i}
	}
	return out
}

// resolveN substitutes defaultN for a zero request.
// Panics on a negative request.
func resolveN(op string, n, defaultN int) int {
	if n < 0 {
		panic(fmt.Sprintf("%s: negative result count %d", op, n))
	}
	if n == 0 {
		return defaultN
	}
	return n
}
