package matchbin

import (
	"fmt"
	"math"
)

// partitionQualifying returns the candidates admitted by threshold, keeping
// sequence order.
func partitionQualifying(candidates []scored, threshold Bound) []scored {
	qualifying := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		if threshold.Admits(c.score) {
			qualifying = append(qualifying, c)
		}
	}
	return qualifying
}

// baseline is the score all weights are normalized against:
// min(lowest finite score over the whole candidate set, maxBaseline).
// Capping lets upregulated matches (scores below the cap) keep their edge.
func baseline(candidates []scored, maxBaseline Bound) float64 {
	b := float64(maxBaseline)
	for _, c := range candidates {
		if !math.IsInf(c.score, 0) && c.score < b {
			b = c.score
		}
	}
	return b
}

// normalize returns score - base. A negative result means base was not
// derived from a set containing score, which is a programming error.
func normalize(op string, c scored, base float64) float64 {
	d := c.score - base
	if d < 0 {
		panic(fmt.Sprintf("%s: uid %d normalized score %v is negative (score %v, baseline %v)", op, c.uid, d, c.score, base))
	}
	return d
}

// linearWeight returns 1 / (skew + normalized).
func linearWeight(skew float64) func(float64) float64 {
	return func(normalized float64) float64 {
		return 1.0 / (skew + normalized)
	}
}

// expWeight returns b ^ ((c * normalized) ^ z).
func expWeight(b, c, z float64) func(float64) float64 {
	return func(normalized float64) float64 {
		return math.Pow(b, math.Pow(c*normalized, z))
	}
}
