package matchbin

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidSkew     = errors.New("skew must be a finite number greater than 0")
	ErrInvalidBase     = errors.New("decay base must be in (0, 1)")
	ErrInvalidExponent = errors.New("decay coefficient and exponent must be finite numbers greater than 0")
	ErrInvalidDefaultN = errors.New("default result count must be at least 1")
	ErrInvalidBound    = errors.New("bound must not be NaN")
	ErrUnknownSelector = errors.New("unknown selector")
)

// ConfigValidationError reports which selector parameter failed validation.
type ConfigValidationError struct {
	Selector string
	Field    string
	Err      error
}

func (e *ConfigValidationError) Error() string {
	return fmt.Sprintf("%s selector: %s: %v", e.Selector, e.Field, e.Err)
}

func (e *ConfigValidationError) Unwrap() error { return e.Err }

// RankedConfig parameterizes RankedSelector.
type RankedConfig struct {
	Threshold Bound // maximum score to be returned
	DefaultN  int   // result count used when zero is requested
}

// DefaultRankedConfig returns the ranked defaults: no threshold, one result.
func DefaultRankedConfig() RankedConfig {
	return RankedConfig{Threshold: Unbounded, DefaultN: 1}
}

// Validate checks parameter ranges.
func (c RankedConfig) Validate() error {
	if math.IsNaN(float64(c.Threshold)) {
		return &ConfigValidationError{Selector: SelectorRanked, Field: "threshold", Err: ErrInvalidBound}
	}
	if c.DefaultN < 1 {
		return &ConfigValidationError{Selector: SelectorRanked, Field: "default_n", Err: ErrInvalidDefaultN}
	}
	return nil
}

// RouletteConfig parameterizes RouletteSelector.
//
// Selection weight is 1 / (Skew + score - baseline), where
// baseline = min(lowest candidate score, MaxBaseline). Skew close to zero
// weights the best matches very heavily; a large Skew approaches uniform.
type RouletteConfig struct {
	Threshold   Bound   // maximum score to be considered at all
	Skew        float64 // must be > 0
	MaxBaseline Bound   // cap on the baseline scores are normalized against
	DefaultN    int
}

// DefaultRouletteConfig returns the roulette defaults. The baseline cap of
// 1.0 is the best score an unregulated tag match can reach.
func DefaultRouletteConfig() RouletteConfig {
	return RouletteConfig{
		Threshold:   Unbounded,
		Skew:        0.1,
		MaxBaseline: 1.0,
		DefaultN:    1,
	}
}

// Validate checks parameter ranges.
func (c RouletteConfig) Validate() error {
	if math.IsNaN(float64(c.Threshold)) {
		return &ConfigValidationError{Selector: SelectorRoulette, Field: "threshold", Err: ErrInvalidBound}
	}
	if !(c.Skew > 0) || math.IsInf(c.Skew, 0) {
		return &ConfigValidationError{Selector: SelectorRoulette, Field: "skew", Err: ErrInvalidSkew}
	}
	if math.IsNaN(float64(c.MaxBaseline)) {
		return &ConfigValidationError{Selector: SelectorRoulette, Field: "max_baseline", Err: ErrInvalidBound}
	}
	if c.DefaultN < 1 {
		return &ConfigValidationError{Selector: SelectorRoulette, Field: "default_n", Err: ErrInvalidDefaultN}
	}
	return nil
}

// ExpRouletteConfig parameterizes ExpRouletteSelector.
//
// Selection weight is B ^ ((C * (score - baseline)) ^ Z), so the probability
// of a match decays sharply as its score moves away from the baseline.
type ExpRouletteConfig struct {
	Threshold   Bound
	B           float64 // base, in (0, 1)
	C           float64 // > 0
	Z           float64 // > 0
	MaxBaseline Bound
	DefaultN    int
}

// DefaultExpRouletteConfig returns the exponential roulette defaults, tuned
// for scores that mostly fall in [1, 2] after regulation.
func DefaultExpRouletteConfig() ExpRouletteConfig {
	return ExpRouletteConfig{
		Threshold:   1.3,
		B:           0.01,
		C:           4,
		Z:           4,
		MaxBaseline: 1.25,
		DefaultN:    1,
	}
}

// Validate checks parameter ranges.
func (c ExpRouletteConfig) Validate() error {
	if math.IsNaN(float64(c.Threshold)) {
		return &ConfigValidationError{Selector: SelectorExpRoulette, Field: "threshold", Err: ErrInvalidBound}
	}
	if !(c.B > 0 && c.B < 1) {
		return &ConfigValidationError{Selector: SelectorExpRoulette, Field: "b", Err: ErrInvalidBase}
	}
	if !(c.C > 0) || math.IsInf(c.C, 0) {
		return &ConfigValidationError{Selector: SelectorExpRoulette, Field: "c", Err: ErrInvalidExponent}
	}
	if !(c.Z > 0) || math.IsInf(c.Z, 0) {
		return &ConfigValidationError{Selector: SelectorExpRoulette, Field: "z", Err: ErrInvalidExponent}
	}
	if math.IsNaN(float64(c.MaxBaseline)) {
		return &ConfigValidationError{Selector: SelectorExpRoulette, Field: "max_baseline", Err: ErrInvalidBound}
	}
	if c.DefaultN < 1 {
		return &ConfigValidationError{Selector: SelectorExpRoulette, Field: "default_n", Err: ErrInvalidDefaultN}
	}
	return nil
}
