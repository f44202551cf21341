package matchbin

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SelectorBundle holds selector configuration, loadable from a YAML file.
// Nil pointer fields mean "not set in YAML" and keep the policy default.
//
//	selector: roulette
//	roulette:
//	  threshold: none
//	  skew: 0.5
type SelectorBundle struct {
	Selector    string            `yaml:"selector"`
	Ranked      RankedBundle      `yaml:"ranked"`
	Roulette    RouletteBundle    `yaml:"roulette"`
	ExpRoulette ExpRouletteBundle `yaml:"exp_roulette"`
}

// RankedBundle overrides RankedConfig defaults.
type RankedBundle struct {
	Threshold *Bound `yaml:"threshold"`
	DefaultN  *int   `yaml:"default_n"`
}

// RouletteBundle overrides RouletteConfig defaults.
type RouletteBundle struct {
	Threshold   *Bound   `yaml:"threshold"`
	Skew        *float64 `yaml:"skew"`
	MaxBaseline *Bound   `yaml:"max_baseline"`
	DefaultN    *int     `yaml:"default_n"`
}

// ExpRouletteBundle overrides ExpRouletteConfig defaults.
type ExpRouletteBundle struct {
	Threshold   *Bound   `yaml:"threshold"`
	B           *float64 `yaml:"b"`
	C           *float64 `yaml:"c"`
	Z           *float64 `yaml:"z"`
	MaxBaseline *Bound   `yaml:"max_baseline"`
	DefaultN    *int     `yaml:"default_n"`
}

// LoadSelectorBundle reads and parses a YAML selector configuration file.
// Unknown fields are rejected so typos surface as errors.
func LoadSelectorBundle(path string) (*SelectorBundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading selector config: %w", err)
	}
	var bundle SelectorBundle
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&bundle); err != nil {
		return nil, fmt.Errorf("parsing selector config: %w", err)
	}
	return &bundle, nil
}

// Config merges the bundle's overrides onto the policy defaults.
func (b *SelectorBundle) Config() SelectorConfig {
	cfg := DefaultSelectorConfig()

	setBound(&cfg.Ranked.Threshold, b.Ranked.Threshold)
	setInt(&cfg.Ranked.DefaultN, b.Ranked.DefaultN)

	setBound(&cfg.Roulette.Threshold, b.Roulette.Threshold)
	setFloat(&cfg.Roulette.Skew, b.Roulette.Skew)
	setBound(&cfg.Roulette.MaxBaseline, b.Roulette.MaxBaseline)
	setInt(&cfg.Roulette.DefaultN, b.Roulette.DefaultN)

	setBound(&cfg.ExpRoulette.Threshold, b.ExpRoulette.Threshold)
	setFloat(&cfg.ExpRoulette.B, b.ExpRoulette.B)
	setFloat(&cfg.ExpRoulette.C, b.ExpRoulette.C)
	setFloat(&cfg.ExpRoulette.Z, b.ExpRoulette.Z)
	setBound(&cfg.ExpRoulette.MaxBaseline, b.ExpRoulette.MaxBaseline)
	setInt(&cfg.ExpRoulette.DefaultN, b.ExpRoulette.DefaultN)

	return cfg
}

// Validate checks the selector name and the parameter ranges of the
// selected policy. Sections for other policies are not checked.
func (b *SelectorBundle) Validate() error {
	if !IsValidSelector(b.Selector) {
		return fmt.Errorf("%w %q; valid: %v", ErrUnknownSelector, b.Selector, ValidSelectorNames())
	}
	cfg := b.Config()
	switch b.Selector {
	case "", SelectorRanked:
		return cfg.Ranked.Validate()
	case SelectorRoulette:
		return cfg.Roulette.Validate()
	case SelectorExpRoulette:
		return cfg.ExpRoulette.Validate()
	}
	return nil
}

// NewSelector validates the bundle and builds its selector.
func (b *SelectorBundle) NewSelector(rng Source) (Selector, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return NewSelector(b.Selector, b.Config(), rng), nil
}

func setBound(dst *Bound, v *Bound) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
