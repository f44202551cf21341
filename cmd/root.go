package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/matchbin/matchbin"
	"github.com/inference-sim/matchbin/matchbin/trace"
)

var (
	// CLI flags shared by all subcommands
	seed               int64  // Seed for roulette draws
	logLevel           string // Log verbosity level
	selectorConfigPath string // Path to selector bundle YAML
	selectorName       string // Overrides the bundle's selector
	traceLevel         string // Query trace verbosity
	useEntropy         bool   // Draw from an unseeded CSPRNG instead of --seed
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "matchbin",
	Short: "Select and sample scored match-bin candidates",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid trace level: %s (valid: none, queries)", traceLevel)
		}
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadBundle reads the selector bundle named by --selector-config (defaults
// when unset) and applies the --selector override.
func loadBundle() (*matchbin.SelectorBundle, error) {
	bundle := &matchbin.SelectorBundle{}
	if selectorConfigPath != "" {
		var err error
		bundle, err = matchbin.LoadSelectorBundle(selectorConfigPath)
		if err != nil {
			return nil, err
		}
	}
	if selectorName != "" {
		bundle.Selector = selectorName
	}
	if err := bundle.Validate(); err != nil {
		return nil, err
	}
	logrus.Infof("Loaded selector config (selector=%q, path=%q)", bundle.Selector, selectorConfigPath)
	return bundle, nil
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 42, "Seed for roulette draws")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&selectorConfigPath, "selector-config", "", "Path to selector YAML config (defaults used when unset)")
	rootCmd.PersistentFlags().StringVar(&selectorName, "selector", "", "Selector policy override (ranked, roulette, exp-roulette)")
	rootCmd.PersistentFlags().StringVar(&traceLevel, "trace", "none", "Query trace level (none, queries)")
	rootCmd.PersistentFlags().BoolVar(&useEntropy, "entropy", false, "Draw from an unseeded CSPRNG; ignores --seed")

	rootCmd.AddCommand(selectCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(describeCmd)
}
