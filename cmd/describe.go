package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/matchbin/matchbin"
)

var describeAll bool // Describe every policy instead of the selected one

// describeSelectors writes the descriptor of the bundle's selector, or of
// every policy when all is set.
func describeSelectors(w io.Writer, bundle *matchbin.SelectorBundle, all bool) {
	cfg := bundle.Config()
	names := []string{bundle.Selector}
	if all {
		names = matchbin.ValidSelectorNames()
	}
	for _, name := range names {
		// Roulette constructors require a source; descriptors never draw from it.
		sel := matchbin.NewSelector(name, cfg, matchbin.NewPartitionedRNG(0).ForSubsystem(matchbin.SubsystemSelector))
		fmt.Fprintln(w, sel.String())
	}
}

// describeCmd prints the effective selector configuration
var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Print the effective selector configuration",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		bundle, err := loadBundle()
		if err != nil {
			logrus.Fatalf("Invalid selector config: %v", err)
		}
		if describeAll {
			// Validate only checks the selected policy.
			cfg := bundle.Config()
			for _, err := range []error{cfg.Ranked.Validate(), cfg.Roulette.Validate(), cfg.ExpRoulette.Validate()} {
				if err != nil {
					logrus.Fatalf("Invalid selector config: %v", err)
				}
			}
		}
		describeSelectors(os.Stdout, bundle, describeAll)
	},
}

func init() {
	describeCmd.Flags().BoolVar(&describeAll, "all", false, "Describe every selector policy")
}
