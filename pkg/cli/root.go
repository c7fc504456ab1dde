// Package cli implements the mbo command line: run a deal, compare its
// scenarios, render a report, and inspect the input catalog.
package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"mbo_model/pkg/core/assumptions"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "mbo",
	Short: "Run an integrated MBO financial model from an assumptions file",
	Long: `mbo runs an integrated buyout model: connected P&L, cashflow,
debt schedule, balance sheet and equity returns over the plan horizon.

Assumptions load from YAML, JSON or HJSON files. Without a file, the
bundled demo deal runs.

Examples:
	# Run the demo deal on its base case
	mbo run

	# Run your own assumptions, worst case
	mbo run --file deal.yaml --scenario Worst

	# Compare all configured scenarios side by side
	mbo scenarios --file deal.yaml

	# Render a full Markdown report
	mbo report --file deal.yaml --out report.md`,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Print convergence details and consistency checks")
}

// SetBuildInfo stamps version metadata from the build.
func SetBuildInfo(version, commit string) {
	if version != "" {
		buildVersion = version
	}
	if commit != "" {
		buildCommit = commit
	}
	rootCmd.Version = fmt.Sprintf("%s (%s)", buildVersion, buildCommit)
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// Execute runs the CLI.
func Execute() {
	godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadDeal resolves the --file/--scenario flags into a deal, defaulting to
// the bundled demo case.
func loadDeal(file, scenario string) (*assumptions.Deal, error) {
	var deal *assumptions.Deal
	if file == "" {
		deal = assumptions.Demo()
	} else {
		var err error
		deal, err = assumptions.Load(file)
		if err != nil {
			return nil, err
		}
	}
	if scenario != "" {
		deal.Scenario = assumptions.Scenario(scenario)
	}
	return deal, nil
}
