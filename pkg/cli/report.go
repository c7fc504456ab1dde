package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"mbo_model/pkg/core/model"
	"mbo_model/pkg/core/report"
)

var (
	reportFile     string
	reportScenario string
	reportOut      string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render the full deal report",
	Long: `Run the model and render the complete report: headline KPIs plus
all five statements. Markdown by default; a .html output path switches to
the HTML export.

Examples:
  mbo report --file deal.yaml --out report.md
  mbo report --out report.html
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		deal, err := loadDeal(reportFile, reportScenario)
		if err != nil {
			return err
		}

		res, err := model.Run(context.Background(), deal)
		if err != nil {
			return fmt.Errorf("model run failed: %w", err)
		}

		var out string
		if strings.HasSuffix(reportOut, ".html") {
			out, err = report.HTML(res)
			if err != nil {
				return err
			}
		} else {
			out = report.Markdown(res)
		}

		if reportOut == "" {
			fmt.Print(out)
			return nil
		}
		if err := os.WriteFile(reportOut, []byte(out), 0644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		fmt.Printf("Report written to %s\n", reportOut)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVarP(&reportFile, "file", "f", "", "Assumptions file; omit for the demo deal")
	reportCmd.Flags().StringVarP(&reportScenario, "scenario", "s", "", "Scenario to run (Base, Best, Worst)")
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "", "Output path (.md or .html); omit for stdout")
	rootCmd.AddCommand(reportCmd)
}
