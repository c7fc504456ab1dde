package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mbo_model/pkg/core/model"
)

var scenariosFile string

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "Run all configured scenarios and compare them",
	Long: `Run every scenario the deal configures (Base, Best, Worst by
default) and print the comparison table.

Examples:
  mbo scenarios
  mbo scenarios --file deal.yaml
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		deal, err := loadDeal(scenariosFile, "")
		if err != nil {
			return err
		}

		set, err := model.RunScenarios(context.Background(), deal)
		if err != nil {
			return fmt.Errorf("scenario comparison failed: %w", err)
		}

		color.New(color.Bold).Printf("%s — scenario comparison\n\n", set.Deal)
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(w, "Scenario\tExit EBITDA\tMin cash\tMin DSCR\tBreaches\tIRR\tMOIC\t")
		for _, name := range set.Names() {
			res := set.Results[name]
			fmt.Fprintf(w, "%s\t%s\t%s\t%.2fx\t%d\t%s\t%.2fx\t\n",
				name, fmtEUR(res.KPIs.ExitYearEBITDA), fmtEUR(res.KPIs.MinimumCash),
				res.KPIs.MinimumDSCR, len(res.KPIs.BreachYears), fmtPct(res.KPIs.IRR), res.KPIs.MOIC)
		}
		w.Flush()
		return nil
	},
}

func init() {
	scenariosCmd.Flags().StringVarP(&scenariosFile, "file", "f", "", "Assumptions file; omit for the demo deal")
	rootCmd.AddCommand(scenariosCmd)
}
