package cli

import (
	"context"
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mbo_model/pkg/core/model"
	"mbo_model/pkg/core/store"
	"mbo_model/pkg/core/validate"
)

var (
	runFile     string
	runScenario string
	runSave     bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the model and print the statements",
	Long: `Run the integrated model for one scenario and print the P&L, the
debt schedule and the headline KPIs.

Examples:
  # Demo deal, base case
  mbo run

  # Own assumptions, worst case
  mbo run --file deal.yaml --scenario Worst
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		deal, err := loadDeal(runFile, runScenario)
		if err != nil {
			return err
		}

		res, err := model.Run(context.Background(), deal)
		if err != nil {
			return fmt.Errorf("model run failed: %w", err)
		}

		printHeadline(res)
		printPnL(res)
		printDebt(res)

		if runSave {
			if os.Getenv("DATABASE_URL") != "" {
				if err := store.InitDB(cmd.Context()); err != nil {
					fmt.Printf("[WARNING] Database unavailable, using file vault: %v\n", err)
				}
			}
			repo := store.NewRunRepo(store.GetPool(), "")
			if err := repo.Save(cmd.Context(), res); err != nil {
				return fmt.Errorf("failed to save run: %w", err)
			}
			fmt.Printf("Saved run %s\n", res.RunID)
		}

		if verbose {
			fmt.Printf("\nConverged in %d passes.\n", res.Passes)
			issues := validate.CheckRun(res)
			if len(issues) == 0 {
				color.Green("All consistency checks passed.")
			}
			for _, issue := range issues {
				color.Red("  %s", issue)
			}
		}
		return nil
	},
}

func init() {
	runCmd.Flags().StringVarP(&runFile, "file", "f", "", "Assumptions file (.yaml, .json or .hjson); omit for the demo deal")
	runCmd.Flags().StringVarP(&runScenario, "scenario", "s", "", "Scenario to run (Base, Best, Worst)")
	runCmd.Flags().BoolVar(&runSave, "save", false, "Persist the run (database when DATABASE_URL is set, local file vault otherwise)")
	rootCmd.AddCommand(runCmd)
}

func printHeadline(res *model.Results) {
	title := color.New(color.Bold)
	title.Printf("%s — %s case\n\n", res.Deal, res.Scenario)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Equity IRR\t%s\n", fmtPct(res.KPIs.IRR))
	fmt.Fprintf(w, "MOIC\t%.2fx\n", res.KPIs.MOIC)
	fmt.Fprintf(w, "Minimum cash\t%s (FY%d)\n", fmtEUR(res.KPIs.MinimumCash), res.KPIs.MinimumCashYear+1)
	fmt.Fprintf(w, "Minimum DSCR\t%.2fx (FY%d)\n", res.KPIs.MinimumDSCR, res.KPIs.MinimumDSCRYear+1)
	fmt.Fprintf(w, "Peak debt\t%s\n", fmtEUR(res.KPIs.PeakDebt))
	w.Flush()

	if len(res.KPIs.BreachYears) > 0 {
		color.Red("Covenant breach in %d year(s)", len(res.KPIs.BreachYears))
	}
	fmt.Println()
}

func printPnL(res *model.Results) {
	color.New(color.Bold).Println("Profit and loss")
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "Year\tRevenue\tEBITDA\tDep\tInterest\tTaxes\tNet income\t")
	for _, r := range res.PnL {
		fmt.Fprintf(w, "FY%d\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			r.Year+1, fmtEUR(r.Revenue), fmtEUR(r.EBITDA), fmtEUR(r.Depreciation),
			fmtEUR(r.InterestExpense), fmtEUR(r.Taxes), fmtEUR(r.NetIncome))
	}
	w.Flush()
	fmt.Println()
}

func printDebt(res *model.Results) {
	color.New(color.Bold).Println("Debt schedule")
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "Year\tOpening\tRepaid\tSweep\tClosing\tRevolver\tCash\tDSCR\t")
	for _, r := range res.Debt {
		dscr := "n/a"
		if r.DebtService > 0 {
			dscr = fmt.Sprintf("%.2fx", r.DSCR)
		}
		fmt.Fprintf(w, "FY%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			r.Year+1, fmtEUR(r.OpeningSenior), fmtEUR(r.ScheduledRepayment+r.SpecialRepayment),
			fmtEUR(r.SweepRepayment), fmtEUR(r.ClosingSenior), fmtEUR(r.ClosingRevolver),
			fmtEUR(r.ClosingCash), dscr)
	}
	w.Flush()
	fmt.Println()
}

func fmtEUR(v float64) string {
	return fmt.Sprintf("%.0fk", v/1000)
}

func fmtPct(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", v*100)
}
