// verify_model runs the bundled demo deal through every scenario and
// cross-checks each run: balance identity, cashflow articulation, debt
// floors, net-income ties. Exits non-zero on the first inconsistency, so it
// can gate a release.
package main

import (
	"context"
	"fmt"
	"os"

	"mbo_model/pkg/core/assumptions"
	"mbo_model/pkg/core/model"
	"mbo_model/pkg/core/validate"
)

func main() {
	deal := assumptions.Demo()
	failed := false

	for _, scenario := range deal.ConfiguredScenarios() {
		fmt.Printf("--- %s ---\n", scenario)
		res, err := model.RunScenario(context.Background(), deal, scenario)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			failed = true
			continue
		}

		fmt.Printf("Converged in %d passes\n", res.Passes)
		fmt.Printf("FY1 revenue: %.0f, exit EBITDA: %.0f\n", res.PnL[0].Revenue, res.KPIs.ExitYearEBITDA)
		fmt.Printf("IRR: %.2f%%, MOIC: %.2fx, min DSCR: %.2fx\n",
			res.KPIs.IRR*100, res.KPIs.MOIC, res.KPIs.MinimumDSCR)

		issues := validate.CheckRun(res)
		if len(issues) == 0 {
			fmt.Println("All consistency checks passed")
			continue
		}
		failed = true
		for _, issue := range issues {
			fmt.Printf("FAIL %s\n", issue)
		}
	}

	if failed {
		os.Exit(1)
	}
}
