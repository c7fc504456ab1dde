package validate

import (
	"fmt"

	"mbo_model/pkg/core/model"
)

// Issue is one failed cross-check on a model run.
type Issue struct {
	Year    int    `json:"year"`
	Check   string `json:"check"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("year %d [%s]: %s", i.Year, i.Check, i.Message)
}

// CheckRun cross-checks a completed run: the balance identity, the cashflow
// articulation, debt floors, and the net-income tie between P&L and equity.
// An empty slice means the run is internally consistent.
func CheckRun(res *model.Results) []Issue {
	var issues []Issue
	const tolerance = 1.0

	for i, bs := range res.Balance {
		bc := CheckBalanceEquation(bs.TotalAssets, bs.TotalLiabilities, bs.ClosingEquity, tolerance)
		if !bc.IsBalanced {
			issues = append(issues, Issue{
				Year:  i,
				Check: "balance_identity",
				Message: fmt.Sprintf("assets %.2f vs liabilities+equity %.2f (diff %.2f)",
					bc.TotalAssets, bc.ComputedAssets, bc.Difference),
			})
		}

		equityRoll := bs.OpeningEquity + bs.NetIncome - bs.DividendsPaid
		if diff := bs.ClosingEquity - equityRoll; diff > tolerance || diff < -tolerance {
			issues = append(issues, Issue{
				Year:    i,
				Check:   "equity_roll",
				Message: fmt.Sprintf("closing equity %.2f does not tie to roll-forward %.2f", bs.ClosingEquity, equityRoll),
			})
		}
	}

	for i, cf := range res.Cashflow {
		cfc := CheckCashFlowEquation(cf.OperatingCF, -cf.Capex, cf.FinancingCF, cf.NetCashflow, tolerance)
		if !cfc.IsBalanced {
			issues = append(issues, Issue{
				Year:    i,
				Check:   "cashflow_articulation",
				Message: fmt.Sprintf("reported net cashflow %.2f vs computed %.2f", cfc.ReportedTotal, cfc.ComputedTotal),
			})
		}
		if diff := cf.ClosingCash - cf.OpeningCash - cf.NetCashflow; diff > tolerance || diff < -tolerance {
			issues = append(issues, Issue{
				Year:    i,
				Check:   "cash_roll",
				Message: fmt.Sprintf("closing cash %.2f does not tie to opening %.2f plus net %.2f", cf.ClosingCash, cf.OpeningCash, cf.NetCashflow),
			})
		}
	}

	for i, row := range res.Debt {
		if row.ClosingSenior < -tolerance || row.ClosingRevolver < -tolerance {
			issues = append(issues, Issue{
				Year:    i,
				Check:   "debt_floor",
				Message: fmt.Sprintf("negative debt balance: senior %.2f, revolver %.2f", row.ClosingSenior, row.ClosingRevolver),
			})
		}
		if row.TotalRepayment > row.OpeningSenior+row.Drawdown+tolerance {
			issues = append(issues, Issue{
				Year:    i,
				Check:   "repayment_cap",
				Message: fmt.Sprintf("repayment %.2f exceeds opening balance %.2f", row.TotalRepayment, row.OpeningSenior+row.Drawdown),
			})
		}
	}

	for i, row := range res.PnL {
		tie := row.EBT - row.Taxes
		if diff := row.NetIncome - tie; diff > tolerance || diff < -tolerance {
			issues = append(issues, Issue{
				Year:    i,
				Check:   "net_income_tie",
				Message: fmt.Sprintf("net income %.2f does not tie to EBT minus taxes %.2f", row.NetIncome, tie),
			})
		}
	}

	return issues
}
