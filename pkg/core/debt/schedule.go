// Package debt rolls the financing structure forward year by year: senior
// amortization (linear or bullet, with grace and special repayments), a cash
// sweep on excess liquidity, a revolver that protects the minimum cash
// balance, and the DSCR covenant test.
//
// Interest accrues on the average of opening and closing balances, and the
// closing balance depends on the sweep, which depends on cash after interest.
// Each year resolves that circularity with a short fixed-point iteration; the
// cross-year feedback through taxes is resolved by the model orchestrator.
package debt

import (
	"fmt"
	"math"

	"mbo_model/pkg/core/assumptions"
)

// OperatingSeries carries the pre-financing cash drivers into the schedule.
// All slices are indexed by year and must cover the horizon.
type OperatingSeries struct {
	Revenue            []float64
	EBITDA             []float64
	TaxesPaid          []float64
	NWCChange          []float64
	Capex              []float64
	RequestedDividends []float64
}

// Year is one row of the debt schedule, including the cash path the
// financing decisions were made against.
type Year struct {
	Year int `json:"year"`

	OpeningSenior      float64 `json:"opening_debt"`
	Drawdown           float64 `json:"debt_drawdown"`
	ScheduledRepayment float64 `json:"scheduled_repayment"`
	SpecialRepayment   float64 `json:"special_repayment"`
	SweepRepayment     float64 `json:"sweep_repayment"`
	TotalRepayment     float64 `json:"total_repayment"`
	ClosingSenior      float64 `json:"closing_debt"`

	OpeningRevolver   float64 `json:"opening_revolver"`
	RevolverDraw      float64 `json:"revolver_draw"`
	RevolverRepayment float64 `json:"revolver_repayment"`
	ClosingRevolver   float64 `json:"closing_revolver"`

	SeniorInterest   float64 `json:"senior_interest"`
	RevolverInterest float64 `json:"revolver_interest"`
	InterestExpense  float64 `json:"interest_expense"`

	DebtService    float64 `json:"debt_service"`
	CFADS          float64 `json:"cfads"`
	DSCR           float64 `json:"dscr"`
	CovenantBreach bool    `json:"covenant_breach"`

	DividendsPaid float64 `json:"dividends_paid"`

	OpeningCash float64 `json:"opening_cash"`
	ClosingCash float64 `json:"closing_cash"`
	FundingGap  float64 `json:"funding_gap"`
}

const (
	// balanceTolerance ends the per-year fixed-point loop.
	balanceTolerance  = 1e-6
	maxYearIterations = 60
)

// BuildSchedule computes the full schedule for a deal against an operating
// series. The series normally comes from the previous orchestrator pass; a
// zero-valued TaxesPaid series is a valid first pass.
func BuildSchedule(deal *assumptions.Deal, ops OperatingSeries) ([]Year, error) {
	horizon := deal.HorizonYears
	for name, s := range map[string][]float64{
		"revenue":   ops.Revenue,
		"ebitda":    ops.EBITDA,
		"taxes":     ops.TaxesPaid,
		"nwc":       ops.NWCChange,
		"capex":     ops.Capex,
		"dividends": ops.RequestedDividends,
	} {
		if len(s) != horizon {
			return nil, fmt.Errorf("operating series '%s' has %d years, horizon is %d", name, len(s), horizon)
		}
	}

	fin := deal.Financing
	minCash := deal.Balance.MinimumCash

	schedule := make([]Year, horizon)
	openSenior := 0.0
	openRevolver := 0.0
	openCash := deal.Cashflow.OpeningCash

	for i := 0; i < horizon; i++ {
		row := Year{Year: i, OpeningCash: openCash}

		// Sources and uses at close land in year 0.
		closeAdjustment := 0.0
		if i == 0 {
			row.Drawdown = fin.SeniorDebt
			openSenior = fin.SeniorDebt
			closeAdjustment = fin.SeniorDebt + deal.TotalEquity() -
				deal.Transaction.PurchasePrice - deal.TransactionFees()
		}
		row.OpeningSenior = openSenior
		row.OpeningRevolver = openRevolver

		scheduled := scheduledRepayment(fin, i, openSenior)
		special := 0.0
		if fin.SpecialRepaymentYear != nil && *fin.SpecialRepaymentYear == i {
			special = math.Min(fin.SpecialRepaymentAmount, openSenior-scheduled)
			special = math.Max(special, 0)
		}

		preFinancing := openCash + closeAdjustment +
			ops.EBITDA[i] - ops.TaxesPaid[i] - ops.NWCChange[i] - ops.Capex[i]

		// Fixed point on the closing balances: interest uses the average
		// balance, and the sweep that sets the closing balance depends on
		// cash left after interest.
		closeSenior := openSenior - scheduled - special
		if closeSenior < 0 {
			closeSenior = 0
		}
		closeRevolver := openRevolver

		var sweep, revolverRepay, draw, dividends, closingCash float64
		var seniorInterest, revolverInterest float64

		for iter := 0; iter < maxYearIterations; iter++ {
			seniorInterest = fin.SeniorRate * (openSenior + closeSenior) / 2
			revolverInterest = fin.RevolverRate * (openRevolver + closeRevolver) / 2
			interest := seniorInterest + revolverInterest

			afterScheduled := preFinancing - interest - scheduled - special

			// Surplus repays the revolver before any sweep.
			revolverRepay = math.Min(openRevolver, math.Max(0, afterScheduled-minCash))
			afterRevolver := afterScheduled - revolverRepay

			sweep = fin.CashSweepPct * math.Max(0, afterRevolver-minCash)
			sweep = math.Min(sweep, math.Max(0, openSenior-scheduled-special))
			afterSweep := afterRevolver - sweep

			dividends = 0
			if i >= deal.Equity.FirstDividendYear {
				dividends = math.Min(ops.RequestedDividends[i], math.Max(0, afterSweep-minCash))
			}
			afterDividends := afterSweep - dividends

			draw = 0
			if afterDividends < minCash {
				headroom := fin.RevolverLimit - (openRevolver - revolverRepay)
				draw = math.Min(math.Max(0, headroom), minCash-afterDividends)
			}
			closingCash = afterDividends + draw

			newCloseSenior := math.Max(0, openSenior-scheduled-special-sweep)
			newCloseRevolver := openRevolver - revolverRepay + draw

			if math.Abs(newCloseSenior-closeSenior)+math.Abs(newCloseRevolver-closeRevolver) < balanceTolerance {
				closeSenior = newCloseSenior
				closeRevolver = newCloseRevolver
				break
			}
			closeSenior = newCloseSenior
			closeRevolver = newCloseRevolver
		}

		row.ScheduledRepayment = scheduled
		row.SpecialRepayment = special
		row.SweepRepayment = sweep
		row.TotalRepayment = math.Min(openSenior, scheduled+special+sweep)
		row.ClosingSenior = closeSenior
		row.RevolverRepayment = revolverRepay
		row.RevolverDraw = draw
		row.ClosingRevolver = closeRevolver
		row.SeniorInterest = seniorInterest
		row.RevolverInterest = revolverInterest
		row.InterestExpense = seniorInterest + revolverInterest
		row.DividendsPaid = dividends
		row.ClosingCash = closingCash
		row.FundingGap = math.Max(0, minCash-closingCash)

		// Covenant view: CFADS against mandatory service only.
		maintenanceCapex := ops.Revenue[i] * fin.MaintenanceCapexPct
		row.CFADS = ops.EBITDA[i] - ops.TaxesPaid[i] - maintenanceCapex - ops.NWCChange[i]
		row.DebtService = row.InterestExpense + scheduled + special
		if row.DebtService > 0 {
			row.DSCR = row.CFADS / row.DebtService
			row.CovenantBreach = row.DSCR < fin.MinimumDSCR
		}

		schedule[i] = row
		openSenior = closeSenior
		openRevolver = closeRevolver
		openCash = closingCash
	}

	return schedule, nil
}

func scheduledRepayment(fin assumptions.Financing, year int, openSenior float64) float64 {
	if openSenior <= 0 {
		return 0
	}
	if fin.Amortization == assumptions.AmortizationBullet {
		bulletYear := fin.AmortYears - 1
		if bulletYear < 0 {
			bulletYear = 0
		}
		if year == bulletYear {
			return openSenior
		}
		return 0
	}
	// Linear: the grace period eats into the amortization window, matching
	// how the repayment plan is quoted.
	if year < fin.GraceYears || year >= fin.AmortYears {
		return 0
	}
	return math.Min(fin.SeniorDebt/float64(fin.AmortYears), openSenior)
}

// Interest extracts the interest expense series from a schedule.
func Interest(schedule []Year) []float64 {
	out := make([]float64, len(schedule))
	for i, row := range schedule {
		out[i] = row.InterestExpense
	}
	return out
}

// PeakDebt returns the highest debt exposure in the schedule. Year 0 counts
// the drawdown plus any revolver drawn at close; later years count the
// opening balances.
func PeakDebt(schedule []Year) float64 {
	peak := 0.0
	for _, row := range schedule {
		exposure := row.OpeningSenior + row.OpeningRevolver
		if row.Year == 0 {
			exposure = row.Drawdown + row.ClosingRevolver
		}
		if exposure > peak {
			peak = exposure
		}
	}
	return peak
}
