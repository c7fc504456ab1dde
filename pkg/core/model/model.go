// Package model orchestrates one full run: revenue and cost plans, then a
// fixed-point loop across the debt schedule, the P&L and the cash-tax
// series until interest and taxes stop moving, then the cashflow statement,
// balance sheet and equity summary built from the converged pass.
package model

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	"mbo_model/pkg/core/assumptions"
	"mbo_model/pkg/core/balance"
	"mbo_model/pkg/core/cashflow"
	"mbo_model/pkg/core/cost"
	"mbo_model/pkg/core/debt"
	"mbo_model/pkg/core/equity"
	"mbo_model/pkg/core/pnl"
	"mbo_model/pkg/core/revenue"
)

const (
	// convergenceTolerance bounds the per-year movement in taxes and
	// closing debt between passes, in EUR.
	convergenceTolerance = 0.5
	maxPasses            = 24
)

// KPIs are the headline figures of a run.
type KPIs struct {
	MinimumCash     float64 `json:"minimum_cash"`
	MinimumCashYear int     `json:"minimum_cash_year"`
	MinimumDSCR     float64 `json:"minimum_dscr"`
	MinimumDSCRYear int     `json:"minimum_dscr_year"`
	BreachYears     []int   `json:"covenant_breach_years"`
	PeakDebt        float64 `json:"peak_debt"`
	ExitYearRevenue float64 `json:"exit_year_revenue"`
	ExitYearEBITDA  float64 `json:"exit_year_ebitda"`
	IRR             float64 `json:"irr"`
	MOIC            float64 `json:"moic"`
}

// Results is the complete output of one scenario run.
type Results struct {
	RunID    string               `json:"run_id"`
	Deal     string               `json:"deal"`
	Scenario assumptions.Scenario `json:"scenario"`

	Revenue  []revenue.Year  `json:"revenue"`
	Costs    []cost.Year     `json:"costs"`
	PnL      []pnl.Year      `json:"pnl"`
	Debt     []debt.Year     `json:"debt_schedule"`
	Cashflow []cashflow.Year `json:"cashflow"`
	Balance  []balance.Year  `json:"balance_sheet"`
	Equity   *equity.Summary `json:"equity_summary"`

	KPIs   KPIs `json:"kpis"`
	Passes int  `json:"convergence_passes"`
}

// Run executes the model for the deal's active scenario.
func Run(ctx context.Context, deal *assumptions.Deal) (*Results, error) {
	return RunScenario(ctx, deal, deal.Scenario)
}

// RunScenario executes the model for a specific revenue scenario, leaving
// the deal unmodified.
func RunScenario(ctx context.Context, deal *assumptions.Deal, scenario assumptions.Scenario) (*Results, error) {
	if err := deal.Validate(); err != nil {
		return nil, fmt.Errorf("invalid assumptions: %w", err)
	}

	rev, err := revenue.BuildFor(deal, scenario)
	if err != nil {
		return nil, fmt.Errorf("revenue plan: %w", err)
	}
	revTotals := revenue.Totals(rev)
	costs, err := cost.Build(deal, revTotals)
	if err != nil {
		return nil, fmt.Errorf("cost plan: %w", err)
	}

	horizon := deal.HorizonYears
	capex := pnl.CapexSeries(deal, rev)
	depreciation := pnl.DepreciationSchedule(deal, capex)
	nwcChange := cashflow.NWCChange(deal, revTotals)

	ebitda := make([]float64, horizon)
	for i := range ebitda {
		ebitda[i] = revTotals[i] - costs[i].TotalOperating
	}

	// Interest depends on the debt balances, the balances depend on the
	// sweep, the sweep depends on cash after taxes, and cash taxes depend
	// on interest. Iterate the whole chain until the tax and closing-debt
	// series are stable.
	taxesPaid := make([]float64, horizon)
	dividendsReq := make([]float64, horizon)
	var schedule []debt.Year
	var statement []pnl.Year
	converged := false
	passes := 0
	for ; passes < maxPasses; passes++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		schedule, err = debt.BuildSchedule(deal, debt.OperatingSeries{
			Revenue:            revTotals,
			EBITDA:             ebitda,
			TaxesPaid:          taxesPaid,
			NWCChange:          nwcChange,
			Capex:              capex,
			RequestedDividends: dividendsReq,
		})
		if err != nil {
			return nil, fmt.Errorf("debt schedule: %w", err)
		}
		statement, err = pnl.Build(deal, rev, costs, depreciation, debt.Interest(schedule))
		if err != nil {
			return nil, fmt.Errorf("profit and loss: %w", err)
		}

		nextTaxes := cashflow.TaxesPaid(deal, pnl.TaxSeries(statement))
		nextDividends := requestedDividends(deal, statement)

		delta := 0.0
		for i := 0; i < horizon; i++ {
			delta = math.Max(delta, math.Abs(nextTaxes[i]-taxesPaid[i]))
			delta = math.Max(delta, math.Abs(nextDividends[i]-dividendsReq[i]))
		}
		taxesPaid, dividendsReq = nextTaxes, nextDividends
		if delta < convergenceTolerance {
			converged = true
			passes++
			break
		}
	}
	if !converged {
		return nil, fmt.Errorf("model did not converge after %d passes", maxPasses)
	}

	// Last pass with the converged series so every statement agrees.
	schedule, err = debt.BuildSchedule(deal, debt.OperatingSeries{
		Revenue:            revTotals,
		EBITDA:             ebitda,
		TaxesPaid:          taxesPaid,
		NWCChange:          nwcChange,
		Capex:              capex,
		RequestedDividends: dividendsReq,
	})
	if err != nil {
		return nil, fmt.Errorf("debt schedule: %w", err)
	}
	statement, err = pnl.Build(deal, rev, costs, depreciation, debt.Interest(schedule))
	if err != nil {
		return nil, fmt.Errorf("profit and loss: %w", err)
	}

	cfs, err := cashflow.Build(deal, statement, schedule, taxesPaid, nwcChange, capex)
	if err != nil {
		return nil, fmt.Errorf("cashflow statement: %w", err)
	}
	bs, err := balance.Build(deal, statement, cfs, schedule)
	if err != nil {
		return nil, fmt.Errorf("balance sheet: %w", err)
	}
	eq, err := equity.Build(deal, statement, cfs, schedule)
	if err != nil {
		return nil, fmt.Errorf("equity summary: %w", err)
	}

	res := &Results{
		RunID:    uuid.New().String(),
		Deal:     deal.Name,
		Scenario: scenario,
		Revenue:  rev,
		Costs:    costs,
		PnL:      statement,
		Debt:     schedule,
		Cashflow: cfs,
		Balance:  bs,
		Equity:   eq,
		Passes:   passes,
	}
	res.KPIs = computeKPIs(deal, res)
	return res, nil
}

// requestedDividends applies the payout policy to the prior year's net
// income. The schedule may pay less when cash is tight.
func requestedDividends(deal *assumptions.Deal, statement []pnl.Year) []float64 {
	out := make([]float64, len(statement))
	ratio := deal.Equity.DividendPayoutRatio
	if ratio <= 0 {
		return out
	}
	for i := range statement {
		if i == 0 || i < deal.Equity.FirstDividendYear {
			continue
		}
		if ni := statement[i-1].NetIncome; ni > 0 {
			out[i] = ratio * ni
		}
	}
	return out
}

func computeKPIs(deal *assumptions.Deal, res *Results) KPIs {
	k := KPIs{
		MinimumCash: math.Inf(1),
		MinimumDSCR: math.Inf(1),
		PeakDebt:    debt.PeakDebt(res.Debt),
	}
	for _, row := range res.Debt {
		if row.ClosingCash < k.MinimumCash {
			k.MinimumCash = row.ClosingCash
			k.MinimumCashYear = row.Year
		}
		if row.DebtService > 0 && row.DSCR < k.MinimumDSCR {
			k.MinimumDSCR = row.DSCR
			k.MinimumDSCRYear = row.Year
		}
		if row.CovenantBreach {
			k.BreachYears = append(k.BreachYears, row.Year)
		}
	}
	if math.IsInf(k.MinimumDSCR, 1) {
		k.MinimumDSCR = 0
	}
	exit := deal.ExitYearIndex()
	k.ExitYearRevenue = res.PnL[exit].Revenue
	k.ExitYearEBITDA = res.PnL[exit].EBITDA
	k.IRR = res.Equity.IRR
	k.MOIC = res.Equity.MOIC
	return k
}
