// Package pnl builds the profit-and-loss statement from the revenue and cost
// plans: EBITDA through depreciation and interest to EBT, taxes, and net
// income. Taxes are booked on positive pre-tax income only; losses carry no
// credit.
package pnl

import (
	"fmt"

	"mbo_model/pkg/core/assumptions"
	"mbo_model/pkg/core/cost"
	"mbo_model/pkg/core/revenue"
)

// Year is one row of the P&L.
type Year struct {
	Year int `json:"year"`

	Revenue        float64 `json:"revenue"`
	PersonnelCosts float64 `json:"personnel_costs"`
	OverheadCosts  float64 `json:"overhead_costs"`
	VariableCosts  float64 `json:"variable_costs"`
	TotalCosts     float64 `json:"total_costs"`

	EBITDA          float64 `json:"ebitda"`
	EBITDAMargin    float64 `json:"ebitda_margin"`
	Depreciation    float64 `json:"depreciation"`
	EBIT            float64 `json:"ebit"`
	InterestExpense float64 `json:"interest_expense"`
	EBT             float64 `json:"ebt"`
	Taxes           float64 `json:"taxes"`
	NetIncome       float64 `json:"net_income"`
}

// Build assembles the P&L from the operating plans, a depreciation schedule
// and the interest series from the debt schedule.
func Build(deal *assumptions.Deal, rev []revenue.Year, costs []cost.Year, depreciation, interest []float64) ([]Year, error) {
	horizon := deal.HorizonYears
	if len(rev) != horizon || len(costs) != horizon {
		return nil, fmt.Errorf("revenue has %d years, costs %d, horizon is %d", len(rev), len(costs), horizon)
	}
	if len(depreciation) != horizon || len(interest) != horizon {
		return nil, fmt.Errorf("depreciation has %d years, interest %d, horizon is %d", len(depreciation), len(interest), horizon)
	}

	out := make([]Year, horizon)
	for i := 0; i < horizon; i++ {
		row := Year{
			Year:           i,
			Revenue:        rev[i].FinalRevenue,
			PersonnelCosts: costs[i].PersonnelCosts,
			OverheadCosts:  costs[i].FixedOverhead,
			VariableCosts:  costs[i].VariableCosts,
			TotalCosts:     costs[i].TotalOperating,
		}
		row.EBITDA = row.Revenue - row.TotalCosts
		if row.Revenue != 0 {
			row.EBITDAMargin = row.EBITDA / row.Revenue
		}
		row.Depreciation = depreciation[i]
		row.EBIT = row.EBITDA - row.Depreciation
		row.InterestExpense = interest[i]
		row.EBT = row.EBIT - row.InterestExpense
		if row.EBT > 0 {
			row.Taxes = row.EBT * deal.TaxRate
		}
		row.NetIncome = row.EBT - row.Taxes
		out[i] = row
	}
	return out, nil
}

// EBITDASeries extracts the EBITDA column.
func EBITDASeries(rows []Year) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = r.EBITDA
	}
	return out
}

// TaxSeries extracts the booked tax column.
func TaxSeries(rows []Year) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = r.Taxes
	}
	return out
}

// CapexSeries derives the investment plan from the cashflow policy: a fixed
// base amount plus a percentage of revenue.
func CapexSeries(deal *assumptions.Deal, rev []revenue.Year) []float64 {
	out := make([]float64, len(rev))
	for i, r := range rev {
		out[i] = deal.Cashflow.BaseCapex + deal.Cashflow.CapexPctRevenue*r.FinalRevenue
	}
	return out
}

// DepreciationSchedule builds the depreciation series. A configured base
// amount wins; otherwise capex is written off straight-line over the
// configured useful life. Depreciation is capped so the net fixed-asset
// balance never goes negative.
func DepreciationSchedule(deal *assumptions.Deal, capex []float64) []float64 {
	out := make([]float64, len(capex))
	life := deal.Balance.DepreciationYears
	if life <= 0 {
		life = 5
	}
	netFixedAssets := 0.0
	for i := range capex {
		netFixedAssets += capex[i]
		var dep float64
		if deal.Balance.BaseDepreciation > 0 {
			dep = deal.Balance.BaseDepreciation
		} else {
			dep = netFixedAssets / float64(life)
		}
		if dep > netFixedAssets {
			dep = netFixedAssets
		}
		out[i] = dep
		netFixedAssets -= dep
	}
	return out
}
