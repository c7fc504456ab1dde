// Package balance articulates the balance sheet from the other statements:
// cash and working capital from the cashflow statement, fixed assets and the
// acquisition intangible on the asset side, debt and deferred taxes on the
// liability side, and the equity roll-forward. The identity A = L + E must
// hold within tolerance every year or the build fails.
package balance

import (
	"fmt"
	"math"

	"mbo_model/pkg/core/assumptions"
	"mbo_model/pkg/core/cashflow"
	"mbo_model/pkg/core/debt"
	"mbo_model/pkg/core/pnl"
)

// Tolerance is the maximum acceptable absolute gap between total assets and
// total liabilities plus equity, in EUR.
const Tolerance = 1.0

// Year is one balance-sheet snapshot at year end.
type Year struct {
	Year int `json:"year"`

	Cash            float64 `json:"cash"`
	NetWorkingCap   float64 `json:"net_working_capital"`
	NetFixedAssets  float64 `json:"net_fixed_assets"`
	Intangibles     float64 `json:"acquisition_intangibles"`
	TotalAssets     float64 `json:"total_assets"`

	SeniorDebt       float64 `json:"senior_debt"`
	Revolver         float64 `json:"revolver"`
	TaxPayable       float64 `json:"tax_payable"`
	TotalLiabilities float64 `json:"total_liabilities"`

	OpeningEquity   float64 `json:"opening_equity"`
	NetIncome       float64 `json:"net_income"`
	DividendsPaid   float64 `json:"dividends_paid"`
	ClosingEquity   float64 `json:"closing_equity"`

	BalanceGap float64 `json:"balance_gap"`
}

// Build assembles the balance sheet and verifies the accounting identity.
func Build(deal *assumptions.Deal, rows []pnl.Year, cfs []cashflow.Year, schedule []debt.Year) ([]Year, error) {
	horizon := deal.HorizonYears
	if len(rows) != horizon || len(cfs) != horizon || len(schedule) != horizon {
		return nil, fmt.Errorf("statement lengths %d/%d/%d do not match horizon %d",
			len(rows), len(cfs), len(schedule), horizon)
	}

	out := make([]Year, horizon)
	netFixedAssets := 0.0
	nwcBalance := 0.0
	taxPayable := 0.0
	equity := deal.Balance.OpeningEquity + deal.TotalEquity()
	// Transaction fees are capitalized into the acquisition intangible.
	intangibles := deal.Transaction.PurchasePrice + deal.TransactionFees()

	for i := 0; i < horizon; i++ {
		bs := Year{Year: i, OpeningEquity: equity}

		netFixedAssets += cfs[i].Capex - rows[i].Depreciation
		nwcBalance += cfs[i].NWCChange
		taxPayable += rows[i].Taxes - cfs[i].TaxesPaid

		bs.Cash = cfs[i].ClosingCash
		bs.NetWorkingCap = nwcBalance
		bs.NetFixedAssets = netFixedAssets
		bs.Intangibles = intangibles
		bs.TotalAssets = bs.Cash + bs.NetWorkingCap + bs.NetFixedAssets + bs.Intangibles

		bs.SeniorDebt = schedule[i].ClosingSenior
		bs.Revolver = schedule[i].ClosingRevolver
		bs.TaxPayable = taxPayable
		bs.TotalLiabilities = bs.SeniorDebt + bs.Revolver + bs.TaxPayable

		bs.NetIncome = rows[i].NetIncome
		bs.DividendsPaid = schedule[i].DividendsPaid
		equity += bs.NetIncome - bs.DividendsPaid
		bs.ClosingEquity = equity

		bs.BalanceGap = bs.TotalAssets - bs.TotalLiabilities - bs.ClosingEquity
		if math.Abs(bs.BalanceGap) > Tolerance {
			return nil, fmt.Errorf("balance sheet out of balance in year %d: assets %.2f vs liabilities+equity %.2f (gap %.2f)",
				i, bs.TotalAssets, bs.TotalLiabilities+bs.ClosingEquity, bs.BalanceGap)
		}
		out[i] = bs
	}
	return out, nil
}
