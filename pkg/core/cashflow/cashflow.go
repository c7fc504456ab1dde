// Package cashflow assembles the indirect cashflow statement from the P&L
// and the debt schedule: operating cashflow after cash taxes and working
// capital, investing, and the financing legs the debt schedule already
// settled. Closing cash ties to the schedule's cash path by construction.
package cashflow

import (
	"fmt"

	"mbo_model/pkg/core/assumptions"
	"mbo_model/pkg/core/debt"
	"mbo_model/pkg/core/pnl"
)

// Year is one row of the cashflow statement.
type Year struct {
	Year int `json:"year"`

	EBITDA           float64 `json:"ebitda"`
	TaxesPaid        float64 `json:"taxes_paid"`
	NWCChange        float64 `json:"working_capital_change"`
	OperatingCF      float64 `json:"operating_cashflow"`
	Capex            float64 `json:"capex"`
	FreeCashflow     float64 `json:"free_cashflow"`
	InterestPaid     float64 `json:"interest_paid"`
	DebtRepayment    float64 `json:"debt_repayment"`
	RevolverMovement float64 `json:"revolver_movement"`
	Drawdown         float64 `json:"debt_drawdown"`
	EquityIn         float64 `json:"equity_contribution"`
	AcquisitionOut   float64 `json:"acquisition_outflow"`
	DividendsPaid    float64 `json:"dividends_paid"`
	FinancingCF      float64 `json:"financing_cashflow"`
	NetCashflow      float64 `json:"net_cashflow"`
	OpeningCash      float64 `json:"opening_cash"`
	ClosingCash      float64 `json:"closing_cash"`
}

// TaxesPaid converts booked taxes into cash taxes under the configured
// payment lag. With a one-year lag, year 0 pays nothing and each later year
// pays the prior year's booked amount at the cash rate. A zero or omitted
// cash rate floors to 1.0: booked taxes are paid in full, never skipped.
func TaxesPaid(deal *assumptions.Deal, booked []float64) []float64 {
	out := make([]float64, len(booked))
	rate := deal.Cashflow.TaxCashRate
	if rate <= 0 {
		rate = 1.0
	}
	for i := range booked {
		src := i - deal.Cashflow.TaxPaymentLagYears
		if src >= 0 {
			out[i] = booked[src] * rate
		}
	}
	return out
}

// NWCChange derives the period working-capital movement from the target
// balance (a percentage of revenue). Year 0 builds the full balance.
func NWCChange(deal *assumptions.Deal, revenueTotals []float64) []float64 {
	out := make([]float64, len(revenueTotals))
	prev := 0.0
	for i, rev := range revenueTotals {
		target := deal.Cashflow.NWCPctRevenue * rev
		out[i] = target - prev
		prev = target
	}
	return out
}

// Build assembles the statement. The schedule must have been produced from
// the same taxes-paid, working-capital and capex series.
func Build(deal *assumptions.Deal, rows []pnl.Year, schedule []debt.Year, taxesPaid, nwcChange, capex []float64) ([]Year, error) {
	horizon := deal.HorizonYears
	if len(rows) != horizon || len(schedule) != horizon {
		return nil, fmt.Errorf("pnl has %d years, schedule %d, horizon is %d", len(rows), len(schedule), horizon)
	}

	out := make([]Year, horizon)
	for i := 0; i < horizon; i++ {
		cf := Year{
			Year:      i,
			EBITDA:    rows[i].EBITDA,
			TaxesPaid: taxesPaid[i],
			NWCChange: nwcChange[i],
			Capex:     capex[i],
		}
		cf.OperatingCF = cf.EBITDA - cf.TaxesPaid - cf.NWCChange
		cf.FreeCashflow = cf.OperatingCF - cf.Capex

		sched := schedule[i]
		cf.InterestPaid = sched.InterestExpense
		cf.DebtRepayment = sched.TotalRepayment
		cf.RevolverMovement = sched.RevolverDraw - sched.RevolverRepayment
		cf.DividendsPaid = sched.DividendsPaid
		if i == 0 {
			cf.Drawdown = sched.Drawdown
			cf.EquityIn = deal.TotalEquity()
			cf.AcquisitionOut = deal.Transaction.PurchasePrice + deal.TransactionFees()
		}
		cf.FinancingCF = cf.Drawdown + cf.EquityIn + cf.RevolverMovement -
			cf.InterestPaid - cf.DebtRepayment - cf.DividendsPaid - cf.AcquisitionOut

		cf.NetCashflow = cf.FreeCashflow + cf.FinancingCF
		cf.OpeningCash = sched.OpeningCash
		cf.ClosingCash = sched.ClosingCash
		out[i] = cf
	}
	return out, nil
}

// ClosingCash extracts the closing cash column.
func ClosingCash(rows []Year) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = r.ClosingCash
	}
	return out
}
