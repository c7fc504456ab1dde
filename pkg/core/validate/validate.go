// Package validate provides reusable financial validation utilities.
// These functions can be called from tests, API handlers, or CLI code
// to verify statement integrity and calculate derived metrics.
package validate

import (
	"fmt"
	"math"
)

// =============================================================================
// YEAR-OVER-YEAR (YoY) CALCULATIONS
// =============================================================================

// YoYResult holds the result of a YoY calculation.
type YoYResult struct {
	CurrentYear  int
	PriorYear    int
	CurrentValue float64
	PriorValue   float64
	ChangeAbs    float64 // Absolute change
	ChangePct    float64 // Percentage change
	Label        string  // e.g., "Revenue", "Net Income"
}

// CalculateYoY calculates year-over-year change between two values.
// Returns percentage change: (current - prior) / prior * 100
func CalculateYoY(current, prior float64) float64 {
	if prior == 0 {
		if current == 0 {
			return 0
		}
		return math.Inf(1) // Infinite growth from zero
	}
	return (current - prior) / prior * 100
}

// YoYSeries calculates YoY changes across a projection series indexed by
// plan year.
func YoYSeries(values []float64, label string) []YoYResult {
	if len(values) < 2 {
		return nil
	}
	out := make([]YoYResult, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		out = append(out, YoYResult{
			CurrentYear:  i,
			PriorYear:    i - 1,
			CurrentValue: values[i],
			PriorValue:   values[i-1],
			ChangeAbs:    values[i] - values[i-1],
			ChangePct:    CalculateYoY(values[i], values[i-1]),
			Label:        label,
		})
	}
	return out
}

// =============================================================================
// CAGR (Compound Annual Growth Rate)
// =============================================================================

// CAGRResult holds the result of a CAGR calculation.
type CAGRResult struct {
	StartYear  int
	EndYear    int
	StartValue float64
	EndValue   float64
	Years      int
	CAGR       float64 // As percentage
}

// CalculateCAGR calculates compound annual growth rate.
// CAGR = ((EndValue / StartValue) ^ (1/years)) - 1
func CalculateCAGR(startValue, endValue float64, years int) float64 {
	if startValue <= 0 || years <= 0 {
		return 0
	}
	return (math.Pow(endValue/startValue, 1.0/float64(years)) - 1) * 100
}

// CAGRFromSeries calculates CAGR across a full projection series.
func CAGRFromSeries(values []float64) (*CAGRResult, error) {
	if len(values) < 2 {
		return nil, fmt.Errorf("need at least two years, got %d", len(values))
	}
	years := len(values) - 1
	return &CAGRResult{
		StartYear:  0,
		EndYear:    years,
		StartValue: values[0],
		EndValue:   values[years],
		Years:      years,
		CAGR:       CalculateCAGR(values[0], values[years], years),
	}, nil
}

// =============================================================================
// BALANCE SHEET VALIDATION
// =============================================================================

// BalanceCheck verifies Assets = Liabilities + Equity.
type BalanceCheck struct {
	TotalAssets      float64
	TotalLiabilities float64
	TotalEquity      float64
	ComputedAssets   float64 // L + E
	Difference       float64
	IsBalanced       bool
	Tolerance        float64
}

// CheckBalanceEquation validates A = L + E within tolerance.
func CheckBalanceEquation(assets, liabilities, equity, tolerance float64) *BalanceCheck {
	computed := liabilities + equity
	diff := assets - computed

	return &BalanceCheck{
		TotalAssets:      assets,
		TotalLiabilities: liabilities,
		TotalEquity:      equity,
		ComputedAssets:   computed,
		Difference:       diff,
		IsBalanced:       math.Abs(diff) <= tolerance,
		Tolerance:        tolerance,
	}
}

// =============================================================================
// CASH FLOW VALIDATION
// =============================================================================

// CashFlowCheck verifies CFO + CFI + CFF = Net Change in Cash.
type CashFlowCheck struct {
	CFO           float64
	CFI           float64
	CFF           float64
	ComputedTotal float64
	ReportedTotal float64
	Difference    float64
	IsBalanced    bool
	Tolerance     float64
}

// CheckCashFlowEquation validates CFO + CFI + CFF = Net Change.
func CheckCashFlowEquation(cfo, cfi, cff, reportedNetChange, tolerance float64) *CashFlowCheck {
	computed := cfo + cfi + cff
	diff := reportedNetChange - computed

	return &CashFlowCheck{
		CFO:           cfo,
		CFI:           cfi,
		CFF:           cff,
		ComputedTotal: computed,
		ReportedTotal: reportedNetChange,
		Difference:    diff,
		IsBalanced:    math.Abs(diff) <= tolerance,
		Tolerance:     tolerance,
	}
}

// =============================================================================
// DEBT METRICS
// =============================================================================

// CalculateDSCR computes the debt service cover ratio. Returns +Inf when
// there is no service to cover.
func CalculateDSCR(cfads, debtService float64) float64 {
	if debtService <= 0 {
		return math.Inf(1)
	}
	return cfads / debtService
}

// CalculateNetDebt computes gross debt less cash.
func CalculateNetDebt(seniorDebt, revolver, cash float64) float64 {
	return seniorDebt + revolver - cash
}

// =============================================================================
// FREE CASH FLOW
// =============================================================================

// CalculateFCF computes Free Cash Flow = CFO - CapEx.
func CalculateFCF(cfo, capex float64) float64 {
	return cfo - capex
}

// CalculateFCFE computes Free Cash Flow to Equity.
// FCFE = FCF - Interest*(1-Tax) + Net Borrowing
func CalculateFCFE(fcf, interestExpense, taxRate, netBorrowing float64) float64 {
	afterTaxInterest := interestExpense * (1 - taxRate)
	return fcf - afterTaxInterest + netBorrowing
}
