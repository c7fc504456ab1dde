package validate

import (
	"math"
	"testing"
)

// =============================================================================
// PLAN DATA FOR TESTING
// =============================================================================
// A five-year consultancy plan of the scale the model runs on.
// All values in EUR.

var planRevenue = []float64{20300000, 20900000, 21500000, 22200000, 22800000}

var planEBITDA = []float64{5200000, 5350000, 5500000, 5700000, 5850000}

// =============================================================================
// YoY TESTS
// =============================================================================

func TestCalculateYoY(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		prior    float64
		expected float64
	}{
		{"Positive growth", 110, 100, 10.0},
		{"Negative growth", 90, 100, -10.0},
		{"Zero growth", 100, 100, 0.0},
		{"Double", 200, 100, 100.0},
		{"Halved", 50, 100, -50.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateYoY(tt.current, tt.prior)
			if math.Abs(result-tt.expected) > 0.01 {
				t.Errorf("CalculateYoY(%v, %v) = %v, want %v", tt.current, tt.prior, result, tt.expected)
			}
		})
	}
}

func TestCalculateYoY_FromZero(t *testing.T) {
	if !math.IsInf(CalculateYoY(100, 0), 1) {
		t.Error("growth from zero should be +Inf")
	}
	if CalculateYoY(0, 0) != 0 {
		t.Error("zero to zero should be 0")
	}
}

func TestYoYSeries_PlanRevenue(t *testing.T) {
	results := YoYSeries(planRevenue, "Revenue")
	if len(results) != 4 {
		t.Fatalf("expected 4 YoY rows, got %d", len(results))
	}

	first := results[0]
	t.Logf("FY1→FY2 revenue: %.0f → %.0f (%.2f%%)", first.PriorValue, first.CurrentValue, first.ChangePct)

	expectedPct := (20900000.0 - 20300000.0) / 20300000.0 * 100
	if math.Abs(first.ChangePct-expectedPct) > 0.01 {
		t.Errorf("YoY = %.4f%%, expected %.4f%%", first.ChangePct, expectedPct)
	}
	if first.Label != "Revenue" {
		t.Errorf("Label = %q, want Revenue", first.Label)
	}
}

// =============================================================================
// CAGR TESTS
// =============================================================================

func TestCalculateCAGR(t *testing.T) {
	// 100 growing to 121 over 2 years = 10% CAGR
	cagr := CalculateCAGR(100, 121, 2)
	if math.Abs(cagr-10.0) > 0.01 {
		t.Errorf("CAGR = %.2f%%, expected 10%%", cagr)
	}

	// Degenerate inputs are zero, not NaN.
	if CalculateCAGR(0, 100, 5) != 0 {
		t.Error("CAGR from zero start should be 0")
	}
	if CalculateCAGR(100, 200, 0) != 0 {
		t.Error("CAGR over zero years should be 0")
	}
}

func TestCAGRFromSeries_PlanEBITDA(t *testing.T) {
	result, err := CAGRFromSeries(planEBITDA)
	if err != nil {
		t.Fatalf("CAGRFromSeries failed: %v", err)
	}

	t.Logf("EBITDA CAGR over %d years: %.2f%%", result.Years, result.CAGR)

	expected := (math.Pow(5850000.0/5200000.0, 1.0/4) - 1) * 100
	if math.Abs(result.CAGR-expected) > 0.01 {
		t.Errorf("CAGR = %.4f%%, expected %.4f%%", result.CAGR, expected)
	}

	if _, err := CAGRFromSeries([]float64{1}); err == nil {
		t.Error("expected error for single-year series")
	}
}

// =============================================================================
// BALANCE / CASH FLOW CHECKS
// =============================================================================

func TestCheckBalanceEquation(t *testing.T) {
	// 18.3m assets against 11.2m liabilities + 7.1m equity: balanced.
	check := CheckBalanceEquation(18300000, 11200000, 7100000, 1.0)
	if !check.IsBalanced {
		t.Errorf("expected balanced, diff = %v", check.Difference)
	}

	// A 5k hole must be flagged.
	check = CheckBalanceEquation(18300000, 11200000, 7095000, 1.0)
	if check.IsBalanced {
		t.Error("expected imbalance to be flagged")
	}
	if math.Abs(check.Difference-5000) > 0.01 {
		t.Errorf("Difference = %v, want 5000", check.Difference)
	}
}

func TestCheckCashFlowEquation(t *testing.T) {
	// CFO 4.1m, capex -0.3m, financing -2.6m → net 1.2m.
	check := CheckCashFlowEquation(4100000, -300000, -2600000, 1200000, 1.0)
	if !check.IsBalanced {
		t.Errorf("expected balanced cashflow, diff = %v", check.Difference)
	}

	check = CheckCashFlowEquation(4100000, -300000, -2600000, 1100000, 1.0)
	if check.IsBalanced {
		t.Error("expected cashflow mismatch to be flagged")
	}
}

// =============================================================================
// DEBT METRICS
// =============================================================================

func TestCalculateDSCR(t *testing.T) {
	if dscr := CalculateDSCR(3900000, 2860000); math.Abs(dscr-1.3636) > 0.001 {
		t.Errorf("DSCR = %v, want ~1.36", dscr)
	}
	if !math.IsInf(CalculateDSCR(1000000, 0), 1) {
		t.Error("DSCR with no service should be +Inf")
	}
}

func TestCalculateNetDebt(t *testing.T) {
	if nd := CalculateNetDebt(8800000, 400000, 1250000); nd != 7950000 {
		t.Errorf("NetDebt = %v, want 7950000", nd)
	}
}

// =============================================================================
// FREE CASH FLOW
// =============================================================================

func TestCalculateFCF(t *testing.T) {
	if fcf := CalculateFCF(4100000, 300000); fcf != 3800000 {
		t.Errorf("FCF = %v, want 3800000", fcf)
	}
}

func TestCalculateFCFE(t *testing.T) {
	// FCF 3.8m, interest 0.6m at 30% tax, net borrowing -2.2m.
	fcfe := CalculateFCFE(3800000, 600000, 0.30, -2200000)
	expected := 3800000 - 600000*0.7 - 2200000
	if math.Abs(fcfe-expected) > 0.01 {
		t.Errorf("FCFE = %v, want %v", fcfe, expected)
	}
}
