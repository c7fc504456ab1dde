package pnl

import (
	"math"
	"testing"

	"mbo_model/pkg/core/assumptions"
	"mbo_model/pkg/core/cost"
	"mbo_model/pkg/core/revenue"
)

func testInputs(horizon int, rev, costs float64) (*assumptions.Deal, []revenue.Year, []cost.Year) {
	deal := &assumptions.Deal{
		Name:         "PnL Test",
		HorizonYears: horizon,
		TaxRate:      0.30,
	}
	revYears := make([]revenue.Year, horizon)
	costYears := make([]cost.Year, horizon)
	for i := 0; i < horizon; i++ {
		revYears[i] = revenue.Year{Year: i, FinalRevenue: rev}
		costYears[i] = cost.Year{Year: i, TotalOperating: costs, PersonnelCosts: costs}
	}
	return deal, revYears, costYears
}

func flat(horizon int, v float64) []float64 {
	out := make([]float64, horizon)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestBuildTaxesPositiveEBTOnly(t *testing.T) {
	deal, rev, costs := testInputs(2, 1000000, 600000)
	dep := flat(2, 100000)

	tests := []struct {
		name      string
		interest  float64
		wantTaxes float64
		wantNI    float64
	}{
		// EBT = 1000k - 600k - 100k - interest
		{"Profitable year", 100000, 60000, 140000},
		{"Loss year carries no tax credit", 350000, 0, -50000},
		{"Break-even", 300000, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := Build(deal, rev, costs, dep, flat(2, tt.interest))
			if err != nil {
				t.Fatalf("Build failed: %v", err)
			}
			if math.Abs(rows[0].Taxes-tt.wantTaxes) > 0.01 {
				t.Errorf("Taxes = %v, want %v", rows[0].Taxes, tt.wantTaxes)
			}
			if math.Abs(rows[0].NetIncome-tt.wantNI) > 0.01 {
				t.Errorf("NetIncome = %v, want %v", rows[0].NetIncome, tt.wantNI)
			}
		})
	}
}

func TestBuildMarginAndSeries(t *testing.T) {
	deal, rev, costs := testInputs(3, 2000000, 1500000)
	rows, err := Build(deal, rev, costs, flat(3, 0), flat(3, 0))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if math.Abs(rows[0].EBITDAMargin-0.25) > 1e-9 {
		t.Errorf("EBITDAMargin = %v, want 0.25", rows[0].EBITDAMargin)
	}
	ebitda := EBITDASeries(rows)
	if len(ebitda) != 3 || ebitda[1] != 500000 {
		t.Errorf("EBITDASeries = %v", ebitda)
	}
}

func TestBuildRejectsLengthMismatch(t *testing.T) {
	deal, rev, costs := testInputs(3, 1, 1)
	if _, err := Build(deal, rev, costs, flat(2, 0), flat(3, 0)); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestCapexSeries(t *testing.T) {
	deal := &assumptions.Deal{
		HorizonYears: 2,
		Cashflow:     assumptions.CashflowPolicy{BaseCapex: 200000, CapexPctRevenue: 0.005},
	}
	rev := []revenue.Year{{FinalRevenue: 20000000}, {FinalRevenue: 10000000}}
	capex := CapexSeries(deal, rev)
	if capex[0] != 300000 {
		t.Errorf("capex[0] = %v, want 300000", capex[0])
	}
	if capex[1] != 250000 {
		t.Errorf("capex[1] = %v, want 250000", capex[1])
	}
}

func TestDepreciationWritesOffRunningBalance(t *testing.T) {
	deal := &assumptions.Deal{
		HorizonYears: 3,
		Balance:      assumptions.BalancePolicy{DepreciationYears: 5},
	}
	dep := DepreciationSchedule(deal, []float64{500000, 0, 0})

	// Year 0: 500k/5 = 100k, leaving 400k; year 1: 400k/5 = 80k.
	if dep[0] != 100000 {
		t.Errorf("dep[0] = %v, want 100000", dep[0])
	}
	if dep[1] != 80000 {
		t.Errorf("dep[1] = %v, want 80000", dep[1])
	}
	if dep[2] != 64000 {
		t.Errorf("dep[2] = %v, want 64000", dep[2])
	}
}

func TestDepreciationBaseAmountCapsAtBalance(t *testing.T) {
	deal := &assumptions.Deal{
		HorizonYears: 3,
		Balance:      assumptions.BalancePolicy{BaseDepreciation: 150000, DepreciationYears: 5},
	}
	dep := DepreciationSchedule(deal, []float64{200000, 0, 0})

	if dep[0] != 150000 {
		t.Errorf("dep[0] = %v, want 150000", dep[0])
	}
	// Only 50k of book value is left to write off.
	if dep[1] != 50000 {
		t.Errorf("dep[1] = %v, want 50000", dep[1])
	}
	if dep[2] != 0 {
		t.Errorf("dep[2] = %v, want 0", dep[2])
	}
}
