package cost

import (
	"math"
	"testing"

	"mbo_model/pkg/core/assumptions"
)

func testDeal(horizon int) *assumptions.Deal {
	personnel := make([]assumptions.PersonnelYear, horizon)
	overhead := make([]assumptions.OverheadYear, horizon)
	variable := make([]assumptions.VariableYear, horizon)
	for i := 0; i < horizon; i++ {
		personnel[i] = assumptions.PersonnelYear{
			ConsultantFTE:        10,
			ConsultantLoadedCost: 100000,
			BackofficeFTE:        2,
			BackofficeLoadedCost: 50000,
			ManagementCost:       200000,
		}
		overhead[i] = assumptions.OverheadYear{
			OfficeRent: 300000,
			ITSoftware: 50000,
			Advisory:   25000,
		}
		variable[i] = assumptions.VariableYear{
			Training: assumptions.VariableCost{Basis: assumptions.BasisPctRevenue, Value: 0.02},
			Travel:   assumptions.VariableCost{Basis: assumptions.BasisAbsolute, Value: 80000},
		}
	}
	return &assumptions.Deal{
		Name:         "Cost Test",
		HorizonYears: horizon,
		Costs: assumptions.CostPlan{
			Personnel:     personnel,
			FixedOverhead: overhead,
			Variable:      variable,
		},
	}
}

func flatRevenue(horizon int, v float64) []float64 {
	out := make([]float64, horizon)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestBuildWithoutInflation(t *testing.T) {
	deal := testDeal(3)
	years, err := Build(deal, flatRevenue(3, 5000000))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	y := years[0]
	// 10*100k + 2*50k + 200k management.
	if y.PersonnelCosts != 1300000 {
		t.Errorf("PersonnelCosts = %v, want 1300000", y.PersonnelCosts)
	}
	if y.FixedOverhead != 375000 {
		t.Errorf("FixedOverhead = %v, want 375000", y.FixedOverhead)
	}
	// 2% of 5m revenue + 80k absolute travel.
	if y.VariableCosts != 180000 {
		t.Errorf("VariableCosts = %v, want 180000", y.VariableCosts)
	}
	if y.TotalOperating != 1855000 {
		t.Errorf("TotalOperating = %v, want 1855000", y.TotalOperating)
	}

	// Without inflation every year is identical.
	if years[2].TotalOperating != y.TotalOperating {
		t.Errorf("year 2 total %v differs from year 0 %v", years[2].TotalOperating, y.TotalOperating)
	}
}

func TestInflationCompounds(t *testing.T) {
	deal := testDeal(3)
	deal.Costs.ApplyInflation = true
	deal.Costs.InflationRate = 0.02

	years, err := Build(deal, flatRevenue(3, 5000000))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	// Year 2 personnel carries two years of inflation.
	want := 1300000 * math.Pow(1.02, 2)
	if got := years[2].PersonnelCosts; math.Abs(got-want) > 0.01 {
		t.Errorf("year 2 PersonnelCosts = %v, want %v", got, want)
	}

	// Revenue-linked lines do not inflate; absolute lines do.
	wantVar := 5000000*0.02 + 80000*math.Pow(1.02, 2)
	if got := years[2].VariableCosts; math.Abs(got-wantVar) > 0.01 {
		t.Errorf("year 2 VariableCosts = %v, want %v", got, wantVar)
	}
}

func TestBuildRejectsShortSeries(t *testing.T) {
	deal := testDeal(3)
	if _, err := Build(deal, flatRevenue(2, 1)); err == nil {
		t.Fatal("expected error for short revenue series")
	}
	deal.Costs.Personnel = deal.Costs.Personnel[:1]
	if _, err := Build(deal, flatRevenue(3, 1)); err == nil {
		t.Fatal("expected error for short cost plan")
	}
}
