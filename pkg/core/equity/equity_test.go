package equity

import (
	"encoding/json"
	"math"
	"testing"

	"mbo_model/pkg/core/assumptions"
	"mbo_model/pkg/core/cashflow"
	"mbo_model/pkg/core/debt"
	"mbo_model/pkg/core/pnl"
)

func TestIRRKnownVectors(t *testing.T) {
	tests := []struct {
		name      string
		cashflows []float64
		want      float64
	}{
		{"One period 10%", []float64{-100, 110}, 0.10},
		{"Doubling over 5 years", []float64{-100, 0, 0, 0, 0, 200}, math.Pow(2, 1.0/5) - 1},
		{"With interim dividends", []float64{-100, 10, 10, 110}, 0.10},
		{"Total loss bounded", []float64{-100, 0, 50}, math.Sqrt(0.5) - 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IRR(tt.cashflows)
			if math.Abs(got-tt.want) > 1e-4 {
				t.Errorf("IRR = %v, want %v", got, tt.want)
			}
			t.Logf("IRR = %.4f", got)
		})
	}
}

func TestIRRNoSignChange(t *testing.T) {
	if got := IRR([]float64{100, 100}); got != 0 {
		t.Errorf("IRR of all-positive vector = %v, want 0", got)
	}
	if got := IRR([]float64{-100}); got != 0 {
		t.Errorf("IRR of single flow = %v, want 0", got)
	}
	if got := IRR([]float64{-100, 0, 0}); got != 0 {
		t.Errorf("IRR of total loss = %v, want 0", got)
	}
}

func buildCase(t *testing.T, exitMultiple float64) (*assumptions.Deal, []pnl.Year, []cashflow.Year, []debt.Year) {
	t.Helper()
	horizon := 5
	deal := &assumptions.Deal{
		Name:         "Equity Test",
		HorizonYears: horizon,
		Equity: assumptions.EquityCase{
			SponsorEquity:  400,
			InvestorEquity: 600,
			ExitYear:       5,
			ExitMultiple:   exitMultiple,
		},
	}
	rows := make([]pnl.Year, horizon)
	cfs := make([]cashflow.Year, horizon)
	schedule := make([]debt.Year, horizon)
	for i := 0; i < horizon; i++ {
		rows[i] = pnl.Year{Year: i, EBITDA: 500}
		cfs[i] = cashflow.Year{Year: i, ClosingCash: 100}
		schedule[i] = debt.Year{Year: i, ClosingSenior: 300}
	}
	return deal, rows, cfs, schedule
}

func TestBuildExitProceeds(t *testing.T) {
	deal, rows, cfs, schedule := buildCase(t, 6.0)
	s, err := Build(deal, rows, cfs, schedule)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	// Exit year 5 clamps into the window and caps at the final plan year.
	if s.ExitYear != 4 {
		t.Errorf("ExitYear = %d, want 4", s.ExitYear)
	}
	if s.EnterpriseValue != 3000 {
		t.Errorf("EnterpriseValue = %v, want 3000", s.EnterpriseValue)
	}
	// 3000 EV - 300 debt + 100 cash.
	if s.ExitProceeds != 2800 {
		t.Errorf("ExitProceeds = %v, want 2800", s.ExitProceeds)
	}
	if math.Abs(s.MOIC-2.8) > 1e-9 {
		t.Errorf("MOIC = %v, want 2.8", s.MOIC)
	}
	// 2.8x over 5 years.
	wantIRR := math.Pow(2.8, 1.0/5) - 1
	if math.Abs(s.IRR-wantIRR) > 1e-4 {
		t.Errorf("IRR = %v, want %v", s.IRR, wantIRR)
	}
}

func TestBuildTrancheSplit(t *testing.T) {
	deal, rows, cfs, schedule := buildCase(t, 6.0)
	s, err := Build(deal, rows, cfs, schedule)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	// 40/60 split of the same 2.8x outcome.
	if math.Abs(s.Sponsor.Distributions-0.4*2800) > 0.01 {
		t.Errorf("sponsor distributions = %v, want %v", s.Sponsor.Distributions, 0.4*2800)
	}
	if math.Abs(s.Investor.Distributions-0.6*2800) > 0.01 {
		t.Errorf("investor distributions = %v, want %v", s.Investor.Distributions, 0.6*2800)
	}
	if math.Abs(s.Sponsor.MOIC-s.Investor.MOIC) > 1e-9 {
		t.Error("pro rata tranches should carry the same MOIC")
	}
}

func TestBuildNegativeProceedsFloorAtZero(t *testing.T) {
	deal, rows, cfs, schedule := buildCase(t, 0.1)
	// 50 EV against 300 debt: equity is wiped out, not negative.
	s, err := Build(deal, rows, cfs, schedule)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if s.ExitProceeds != 0 {
		t.Errorf("ExitProceeds = %v, want 0", s.ExitProceeds)
	}
	if s.MOIC != 0 {
		t.Errorf("MOIC = %v, want 0", s.MOIC)
	}
	// A wiped-out case has no sign change to solve for; the summary must
	// still carry a finite return and survive serialization.
	if s.IRR != 0 {
		t.Errorf("IRR = %v, want 0", s.IRR)
	}
	if _, err := json.Marshal(s); err != nil {
		t.Errorf("wiped-out summary does not marshal: %v", err)
	}
}

func TestBuildUnsplitEquityGoesToSponsor(t *testing.T) {
	deal, rows, cfs, schedule := buildCase(t, 6.0)
	deal.Equity.SponsorEquity = 0
	deal.Equity.InvestorEquity = 0
	deal.Transaction.EquityContribution = 1000

	s, err := Build(deal, rows, cfs, schedule)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if s.Sponsor.Invested != 1000 {
		t.Errorf("sponsor invested = %v, want 1000", s.Sponsor.Invested)
	}
	if math.Abs(s.Sponsor.Distributions-(s.TotalDividends+s.ExitProceeds)) > 1e-9 {
		t.Errorf("sponsor distributions = %v, want the full case %v",
			s.Sponsor.Distributions, s.TotalDividends+s.ExitProceeds)
	}
	if s.Investor.Invested != 0 || s.Investor.Distributions != 0 {
		t.Errorf("investor tranche = %+v, want empty", s.Investor)
	}
}

func TestBuildRequiresEquity(t *testing.T) {
	deal, rows, cfs, schedule := buildCase(t, 6.0)
	deal.Equity.SponsorEquity = 0
	deal.Equity.InvestorEquity = 0
	if _, err := Build(deal, rows, cfs, schedule); err == nil {
		t.Fatal("expected error with no equity invested")
	}
}
