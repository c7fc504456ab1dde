package cashflow

import (
	"math"
	"testing"

	"mbo_model/pkg/core/assumptions"
	"mbo_model/pkg/core/debt"
	"mbo_model/pkg/core/pnl"
)

func TestTaxesPaidWithLag(t *testing.T) {
	deal := &assumptions.Deal{
		HorizonYears: 3,
		Cashflow:     assumptions.CashflowPolicy{TaxCashRate: 1.0, TaxPaymentLagYears: 1},
	}
	paid := TaxesPaid(deal, []float64{100, 200, 300})

	want := []float64{0, 100, 200}
	for i := range want {
		if paid[i] != want[i] {
			t.Errorf("paid[%d] = %v, want %v", i, paid[i], want[i])
		}
	}
}

func TestTaxesPaidNoLagPartialCashRate(t *testing.T) {
	deal := &assumptions.Deal{
		HorizonYears: 2,
		Cashflow:     assumptions.CashflowPolicy{TaxCashRate: 0.8, TaxPaymentLagYears: 0},
	}
	paid := TaxesPaid(deal, []float64{100, 200})
	if paid[0] != 80 || paid[1] != 160 {
		t.Errorf("paid = %v, want [80 160]", paid)
	}
}

func TestTaxesPaidZeroRateFloorsToFull(t *testing.T) {
	// A deal that never sets the cash rate still pays its booked taxes;
	// the zero value means "in full", not "never".
	deal := &assumptions.Deal{
		HorizonYears: 2,
		Cashflow:     assumptions.CashflowPolicy{TaxCashRate: 0, TaxPaymentLagYears: 0},
	}
	paid := TaxesPaid(deal, []float64{100, 200})
	if paid[0] != 100 || paid[1] != 200 {
		t.Errorf("paid = %v, want [100 200]", paid)
	}
}

func TestNWCChangeBuildsTargetBalance(t *testing.T) {
	deal := &assumptions.Deal{
		HorizonYears: 3,
		Cashflow:     assumptions.CashflowPolicy{NWCPctRevenue: 0.10},
	}
	change := NWCChange(deal, []float64{1000, 1100, 900})

	// Year 0 builds the full 10% balance; later years move with revenue,
	// releasing cash when revenue falls.
	want := []float64{100, 10, -20}
	for i := range want {
		if math.Abs(change[i]-want[i]) > 1e-9 {
			t.Errorf("change[%d] = %v, want %v", i, change[i], want[i])
		}
	}
}

func TestBuildTiesToSchedule(t *testing.T) {
	deal := &assumptions.Deal{
		Name:         "Cashflow Test",
		HorizonYears: 3,
		Financing: assumptions.Financing{
			SeniorDebt:   1000,
			SeniorRate:   0.05,
			Amortization: assumptions.AmortizationLinear,
			AmortYears:   5,
		},
		Transaction: assumptions.Transaction{PurchasePrice: 900, TransactionFeePct: 0},
	}

	horizon := 3
	ebitda := []float64{300, 300, 300}
	zeros := make([]float64, horizon)

	schedule, err := debt.BuildSchedule(deal, debt.OperatingSeries{
		Revenue:            zeros,
		EBITDA:             ebitda,
		TaxesPaid:          zeros,
		NWCChange:          zeros,
		Capex:              zeros,
		RequestedDividends: zeros,
	})
	if err != nil {
		t.Fatalf("BuildSchedule failed: %v", err)
	}

	rows := make([]pnl.Year, horizon)
	for i := range rows {
		rows[i] = pnl.Year{Year: i, EBITDA: ebitda[i]}
	}

	cfs, err := Build(deal, rows, schedule, zeros, zeros, zeros)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	for i, cf := range cfs {
		// Statement closing cash must equal the schedule's cash path.
		if math.Abs(cf.ClosingCash-schedule[i].ClosingCash) > 0.01 {
			t.Errorf("year %d ClosingCash %v != schedule %v", i, cf.ClosingCash, schedule[i].ClosingCash)
		}
		// And the statement must articulate internally.
		if math.Abs(cf.OpeningCash+cf.NetCashflow-cf.ClosingCash) > 0.01 {
			t.Errorf("year %d cash roll broken: %v + %v != %v", i, cf.OpeningCash, cf.NetCashflow, cf.ClosingCash)
		}
	}

	// Year 0 financing carries the acquisition legs.
	if cfs[0].Drawdown != 1000 {
		t.Errorf("Drawdown = %v, want 1000", cfs[0].Drawdown)
	}
	if cfs[0].AcquisitionOut != 900 {
		t.Errorf("AcquisitionOut = %v, want 900", cfs[0].AcquisitionOut)
	}
	if cfs[1].Drawdown != 0 || cfs[1].AcquisitionOut != 0 {
		t.Error("acquisition legs must only appear in year 0")
	}

	// Cumulative free cashflow plus financing reconciles to ending cash.
	cumulative := 0.0
	for _, cf := range cfs {
		cumulative += cf.NetCashflow
	}
	if math.Abs(cumulative-cfs[horizon-1].ClosingCash) > 0.01 {
		t.Errorf("cumulative net cashflow %v != ending cash %v", cumulative, cfs[horizon-1].ClosingCash)
	}
}
