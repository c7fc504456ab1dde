package balance_test

import (
	"context"
	"math"
	"testing"

	"mbo_model/pkg/core/assumptions"
	"mbo_model/pkg/core/balance"
	"mbo_model/pkg/core/model"
)

func demoRun(t *testing.T) *model.Results {
	t.Helper()
	res, err := model.Run(context.Background(), assumptions.Demo())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return res
}

func TestIdentityHoldsEveryYear(t *testing.T) {
	res := demoRun(t)
	for _, bs := range res.Balance {
		if math.Abs(bs.BalanceGap) > balance.Tolerance {
			t.Errorf("year %d gap %.2f exceeds tolerance", bs.Year, bs.BalanceGap)
		}
		t.Logf("FY%d assets %.0f, gap %.4f", bs.Year+1, bs.TotalAssets, bs.BalanceGap)
	}
}

func TestAcquisitionIntangibleCarriesFees(t *testing.T) {
	deal := assumptions.Demo()
	res := demoRun(t)

	want := deal.Transaction.PurchasePrice + deal.TransactionFees()
	for _, bs := range res.Balance {
		if math.Abs(bs.Intangibles-want) > 0.01 {
			t.Errorf("year %d intangibles %.0f, want %.0f", bs.Year, bs.Intangibles, want)
		}
	}
}

func TestEquityRollsWithNetIncome(t *testing.T) {
	res := demoRun(t)

	for i, bs := range res.Balance {
		want := bs.OpeningEquity + bs.NetIncome - bs.DividendsPaid
		if math.Abs(bs.ClosingEquity-want) > 0.01 {
			t.Errorf("year %d closing equity %.2f, want %.2f", i, bs.ClosingEquity, want)
		}
		if i > 0 && math.Abs(bs.OpeningEquity-res.Balance[i-1].ClosingEquity) > 0.01 {
			t.Errorf("year %d opening equity does not chain", i)
		}
	}
}

func TestDebtBalancesMatchSchedule(t *testing.T) {
	res := demoRun(t)
	for i, bs := range res.Balance {
		if bs.SeniorDebt != res.Debt[i].ClosingSenior {
			t.Errorf("year %d senior %.2f != schedule %.2f", i, bs.SeniorDebt, res.Debt[i].ClosingSenior)
		}
		if bs.Revolver != res.Debt[i].ClosingRevolver {
			t.Errorf("year %d revolver %.2f != schedule %.2f", i, bs.Revolver, res.Debt[i].ClosingRevolver)
		}
	}
}
