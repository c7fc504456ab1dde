package validate

import (
	"context"
	"testing"

	"mbo_model/pkg/core/assumptions"
	"mbo_model/pkg/core/model"
)

func TestCheckRunCleanOnDemo(t *testing.T) {
	res, err := model.Run(context.Background(), assumptions.Demo())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	issues := CheckRun(res)
	for _, issue := range issues {
		t.Errorf("unexpected issue: %s", issue)
	}
}

func TestCheckRunFlagsTamperedStatements(t *testing.T) {
	res, err := model.Run(context.Background(), assumptions.Demo())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	res.Balance[1].TotalAssets += 50000
	res.Cashflow[2].NetCashflow -= 10000
	res.PnL[3].NetIncome += 7000

	issues := CheckRun(res)
	if len(issues) < 3 {
		t.Fatalf("expected at least 3 issues, got %d: %v", len(issues), issues)
	}

	byCheck := map[string]bool{}
	for _, issue := range issues {
		byCheck[issue.Check] = true
	}
	for _, want := range []string{"balance_identity", "cashflow_articulation", "net_income_tie"} {
		if !byCheck[want] {
			t.Errorf("missing issue for %s", want)
		}
	}
}
