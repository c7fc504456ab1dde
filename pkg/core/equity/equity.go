// Package equity summarizes the sponsor and investor case: the equity
// cashflow vector over the hold period, exit proceeds at the configured
// multiple, and the resulting IRR and money multiple, split pro rata between
// sponsor and co-investor.
package equity

import (
	"fmt"
	"math"

	"mbo_model/pkg/core/assumptions"
	"mbo_model/pkg/core/cashflow"
	"mbo_model/pkg/core/debt"
	"mbo_model/pkg/core/pnl"
)

// Summary holds the blended return figures plus the per-party split.
type Summary struct {
	ExitYear        int     `json:"exit_year"`
	ExitEBITDA      float64 `json:"exit_ebitda"`
	ExitMultiple    float64 `json:"exit_multiple"`
	EnterpriseValue float64 `json:"enterprise_value"`
	NetDebtAtExit   float64 `json:"net_debt_at_exit"`
	ExitProceeds    float64 `json:"exit_proceeds"`

	EquityInvested  float64   `json:"equity_invested"`
	Dividends       []float64 `json:"dividends"`
	TotalDividends  float64   `json:"total_dividends"`
	EquityCashflows []float64 `json:"equity_cashflows"`

	IRR  float64 `json:"irr"`
	MOIC float64 `json:"moic"`

	Sponsor  Tranche `json:"sponsor"`
	Investor Tranche `json:"investor"`
}

// Tranche is one party's share of the equity case.
type Tranche struct {
	Invested      float64 `json:"invested"`
	Distributions float64 `json:"distributions"`
	MOIC          float64 `json:"moic"`
	IRR           float64 `json:"irr"`
}

// Build computes the return summary. Only cashflows through the exit year
// count; later projection years are informational.
func Build(deal *assumptions.Deal, rows []pnl.Year, cfs []cashflow.Year, schedule []debt.Year) (*Summary, error) {
	exit := deal.ExitYearIndex()
	if exit >= len(rows) || exit >= len(schedule) {
		return nil, fmt.Errorf("exit year %d outside %d-year projection", exit, len(rows))
	}
	invested := deal.TotalEquity()
	if invested <= 0 {
		return nil, fmt.Errorf("no equity invested, cannot compute returns")
	}

	s := &Summary{
		ExitYear:     exit,
		ExitEBITDA:   rows[exit].EBITDA,
		ExitMultiple: deal.Equity.ExitMultiple,
	}
	s.EnterpriseValue = s.ExitEBITDA * s.ExitMultiple
	s.NetDebtAtExit = schedule[exit].ClosingSenior + schedule[exit].ClosingRevolver - cfs[exit].ClosingCash
	s.ExitProceeds = s.EnterpriseValue - s.NetDebtAtExit
	if s.ExitProceeds < 0 {
		s.ExitProceeds = 0
	}

	s.EquityInvested = invested
	s.Dividends = make([]float64, exit+1)
	s.EquityCashflows = make([]float64, exit+2)
	s.EquityCashflows[0] = -invested
	for i := 0; i <= exit; i++ {
		s.Dividends[i] = schedule[i].DividendsPaid
		s.TotalDividends += s.Dividends[i]
		s.EquityCashflows[i+1] += s.Dividends[i]
	}
	s.EquityCashflows[exit+1] += s.ExitProceeds

	s.IRR = IRR(s.EquityCashflows)
	s.MOIC = (s.TotalDividends + s.ExitProceeds) / invested

	sponsorCommit := deal.Equity.SponsorEquity
	investorCommit := deal.Equity.InvestorEquity
	if sponsorCommit+investorCommit <= 0 {
		sponsorCommit = invested
	}
	s.Sponsor = tranche(sponsorCommit, invested, s)
	s.Investor = tranche(investorCommit, invested, s)
	return s, nil
}

// tranche splits distributions pro rata by committed capital. With no
// explicit split the full case is attributed to the sponsor tranche.
func tranche(committed, total float64, s *Summary) Tranche {
	share := committed / total
	t := Tranche{
		Invested:      committed,
		Distributions: share * (s.TotalDividends + s.ExitProceeds),
		IRR:           s.IRR,
	}
	if committed > 0 {
		t.MOIC = t.Distributions / committed
	}
	return t
}

// IRR solves for the internal rate of return of an annual cashflow vector by
// bisection. The bracket starts at [-0.9, 1.0] and the upper bound doubles
// until the NPV changes sign or the search gives up at 1000%. Returns 0 when
// no sign change exists, so a wiped-out case reads as a flat return.
func IRR(cashflows []float64) float64 {
	if len(cashflows) < 2 {
		return 0
	}
	low, high := -0.9, 1.0
	for npv(cashflows, low)*npv(cashflows, high) > 0 {
		high *= 2
		if high >= 10 {
			return 0
		}
	}
	for i := 0; i < 100; i++ {
		mid := (low + high) / 2
		v := npv(cashflows, mid)
		if math.Abs(v) < 1e-8 {
			return mid
		}
		if npv(cashflows, low)*v < 0 {
			high = mid
		} else {
			low = mid
		}
	}
	return (low + high) / 2
}

func npv(cashflows []float64, rate float64) float64 {
	total := 0.0
	for i, cf := range cashflows {
		total += cf / math.Pow(1+rate, float64(i))
	}
	return total
}
