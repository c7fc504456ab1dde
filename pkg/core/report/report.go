// Package report renders a completed model run as a Markdown deal report,
// with an HTML export for sharing.
package report

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"mbo_model/pkg/core/model"
)

// Markdown renders the full run as a Markdown document: headline KPIs first,
// then the statements the deal team reads in order.
func Markdown(res *model.Results) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s — %s Case\n\n", res.Deal, res.Scenario)
	fmt.Fprintf(&b, "Run `%s`, converged in %d passes.\n\n", res.RunID, res.Passes)

	b.WriteString("## Headline\n\n")
	b.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Equity IRR | %s |\n", pct(res.KPIs.IRR))
	fmt.Fprintf(&b, "| MOIC | %.2fx |\n", res.KPIs.MOIC)
	fmt.Fprintf(&b, "| Minimum cash | %s (FY%d) |\n", eur(res.KPIs.MinimumCash), res.KPIs.MinimumCashYear+1)
	fmt.Fprintf(&b, "| Minimum DSCR | %.2fx (FY%d) |\n", res.KPIs.MinimumDSCR, res.KPIs.MinimumDSCRYear+1)
	fmt.Fprintf(&b, "| Peak debt | %s |\n", eur(res.KPIs.PeakDebt))
	if len(res.KPIs.BreachYears) > 0 {
		fmt.Fprintf(&b, "| Covenant breaches | %s |\n", yearList(res.KPIs.BreachYears))
	} else {
		b.WriteString("| Covenant breaches | none |\n")
	}
	b.WriteString("\n")

	b.WriteString("## Profit and Loss\n\n")
	b.WriteString("| Year | Revenue | EBITDA | Margin | Depreciation | Interest | EBT | Taxes | Net Income |\n")
	b.WriteString("|---|---|---|---|---|---|---|---|---|\n")
	for _, r := range res.PnL {
		fmt.Fprintf(&b, "| FY%d | %s | %s | %.1f%% | %s | %s | %s | %s | %s |\n",
			r.Year+1, eur(r.Revenue), eur(r.EBITDA), r.EBITDAMargin*100,
			eur(r.Depreciation), eur(r.InterestExpense), eur(r.EBT), eur(r.Taxes), eur(r.NetIncome))
	}
	b.WriteString("\n")

	b.WriteString("## Cashflow\n\n")
	b.WriteString("| Year | EBITDA | Taxes Paid | ΔNWC | Capex | FCF | Financing | Net | Closing Cash |\n")
	b.WriteString("|---|---|---|---|---|---|---|---|---|\n")
	for _, r := range res.Cashflow {
		fmt.Fprintf(&b, "| FY%d | %s | %s | %s | %s | %s | %s | %s | %s |\n",
			r.Year+1, eur(r.EBITDA), eur(r.TaxesPaid), eur(r.NWCChange), eur(r.Capex),
			eur(r.FreeCashflow), eur(r.FinancingCF), eur(r.NetCashflow), eur(r.ClosingCash))
	}
	b.WriteString("\n")

	b.WriteString("## Debt Schedule\n\n")
	b.WriteString("| Year | Opening | Scheduled | Special | Sweep | Closing | Revolver | Interest | DSCR |\n")
	b.WriteString("|---|---|---|---|---|---|---|---|---|\n")
	for _, r := range res.Debt {
		dscr := fmt.Sprintf("%.2fx", r.DSCR)
		if r.DebtService <= 0 {
			dscr = "n/a"
		}
		if r.CovenantBreach {
			dscr += " ⚠"
		}
		fmt.Fprintf(&b, "| FY%d | %s | %s | %s | %s | %s | %s | %s | %s |\n",
			r.Year+1, eur(r.OpeningSenior), eur(r.ScheduledRepayment), eur(r.SpecialRepayment),
			eur(r.SweepRepayment), eur(r.ClosingSenior), eur(r.ClosingRevolver), eur(r.InterestExpense), dscr)
	}
	b.WriteString("\n")

	b.WriteString("## Balance Sheet\n\n")
	b.WriteString("| Year | Cash | NWC | Fixed Assets | Intangibles | Assets | Debt | Tax Payable | Equity |\n")
	b.WriteString("|---|---|---|---|---|---|---|---|---|\n")
	for _, r := range res.Balance {
		fmt.Fprintf(&b, "| FY%d | %s | %s | %s | %s | %s | %s | %s | %s |\n",
			r.Year+1, eur(r.Cash), eur(r.NetWorkingCap), eur(r.NetFixedAssets), eur(r.Intangibles),
			eur(r.TotalAssets), eur(r.SeniorDebt+r.Revolver), eur(r.TaxPayable), eur(r.ClosingEquity))
	}
	b.WriteString("\n")

	eq := res.Equity
	b.WriteString("## Equity Case\n\n")
	fmt.Fprintf(&b, "Exit in FY%d at %.1fx EBITDA (%s) gives an enterprise value of %s.\n",
		eq.ExitYear+1, eq.ExitMultiple, eur(eq.ExitEBITDA), eur(eq.EnterpriseValue))
	fmt.Fprintf(&b, "After net debt of %s, equity proceeds are %s on %s invested.\n\n",
		eur(eq.NetDebtAtExit), eur(eq.ExitProceeds), eur(eq.EquityInvested))
	b.WriteString("| Tranche | Invested | Distributions | MOIC |\n|---|---|---|---|\n")
	fmt.Fprintf(&b, "| Sponsor | %s | %s | %.2fx |\n", eur(eq.Sponsor.Invested), eur(eq.Sponsor.Distributions), eq.Sponsor.MOIC)
	fmt.Fprintf(&b, "| Investor | %s | %s | %.2fx |\n", eur(eq.Investor.Invested), eur(eq.Investor.Distributions), eq.Investor.MOIC)
	fmt.Fprintf(&b, "| Blended | %s | %s | %.2fx |\n", eur(eq.EquityInvested), eur(eq.TotalDividends+eq.ExitProceeds), eq.MOIC)

	return b.String()
}

// HTML renders the Markdown report to a standalone HTML document.
func HTML(res *model.Results) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	var buf bytes.Buffer
	if err := md.Convert([]byte(Markdown(res)), &buf); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return "<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>" +
		res.Deal + "</title></head><body>\n" + buf.String() + "</body></html>\n", nil
}

// eur formats an amount in thousands separators with no decimals, the way
// the figures read in a board deck.
func eur(v float64) string {
	neg := v < 0
	s := fmt.Sprintf("%.0f", math.Abs(v))
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ",")
	if neg {
		return "-" + out + " €"
	}
	return out + " €"
}

func pct(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", v*100)
}

func yearList(years []int) string {
	labels := make([]string, len(years))
	for i, y := range years {
		labels[i] = fmt.Sprintf("FY%d", y+1)
	}
	return strings.Join(labels, ", ")
}
