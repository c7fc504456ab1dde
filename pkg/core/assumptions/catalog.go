package assumptions

import "sort"

// Field is display metadata for one assumption scalar. The model itself works
// on the typed Deal record; the catalog exists for the CLI and API surfaces
// that show users what each input means.
type Field struct {
	Path        string `json:"path"`
	Description string `json:"description"`
	Unit        string `json:"unit"`
	Editable    bool   `json:"editable"`
}

var catalog = []Field{
	{"scenario", "Scenario selector for Base/Best/Worst cases", "", true},
	{"horizon_years", "Number of annual projection periods", "years", true},
	{"revenue.consultant_fte", "Consulting FTEs per year (single source of truth for capacity)", "FTE", true},
	{"revenue.workdays_per_year", "Working days per year", "days", true},
	{"revenue.utilization_rate", "Billable utilization per year", "%", true},
	{"revenue.group_day_rate_eur", "Contractual group day rate", "EUR", true},
	{"revenue.external_day_rate_eur", "External market day rate", "EUR", true},
	{"revenue.day_rate_growth_pct", "Annual day-rate growth, compounded", "%", true},
	{"revenue.revenue_growth_pct", "Annual capacity adjustment", "%", true},
	{"revenue.group_capacity_share_pct", "Capacity share allocated to group work", "%", true},
	{"revenue.external_capacity_share_pct", "Capacity share allocated to external work", "%", true},
	{"revenue.reference_revenue_eur", "Reference revenue for the group guarantee floor", "EUR", true},
	{"revenue.guarantee_pct_by_year", "Guaranteed group revenue as percent of reference", "%", true},
	{"costs.apply_inflation", "Whether cost lines inflate annually", "", true},
	{"costs.inflation_rate_pct", "Annual cost inflation rate", "%", true},
	{"costs.personnel", "FTE and loaded cost plan per year", "EUR", true},
	{"costs.fixed_overhead", "Fixed overhead buckets per year", "EUR", true},
	{"costs.variable_costs", "Variable cost lines, % of revenue or absolute", "", true},
	{"cashflow.tax_cash_rate_pct", "Share of booked taxes paid in cash; 0 or omitted pays them in full", "%", true},
	{"cashflow.tax_payment_lag_years", "Years between tax accrual and payment (0 or 1)", "years", true},
	{"cashflow.capex_pct_revenue", "Capex as percent of revenue", "%", true},
	{"cashflow.capex_eur_per_year", "Absolute annual capex", "EUR", true},
	{"cashflow.working_capital_pct_revenue", "Net working capital as percent of revenue", "%", true},
	{"cashflow.opening_cash_balance_eur", "Pre-deal cash balance", "EUR", true},
	{"financing.senior_debt_eur", "Senior term loan drawn at close", "EUR", true},
	{"financing.senior_interest_rate_pct", "Senior term loan interest rate", "%", true},
	{"financing.amortization_type", "Linear or Bullet repayment profile", "", true},
	{"financing.amortization_period_years", "Years over which the loan amortizes", "years", true},
	{"financing.grace_period_years", "Years before scheduled repayment starts", "years", true},
	{"financing.special_repayment_year", "Year of an optional one-off repayment", "year", true},
	{"financing.special_repayment_amount_eur", "Amount of the one-off repayment", "EUR", true},
	{"financing.cash_sweep_pct", "Share of excess cash swept into debt paydown", "%", true},
	{"financing.revolver_limit_eur", "Revolving credit facility limit", "EUR", true},
	{"financing.revolver_interest_rate_pct", "Revolver interest rate", "%", true},
	{"financing.minimum_dscr", "Covenant floor for debt service coverage", "x", true},
	{"financing.maintenance_capex_pct_revenue", "Maintenance capex used in CFADS", "%", true},
	{"transaction.purchase_price_eur", "Purchase price at close", "EUR", true},
	{"transaction.equity_contribution_eur", "Aggregate equity at close (fallback when no split is set)", "EUR", true},
	{"transaction.transaction_fee_pct", "Transaction fees as percent of purchase price", "%", true},
	{"equity.sponsor_equity_eur", "Management equity contribution", "EUR", true},
	{"equity.investor_equity_eur", "External investor contribution", "EUR", true},
	{"equity.exit_year", "Investor exit year, clamped to [3,7]", "year", true},
	{"equity.exit_multiple", "Exit EBITDA multiple", "x", true},
	{"equity.dividend_payout_ratio_pct", "Dividend payout ratio on net income", "%", true},
	{"equity.dividends_allowed_starting_fy", "First fiscal year dividends may be paid", "year", true},
	{"balance_sheet.opening_equity_eur", "Pre-deal book equity (must carry opening cash)", "EUR", true},
	{"balance_sheet.minimum_cash_balance_eur", "Liquidity floor protected by the revolver", "EUR", true},
	{"balance_sheet.depreciation_useful_life_years", "Useful life for the capex rollforward", "years", true},
	{"balance_sheet.depreciation_eur_per_year", "Absolute annual depreciation override", "EUR", true},
	{"tax_rate_pct", "Corporate tax rate", "%", true},
}

// Catalog returns the field metadata sorted by path.
func Catalog() []Field {
	out := make([]Field, len(catalog))
	copy(out, catalog)
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}
