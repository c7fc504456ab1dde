// Package assumptions holds the input record for the integrated MBO model:
// every scalar the calculation pipeline consumes, grouped into the same
// sections a deal team plans in (revenue drivers, cost plan, cashflow policy,
// financing terms, transaction structure, equity case).
package assumptions

import (
	"fmt"
	"sort"
	"strings"
)

// Scenario selects which driver set feeds the model.
type Scenario string

const (
	ScenarioBase  Scenario = "Base"
	ScenarioBest  Scenario = "Best"
	ScenarioWorst Scenario = "Worst"
)

// Scenarios lists the driver sets in display order.
var Scenarios = []Scenario{ScenarioBase, ScenarioBest, ScenarioWorst}

// AmortizationType controls the senior repayment profile.
type AmortizationType string

const (
	AmortizationLinear AmortizationType = "Linear"
	AmortizationBullet AmortizationType = "Bullet"
)

// VariableCostBasis marks a variable cost as revenue-linked or absolute.
type VariableCostBasis string

const (
	BasisPctRevenue VariableCostBasis = "%"
	BasisAbsolute   VariableCostBasis = "EUR"
)

// RevenueDrivers are the per-year capacity and pricing inputs for one scenario.
// All slices are indexed by year (0-based) and must have HorizonYears entries.
type RevenueDrivers struct {
	ReferenceRevenue float64   `json:"reference_revenue_eur" yaml:"reference_revenue_eur"`
	ConsultantFTE    []float64 `json:"consultant_fte" yaml:"consultant_fte"`
	Workdays         []float64 `json:"workdays_per_year" yaml:"workdays_per_year"`
	Utilization      []float64 `json:"utilization_rate" yaml:"utilization_rate"`
	GroupDayRate     []float64 `json:"group_day_rate_eur" yaml:"group_day_rate_eur"`
	ExternalDayRate  []float64 `json:"external_day_rate_eur" yaml:"external_day_rate_eur"`
	DayRateGrowth    []float64 `json:"day_rate_growth_pct" yaml:"day_rate_growth_pct"`
	RevenueGrowth    []float64 `json:"revenue_growth_pct" yaml:"revenue_growth_pct"`
	GroupShare       []float64 `json:"group_capacity_share_pct" yaml:"group_capacity_share_pct"`
	ExternalShare    []float64 `json:"external_capacity_share_pct" yaml:"external_capacity_share_pct"`
	GuaranteePct     []float64 `json:"guarantee_pct_by_year" yaml:"guarantee_pct_by_year"`
}

// PersonnelYear is one year of the personnel cost plan.
type PersonnelYear struct {
	ConsultantFTE        float64 `json:"consultant_fte" yaml:"consultant_fte"`
	ConsultantLoadedCost float64 `json:"consultant_loaded_cost_eur" yaml:"consultant_loaded_cost_eur"`
	BackofficeFTE        float64 `json:"backoffice_fte" yaml:"backoffice_fte"`
	BackofficeLoadedCost float64 `json:"backoffice_loaded_cost_eur" yaml:"backoffice_loaded_cost_eur"`
	ManagementCost       float64 `json:"management_cost_eur" yaml:"management_cost_eur"`
}

// OverheadYear is one year of fixed overhead buckets.
type OverheadYear struct {
	Advisory      float64 `json:"advisory" yaml:"advisory"`
	Legal         float64 `json:"legal" yaml:"legal"`
	ITSoftware    float64 `json:"it_software" yaml:"it_software"`
	OfficeRent    float64 `json:"office_rent" yaml:"office_rent"`
	Services      float64 `json:"services" yaml:"services"`
	OtherServices float64 `json:"other_services" yaml:"other_services"`
}

// VariableCost is a single variable cost line, either % of revenue or EUR.
type VariableCost struct {
	Basis VariableCostBasis `json:"basis" yaml:"basis"`
	Value float64           `json:"value" yaml:"value"`
}

// VariableYear is one year of variable cost lines.
type VariableYear struct {
	Training      VariableCost `json:"training" yaml:"training"`
	Travel        VariableCost `json:"travel" yaml:"travel"`
	Communication VariableCost `json:"communication" yaml:"communication"`
}

// CostPlan is the full annual cost plan.
type CostPlan struct {
	ApplyInflation bool            `json:"apply_inflation" yaml:"apply_inflation"`
	InflationRate  float64         `json:"inflation_rate_pct" yaml:"inflation_rate_pct"`
	Personnel      []PersonnelYear `json:"personnel" yaml:"personnel"`
	FixedOverhead  []OverheadYear  `json:"fixed_overhead" yaml:"fixed_overhead"`
	Variable       []VariableYear  `json:"variable_costs" yaml:"variable_costs"`
}

// CashflowPolicy drives the cash articulation of the model.
type CashflowPolicy struct {
	TaxCashRate        float64 `json:"tax_cash_rate_pct" yaml:"tax_cash_rate_pct"`
	TaxPaymentLagYears int     `json:"tax_payment_lag_years" yaml:"tax_payment_lag_years"`
	CapexPctRevenue    float64 `json:"capex_pct_revenue" yaml:"capex_pct_revenue"`
	BaseCapex          float64 `json:"capex_eur_per_year" yaml:"capex_eur_per_year"`
	NWCPctRevenue      float64 `json:"working_capital_pct_revenue" yaml:"working_capital_pct_revenue"`
	OpeningCash        float64 `json:"opening_cash_balance_eur" yaml:"opening_cash_balance_eur"`
}

// Financing holds the debt structure.
type Financing struct {
	SeniorDebt             float64          `json:"senior_debt_eur" yaml:"senior_debt_eur"`
	SeniorRate             float64          `json:"senior_interest_rate_pct" yaml:"senior_interest_rate_pct"`
	Amortization           AmortizationType `json:"amortization_type" yaml:"amortization_type"`
	AmortYears             int              `json:"amortization_period_years" yaml:"amortization_period_years"`
	GraceYears             int              `json:"grace_period_years" yaml:"grace_period_years"`
	SpecialRepaymentYear   *int             `json:"special_repayment_year,omitempty" yaml:"special_repayment_year,omitempty"`
	SpecialRepaymentAmount float64          `json:"special_repayment_amount_eur" yaml:"special_repayment_amount_eur"`
	CashSweepPct           float64          `json:"cash_sweep_pct" yaml:"cash_sweep_pct"`
	RevolverLimit          float64          `json:"revolver_limit_eur" yaml:"revolver_limit_eur"`
	RevolverRate           float64          `json:"revolver_interest_rate_pct" yaml:"revolver_interest_rate_pct"`
	MinimumDSCR            float64          `json:"minimum_dscr" yaml:"minimum_dscr"`
	MaintenanceCapexPct    float64          `json:"maintenance_capex_pct_revenue" yaml:"maintenance_capex_pct_revenue"`
}

// Transaction describes the deal at close.
type Transaction struct {
	PurchasePrice      float64 `json:"purchase_price_eur" yaml:"purchase_price_eur"`
	EquityContribution float64 `json:"equity_contribution_eur" yaml:"equity_contribution_eur"`
	TransactionFeePct  float64 `json:"transaction_fee_pct" yaml:"transaction_fee_pct"`
}

// EquityCase holds the sponsor/investor split and exit terms.
type EquityCase struct {
	SponsorEquity       float64 `json:"sponsor_equity_eur" yaml:"sponsor_equity_eur"`
	InvestorEquity      float64 `json:"investor_equity_eur" yaml:"investor_equity_eur"`
	ExitYear            int     `json:"exit_year" yaml:"exit_year"`
	ExitMultiple        float64 `json:"exit_multiple" yaml:"exit_multiple"`
	DividendPayoutRatio float64 `json:"dividend_payout_ratio_pct" yaml:"dividend_payout_ratio_pct"`
	FirstDividendYear   int     `json:"dividends_allowed_starting_fy" yaml:"dividends_allowed_starting_fy"`
}

// BalancePolicy drives the balance sheet articulation.
type BalancePolicy struct {
	OpeningEquity     float64 `json:"opening_equity_eur" yaml:"opening_equity_eur"`
	MinimumCash       float64 `json:"minimum_cash_balance_eur" yaml:"minimum_cash_balance_eur"`
	DepreciationYears float64 `json:"depreciation_useful_life_years" yaml:"depreciation_useful_life_years"`
	BaseDepreciation  float64 `json:"depreciation_eur_per_year" yaml:"depreciation_eur_per_year"`
}

// Deal is the complete input record for one model run.
type Deal struct {
	Name         string                       `json:"name" yaml:"name"`
	HorizonYears int                          `json:"horizon_years" yaml:"horizon_years"`
	Scenario     Scenario                     `json:"scenario" yaml:"scenario"`
	Revenue      map[Scenario]*RevenueDrivers `json:"revenue" yaml:"revenue"`
	Costs        CostPlan                     `json:"costs" yaml:"costs"`
	Cashflow     CashflowPolicy               `json:"cashflow" yaml:"cashflow"`
	Financing    Financing                    `json:"financing" yaml:"financing"`
	Transaction  Transaction                  `json:"transaction" yaml:"transaction"`
	Equity       EquityCase                   `json:"equity" yaml:"equity"`
	Balance      BalancePolicy                `json:"balance_sheet" yaml:"balance_sheet"`
	TaxRate      float64                      `json:"tax_rate_pct" yaml:"tax_rate_pct"`
}

// DefaultHorizon is the planning horizon when none is specified.
const DefaultHorizon = 5

// Drivers returns the revenue drivers for the deal's selected scenario.
func (d *Deal) Drivers() (*RevenueDrivers, error) {
	return d.DriversFor(d.Scenario)
}

// DriversFor returns the revenue drivers for a specific scenario.
func (d *Deal) DriversFor(s Scenario) (*RevenueDrivers, error) {
	drv, ok := d.Revenue[s]
	if !ok || drv == nil {
		return nil, fmt.Errorf("no revenue drivers for scenario '%s'", s)
	}
	return drv, nil
}

// ConfiguredScenarios lists the scenarios the deal actually carries, known
// ones first in display order, anything custom after, alphabetically.
func (d *Deal) ConfiguredScenarios() []Scenario {
	out := make([]Scenario, 0, len(d.Revenue))
	for _, s := range Scenarios {
		if _, ok := d.Revenue[s]; ok {
			out = append(out, s)
		}
	}
	var extra []Scenario
	for s := range d.Revenue {
		known := false
		for _, k := range Scenarios {
			if s == k {
				known = true
				break
			}
		}
		if !known {
			extra = append(extra, s)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}

// TotalEquity returns the equity funded at close. The sponsor/investor split
// takes priority; the aggregate transaction field is the fallback.
func (d *Deal) TotalEquity() float64 {
	if total := d.Equity.SponsorEquity + d.Equity.InvestorEquity; total > 0 {
		return total
	}
	return d.Transaction.EquityContribution
}

// TransactionFees returns the fees paid at close.
func (d *Deal) TransactionFees() float64 {
	return d.Transaction.PurchasePrice * d.Transaction.TransactionFeePct
}

// ExitYearIndex clamps the configured exit year into the bankable window and
// caps it at the final projection year.
func (d *Deal) ExitYearIndex() int {
	exit := d.Equity.ExitYear
	if exit < 3 {
		exit = 3
	}
	if exit > 7 {
		exit = 7
	}
	if exit > d.HorizonYears-1 {
		exit = d.HorizonYears - 1
	}
	return exit
}

// ClampPct forces a ratio into [0, 1].
func ClampPct(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// NonNegative floors a value at zero.
func NonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// ValidationError aggregates all input problems found in one pass so the
// caller can report every offending field at once.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid assumptions: %s", strings.Join(e.Problems, "; "))
}

func (e *ValidationError) add(format string, args ...interface{}) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}

// Validate checks the deal for inputs the pipeline cannot compute on.
// It returns a *ValidationError listing every problem, or nil.
func (d *Deal) Validate() error {
	verr := &ValidationError{}

	if d.HorizonYears < 2 {
		verr.add("horizon_years must be at least 2, got %d", d.HorizonYears)
	}
	if d.Scenario == "" {
		verr.add("scenario must be set")
	} else if _, ok := d.Revenue[d.Scenario]; !ok {
		verr.add("scenario '%s' has no revenue drivers", d.Scenario)
	}

	for s, drv := range d.Revenue {
		if drv == nil {
			verr.add("scenario '%s' drivers are nil", s)
			continue
		}
		series := map[string][]float64{
			"consultant_fte":              drv.ConsultantFTE,
			"workdays_per_year":           drv.Workdays,
			"utilization_rate":            drv.Utilization,
			"group_day_rate_eur":          drv.GroupDayRate,
			"external_day_rate_eur":       drv.ExternalDayRate,
			"day_rate_growth_pct":         drv.DayRateGrowth,
			"revenue_growth_pct":          drv.RevenueGrowth,
			"group_capacity_share_pct":    drv.GroupShare,
			"external_capacity_share_pct": drv.ExternalShare,
			"guarantee_pct_by_year":       drv.GuaranteePct,
		}
		for name, vals := range series {
			if len(vals) != d.HorizonYears {
				verr.add("scenario '%s' %s needs %d entries, got %d", s, name, d.HorizonYears, len(vals))
			}
		}
		for i, u := range drv.Utilization {
			if u < 0 || u > 1 {
				verr.add("scenario '%s' utilization_rate year %d out of [0,1]: %v", s, i, u)
			}
		}
		if drv.ReferenceRevenue < 0 {
			verr.add("scenario '%s' reference_revenue_eur is negative", s)
		}
	}

	if len(d.Costs.Personnel) != d.HorizonYears {
		verr.add("costs.personnel needs %d entries, got %d", d.HorizonYears, len(d.Costs.Personnel))
	}
	if len(d.Costs.FixedOverhead) != d.HorizonYears {
		verr.add("costs.fixed_overhead needs %d entries, got %d", d.HorizonYears, len(d.Costs.FixedOverhead))
	}
	if len(d.Costs.Variable) != d.HorizonYears {
		verr.add("costs.variable_costs needs %d entries, got %d", d.HorizonYears, len(d.Costs.Variable))
	}

	for _, pct := range []struct {
		name  string
		value float64
	}{
		{"tax_rate_pct", d.TaxRate},
		{"cashflow.tax_cash_rate_pct", d.Cashflow.TaxCashRate},
		{"cashflow.capex_pct_revenue", d.Cashflow.CapexPctRevenue},
		{"cashflow.working_capital_pct_revenue", d.Cashflow.NWCPctRevenue},
		{"financing.senior_interest_rate_pct", d.Financing.SeniorRate},
		{"financing.revolver_interest_rate_pct", d.Financing.RevolverRate},
		{"financing.cash_sweep_pct", d.Financing.CashSweepPct},
		{"transaction.transaction_fee_pct", d.Transaction.TransactionFeePct},
		{"equity.dividend_payout_ratio_pct", d.Equity.DividendPayoutRatio},
	} {
		if pct.value < 0 || pct.value > 1 {
			verr.add("%s out of [0,1]: %v", pct.name, pct.value)
		}
	}

	if d.Cashflow.TaxPaymentLagYears < 0 || d.Cashflow.TaxPaymentLagYears > 1 {
		verr.add("cashflow.tax_payment_lag_years must be 0 or 1, got %d", d.Cashflow.TaxPaymentLagYears)
	}
	if d.Financing.SeniorDebt < 0 {
		verr.add("financing.senior_debt_eur is negative")
	}
	if d.Financing.SeniorDebt > 0 && d.Financing.AmortYears < 1 {
		verr.add("financing.amortization_period_years must be at least 1, got %d", d.Financing.AmortYears)
	}
	switch d.Financing.Amortization {
	case AmortizationLinear, AmortizationBullet, "":
	default:
		verr.add("financing.amortization_type must be Linear or Bullet, got '%s'", d.Financing.Amortization)
	}
	if d.Financing.GraceYears < 0 {
		verr.add("financing.grace_period_years is negative")
	}
	if y := d.Financing.SpecialRepaymentYear; y != nil && (*y < 0 || *y >= d.HorizonYears) {
		verr.add("financing.special_repayment_year %d outside horizon", *y)
	}
	if d.Financing.RevolverLimit < 0 {
		verr.add("financing.revolver_limit_eur is negative")
	}
	if d.Transaction.PurchasePrice < 0 {
		verr.add("transaction.purchase_price_eur is negative")
	}
	if d.Balance.MinimumCash < 0 {
		verr.add("balance_sheet.minimum_cash_balance_eur is negative")
	}

	// The opening balance sheet must balance: pre-deal cash is the only opening
	// asset, so it has to be carried by opening equity.
	if diff := d.Cashflow.OpeningCash - d.Balance.OpeningEquity; diff > 1.0 || diff < -1.0 {
		verr.add("opening cash (%.0f) must equal opening equity (%.0f) for the opening balance sheet to balance",
			d.Cashflow.OpeningCash, d.Balance.OpeningEquity)
	}

	if len(verr.Problems) > 0 {
		return verr
	}
	return nil
}

// FundingShortfall reports how far sources at close fall short of uses.
// Positive means the deal is underfunded; callers treat it as a warning.
func (d *Deal) FundingShortfall() float64 {
	sources := d.Financing.SeniorDebt + d.TotalEquity()
	uses := d.Transaction.PurchasePrice + d.TransactionFees()
	return uses - sources
}
