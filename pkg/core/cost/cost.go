// Package cost turns the annual cost plan into per-year operating cost totals:
// personnel from FTE counts and loaded costs, fixed overhead buckets, and
// variable lines that are either revenue-linked or absolute. An optional
// inflation factor compounds every non-revenue-linked line.
package cost

import (
	"fmt"
	"math"

	"mbo_model/pkg/core/assumptions"
)

// Year holds the cost totals for one projection year.
type Year struct {
	Year            int     `json:"year"`
	ConsultantCosts float64 `json:"consultant_costs"`
	BackofficeCosts float64 `json:"backoffice_costs"`
	ManagementCosts float64 `json:"management_costs"`
	PersonnelCosts  float64 `json:"personnel_costs"`
	FixedOverhead   float64 `json:"fixed_overhead"`
	VariableCosts   float64 `json:"variable_costs"`
	OverheadTotal   float64 `json:"overhead_and_variable_costs"`
	TotalOperating  float64 `json:"total_operating_costs"`
}

// Build computes cost totals against a final revenue series.
func Build(deal *assumptions.Deal, revenueByYear []float64) ([]Year, error) {
	plan := deal.Costs
	if len(revenueByYear) != deal.HorizonYears {
		return nil, fmt.Errorf("revenue series has %d years, horizon is %d", len(revenueByYear), deal.HorizonYears)
	}
	if len(plan.Personnel) != deal.HorizonYears ||
		len(plan.FixedOverhead) != deal.HorizonYears ||
		len(plan.Variable) != deal.HorizonYears {
		return nil, fmt.Errorf("cost plan does not cover the %d-year horizon", deal.HorizonYears)
	}

	years := make([]Year, deal.HorizonYears)
	for i := 0; i < deal.HorizonYears; i++ {
		inflation := 1.0
		if plan.ApplyInflation {
			inflation = math.Pow(1+plan.InflationRate, float64(i))
		}

		p := plan.Personnel[i]
		consultant := assumptions.NonNegative(p.ConsultantFTE) * assumptions.NonNegative(p.ConsultantLoadedCost) * inflation
		backoffice := assumptions.NonNegative(p.BackofficeFTE) * assumptions.NonNegative(p.BackofficeLoadedCost) * inflation
		management := assumptions.NonNegative(p.ManagementCost) * inflation
		personnel := consultant + backoffice + management

		o := plan.FixedOverhead[i]
		fixed := (o.Advisory + o.Legal + o.ITSoftware + o.OfficeRent + o.Services + o.OtherServices) * inflation

		variable := 0.0
		for _, line := range []assumptions.VariableCost{
			plan.Variable[i].Training,
			plan.Variable[i].Travel,
			plan.Variable[i].Communication,
		} {
			switch line.Basis {
			case assumptions.BasisPctRevenue:
				variable += revenueByYear[i] * assumptions.ClampPct(line.Value)
			default:
				// Absolute lines inflate like the rest of the cost base.
				variable += assumptions.NonNegative(line.Value) * inflation
			}
		}

		years[i] = Year{
			Year:            i,
			ConsultantCosts: consultant,
			BackofficeCosts: backoffice,
			ManagementCosts: management,
			PersonnelCosts:  personnel,
			FixedOverhead:   fixed,
			VariableCosts:   variable,
			OverheadTotal:   fixed + variable,
			TotalOperating:  personnel + fixed + variable,
		}
	}
	return years, nil
}
