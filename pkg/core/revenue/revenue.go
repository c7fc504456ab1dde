// Package revenue builds the capacity-based revenue plan: consultant FTEs and
// utilization define billable capacity, capacity is split between group and
// external work at their own day rates, and a contractual guarantee floors the
// group share against a reference revenue.
package revenue

import (
	"fmt"
	"math"

	"mbo_model/pkg/core/assumptions"
)

// Year holds the revenue bridge for one projection year.
type Year struct {
	Year                   int     `json:"year"`
	ConsultantFTE          float64 `json:"consultant_fte"`
	CapacityDays           float64 `json:"capacity_days"`
	AdjustedCapacityDays   float64 `json:"adjusted_capacity_days"`
	GroupShare             float64 `json:"group_share_pct"`
	ExternalShare          float64 `json:"external_share_pct"`
	ModeledGroupRevenue    float64 `json:"modeled_group_revenue"`
	ModeledExternalRevenue float64 `json:"modeled_external_revenue"`
	ModeledTotalRevenue    float64 `json:"modeled_total_revenue"`
	GuaranteedFloor        float64 `json:"guaranteed_floor"`
	GuaranteedGroupRevenue float64 `json:"guaranteed_group_revenue"`
	FinalRevenue           float64 `json:"final_revenue"`
	GuaranteedSharePct     float64 `json:"share_guaranteed"`
}

// Build computes the revenue bridge for the deal's selected scenario.
func Build(deal *assumptions.Deal) ([]Year, error) {
	return BuildFor(deal, deal.Scenario)
}

// BuildFor computes the revenue bridge for a specific scenario.
func BuildFor(deal *assumptions.Deal, scenario assumptions.Scenario) ([]Year, error) {
	drv, err := deal.DriversFor(scenario)
	if err != nil {
		return nil, err
	}
	if deal.HorizonYears <= 0 {
		return nil, fmt.Errorf("horizon must be positive, got %d", deal.HorizonYears)
	}

	years := make([]Year, deal.HorizonYears)
	for i := 0; i < deal.HorizonYears; i++ {
		fte := drv.ConsultantFTE[i]
		workdays := drv.Workdays[i]
		utilization := drv.Utilization[i]

		// Day rates compound from the year-0 quote.
		growthFactor := math.Pow(1+drv.DayRateGrowth[i], float64(i))
		groupRate := drv.GroupDayRate[i] * growthFactor
		externalRate := drv.ExternalDayRate[i] * growthFactor

		// Shares are normalized so a partially filled allocation still sums to 1.
		groupShare := drv.GroupShare[i]
		externalShare := drv.ExternalShare[i]
		if total := groupShare + externalShare; total > 0 {
			groupShare /= total
			externalShare /= total
		}

		capacityDays := fte * workdays * utilization
		adjustedDays := capacityDays * (1 + drv.RevenueGrowth[i])

		modeledGroup := adjustedDays * groupShare * groupRate
		modeledExternal := adjustedDays * externalShare * externalRate

		// The guarantee applies to group revenue only; external work is upside
		// on the same capacity pool.
		floor := drv.ReferenceRevenue * drv.GuaranteePct[i]
		guaranteedGroup := math.Max(modeledGroup, floor)
		final := guaranteedGroup + modeledExternal

		guaranteedShare := 0.0
		if final > 0 {
			guaranteedShare = guaranteedGroup / final
		}

		years[i] = Year{
			Year:                   i,
			ConsultantFTE:          fte,
			CapacityDays:           capacityDays,
			AdjustedCapacityDays:   adjustedDays,
			GroupShare:             groupShare,
			ExternalShare:          externalShare,
			ModeledGroupRevenue:    modeledGroup,
			ModeledExternalRevenue: modeledExternal,
			ModeledTotalRevenue:    modeledGroup + modeledExternal,
			GuaranteedFloor:        floor,
			GuaranteedGroupRevenue: guaranteedGroup,
			FinalRevenue:           final,
			GuaranteedSharePct:     guaranteedShare,
		}
	}
	return years, nil
}

// Totals extracts the final revenue series from a bridge.
func Totals(years []Year) []float64 {
	out := make([]float64, len(years))
	for i, y := range years {
		out[i] = y.FinalRevenue
	}
	return out
}
