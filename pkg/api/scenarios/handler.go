package scenarios

import (
	"encoding/json"
	"fmt"
	"net/http"

	"mbo_model/pkg/core/assumptions"
	"mbo_model/pkg/core/model"
)

// CompareRequest carries the assumptions for a scenario comparison.
type CompareRequest struct {
	Deal *assumptions.Deal `json:"deal"`
	Demo bool              `json:"demo"`
}

// CompareRow is the per-scenario summary line.
type CompareRow struct {
	Scenario    assumptions.Scenario `json:"scenario"`
	ExitEBITDA  float64              `json:"exit_ebitda"`
	MinimumCash float64              `json:"minimum_cash"`
	MinimumDSCR float64              `json:"minimum_dscr"`
	Breaches    []int                `json:"covenant_breach_years"`
	IRR         float64              `json:"irr"`
	MOIC        float64              `json:"moic"`
}

// CompareResponse returns the full runs plus the comparison table.
type CompareResponse struct {
	Deal    string                                  `json:"deal"`
	Table   []CompareRow                            `json:"table"`
	Results map[assumptions.Scenario]*model.Results `json:"results"`
}

// HandleCompare runs every configured scenario and summarizes them side by
// side.
func HandleCompare(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	deal := req.Deal
	if deal == nil {
		if !req.Demo {
			http.Error(w, "either deal or demo must be provided", http.StatusBadRequest)
			return
		}
		deal = assumptions.Demo()
	}
	assumptions.ApplyDefaults(deal)

	fmt.Printf("[SCENARIOS] Comparing %d scenarios for deal '%s'\n", len(deal.Revenue), deal.Name)
	set, err := model.RunScenarios(r.Context(), deal)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	resp := CompareResponse{Deal: set.Deal, Results: set.Results}
	for _, name := range set.Names() {
		res := set.Results[name]
		resp.Table = append(resp.Table, CompareRow{
			Scenario:    name,
			ExitEBITDA:  res.KPIs.ExitYearEBITDA,
			MinimumCash: res.KPIs.MinimumCash,
			MinimumDSCR: res.KPIs.MinimumDSCR,
			Breaches:    res.KPIs.BreachYears,
			IRR:         res.KPIs.IRR,
			MOIC:        res.KPIs.MOIC,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
