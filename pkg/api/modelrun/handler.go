package modelrun

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"mbo_model/pkg/core/assumptions"
	"mbo_model/pkg/core/model"
	"mbo_model/pkg/core/report"
	"mbo_model/pkg/core/store"
	"mbo_model/pkg/core/validate"
)

var runRepo *store.RunRepo

// InitHandler wires the handler's storage. A nil pool falls back to the
// file vault under .cache/model_runs.
func InitHandler() {
	runRepo = store.NewRunRepo(store.GetPool(), "")
}

// RunRequest carries the assumptions for one run. A nil Deal with Demo set
// runs the bundled demo case.
type RunRequest struct {
	Deal     *assumptions.Deal    `json:"deal"`
	Demo     bool                 `json:"demo"`
	Scenario assumptions.Scenario `json:"scenario"`
	Persist  bool                 `json:"persist"`
}

// RunResponse returns the results plus the consistency checks.
type RunResponse struct {
	Results *model.Results   `json:"results"`
	Issues  []validate.Issue `json:"issues,omitempty"`
}

func setCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

// HandleRun executes the model for posted assumptions.
func HandleRun(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req RunRequest
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
	if req.Scenario != "" {
		deal.Scenario = req.Scenario
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	fmt.Printf("[MODEL] Running deal '%s' scenario '%s'\n", deal.Name, deal.Scenario)
	res, err := model.Run(ctx, deal)
	if err != nil {
		var verr *assumptions.ValidationError
		if errors.As(err, &verr) {
			http.Error(w, verr.Error(), http.StatusBadRequest)
			return
		}
		fmt.Printf("[MODEL] Run failed: %v\n", err)
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	issues := validate.CheckRun(res)
	if len(issues) > 0 {
		fmt.Printf("[MODEL] Run %s has %d consistency issues\n", res.RunID, len(issues))
	}

	if req.Persist && runRepo != nil {
		if err := runRepo.Save(ctx, res); err != nil {
			fmt.Printf("[WARNING] Failed to persist run %s: %v\n", res.RunID, err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(RunResponse{Results: res, Issues: issues})
}

// HandleDemo runs the bundled demo deal on its base case.
func HandleDemo(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	res, err := model.Run(r.Context(), assumptions.Demo())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(RunResponse{Results: res, Issues: validate.CheckRun(res)})
}

// HandleRuns serves persisted runs: ?run_id= returns one stored run,
// ?deal= lists the run IDs saved for a deal.
func HandleRuns(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if runRepo == nil {
		http.Error(w, "run storage not initialized", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if runID := r.URL.Query().Get("run_id"); runID != "" {
		res, err := runRepo.Load(r.Context(), runID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(res)
		return
	}

	deal := r.URL.Query().Get("deal")
	if deal == "" {
		http.Error(w, "either run_id or deal must be provided", http.StatusBadRequest)
		return
	}
	ids, err := runRepo.ListByDeal(r.Context(), deal)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]interface{}{"deal": deal, "run_ids": ids})
}

// HandleFields lists the editable input catalog for UI clients.
func HandleFields(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(assumptions.Catalog())
}

// HandleReport renders a run as HTML. The run comes from the posted
// assumptions, same contract as HandleRun.
func HandleReport(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	deal := req.Deal
	if deal == nil {
		deal = assumptions.Demo()
	}
	assumptions.ApplyDefaults(deal)
	if req.Scenario != "" {
		deal.Scenario = req.Scenario
	}

	res, err := model.Run(r.Context(), deal)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	html, err := report.HTML(res)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, html)
}
