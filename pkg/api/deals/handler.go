// Package deals exposes the stored assumption sets over HTTP.
package deals

import (
	"encoding/json"
	"fmt"
	"net/http"

	"mbo_model/pkg/core/assumptions"
	"mbo_model/pkg/core/store"
)

var dealRepo *store.DealRepo

// InitHandler wires the handler's storage.
func InitHandler() {
	dealRepo = store.NewDealRepo()
}

func setCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

// HandleDeals saves a deal (POST) or loads one by name (GET ?name=).
// Posted deals are validated before they are stored.
func HandleDeals(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	switch r.Method {
	case "OPTIONS":
		w.WriteHeader(http.StatusOK)
	case http.MethodPost:
		handleSave(w, r)
	case http.MethodGet:
		handleLoad(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func handleSave(w http.ResponseWriter, r *http.Request) {
	if dealRepo == nil {
		http.Error(w, "deal storage not initialized", http.StatusServiceUnavailable)
		return
	}

	var deal assumptions.Deal
	if err := json.NewDecoder(r.Body).Decode(&deal); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if deal.Name == "" {
		http.Error(w, "deal name is required", http.StatusBadRequest)
		return
	}
	assumptions.ApplyDefaults(&deal)
	if err := deal.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := dealRepo.Save(r.Context(), &deal); err != nil {
		fmt.Printf("[STORE] Failed to save deal '%s': %v\n", deal.Name, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	fmt.Printf("[STORE] Saved deal '%s'\n", deal.Name)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "saved", "name": deal.Name})
}

func handleLoad(w http.ResponseWriter, r *http.Request) {
	if dealRepo == nil {
		http.Error(w, "deal storage not initialized", http.StatusServiceUnavailable)
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		http.Error(w, "name query parameter is required", http.StatusBadRequest)
		return
	}

	deal, err := dealRepo.Load(r.Context(), name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(deal)
}
