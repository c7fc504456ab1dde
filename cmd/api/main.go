package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"mbo_model/pkg/api/deals"
	"mbo_model/pkg/api/modelrun"
	"mbo_model/pkg/api/scenarios"
	"mbo_model/pkg/core/store"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Database is optional: without DATABASE_URL runs persist to the
	// local file vault instead.
	if os.Getenv("DATABASE_URL") != "" {
		if err := store.InitDB(context.Background()); err != nil {
			fmt.Printf("[WARNING] Database unavailable, using file vault: %v\n", err)
		} else {
			defer store.Close()
			fmt.Println("[STORE] Database pool initialized")
		}
	}

	// Model endpoints
	modelrun.InitHandler()
	http.HandleFunc("/api/model/run", modelrun.HandleRun)
	http.HandleFunc("/api/model/demo", modelrun.HandleDemo)
	http.HandleFunc("/api/model/fields", modelrun.HandleFields)
	http.HandleFunc("/api/model/report", modelrun.HandleReport)
	http.HandleFunc("/api/model/runs", modelrun.HandleRuns)

	// Scenario comparison endpoints
	http.HandleFunc("/api/scenarios/compare", scenarios.HandleCompare)

	// Stored deals (requires DATABASE_URL)
	deals.InitHandler()
	http.HandleFunc("/api/deals", deals.HandleDeals)

	http.HandleFunc("/api/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Printf("API server starting on :%s...\n", port)
	fmt.Println("  - POST /api/model/run")
	fmt.Println("  - GET  /api/model/demo")
	fmt.Println("  - GET  /api/model/fields")
	fmt.Println("  - POST /api/model/report  (HTML export)")
	fmt.Println("  - GET  /api/model/runs")
	fmt.Println("  - POST /api/scenarios/compare")
	fmt.Println("  - POST /api/deals / GET /api/deals?name=")
	fmt.Println("  - GET  /api/healthz")

	if err := http.ListenAndServe(":"+port, nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
