package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mbo_model/pkg/core/model"
)

// RunRepo persists completed model runs.
// Hybrid vault: DB (primary) + file system (fallback/local).
type RunRepo struct {
	pool    *pgxpool.Pool
	fileDir string
}

// NewRunRepo creates a run repository. If pool is nil, runs go to a
// file-based vault in the given directory (default .cache/model_runs).
func NewRunRepo(pool *pgxpool.Pool, dir string) *RunRepo {
	if pool == nil && dir == "" {
		dir = filepath.Join(".cache", "model_runs")
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			fmt.Printf("[WARNING] Check RunRepo dir: %v\n", err)
		}
	}
	return &RunRepo{pool: pool, fileDir: dir}
}

// RunRecord is the stored envelope around a run.
type RunRecord struct {
	RunID    string         `json:"run_id"`
	Deal     string         `json:"deal"`
	Scenario string         `json:"scenario"`
	Results  *model.Results `json:"results"`
	SavedAt  time.Time      `json:"saved_at"`
}

// Schema assumption:
// CREATE TABLE IF NOT EXISTS model_runs (
//   run_id TEXT PRIMARY KEY,
//   deal TEXT,
//   scenario TEXT,
//   results_json JSONB,
//   saved_at TIMESTAMPTZ
// );

// Save persists a run, upserting on run ID.
func (r *RunRepo) Save(ctx context.Context, res *model.Results) error {
	rec := &RunRecord{
		RunID:    res.RunID,
		Deal:     res.Deal,
		Scenario: string(res.Scenario),
		Results:  res,
		SavedAt:  time.Now(),
	}

	if r.pool != nil {
		jsonData, err := json.Marshal(res)
		if err != nil {
			return fmt.Errorf("failed to marshal run: %w", err)
		}
		query := `
			INSERT INTO model_runs (run_id, deal, scenario, results_json, saved_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (run_id)
			DO UPDATE SET
				deal = EXCLUDED.deal,
				scenario = EXCLUDED.scenario,
				results_json = EXCLUDED.results_json,
				saved_at = EXCLUDED.saved_at;
		`
		if _, err := r.pool.Exec(ctx, query, rec.RunID, rec.Deal, rec.Scenario, jsonData, rec.SavedAt); err != nil {
			return fmt.Errorf("failed to save run: %w", err)
		}
		return nil
	}

	if r.fileDir == "" {
		return nil // no-op vault
	}
	jsonData, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run: %w", err)
	}
	path := filepath.Join(r.fileDir, rec.RunID+".json")
	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write run file: %w", err)
	}
	return nil
}

// Load retrieves a run by ID.
func (r *RunRepo) Load(ctx context.Context, runID string) (*model.Results, error) {
	if r.pool != nil {
		query := `SELECT results_json FROM model_runs WHERE run_id = $1`
		var jsonData []byte
		err := r.pool.QueryRow(ctx, query, runID).Scan(&jsonData)
		if err != nil {
			if err == pgx.ErrNoRows {
				return nil, fmt.Errorf("no run found for id %s", runID)
			}
			return nil, fmt.Errorf("failed to load run: %w", err)
		}
		var res model.Results
		if err := json.Unmarshal(jsonData, &res); err != nil {
			return nil, fmt.Errorf("failed to unmarshal run: %w", err)
		}
		return &res, nil
	}

	if r.fileDir == "" {
		return nil, fmt.Errorf("no run found for id %s", runID)
	}
	data, err := os.ReadFile(filepath.Join(r.fileDir, runID+".json"))
	if err != nil {
		return nil, fmt.Errorf("no run found for id %s", runID)
	}
	var rec RunRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run file: %w", err)
	}
	return rec.Results, nil
}

// ListByDeal returns the stored run IDs for a deal, most recent first.
func (r *RunRepo) ListByDeal(ctx context.Context, deal string) ([]string, error) {
	if r.pool != nil {
		query := `SELECT run_id FROM model_runs WHERE deal = $1 ORDER BY saved_at DESC`
		rows, err := r.pool.Query(ctx, query, deal)
		if err != nil {
			return nil, fmt.Errorf("failed to list runs: %w", err)
		}
		defer rows.Close()
		var ids []string
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				return nil, fmt.Errorf("failed to scan run id: %w", err)
			}
			ids = append(ids, id)
		}
		return ids, rows.Err()
	}

	if r.fileDir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(r.fileDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list run files: %w", err)
	}
	type stamped struct {
		id string
		at time.Time
	}
	var found []stamped
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(r.fileDir, e.Name()))
		if err != nil {
			continue
		}
		var rec RunRecord
		if err := json.Unmarshal(data, &rec); err != nil || rec.Deal != deal {
			continue
		}
		found = append(found, stamped{id: rec.RunID, at: rec.SavedAt})
	}
	sort.Slice(found, func(i, j int) bool { return found[i].at.After(found[j].at) })
	ids := make([]string, len(found))
	for i, f := range found {
		ids[i] = f.id
	}
	return ids, nil
}
