package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"mbo_model/pkg/core/assumptions"
)

// DealRepo handles the storage of assumption sets.
type DealRepo struct{}

// NewDealRepo creates a new repository instance.
func NewDealRepo() *DealRepo {
	return &DealRepo{}
}

// Schema assumption:
// CREATE TABLE IF NOT EXISTS deals (
//   name TEXT PRIMARY KEY,
//   deal_json JSONB,
//   updated_at TIMESTAMPTZ
// );

// Save persists a deal's full assumption set, upserting on name.
func (r *DealRepo) Save(ctx context.Context, deal *assumptions.Deal) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	jsonData, err := json.Marshal(deal)
	if err != nil {
		return fmt.Errorf("failed to marshal deal: %w", err)
	}

	query := `
		INSERT INTO deals (name, deal_json, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (name)
		DO UPDATE SET
			deal_json = EXCLUDED.deal_json,
			updated_at = EXCLUDED.updated_at;
	`
	if _, err := pool.Exec(ctx, query, deal.Name, jsonData, time.Now()); err != nil {
		return fmt.Errorf("failed to save deal: %w", err)
	}
	return nil
}

// Load retrieves a deal's assumption set by name.
func (r *DealRepo) Load(ctx context.Context, name string) (*assumptions.Deal, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `SELECT deal_json FROM deals WHERE name = $1`

	var jsonData []byte
	err := pool.QueryRow(ctx, query, name).Scan(&jsonData)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("no deal found with name %s", name)
		}
		return nil, fmt.Errorf("failed to load deal: %w", err)
	}

	var deal assumptions.Deal
	if err := json.Unmarshal(jsonData, &deal); err != nil {
		return nil, fmt.Errorf("failed to unmarshal deal: %w", err)
	}
	return &deal, nil
}
