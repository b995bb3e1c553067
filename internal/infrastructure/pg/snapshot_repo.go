package pg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"currency-api/internal/application"
	"currency-api/internal/domain"

	"github.com/jackc/pgx/v5"
)

// SnapshotRepo keeps one row per base currency; Put replaces, never appends.
type SnapshotRepo struct{ db *DB }

var _ application.SnapshotStore = (*SnapshotRepo)(nil)

func NewSnapshotRepo(db *DB) *SnapshotRepo { return &SnapshotRepo{db: db} }

func (r *SnapshotRepo) Put(ctx context.Context, base string, rates map[string]float64) error {
	payload, err := json.Marshal(rates)
	if err != nil {
		return fmt.Errorf("encode rates: %w", err)
	}
	const up = `
        INSERT INTO rate_snapshots(base_currency, rates, last_updated)
        VALUES ($1, $2, NOW())
        ON CONFLICT (base_currency) DO UPDATE
          SET rates=EXCLUDED.rates, last_updated=EXCLUDED.last_updated`
	_, err = r.db.Pool.Exec(ctx, up, base, payload)
	return err
}

func (r *SnapshotRepo) Get(ctx context.Context, base string) (domain.Snapshot, error) {
	const q = `SELECT rates, last_updated FROM rate_snapshots WHERE base_currency=$1`
	var payload []byte
	out := domain.Snapshot{Base: base}
	err := r.db.Pool.QueryRow(ctx, q, base).Scan(&payload, &out.LastUpdated)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Snapshot{}, application.ErrNotFound
	}
	if err != nil {
		return domain.Snapshot{}, err
	}
	if err := json.Unmarshal(payload, &out.Rates); err != nil {
		return domain.Snapshot{}, fmt.Errorf("decode rates: %w", err)
	}
	return out, nil
}
