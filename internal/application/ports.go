package application

import (
	"context"
	"time"

	"currency-api/internal/domain"
)

// SnapshotStore is the durable backup for rate snapshots, one row per base
// currency. Put upserts and stamps the write with the current time. Get
// returns ErrNotFound when no row exists; any other error is a storage
// fault (I/O, serialization).
type SnapshotStore interface {
	Put(ctx context.Context, base string, rates map[string]float64) error
	Get(ctx context.Context, base string) (domain.Snapshot, error)
}

// RateProvider fetches the latest rate mapping for a base currency from the
// upstream source of truth.
type RateProvider interface {
	Latest(ctx context.Context, base string) (map[string]float64, error)
}

// NameResolver maps a currency code to a display name. ok=false means the
// code could not be resolved and the caller should fall back to the code.
type NameResolver interface {
	Name(code string) (name string, ok bool)
}

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }
