package badgerstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"currency-api/internal/application"
	"currency-api/internal/domain"

	"github.com/dgraph-io/badger/v3"
)

// Store is a SnapshotStore on an embedded badger database, for deployments
// without Postgres. Values are JSON records keyed snapshot:<BASE>.
type Store struct{ db *badger.DB }

var _ application.SnapshotStore = (*Store)(nil)

func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

type record struct {
	Rates       map[string]float64 `json:"rates"`
	LastUpdated time.Time          `json:"last_updated"`
}

func key(base string) []byte { return []byte("snapshot:" + base) }

func (s *Store) Put(_ context.Context, base string, rates map[string]float64) error {
	data, err := json.Marshal(record{Rates: rates, LastUpdated: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(base), data)
	})
	if err != nil {
		return fmt.Errorf("store snapshot: %w", err)
	}
	return nil
}

func (s *Store) Get(_ context.Context, base string) (domain.Snapshot, error) {
	var rec record
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(base))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.Snapshot{}, application.ErrNotFound
	}
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}
	return domain.Snapshot{Base: base, Rates: rec.Rates, LastUpdated: rec.LastUpdated}, nil
}
