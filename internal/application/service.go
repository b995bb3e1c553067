package application

import (
	"context"
	"errors"
	"sort"

	"currency-api/internal/domain"

	"go.uber.org/zap"
)

// RateService owns the live snapshot for one base currency. Refresh feeds
// the cache and writes through to the store; reads consult the cache first
// and fall back to the store when the cache is empty.
type RateService struct {
	base     string
	cache    *SnapshotCache
	store    SnapshotStore
	provider RateProvider
	names    NameResolver
	clock    Clock
	metrics  *Metrics
	log      *zap.Logger
}

type Option func(*RateService)

func WithClock(c Clock) Option        { return func(s *RateService) { s.clock = c } }
func WithNames(n NameResolver) Option { return func(s *RateService) { s.names = n } }
func WithMetrics(m *Metrics) Option   { return func(s *RateService) { s.metrics = m } }
func WithLogger(l *zap.Logger) Option { return func(s *RateService) { s.log = l } }

func NewRateService(base string, cache *SnapshotCache, store SnapshotStore, provider RateProvider, opts ...Option) *RateService {
	s := &RateService{
		base:     base,
		cache:    cache,
		store:    store,
		provider: provider,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.clock == nil {
		s.clock = realClock{}
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	return s
}

// Base returns the configured base currency.
func (s *RateService) Base() string { return s.base }

// Refresh fetches the latest rates from the provider and installs them as
// the current snapshot, writing through to the store. It never returns an
// error: a store-write failure is logged because the cache update already
// took effect, and a fetch failure leaves an existing snapshot untouched.
// Only when the fetch fails with an empty cache does Refresh try to restore
// the snapshot from the store.
func (s *RateService) Refresh(ctx context.Context) {
	rates, err := s.provider.Latest(ctx, s.base)
	if err != nil {
		s.metrics.refresh("failure")
		s.log.Warn("refresh_failed", zap.String("base", s.base), zap.Error(err))
		if _, ok := s.cache.Get(); ok {
			return
		}
		stored, serr := s.store.Get(ctx, s.base)
		if serr != nil {
			if !errors.Is(serr, ErrNotFound) {
				s.log.Warn("store_read_failed", zap.String("base", s.base), zap.Error(serr))
			}
			return
		}
		s.cache.Set(stored)
		s.metrics.fallbackLoad()
		s.log.Info("snapshot_restored_from_store",
			zap.String("base", s.base),
			zap.Time("last_updated", stored.LastUpdated),
		)
		return
	}

	snap := domain.Snapshot{
		Base:        s.base,
		Rates:       rates,
		LastUpdated: s.clock.Now().UTC(),
	}
	s.cache.Set(snap)
	s.metrics.refresh("success")
	s.log.Info("refresh_done", zap.String("base", s.base), zap.Int("rates", len(rates)))

	if err := s.store.Put(ctx, s.base, rates); err != nil {
		s.metrics.storeWriteFailed()
		s.log.Warn("store_write_failed", zap.String("base", s.base), zap.Error(err))
	}
}

// Snapshot returns the cached snapshot, or a single store read when the
// cache is empty. The store fallback does not populate the cache; only a
// successful refresh does. Returns domain.ErrUnavailable when neither
// source has data; store read faults count as absent here.
func (s *RateService) Snapshot(ctx context.Context) (domain.Snapshot, error) {
	if snap, ok := s.cache.Get(); ok {
		return snap, nil
	}
	stored, err := s.store.Get(ctx, s.base)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Warn("store_read_failed", zap.String("base", s.base), zap.Error(err))
		}
		return domain.Snapshot{}, domain.ErrUnavailable
	}
	return stored, nil
}

// Convert converts amount units of from into to by routing through the base
// currency. Callers must pass validated inputs: 3-letter uppercase codes
// and a positive finite amount. A currency missing from the snapshot yields
// domain.ErrUnavailable, same as having no snapshot at all.
func (s *RateService) Convert(ctx context.Context, from, to string, amount float64) (domain.Conversion, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return domain.Conversion{}, err
	}
	rateFrom, okFrom := snap.Rates[from]
	rateTo, okTo := snap.Rates[to]
	if !okFrom || !okTo {
		return domain.Conversion{}, domain.ErrUnavailable
	}

	var result float64
	switch {
	case from == snap.Base:
		result = amount * rateTo
	case to == snap.Base:
		result = amount / rateFrom
	default:
		result = (amount / rateFrom) * rateTo
	}
	result = domain.Round6(result)
	// Rate is derived from the rounded result, not from the raw stored
	// rates. Keep this order of operations.
	rate := domain.Round6(result / amount)

	s.metrics.conversionServed()
	return domain.Conversion{
		From:        from,
		To:          to,
		Amount:      amount,
		Result:      result,
		Rate:        rate,
		LastUpdated: snap.LastUpdated,
	}, nil
}

// ListCurrencies enumerates the snapshot's currencies sorted by code.
// Keys that are not 3-letter uppercase codes are dropped; names fall back
// to the code when the resolver has nothing for it.
func (s *RateService) ListCurrencies(ctx context.Context) (domain.CurrencyList, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return domain.CurrencyList{}, err
	}
	codes := make([]string, 0, len(snap.Rates))
	for code := range snap.Rates {
		if domain.ValidCode(code) {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)

	out := make([]domain.Currency, 0, len(codes))
	for _, code := range codes {
		name := code
		if s.names != nil {
			if n, ok := s.names.Name(code); ok {
				name = n
			}
		}
		out = append(out, domain.Currency{Code: code, Name: name})
	}
	return domain.CurrencyList{Currencies: out, LastUpdated: snap.LastUpdated}, nil
}
