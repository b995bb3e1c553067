package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"currency-api/internal/domain"

	"github.com/stretchr/testify/require"
)

var usdRates = map[string]float64{"USD": 1, "EUR": 0.9, "GBP": 0.78, "JPY": 150}

func newService(store *fakeStore, p *fakeProvider, opts ...Option) (*RateService, *SnapshotCache) {
	cache := NewSnapshotCache()
	opts = append([]Option{
		WithClock(fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}),
	}, opts...)
	return NewRateService("USD", cache, store, p, opts...), cache
}

func Test_Refresh_InstallsSnapshot(t *testing.T) {
	t.Parallel()
	store := &fakeStore{}
	svc, _ := newService(store, &fakeProvider{rates: usdRates})

	svc.Refresh(context.Background())

	snap, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	require.Equal(t, "USD", snap.Base)
	require.Equal(t, usdRates, snap.Rates)
	require.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), snap.LastUpdated)
	require.Equal(t, 1, store.puts)
}

func Test_Refresh_Idempotent(t *testing.T) {
	t.Parallel()
	svc, _ := newService(&fakeStore{}, &fakeProvider{rates: usdRates})

	svc.Refresh(context.Background())
	first, err := svc.Snapshot(context.Background())
	require.NoError(t, err)

	svc.Refresh(context.Background())
	second, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func Test_Refresh_StoreWriteFailureKeepsSnapshot(t *testing.T) {
	t.Parallel()
	svc, _ := newService(&fakeStore{putErr: errStoreDown}, &fakeProvider{rates: usdRates})

	svc.Refresh(context.Background())

	snap, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	require.Equal(t, usdRates, snap.Rates)
}

func Test_Refresh_StickyLastGood(t *testing.T) {
	t.Parallel()
	p := &fakeProvider{rates: usdRates}
	svc, _ := newService(&fakeStore{}, p)

	svc.Refresh(context.Background())
	before, err := svc.Snapshot(context.Background())
	require.NoError(t, err)

	p.err = errors.New("upstream down")
	svc.Refresh(context.Background())

	after, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func Test_Refresh_FallbackPopulatesCacheFromStore(t *testing.T) {
	t.Parallel()
	stored := domain.Snapshot{
		Base:        "USD",
		Rates:       map[string]float64{"USD": 1, "EUR": 0.95},
		LastUpdated: time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
	}
	store := &fakeStore{snaps: map[string]domain.Snapshot{"USD": stored}}
	svc, cache := newService(store, &fakeProvider{err: errors.New("upstream down")})

	svc.Refresh(context.Background())

	got, ok := cache.Get()
	require.True(t, ok)
	require.Equal(t, stored, got)
}

func Test_Snapshot_StoreFallbackDoesNotPopulateCache(t *testing.T) {
	t.Parallel()
	stored := domain.Snapshot{Base: "USD", Rates: map[string]float64{"USD": 1}}
	store := &fakeStore{snaps: map[string]domain.Snapshot{"USD": stored}}
	svc, cache := newService(store, &fakeProvider{err: errors.New("upstream down")})

	got, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	require.Equal(t, stored, got)

	_, ok := cache.Get()
	require.False(t, ok)
}

func Test_Snapshot_StoreReadFaultTreatedAsAbsent(t *testing.T) {
	t.Parallel()
	svc, _ := newService(&fakeStore{getErr: errStoreDown}, &fakeProvider{err: errors.New("upstream down")})

	_, err := svc.Snapshot(context.Background())
	require.ErrorIs(t, err, domain.ErrUnavailable)
}

func Test_ColdStart_AllReadsUnavailable(t *testing.T) {
	t.Parallel()
	svc, _ := newService(&fakeStore{}, &fakeProvider{err: errors.New("upstream down")})
	svc.Refresh(context.Background())

	_, err := svc.Snapshot(context.Background())
	require.ErrorIs(t, err, domain.ErrUnavailable)

	_, err = svc.Convert(context.Background(), "USD", "EUR", 10)
	require.ErrorIs(t, err, domain.ErrUnavailable)

	_, err = svc.ListCurrencies(context.Background())
	require.ErrorIs(t, err, domain.ErrUnavailable)
}

func Test_Convert_Identity(t *testing.T) {
	t.Parallel()
	svc, _ := newService(&fakeStore{}, &fakeProvider{rates: usdRates})
	svc.Refresh(context.Background())

	conv, err := svc.Convert(context.Background(), "USD", "USD", 42.5)
	require.NoError(t, err)
	require.InDelta(t, 42.5, conv.Result, 1e-9)
	require.InDelta(t, 1.0, conv.Rate, 1e-9)
}

func Test_Convert_Composition(t *testing.T) {
	t.Parallel()
	svc, _ := newService(&fakeStore{}, &fakeProvider{rates: usdRates})
	svc.Refresh(context.Background())

	conv, err := svc.Convert(context.Background(), "EUR", "JPY", 100)
	require.NoError(t, err)
	require.InDelta(t, 16666.666667, conv.Result, 1e-6)
	require.InDelta(t, 166.666667, conv.Rate, 1e-6)
	require.Equal(t, "EUR", conv.From)
	require.Equal(t, "JPY", conv.To)
	require.InDelta(t, 100.0, conv.Amount, 1e-9)
}

func Test_Convert_ThroughBase(t *testing.T) {
	t.Parallel()
	svc, _ := newService(&fakeStore{}, &fakeProvider{rates: usdRates})
	svc.Refresh(context.Background())

	// to == base: amount / rates[from]
	conv, err := svc.Convert(context.Background(), "EUR", "USD", 90)
	require.NoError(t, err)
	require.InDelta(t, 100.0, conv.Result, 1e-6)

	// from == base: amount * rates[to]
	conv, err = svc.Convert(context.Background(), "USD", "JPY", 2)
	require.NoError(t, err)
	require.InDelta(t, 300.0, conv.Result, 1e-6)
}

func Test_Convert_RoundTripScaleInvariance(t *testing.T) {
	t.Parallel()
	svc, _ := newService(&fakeStore{}, &fakeProvider{rates: usdRates})
	svc.Refresh(context.Background())

	unit, err := svc.Convert(context.Background(), "GBP", "JPY", 1)
	require.NoError(t, err)

	for _, amount := range []float64{0.5, 3, 250, 9999.99} {
		conv, err := svc.Convert(context.Background(), "GBP", "JPY", amount)
		require.NoError(t, err)
		require.InDelta(t, unit.Result, conv.Result/amount, 1e-4)
	}
}

func Test_Convert_UnknownCurrency(t *testing.T) {
	t.Parallel()
	svc, _ := newService(&fakeStore{}, &fakeProvider{rates: usdRates})
	svc.Refresh(context.Background())

	_, err := svc.Convert(context.Background(), "USD", "XYZ", 10)
	require.ErrorIs(t, err, domain.ErrUnavailable)

	_, err = svc.Convert(context.Background(), "XYZ", "USD", 10)
	require.ErrorIs(t, err, domain.ErrUnavailable)
}

func Test_ListCurrencies_FilterAndSort(t *testing.T) {
	t.Parallel()
	rates := map[string]float64{"EUR": 0.9, "jpy99": 150, "GBP": 0.78}
	svc, _ := newService(&fakeStore{}, &fakeProvider{rates: rates},
		WithNames(fakeNames{m: map[string]string{"EUR": "Euro"}}),
	)
	svc.Refresh(context.Background())

	list, err := svc.ListCurrencies(context.Background())
	require.NoError(t, err)
	require.Equal(t, []domain.Currency{
		{Code: "EUR", Name: "Euro"},
		{Code: "GBP", Name: "GBP"}, // unresolved name falls back to the code
	}, list.Currencies)
	require.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), list.LastUpdated)
}
