package application

import (
	"context"
	"errors"
	"time"

	"currency-api/internal/domain"
)

var errStoreDown = errors.New("store down")

type fakeStore struct {
	snaps  map[string]domain.Snapshot
	getErr error
	putErr error
	puts   int
}

func (f *fakeStore) Put(_ context.Context, base string, rates map[string]float64) error {
	if f.putErr != nil {
		return f.putErr
	}
	if f.snaps == nil {
		f.snaps = map[string]domain.Snapshot{}
	}
	f.puts++
	f.snaps[base] = domain.Snapshot{Base: base, Rates: rates, LastUpdated: time.Now().UTC()}
	return nil
}

func (f *fakeStore) Get(_ context.Context, base string) (domain.Snapshot, error) {
	if f.getErr != nil {
		return domain.Snapshot{}, f.getErr
	}
	s, ok := f.snaps[base]
	if !ok {
		return domain.Snapshot{}, ErrNotFound
	}
	return s, nil
}

type fakeProvider struct {
	rates map[string]float64
	err   error
	calls int
}

func (f *fakeProvider) Latest(context.Context, string) (map[string]float64, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]float64, len(f.rates))
	for k, v := range f.rates {
		out[k] = v
	}
	return out, nil
}

type fakeClock struct{ t time.Time }

func (f fakeClock) Now() time.Time { return f.t }

type fakeNames struct{ m map[string]string }

func (f fakeNames) Name(code string) (string, bool) {
	n, ok := f.m[code]
	return n, ok
}
