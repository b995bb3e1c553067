package provider

import (
	"context"

	"currency-api/internal/application"
)

// Ensure Fake implements application.RateProvider.
var _ application.RateProvider = (*Fake)(nil)

// Fake serves a fixed rate table; useful for dev when no provider key or
// network is available.
type Fake struct {
	rates map[string]float64
}

func NewFake(rates map[string]float64) *Fake {
	if rates == nil {
		rates = map[string]float64{"USD": 1, "EUR": 0.9, "GBP": 0.78, "JPY": 150}
	}
	return &Fake{rates: rates}
}

func (f *Fake) Latest(_ context.Context, _ string) (map[string]float64, error) {
	out := make(map[string]float64, len(f.rates))
	for k, v := range f.rates {
		out[k] = v
	}
	return out, nil
}
