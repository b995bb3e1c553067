package domain

import (
	"math"
	"time"
)

// Conversion is the result of converting Amount units of From into To.
// Rate is the effective single-unit rate implied by the conversion; it is
// derived from the rounded Result, so it can drift slightly from the raw
// stored-rate ratio for large amounts. This matches upstream behavior.
type Conversion struct {
	From        string
	To          string
	Amount      float64
	Result      float64
	Rate        float64
	LastUpdated time.Time
}

// Currency is a code plus its human-readable display name.
type Currency struct {
	Code string
	Name string
}

// CurrencyList enumerates the currencies available in a snapshot, sorted by
// code ascending.
type CurrencyList struct {
	Currencies  []Currency
	LastUpdated time.Time
}

// Round6 rounds to six decimal places, half away from zero.
func Round6(x float64) float64 {
	return math.Round(x*1e6) / 1e6
}
