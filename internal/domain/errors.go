package domain

import "errors"

// ErrUnavailable means no rate data can be served: the cache is empty, the
// backing store has nothing for the base currency, or a requested currency
// is missing from the live snapshot.
var ErrUnavailable = errors.New("rate data unavailable")
