package application

import "errors"

// ErrNotFound is returned by SnapshotStore.Get when the store holds no row
// for the requested base currency.
var ErrNotFound = errors.New("not found")
