package application

import (
	"sync/atomic"

	"currency-api/internal/domain"
)

// SnapshotCache holds zero or one snapshot for the lifetime of the process.
// Set replaces the whole snapshot atomically, so concurrent readers observe
// either the old or the new snapshot in full, never a mix. There is no
// expiry; staleness is bounded by the refresh schedule, not by the cache.
type SnapshotCache struct {
	cur atomic.Pointer[domain.Snapshot]
}

func NewSnapshotCache() *SnapshotCache { return &SnapshotCache{} }

func (c *SnapshotCache) Set(s domain.Snapshot) {
	c.cur.Store(&s)
}

func (c *SnapshotCache) Get() (domain.Snapshot, bool) {
	p := c.cur.Load()
	if p == nil {
		return domain.Snapshot{}, false
	}
	return *p, true
}
