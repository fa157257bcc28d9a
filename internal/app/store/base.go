package store

import (
	"sync"
	"time"

	"github.com/kishorkishor/storefront-backend/internal/persist"
)

// base carries the pieces both stores share: the persistence backend, the
// mutex, the clock hook and the change subscribers.
type base struct {
	mu      sync.Mutex
	persist persist.Store
	now     func() time.Time

	subMu sync.Mutex
	subs  []func(count int)
}

func newBase(p persist.Store) base {
	return base{persist: p, now: time.Now}
}

// Subscribe registers a callback invoked with the store's item count after
// every committed mutation. Badge counters hang off this.
func (b *base) Subscribe(fn func(count int)) {
	b.subMu.Lock()
	b.subs = append(b.subs, fn)
	b.subMu.Unlock()
}

// notify runs subscribers with no store lock held, so a callback may read
// either store of a session pair. Only committed mutations notify.
func (b *base) notify(count int) {
	b.subMu.Lock()
	subs := make([]func(count int), len(b.subs))
	copy(subs, b.subs)
	b.subMu.Unlock()

	for _, fn := range subs {
		fn(count)
	}
}

// SetClock overrides the store's time source. Tests use it to pin line item
// IDs and added-at timestamps.
func (b *base) SetClock(now func() time.Time) {
	b.mu.Lock()
	b.now = now
	b.mu.Unlock()
}
