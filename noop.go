package rrcache

import (
	"context"

	"github.com/miekg/dns"
)

// Noop is a Facade-shaped cache that stores nothing: Lookup always
// misses, Insert discards what it is given, and GetOrResolve always
// resolves fresh. It satisfies the
// decision that a configured maximum cache size of 0 disables caching
// entirely rather than behaving as "unlimited" at the Facade layer (the
// store layer's Empty/evictIfOverCapacity keep treating maxSize<=0 as
// unlimited, for direct testing of the store in isolation).
type Noop struct{}

// NewNoop returns a Noop cache.
func NewNoop() Noop { return Noop{} }

func (Noop) Lookup(Key) ([]dns.RR, Ranking, bool) { return nil, 0, false }

func (Noop) Insert(Key, uint32, CRSet, Ranking) {}

func (Noop) GetOrResolve(ctx context.Context, key Key, resolve Resolve) ([]dns.RR, Ranking, error) {
	ttl, crs, rank, err := resolve(ctx, key)
	if err != nil {
		return nil, 0, err
	}
	return extractRRSet(key, ttl, crs), rank, nil
}

func (Noop) QueueSizes() (current, max int) { return 0, 0 }

func (Noop) Snapshot() []DumpEntry { return nil }

func (Noop) Shutdown(context.Context) error { return nil }
