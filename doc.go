/*
Package rrcache implements an RFC 2181 §5.4.1 ranked DNS RRSet cache. It
offers a priority-search-queue store keyed by (owner name, type, class),
a single-writer update pipeline that applies inserts and periodic
expiration sweeps, and a Facade that wires the store to an injectable
clock, a Logger and Prometheus metrics.

Store

Cache is the immutable store: every mutating operation returns a new
*Cache rather than mutating the receiver, so publishing an update is a
single atomic pointer swap. Admission follows ranking: an Insert at a
rank no stronger than the live entry for the same Key is a no-op.

Pipeline

Pipeline is the single-writer update path: a bounded queue of Insert and
Expire-tick commands drained by one dedicated goroutine, plus a ticker
goroutine that enqueues an Expire-tick once a second. Readers load the
current *Cache through an atomic.Pointer and never block.

Facade

Facade is the package's entry point, combining a Pipeline with a
TimeSource, a Logger and optional Metrics. GetOrResolve adds miss
coalescing on top of Lookup and Insert for callers fetching from an
upstream source on a cache miss.

This example builds a Facade holding up to 10000 entries and looks up a
cached RRSet for an A record.

	ctx := context.Background()
	f := rrcache.NewFacade(ctx, 10000, 64, rrcache.RealTimeSource{})
	key := rrcache.Key{Name: "example.com.", Type: dns.TypeA, Class: dns.ClassINET}
	rrs, rank, ok := f.Lookup(key)

*/
package rrcache
