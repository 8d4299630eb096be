package rrcache

import (
	"context"

	"github.com/miekg/dns"
	"golang.org/x/sync/singleflight"
)

// Resolve fetches a fresh RRSet for key on a cache miss. Callers passing a
// Resolve func to GetOrResolve own the authoritativeness decision: they
// return the Ranking the answer should be cached at, matching whichever
// section (answer/authority/additional) of whichever kind of reply
// (authoritative/non-authoritative) it came from.
type Resolve func(ctx context.Context, key Key) (ttl uint32, crs CRSet, rank Ranking, err error)

// Service is the common surface of Facade and Noop, letting callers
// (cmd/rrcachectl in particular) build either from a Config without
// caring which one they got.
type Service interface {
	Lookup(key Key) ([]dns.RR, Ranking, bool)
	Insert(key Key, ttl uint32, crs CRSet, rank Ranking)
	GetOrResolve(ctx context.Context, key Key, resolve Resolve) ([]dns.RR, Ranking, error)
	QueueSizes() (current, max int)
	Snapshot() []DumpEntry
	Shutdown(ctx context.Context) error
}

var (
	_ Service = (*Facade)(nil)
	_ Service = Noop{}
)

// Facade is the cache's public entry point: it wires a *Cache, published
// through a Pipeline, to a TimeSource, Logger and Metrics. Lookup never
// blocks; Insert and GetOrResolve may block briefly on the update queue.
//
// Shaped like a resolver decorator wrapped around a lookup-then-insert
// cache, except here the cache is the whole point rather than a
// decorator around an upstream client.
type Facade struct {
	pipeline *Pipeline
	source   TimeSource
	logger   Logger
	metrics  *Metrics
	sf       singleflight.Group
}

// FacadeOption configures a Facade at construction.
type FacadeOption func(*Facade)

// WithLogger sets the Facade's Logger. The default is the package-level
// Log, which is Silent{} unless changed.
func WithLogger(l Logger) FacadeOption {
	return func(f *Facade) { f.logger = l }
}

// WithMetrics sets the Facade's Metrics. The default is nil (disabled).
func WithMetrics(m *Metrics) FacadeOption {
	return func(f *Facade) { f.metrics = m }
}

// NewFacade constructs a Facade backed by a fresh empty Cache of the given
// maximum size, and starts its Pipeline's worker and ticker goroutines
// under ctx. A maxSize <= 0 means unlimited; see NewNoop for a Facade that
// caches nothing at all.
func NewFacade(ctx context.Context, maxSize, queueCapacity int, source TimeSource, opts ...FacadeOption) *Facade {
	if source == nil {
		source = RealTimeSource{}
	}
	f := &Facade{source: source, logger: Log}
	for _, opt := range opts {
		opt(f)
	}
	f.pipeline = NewPipeline(Empty(maxSize), queueCapacity, source, f.logger, f.metrics)
	f.pipeline.Start(ctx)
	return f
}

// Lookup returns the cached RRSet for key if one is currently live.
func (f *Facade) Lookup(key Key) ([]dns.RR, Ranking, bool) {
	now := f.source.GetSec()
	rrs, rank, ok := f.pipeline.Load().Lookup(now, key)
	if ok {
		f.metrics.recordHit()
	} else {
		f.metrics.recordMiss()
	}
	return rrs, rank, ok
}

// Insert submits (key, ttl, crs, rank) to the update pipeline. It blocks
// while the queue is full, applying backpressure to the caller rather
// than dropping the update.
func (f *Facade) Insert(key Key, ttl uint32, crs CRSet, rank Ranking) {
	now := f.source.GetSec()
	timeStr := f.source.GetTimeStr()
	f.pipeline.submitInsert(now, timeStr, key, ttl, crs, rank)
	cur, _ := f.pipeline.QueueSizes()
	f.metrics.setQueueDepth(cur)
}

// GetOrResolve returns the cached RRSet for key, resolving and inserting
// it via resolve on a miss. Concurrent misses for the same key are
// coalesced through a singleflight.Group so only one resolve runs; the
// other callers share its result.
//
// Mirrors bavix-outway's CachedResolver.Resolve, which coalesces cache
// misses on the query key through a singleflight.Group before calling
// the upstream resolver.
func (f *Facade) GetOrResolve(ctx context.Context, key Key, resolve Resolve) ([]dns.RR, Ranking, error) {
	if rrs, rank, ok := f.Lookup(key); ok {
		return rrs, rank, nil
	}

	v, err, _ := f.sf.Do(key.String(), func() (interface{}, error) {
		if rrs, rank, ok := f.Lookup(key); ok {
			return resolveResult{rrs: rrs, rank: rank}, nil
		}
		ttl, crs, rank, err := resolve(ctx, key)
		if err != nil {
			return nil, err
		}
		f.Insert(key, ttl, crs, rank)
		return resolveResult{rrs: extractRRSet(key, ttl, crs), rank: rank}, nil
	})
	if err != nil {
		return nil, 0, err
	}
	res := v.(resolveResult)
	return res.rrs, res.rank, nil
}

type resolveResult struct {
	rrs  []dns.RR
	rank Ranking
}

// QueueSizes reports the update pipeline's current and maximum queue
// depth, for diagnostics and health checks.
func (f *Facade) QueueSizes() (current, max int) {
	return f.pipeline.QueueSizes()
}

// Snapshot returns every entry currently held, for diagnostics.
func (f *Facade) Snapshot() []DumpEntry {
	return f.pipeline.Load().Dump()
}

// Shutdown stops the Facade's Pipeline, waiting for its worker and ticker
// to terminate or ctx to expire.
func (f *Facade) Shutdown(ctx context.Context) error {
	return f.pipeline.Shutdown(ctx)
}
