package rrcache

import (
	"sort"

	"github.com/miekg/dns"
)

// Val is the (CRSet, Ranking) pair stored against a live Key.
type Val struct {
	CRSet CRSet
	Rank  Ranking
}

type storeEntry struct {
	val Val
	eol Timestamp
	pq  *pqEntry
}

// Cache associates each live Key with exactly one Val and an eol. It is
// an immutable value: every mutating operation (Insert, Expires,
// Expire1) returns a new *Cache rather than mutating the receiver, so a
// single atomic pointer swap is enough to publish an update to readers
// (see Pipeline). The backing map and heap are a cheap-to-clone mutable
// structure used in place of a literal persistent priority search queue.
type Cache struct {
	maxSize int
	entries map[Key]storeEntry
	heap    pq
}

// Empty returns a fresh empty cache with the given maximum size. A
// maxSize of 0 or less means unlimited at the store level (see Config
// and Facade for the higher-level decision to route maxSize==0 through
// the no-op cache instead).
func Empty(maxSize int) *Cache {
	return &Cache{
		maxSize: maxSize,
		entries: make(map[Key]storeEntry),
	}
}

func (c *Cache) clone() *Cache {
	entries := make(map[Key]storeEntry, len(c.entries))
	h := c.heap.clone()
	// storeEntry.pq must point at the cloned pqEntry, not the original.
	byKey := make(map[Key]*pqEntry, len(h))
	for _, e := range h {
		byKey[e.key] = e
	}
	for k, se := range c.entries {
		se.pq = byKey[k]
		entries[k] = se
	}
	return &Cache{maxSize: c.maxSize, entries: entries, heap: h}
}

func isLive(eol, now Timestamp) bool {
	ttl, ok := eol.Sub(now)
	return ok && ttl >= 1
}

// Lookup returns the reconstituted wire-form RRSet for key with each
// record's TTL set to eol-now, and the Ranking it was cached at. Only
// live entries are returned; expired entries are treated as missing but
// are not removed (Lookup is read-only).
func (c *Cache) Lookup(now Timestamp, key Key) ([]dns.RR, Ranking, bool) {
	se, ok := c.entries[key]
	if !ok || !isLive(se.eol, now) {
		return nil, 0, false
	}
	ttl, _ := se.eol.Sub(now)
	return extractRRSet(key, ttl, se.val.CRSet), se.val.Rank, true
}

// Insert attempts to admit (key, ttl, crs, rank) at time now. If an
// entry for key is currently live and at rank >= rank, this is a no-op:
// the returned cache is c itself and changed is false. Otherwise the
// cache is first compacted by draining every already-expired entry, the
// new value is admitted, capacity eviction runs if needed, and the new
// *Cache is returned with changed=true.
func (c *Cache) Insert(now Timestamp, key Key, ttl uint32, crs CRSet, rank Ranking) (next *Cache, changed bool) {
	if se, ok := c.entries[key]; ok && isLive(se.eol, now) && !rank.Supersedes(se.val.Rank) {
		return c, false
	}

	next, expired := c.expires(now)
	if !expired {
		next = next.clone()
	}
	next.setEntry(key, Val{CRSet: crs, Rank: rank}, now+Timestamp(ttl))
	next.evictIfOverCapacity()
	return next, true
}

func (c *Cache) setEntry(key Key, val Val, eol Timestamp) {
	if se, ok := c.entries[key]; ok {
		se.pq.eol = eol
		c.heap.fix(se.pq)
		se.val = val
		se.eol = eol
		c.entries[key] = se
		return
	}
	e := &pqEntry{key: key, eol: eol}
	c.heap.push(e)
	c.entries[key] = storeEntry{val: val, eol: eol, pq: e}
}

func (c *Cache) deleteEntry(key Key) {
	se, ok := c.entries[key]
	if !ok {
		return
	}
	c.heap.remove(se.pq)
	delete(c.entries, key)
}

// evictIfOverCapacity drops the nearest-to-expire entries (ties broken
// by Key order, which the heap already encodes) until size is back at
// or under maxSize. A maxSize <= 0 means unlimited.
func (c *Cache) evictIfOverCapacity() {
	if c.maxSize <= 0 {
		return
	}
	for len(c.entries) > c.maxSize {
		min := c.heap.min()
		if min == nil {
			return
		}
		c.deleteEntry(min.key)
	}
}

// expires removes every entry whose eol <= now by repeatedly peeking the
// minimum-eol entry and deleting while expired. Returns c unchanged with
// changed=false if nothing was expired.
func (c *Cache) expires(now Timestamp) (next *Cache, changed bool) {
	min := c.heap.min()
	if min == nil || min.eol > now {
		return c, false
	}
	next = c.clone()
	for {
		min := next.heap.min()
		if min == nil || min.eol > now {
			break
		}
		next.deleteEntry(min.key)
	}
	return next, true
}

// Expires is the exported form of expires.
func (c *Cache) Expires(now Timestamp) (next *Cache, changed bool) {
	return c.expires(now)
}

// Expire1 drops exactly one minimum-eol entry if it is expired. Exposed
// for tests that want to step expiration one entry at a time.
func (c *Cache) Expire1(now Timestamp) (next *Cache, changed bool) {
	min := c.heap.min()
	if min == nil || min.eol > now {
		return c, false
	}
	next = c.clone()
	next.deleteEntry(min.key)
	return next, true
}

// Size returns the number of live-or-not entries currently held (expired
// entries linger until the next expiration pass).
func (c *Cache) Size() int {
	return len(c.entries)
}

// MinKey returns the Key with the smallest eol, and whether the cache is
// nonempty.
func (c *Cache) MinKey() (Key, bool) {
	min := c.heap.min()
	if min == nil {
		return Key{}, false
	}
	return min.key, true
}

// DumpEntry is one row of a Dump, for diagnostics.
type DumpEntry struct {
	Key  Key
	Val  Val
	Eol  Timestamp
}

// Dump returns every entry in the cache, ordered by Key for determinism.
func (c *Cache) Dump() []DumpEntry {
	out := make([]DumpEntry, 0, len(c.entries))
	for k, se := range c.entries {
		out = append(out, DumpEntry{Key: k, Val: se.val, Eol: se.eol})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key.Less(out[j].Key) })
	return out
}
