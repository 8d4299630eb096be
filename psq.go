package rrcache

import "container/heap"

// pqEntry is one slot of the priority search queue: a Key ordered by its
// eol. index is maintained by container/heap for O(log n) removal, the
// same technique used by DNS-cache heaps elsewhere in the ecosystem
// (a min-heap of pending entries keyed by expiry, entry carries its own
// heap index).
type pqEntry struct {
	key   Key
	eol   Timestamp
	index int
}

// pq is a container/heap min-heap ordered by eol, ties broken by Key so
// that min is deterministic.
type pq []*pqEntry

func (h pq) Len() int { return len(h) }

func (h pq) Less(i, j int) bool {
	if h[i].eol != h[j].eol {
		return h[i].eol < h[j].eol
	}
	return h[i].key.Less(h[j].key)
}

func (h pq) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *pq) Push(x interface{}) {
	e := x.(*pqEntry)
	e.index = len(*h)
	*h = append(*h, e)
}

func (h *pq) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}

// push inserts e into h.
func (h *pq) push(e *pqEntry) { heap.Push(h, e) }

// remove drops e from h in O(log n), using its cached index.
func (h *pq) remove(e *pqEntry) {
	if e.index < 0 || e.index >= len(*h) {
		return
	}
	heap.Remove(h, e.index)
}

// fix re-establishes heap order for e after its eol changed in place.
func (h *pq) fix(e *pqEntry) { heap.Fix(h, e.index) }

// min returns the entry with the smallest eol, or nil if empty.
func (h pq) min() *pqEntry {
	if len(h) == 0 {
		return nil
	}
	return h[0]
}

// popMin removes and returns the entry with the smallest eol.
func (h *pq) popMin() *pqEntry {
	return heap.Pop(h).(*pqEntry)
}

// clone returns a deep-enough copy of h: new pqEntry pointers with the
// same values, so mutating the clone never affects h. Used by Cache's
// copy-on-write publish step.
func (h pq) clone() pq {
	out := make(pq, len(h))
	for i, e := range h {
		out[i] = &pqEntry{key: e.key, eol: e.eol, index: e.index}
	}
	return out
}
