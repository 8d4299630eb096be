package rrcache

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPQMinIsSmallestEolRegardlessOfInsertOrder(t *testing.T) {
	var h pq
	h.push(&pqEntry{key: testKey("b."), eol: 20})
	h.push(&pqEntry{key: testKey("a."), eol: 10})
	h.push(&pqEntry{key: testKey("c."), eol: 30})

	require.Equal(t, testKey("a."), h.min().key)
}

func TestPQRemoveReestablishesMin(t *testing.T) {
	var h pq
	a := &pqEntry{key: testKey("a."), eol: 10}
	b := &pqEntry{key: testKey("b."), eol: 20}
	h.push(a)
	h.push(b)

	h.remove(a)
	require.Equal(t, testKey("b."), h.min().key)
}

func TestPQFixReordersAfterEolChange(t *testing.T) {
	var h pq
	a := &pqEntry{key: testKey("a."), eol: 10}
	b := &pqEntry{key: testKey("b."), eol: 20}
	h.push(a)
	h.push(b)

	a.eol = 30
	h.fix(a)
	require.Equal(t, testKey("b."), h.min().key)
}

func TestPQCloneIsIndependent(t *testing.T) {
	var h pq
	h.push(&pqEntry{key: testKey("a."), eol: 10})

	clone := h.clone()
	clone.push(&pqEntry{key: testKey("b."), eol: 5})

	require.Equal(t, 1, h.Len())
	require.Equal(t, 2, clone.Len())
	require.Equal(t, testKey("b."), clone.min().key)
	require.Equal(t, testKey("a."), h.min().key)
}
