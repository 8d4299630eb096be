package rrcache

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFacadeLookupMissThenInsertThenHit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f := NewFacade(ctx, 0, 4, NewFixedTimeSource(0))
	defer f.Shutdown(context.Background()) //nolint:errcheck

	_, _, ok := f.Lookup(testKey("a.com."))
	require.False(t, ok)

	f.Insert(testKey("a.com."), 60, testCRSet(1), Answer)

	require.Eventually(t, func() bool {
		_, _, ok := f.Lookup(testKey("a.com."))
		return ok
	}, time.Second, 10*time.Millisecond)
}

func TestFacadeGetOrResolveCoalescesConcurrentMisses(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f := NewFacade(ctx, 0, 4, NewFixedTimeSource(0))
	defer f.Shutdown(context.Background()) //nolint:errcheck

	var calls int64
	resolve := func(ctx context.Context, key Key) (uint32, CRSet, Ranking, error) {
		atomic.AddInt64(&calls, 1)
		time.Sleep(20 * time.Millisecond)
		return 60, testCRSet(1), Answer, nil
	}

	results := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func() {
			_, _, err := f.GetOrResolve(ctx, testKey("shared.com."), resolve)
			results <- err
		}()
	}
	for i := 0; i < 8; i++ {
		require.NoError(t, <-results)
	}
	require.Equal(t, int64(1), atomic.LoadInt64(&calls), "concurrent misses for the same key should be coalesced")
}

func TestFacadeGetOrResolvePropagatesResolveError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f := NewFacade(ctx, 0, 4, NewFixedTimeSource(0))
	defer f.Shutdown(context.Background()) //nolint:errcheck

	boom := errors.New("upstream unavailable")
	_, _, err := f.GetOrResolve(ctx, testKey("broken.com."), func(ctx context.Context, key Key) (uint32, CRSet, Ranking, error) {
		return 0, CRSet{}, 0, boom
	})
	require.ErrorIs(t, err, boom)
}

func TestNoopCacheNeverCaches(t *testing.T) {
	n := NewNoop()
	_, _, ok := n.Lookup(testKey("a.com."))
	require.False(t, ok)

	n.Insert(testKey("a.com."), 60, testCRSet(1), Answer)
	_, _, ok = n.Lookup(testKey("a.com."))
	require.False(t, ok, "Noop must not retain inserts")

	rrs, rank, err := n.GetOrResolve(context.Background(), testKey("a.com."), func(ctx context.Context, key Key) (uint32, CRSet, Ranking, error) {
		return 60, testCRSet(2), AuthAnswer, nil
	})
	require.NoError(t, err)
	require.Equal(t, AuthAnswer, rank)
	require.Len(t, rrs, 1)
}
