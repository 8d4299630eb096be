package rrcache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPipelineApplyInsertPublishesNewCache(t *testing.T) {
	p := NewPipeline(Empty(0), 0, NewFixedTimeSource(0), nil, nil)
	p.apply(command{kind: cmdInsert, key: testKey("a.com."), ttl: 60, crs: testCRSet(1), rank: Answer, now: 0, timeStr: func(s string) string { return s }})

	_, _, ok := p.Load().Lookup(0, testKey("a.com."))
	require.True(t, ok)
}

func TestPipelineApplyInsertRankRejectedLeavesCacheUnchanged(t *testing.T) {
	p := NewPipeline(Empty(0), 0, NewFixedTimeSource(0), nil, nil)
	identity := func(s string) string { return s }
	p.apply(command{kind: cmdInsert, key: testKey("a.com."), ttl: 60, crs: testCRSet(1), rank: AuthAnswer, now: 0, timeStr: identity})
	before := p.Load()

	p.apply(command{kind: cmdInsert, key: testKey("a.com."), ttl: 60, crs: testCRSet(2), rank: Answer, now: 0, timeStr: identity})
	require.Same(t, before, p.Load())
}

func TestPipelineApplyExpireTickSweepsExpiredEntries(t *testing.T) {
	p := NewPipeline(Empty(0), 0, NewFixedTimeSource(0), nil, nil)
	identity := func(s string) string { return s }
	p.apply(command{kind: cmdInsert, key: testKey("a.com."), ttl: 10, crs: testCRSet(1), rank: Answer, now: 0, timeStr: identity})

	p.apply(command{kind: cmdExpireTick, now: 50, timeStr: identity})

	_, _, ok := p.Load().Lookup(50, testKey("a.com."))
	require.False(t, ok)
}

func TestPipelineApplyGuardedRecoversPanic(t *testing.T) {
	// A nil current cache makes apply panic on the Insert.
	p := NewPipeline(nil, 0, NewFixedTimeSource(0), nil, nil)
	require.NotPanics(t, func() {
		p.applyGuarded(command{kind: cmdInsert, key: testKey("a.com."), ttl: 60, crs: testCRSet(1), rank: Answer, timeStr: func(s string) string { return s }})
	})
}

func TestPipelineStartShutdownDrainsSubmittedInsert(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := NewPipeline(Empty(0), 1, RealTimeSource{}, nil, nil)
	p.Start(ctx)

	now := p.source.GetSec()
	p.submitInsert(now, func(s string) string { return s }, testKey("a.com."), 60, testCRSet(1), Answer)

	require.Eventually(t, func() bool {
		_, _, ok := p.Load().Lookup(now, testKey("a.com."))
		return ok
	}, time.Second, 10*time.Millisecond)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Second)
	defer shutdownCancel()
	require.NoError(t, p.Shutdown(shutdownCtx))
}
