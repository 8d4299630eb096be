package rrcache

import (
	"strconv"
	"time"
)

// Timestamp is monotonic-ish seconds, as produced by a TimeSource. It is
// treated as an opaque, totally ordered scalar supporting subtraction to
// yield a TTL.
type Timestamp int64

// Sub returns the positive number of seconds from other to t, or
// (0, false) if the difference would be zero, negative or overflow a
// uint32 - all cases treated as "expired" by callers.
func (t Timestamp) Sub(other Timestamp) (uint32, bool) {
	d := int64(t) - int64(other)
	if d < 1 {
		return 0, false
	}
	if d > int64(^uint32(0)) {
		return 0, false
	}
	return uint32(d), true
}

// TimeSource is the injected pair (get-timestamp-seconds, get-time-string)
// the cache uses instead of reading the wall clock directly, so tests can
// be deterministic.
type TimeSource interface {
	GetSec() Timestamp
	// GetTimeStr returns a function that prepends a rendered timestamp to
	// its argument, avoiding an intermediate allocation when the caller
	// only wants the tail appended.
	GetTimeStr() func(tail string) string
}

// RealTimeSource is a TimeSource backed by time.Now.
type RealTimeSource struct{}

func (RealTimeSource) GetSec() Timestamp {
	return Timestamp(time.Now().Unix())
}

func (RealTimeSource) GetTimeStr() func(string) string {
	prefix := time.Now().UTC().Format(time.RFC3339) + " "
	return func(tail string) string {
		return prefix + tail
	}
}

// fixedTimeSource is a TimeSource with a caller-controlled clock, used in
// tests and by anything that wants to drive the cache deterministically.
type fixedTimeSource struct {
	now Timestamp
}

// NewFixedTimeSource returns a TimeSource whose GetSec always returns now.
func NewFixedTimeSource(now Timestamp) TimeSource {
	return &fixedTimeSource{now: now}
}

func (f *fixedTimeSource) GetSec() Timestamp { return f.now }

func (f *fixedTimeSource) GetTimeStr() func(string) string {
	prefix := strconv.FormatInt(int64(f.now), 10) + " "
	return func(tail string) string { return prefix + tail }
}
