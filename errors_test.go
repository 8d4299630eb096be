package rrcache

import (
	"testing"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/require"
)

func TestNewRejectedRRSetErrorDescribesGroup(t *testing.T) {
	err := newRejectedRRSetError([]dns.RR{
		aRecord("example.com.", 60, nil),
		aRecord("example.com.", 30, nil),
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "example.com.")
	require.Contains(t, err.Error(), "2 records")
}

func TestNewRejectedRRSetErrorEmptyGroup(t *testing.T) {
	err := newRejectedRRSetError(nil)
	require.Error(t, err)
}

func TestWorkerPanicErrorWrapsRecoveredValue(t *testing.T) {
	err := workerPanicError("boom")
	require.Error(t, err)
	require.Contains(t, err.Error(), "boom")
}
