package rrcache

import (
	"fmt"

	"github.com/miekg/dns"
	"github.com/pkg/errors"
)

// RejectedRRSetError is returned (wrapped in a RejectedRRSet diagnostic,
// never to a cache caller) when a group of records could not be
// assembled into one RRSet: mixed TTLs, a type/RDATA mismatch, an empty
// group, an unsupported RDATA type, or a CNAME/SOA group with more than
// one record.
type RejectedRRSetError struct {
	name  string
	rtype uint16
	count int
}

func (e RejectedRRSetError) Error() string {
	return fmt.Sprintf("rejected RRSet %s %s (%d records): mixed TTL/class, type mismatch, or unsupported RDATA",
		e.name, dns.TypeToString[e.rtype], e.count)
}

func newRejectedRRSetError(group []dns.RR) error {
	if len(group) == 0 {
		return errors.New("rejected empty RRSet group")
	}
	h := group[0].Header()
	return RejectedRRSetError{name: h.Name, rtype: h.Rrtype, count: len(group)}
}

// workerPanicError wraps a recovered panic value from the update worker
// or ticker so the NOTICE log line carries a stack trace via
// github.com/pkg/errors, without letting the panic propagate to the
// caller that submitted the command.
func workerPanicError(recovered interface{}) error {
	return errors.Wrap(fmt.Errorf("%v", recovered), "recovered panic in update pipeline")
}
