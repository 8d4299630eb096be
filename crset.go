package rrcache

import "net"

// RRTag identifies which variant of CRSet is populated. CRSet is a closed
// tagged variant; callers must exhaustively switch on Tag and no other
// RDATA shape is representable.
type RRTag uint8

const (
	TagA RRTag = iota
	TagAAAA
	TagNS
	TagPTR
	TagMX
	TagTXT
	TagCNAME
	TagSOA
)

func (t RRTag) String() string {
	switch t {
	case TagA:
		return "A"
	case TagAAAA:
		return "AAAA"
	case TagNS:
		return "NS"
	case TagPTR:
		return "PTR"
	case TagMX:
		return "MX"
	case TagTXT:
		return "TXT"
	case TagCNAME:
		return "CNAME"
	case TagSOA:
		return "SOA"
	default:
		return "unknown"
	}
}

// MXDatum is one preference/exchange pair of an MX RRSet.
type MXDatum struct {
	Preference uint16
	Exchange   string // compact form, not a dns.Name
}

// SOAData is the single datum an SOA RRSet carries.
type SOAData struct {
	Ns      string // primary nameserver, compact form
	Mbox    string // responsible-party mailbox, compact form
	Serial  uint32
	Refresh uint32
	Retry   uint32
	Expire  uint32
	Minimum uint32
}

// CRSet is the compact, tagged in-cache representation of one RRSet's
// data. Only the field matching Tag is meaningful. CNAME and SOA carry
// exactly one datum; every other tag carries a nonempty slice. Domain
// names and mailbox labels are plain strings in the compact form
// produced by fromRDatas, not github.com/miekg/dns's dns.Name, to bound
// memory per cached entry.
type CRSet struct {
	Tag RRTag

	A     []net.IP
	AAAA  []net.IP
	NS    []string
	PTR   []string
	MX    []MXDatum
	TXT   [][]byte
	CNAME string
	SOA   SOAData
}

// valid reports whether crs satisfies CRSet's shape invariants for its tag.
func (crs CRSet) valid() bool {
	switch crs.Tag {
	case TagA:
		return len(crs.A) > 0
	case TagAAAA:
		return len(crs.AAAA) > 0
	case TagNS:
		return len(crs.NS) > 0
	case TagPTR:
		return len(crs.PTR) > 0
	case TagMX:
		return len(crs.MX) > 0
	case TagTXT:
		return len(crs.TXT) > 0
	case TagCNAME:
		return crs.CNAME != ""
	case TagSOA:
		return crs.SOA.Ns != ""
	default:
		return false
	}
}
