package rrcache

import (
	"net"

	"github.com/miekg/dns"
)

// tagForType maps a wire RR type to the RRTag this package supports.
func tagForType(rrtype uint16) (RRTag, bool) {
	switch rrtype {
	case dns.TypeA:
		return TagA, true
	case dns.TypeAAAA:
		return TagAAAA, true
	case dns.TypeNS:
		return TagNS, true
	case dns.TypePTR:
		return TagPTR, true
	case dns.TypeMX:
		return TagMX, true
	case dns.TypeTXT:
		return TagTXT, true
	case dns.TypeCNAME:
		return TagCNAME, true
	case dns.TypeSOA:
		return TagSOA, true
	default:
		return 0, false
	}
}

func typeForTag(tag RRTag) uint16 {
	switch tag {
	case TagA:
		return dns.TypeA
	case TagAAAA:
		return dns.TypeAAAA
	case TagNS:
		return dns.TypeNS
	case TagPTR:
		return dns.TypePTR
	case TagMX:
		return dns.TypeMX
	case TagTXT:
		return dns.TypeTXT
	case TagCNAME:
		return dns.TypeCNAME
	case TagSOA:
		return dns.TypeSOA
	default:
		return 0
	}
}

// rrSetKey yields the (Key, TTL) an RR would contribute to its RRSet, iff
// the record is class IN and its RDATA matches its declared TYPE.
func rrSetKey(rr dns.RR) (Key, uint32, bool) {
	h := rr.Header()
	if h.Class != dns.ClassINET {
		return Key{}, 0, false
	}
	tag, ok := tagForType(h.Rrtype)
	if !ok {
		return Key{}, 0, false
	}
	if !rdataMatchesTag(rr, tag) {
		return Key{}, 0, false
	}
	return Key{Name: h.Name, Type: h.Rrtype, Class: h.Class}, h.Ttl, true
}

func rdataMatchesTag(rr dns.RR, tag RRTag) bool {
	switch tag {
	case TagA:
		_, ok := rr.(*dns.A)
		return ok
	case TagAAAA:
		_, ok := rr.(*dns.AAAA)
		return ok
	case TagNS:
		_, ok := rr.(*dns.NS)
		return ok
	case TagPTR:
		_, ok := rr.(*dns.PTR)
		return ok
	case TagMX:
		_, ok := rr.(*dns.MX)
		return ok
	case TagTXT:
		_, ok := rr.(*dns.TXT)
		return ok
	case TagCNAME:
		_, ok := rr.(*dns.CNAME)
		return ok
	case TagSOA:
		_, ok := rr.(*dns.SOA)
		return ok
	default:
		return false
	}
}

// takeRRSet builds a CRSet from a nonempty list of wire records intended
// to form one RRSet. It succeeds only if every record maps via rrSetKey
// to the same (Key, TTL) pair, and CNAME/SOA lists contain exactly one
// record.
func takeRRSet(rrs []dns.RR) (Key, uint32, CRSet, bool) {
	if len(rrs) == 0 {
		return Key{}, 0, CRSet{}, false
	}
	key, ttl, ok := rrSetKey(rrs[0])
	if !ok {
		return Key{}, 0, CRSet{}, false
	}
	for _, rr := range rrs[1:] {
		k, t, ok := rrSetKey(rr)
		if !ok || k != key || t != ttl {
			return Key{}, 0, CRSet{}, false
		}
	}
	tag, ok := tagForType(key.Type)
	if !ok {
		return Key{}, 0, CRSet{}, false
	}
	if (tag == TagCNAME || tag == TagSOA) && len(rrs) != 1 {
		return Key{}, 0, CRSet{}, false
	}
	crs, ok := fromRDatas(tag, rrs)
	if !ok {
		return Key{}, 0, CRSet{}, false
	}
	return key, ttl, crs, true
}

// fromRDatas builds a CRSet of the given tag from the RDATA portion of
// rrs, ignoring their headers. It is the inverse of toRDatas. The
// character-strings of one TXT record are concatenated into a single
// octet string, so a multi-string TXT record does not survive a round
// trip through fromRDatas and toRDatas unchanged.
func fromRDatas(tag RRTag, rrs []dns.RR) (CRSet, bool) {
	crs := CRSet{Tag: tag}
	switch tag {
	case TagA:
		for _, rr := range rrs {
			a, ok := rr.(*dns.A)
			if !ok {
				return CRSet{}, false
			}
			crs.A = append(crs.A, cloneIP(a.A))
		}
	case TagAAAA:
		for _, rr := range rrs {
			a, ok := rr.(*dns.AAAA)
			if !ok {
				return CRSet{}, false
			}
			crs.AAAA = append(crs.AAAA, cloneIP(a.AAAA))
		}
	case TagNS:
		for _, rr := range rrs {
			ns, ok := rr.(*dns.NS)
			if !ok {
				return CRSet{}, false
			}
			crs.NS = append(crs.NS, ns.Ns)
		}
	case TagPTR:
		for _, rr := range rrs {
			p, ok := rr.(*dns.PTR)
			if !ok {
				return CRSet{}, false
			}
			crs.PTR = append(crs.PTR, p.Ptr)
		}
	case TagMX:
		for _, rr := range rrs {
			mx, ok := rr.(*dns.MX)
			if !ok {
				return CRSet{}, false
			}
			crs.MX = append(crs.MX, MXDatum{Preference: mx.Preference, Exchange: mx.Mx})
		}
	case TagTXT:
		for _, rr := range rrs {
			t, ok := rr.(*dns.TXT)
			if !ok {
				return CRSet{}, false
			}
			var b []byte
			for _, s := range t.Txt {
				b = append(b, s...)
			}
			crs.TXT = append(crs.TXT, b)
		}
	case TagCNAME:
		c, ok := rrs[0].(*dns.CNAME)
		if !ok {
			return CRSet{}, false
		}
		crs.CNAME = c.Target
	case TagSOA:
		s, ok := rrs[0].(*dns.SOA)
		if !ok {
			return CRSet{}, false
		}
		crs.SOA = SOAData{
			Ns:      s.Ns,
			Mbox:    s.Mbox,
			Serial:  s.Serial,
			Refresh: s.Refresh,
			Retry:   s.Retry,
			Expire:  s.Expire,
			Minimum: s.Minttl,
		}
	default:
		return CRSet{}, false
	}
	if !crs.valid() {
		return CRSet{}, false
	}
	return crs, true
}

// toRDatas is the inverse of fromRDatas: it produces bare dns.RR values
// (zero header) carrying only crs's data.
func toRDatas(crs CRSet) []dns.RR {
	switch crs.Tag {
	case TagA:
		out := make([]dns.RR, 0, len(crs.A))
		for _, ip := range crs.A {
			out = append(out, &dns.A{A: cloneIP(ip)})
		}
		return out
	case TagAAAA:
		out := make([]dns.RR, 0, len(crs.AAAA))
		for _, ip := range crs.AAAA {
			out = append(out, &dns.AAAA{AAAA: cloneIP(ip)})
		}
		return out
	case TagNS:
		out := make([]dns.RR, 0, len(crs.NS))
		for _, n := range crs.NS {
			out = append(out, &dns.NS{Ns: n})
		}
		return out
	case TagPTR:
		out := make([]dns.RR, 0, len(crs.PTR))
		for _, n := range crs.PTR {
			out = append(out, &dns.PTR{Ptr: n})
		}
		return out
	case TagMX:
		out := make([]dns.RR, 0, len(crs.MX))
		for _, mx := range crs.MX {
			out = append(out, &dns.MX{Preference: mx.Preference, Mx: mx.Exchange})
		}
		return out
	case TagTXT:
		out := make([]dns.RR, 0, len(crs.TXT))
		for _, t := range crs.TXT {
			out = append(out, &dns.TXT{Txt: []string{string(t)}})
		}
		return out
	case TagCNAME:
		return []dns.RR{&dns.CNAME{Target: crs.CNAME}}
	case TagSOA:
		return []dns.RR{&dns.SOA{
			Ns:      crs.SOA.Ns,
			Mbox:    crs.SOA.Mbox,
			Serial:  crs.SOA.Serial,
			Refresh: crs.SOA.Refresh,
			Retry:   crs.SOA.Retry,
			Expire:  crs.SOA.Expire,
			Minttl:  crs.SOA.Minimum,
		}}
	default:
		return nil
	}
}

// extractRRSet is the inverse of takeRRSet (up to the TXT concatenation
// noted on fromRDatas): it produces wire records with owner/type/class
// from key and the given ttl.
func extractRRSet(key Key, ttl uint32, crs CRSet) []dns.RR {
	rrs := toRDatas(crs)
	for _, rr := range rrs {
		*rr.Header() = dns.RR_Header{
			Name:   key.Name,
			Rrtype: key.Type,
			Class:  key.Class,
			Ttl:    ttl,
		}
	}
	return rrs
}

func cloneIP(ip net.IP) net.IP {
	out := make(net.IP, len(ip))
	copy(out, ip)
	return out
}
