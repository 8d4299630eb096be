package rrcache

import "github.com/miekg/dns"

// Section identifies one of the three record sections of a DNS message.
type Section uint8

const (
	SectionAnswer Section = iota
	SectionAuthority
	SectionAdditional
)

// rankForSection maps a section to the Ranking its records are admitted
// at, which depends only on the section and the message's
// authoritative-answer bit. ok is false for authority-section data from
// an authoritative reply, which is never cached.
func rankForSection(section Section, authoritative bool) (rank Ranking, ok bool) {
	switch section {
	case SectionAnswer:
		if authoritative {
			return AuthAnswer, true
		}
		return Answer, true
	case SectionAuthority:
		if authoritative {
			return 0, false
		}
		return Additional, true
	case SectionAdditional:
		return Additional, true
	default:
		return 0, false
	}
}

func recordsForSection(msg *dns.Msg, section Section) []dns.RR {
	switch section {
	case SectionAnswer:
		return msg.Answer
	case SectionAuthority:
		return msg.Ns
	case SectionAdditional:
		return msg.Extra
	default:
		return nil
	}
}

// ExtractSection classifies the records of one section of msg and
// returns them paired with the Ranking they'd be admitted at. ok is
// false when the section contributes no cacheable data (empty, or
// authority data from an authoritative reply).
func ExtractSection(msg *dns.Msg, section Section) (records []dns.RR, rank Ranking, ok bool) {
	rank, ok = rankForSection(section, msg.MsgHdr.Authoritative)
	if !ok {
		return nil, 0, false
	}
	records = recordsForSection(msg, section)
	if len(records) == 0 {
		return nil, 0, false
	}
	return records, rank, true
}

// AssembledRRSet is one successfully assembled, cacheable RRSet extracted
// from a message section.
type AssembledRRSet struct {
	Key  Key
	TTL  uint32
	CRSet CRSet
	Rank Ranking
}

// RejectedRRSet is a group of records from a section that could not be
// assembled into a single RRSet (see RejectedRRSetError for why).
type RejectedRRSet struct {
	Section Section
	Records []dns.RR
	Err     error
}

// ExtractAndAssemble classifies msg's section, stably groups its records
// by (name, type, class), and runs each group through takeRRSet. Groups
// that succeed are returned as AssembledRRSet paired with the section's
// Ranking; groups that fail are returned as diagnostics.
func ExtractAndAssemble(msg *dns.Msg, section Section) (accepted []AssembledRRSet, rejected []RejectedRRSet) {
	records, rank, ok := ExtractSection(msg, section)
	if !ok {
		return nil, nil
	}

	groups := stableGroupByKey(records)
	for _, group := range groups {
		key, ttl, crs, ok := takeRRSet(group)
		if !ok {
			rejected = append(rejected, RejectedRRSet{
				Section: section,
				Records: group,
				Err:     newRejectedRRSetError(group),
			})
			continue
		}
		accepted = append(accepted, AssembledRRSet{Key: key, TTL: ttl, CRSet: crs, Rank: rank})
	}
	return accepted, rejected
}

// stableGroupByKey groups rrs by (name, type, class), preserving the
// first-seen order of both groups and records within a group. It does
// not use rrSetKey itself since a malformed record (wrong class, wrong
// RDATA for its type) still needs to land in a group so takeRRSet can
// reject the whole group with a useful diagnostic.
func stableGroupByKey(rrs []dns.RR) [][]dns.RR {
	type groupKey struct {
		name  string
		rtype uint16
		class uint16
	}
	order := make([]groupKey, 0, len(rrs))
	groups := make(map[groupKey][]dns.RR, len(rrs))
	for _, rr := range rrs {
		h := rr.Header()
		gk := groupKey{name: h.Name, rtype: h.Rrtype, class: h.Class}
		if _, seen := groups[gk]; !seen {
			order = append(order, gk)
		}
		groups[gk] = append(groups[gk], rr)
	}
	out := make([][]dns.RR, 0, len(order))
	for _, gk := range order {
		out = append(out, groups[gk])
	}
	return out
}
