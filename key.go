package rrcache

import "fmt"

// Key identifies one cached RRSet: the triple (owner name, type, class).
// Name equality is structural and case-sensitive; this package relies on
// whatever canonicalization github.com/miekg/dns already applied to the
// name and does not re-normalize it.
type Key struct {
	Name  string
	Type  uint16
	Class uint16
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%d/%d", k.Name, k.Type, k.Class)
}

// Less gives Key a total order, used to break eol ties in the priority
// search queue deterministically.
func (k Key) Less(other Key) bool {
	if k.Name != other.Name {
		return k.Name < other.Name
	}
	if k.Type != other.Type {
		return k.Type < other.Type
	}
	return k.Class < other.Class
}
