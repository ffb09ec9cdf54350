package match

import "github.com/hashicorp/go-set/v2"

// IdentifyingStrings is the mutable set of substrings used for name matching.
// Entries are stored lowercased and trimmed and keep their insertion order.
type IdentifyingStrings struct {
	order []string
	set   *set.Set[string]
}

// NewIdentifyingStrings creates a set holding the given values.
func NewIdentifyingStrings(values ...string) *IdentifyingStrings {
	s := &IdentifyingStrings{set: set.New[string](len(values))}
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// Add inserts v. It reports false if v is blank or already present.
func (s *IdentifyingStrings) Add(v string) bool {
	v = normalizeID(v)
	if v == "" || !s.set.Insert(v) {
		return false
	}
	s.order = append(s.order, v)
	return true
}

// Remove deletes v. It reports false if v was not present.
func (s *IdentifyingStrings) Remove(v string) bool {
	v = normalizeID(v)
	if !s.set.Remove(v) {
		return false
	}
	for i, o := range s.order {
		if o == v {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Contains reports whether v is in the set.
func (s *IdentifyingStrings) Contains(v string) bool {
	return s.set.Contains(normalizeID(v))
}

// Values returns the entries in insertion order.
func (s *IdentifyingStrings) Values() []string {
	return append([]string(nil), s.order...)
}

// Len returns the number of entries.
func (s *IdentifyingStrings) Len() int {
	return s.set.Size()
}
