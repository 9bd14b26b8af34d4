package domain

import (
	"encoding/json"
	"sort"
)

// StringSet holds unique string identifiers. It marshals as a sorted JSON
// array so stored documents and API responses stay stable, and guarantees
// the at-most-once membership invariant structurally.
type StringSet map[string]struct{}

func NewStringSet(values ...string) StringSet {
	s := make(StringSet, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

func (s StringSet) Has(value string) bool {
	_, ok := s[value]
	return ok
}

func (s StringSet) Add(value string) {
	s[value] = struct{}{}
}

func (s StringSet) Len() int { return len(s) }

// Values returns the members sorted ascending, never nil.
func (s StringSet) Values() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func (s StringSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Values())
}

func (s *StringSet) UnmarshalJSON(data []byte) error {
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	*s = NewStringSet(values...)
	return nil
}
