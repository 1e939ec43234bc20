// Package labels provides a small set type for request labels and the
// label lists a merge policy is configured with.
//
// Matching is exact and case-sensitive: "pr/Failing-CI" and "pr/failing-ci"
// are different labels.
package labels

import (
	"sort"
	"strings"
)

// Set is an unordered collection of label names.
type Set map[string]struct{}

// New builds a set from names. Surrounding whitespace is trimmed and empty
// names are skipped.
func New(names ...string) Set {
	s := make(Set, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		s[name] = struct{}{}
	}
	return s
}

// Add inserts name into the set.
func (s Set) Add(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	s[name] = struct{}{}
}

// Has reports whether name is in the set.
func (s Set) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Len returns the number of labels.
func (s Set) Len() int {
	return len(s)
}

// IsEmpty reports whether the set holds no labels.
func (s Set) IsEmpty() bool {
	return len(s) == 0
}

// Intersect returns the labels present in both sets.
func (s Set) Intersect(other Set) Set {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	out := make(Set)
	for name := range small {
		if large.Has(name) {
			out[name] = struct{}{}
		}
	}
	return out
}

// Overlaps reports whether the two sets share at least one label.
func (s Set) Overlaps(other Set) bool {
	for name := range s {
		if other.Has(name) {
			return true
		}
	}
	return false
}

// Sorted returns the labels in lexical order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for name := range s {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// String joins the sorted labels with ", ".
func (s Set) String() string {
	return strings.Join(s.Sorted(), ", ")
}
