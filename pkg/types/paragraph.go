// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the rulecheck pipeline:
// paragraphs read from a specification document, rule identifiers and
// rule-like statements extracted from the two inputs, and the reports built
// from them.
package types

import "sort"

// Paragraph is one paragraph of a specification document. Readers yield
// paragraphs in document order, including empty ones.
type Paragraph struct {
	// Text is the paragraph text exactly as the reader produced it.
	Text string `json:"text" yaml:"text"`
}

// Statement is a rule-like paragraph: non-empty after trimming and
// containing at least one catalog keyword. Text is kept verbatim (trimmed,
// not case-folded).
type Statement struct {
	// Text is the trimmed paragraph text.
	Text string `json:"text" yaml:"text"`

	// Paragraph is the zero-based index of the source paragraph.
	Paragraph int `json:"paragraph" yaml:"paragraph"`
}

// IdentifierSet is a set of normalized rule identifiers extracted from a
// rules-implementation artifact. Entries are lowercased and trimmed before
// insertion; the zero value is not usable, use NewIdentifierSet.
type IdentifierSet map[string]struct{}

// NewIdentifierSet returns an empty set, optionally seeded with ids.
// Seeds are stored as given; callers normalize them first.
func NewIdentifierSet(ids ...string) IdentifierSet {
	s := make(IdentifierSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add inserts id into the set.
func (s IdentifierSet) Add(id string) {
	s[id] = struct{}{}
}

// Has reports whether id is in the set.
func (s IdentifierSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of identifiers.
func (s IdentifierSet) Len() int {
	return len(s)
}

// Merge adds every identifier of other into s.
func (s IdentifierSet) Merge(other IdentifierSet) {
	for id := range other {
		s[id] = struct{}{}
	}
}

// Sorted returns the identifiers in lexical order.
func (s IdentifierSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
