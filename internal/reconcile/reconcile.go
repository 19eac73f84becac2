// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package reconcile pairs rule-like statements with rule identifiers and
// reports the statements that have no implementation evidence.
//
// A statement matches an identifier when either string contains the other
// after the statement is lowercased. This is symmetric substring
// containment, not token or edit-distance matching, so short identifiers
// such as "type" match almost any statement and paraphrased requirements
// never match. Matchers must reproduce that predicate exactly.
package reconcile

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/rulecheck/pkg/types"
)

// Matcher decides whether a lowercased statement matches any identifier.
type Matcher interface {
	// Matches reports whether lower matches at least one identifier.
	Matches(ctx context.Context, lower string) (bool, error)

	// Close releases resources held by the matcher.
	Close() error
}

// Match is the containment predicate between a lowercased statement and
// one identifier.
func Match(lower, id string) bool {
	return strings.Contains(lower, id) || strings.Contains(id, lower)
}

// NewMatcher builds the matcher selected by kind over ids. An empty kind
// selects the linear matcher.
func NewMatcher(ctx context.Context, kind types.MatcherKind, ids types.IdentifierSet) (Matcher, error) {
	switch kind {
	case types.MatcherLinear, "":
		return NewLinear(ids), nil
	case types.MatcherSQLite:
		return NewSQLiteIndex(ctx, ids)
	default:
		return nil, fmt.Errorf("unknown matcher %q: use linear or sqlite", kind)
	}
}

// Unmatched returns the statements that match no identifier, in input
// order. Only statements are tested against identifiers, never the reverse.
func Unmatched(ctx context.Context, m Matcher, statements []types.Statement) ([]types.Statement, error) {
	out := []types.Statement{}
	for _, s := range statements {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		ok, err := m.Matches(ctx, strings.ToLower(s.Text))
		if err != nil {
			return nil, fmt.Errorf("matching statement at paragraph %d: %w", s.Paragraph, err)
		}
		if !ok {
			out = append(out, s)
		}
	}
	return out, nil
}

// Linear compares a statement against every identifier in turn and stops
// at the first match.
type Linear struct {
	ids []string
}

// NewLinear returns a Linear matcher over ids. Identifiers are visited in
// lexical order so runs are reproducible.
func NewLinear(ids types.IdentifierSet) *Linear {
	return &Linear{ids: ids.Sorted()}
}

// Matches implements Matcher.
func (l *Linear) Matches(_ context.Context, lower string) (bool, error) {
	for _, id := range l.ids {
		if Match(lower, id) {
			return true, nil
		}
	}
	return false, nil
}

// Close implements Matcher.
func (l *Linear) Close() error { return nil }
