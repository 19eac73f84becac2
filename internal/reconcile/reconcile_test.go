// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reconcile

import (
	"context"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/rulecheck/pkg/types"
)

func statements(texts ...string) []types.Statement {
	out := make([]types.Statement, len(texts))
	for i, t := range texts {
		out[i] = types.Statement{Text: t, Paragraph: i}
	}
	return out
}

// matchers builds one matcher of every kind over ids.
func matchers(t *testing.T, ids types.IdentifierSet) map[types.MatcherKind]Matcher {
	t.Helper()
	out := map[types.MatcherKind]Matcher{}
	for _, kind := range []types.MatcherKind{types.MatcherLinear, types.MatcherSQLite} {
		m, err := NewMatcher(context.Background(), kind, ids)
		require.NoError(t, err)
		t.Cleanup(func() { m.Close() })
		out[kind] = m
	}
	return out
}

func TestMatch(t *testing.T) {
	tests := []struct {
		lower string
		id    string
		want  bool
	}{
		{"all amounts must use iso currency codes", "currency", true},
		{"currency", "currency codes", true},
		{"currency", "currency", true},
		{"the root element", "root_element", false},
		{"schema", "sch", true},
		{"amount", "amounts", true},
		{"amounts", "amount", true},
		{"draft 2020-12", "draft 2019-09", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Match(tt.lower, tt.id), "Match(%q, %q)", tt.lower, tt.id)
	}
}

func TestUnmatched(t *testing.T) {
	ids := types.NewIdentifierSet("currency", "section 8.3.1", "urn:iso:std:iso:20022:tech:json:")
	stmts := statements(
		"All amounts must use ISO currency codes (CCY) per schema rules.",
		"File names follow Section 8.3.1 of the guide.",
		"Arrays use minItems.",
		"URN",
		"Arrays use minItems.",
	)

	for kind, m := range matchers(t, ids) {
		t.Run(string(kind), func(t *testing.T) {
			got, err := Unmatched(context.Background(), m, stmts)
			require.NoError(t, err)
			assert.Equal(t, []types.Statement{
				{Text: "Arrays use minItems.", Paragraph: 2},
				{Text: "Arrays use minItems.", Paragraph: 4},
			}, got)
		})
	}
}

func TestUnmatched_CurrencyStatementWithoutEvidence(t *testing.T) {
	ids := types.NewIdentifierSet("root_element", "document", "array_type")
	stmts := statements("All amounts must use ISO currency codes (CCY) per schema rules.")

	for kind, m := range matchers(t, ids) {
		t.Run(string(kind), func(t *testing.T) {
			got, err := Unmatched(context.Background(), m, stmts)
			require.NoError(t, err)
			assert.Equal(t, stmts, got)
		})
	}
}

func TestUnmatched_EmptyIdentifierSet(t *testing.T) {
	stmts := statements("Each property must declare a type.", "Schemas use draft 2020-12.")
	for kind, m := range matchers(t, types.NewIdentifierSet()) {
		t.Run(string(kind), func(t *testing.T) {
			got, err := Unmatched(context.Background(), m, stmts)
			require.NoError(t, err)
			assert.Equal(t, stmts, got)
		})
	}
}

func TestUnmatched_NoStatements(t *testing.T) {
	m := NewLinear(types.NewIdentifierSet("type"))
	got, err := Unmatched(context.Background(), m, nil)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestUnmatched_SupersetWithStatementsMatchesAll(t *testing.T) {
	stmts := statements(
		"Each property must declare a type.",
		"The Namespace is urn:iso:std:iso:20022.",
		"Ü-umlaut Amounts are DECIMAL.",
	)
	ids := types.NewIdentifierSet("unrelated_constant")
	for _, s := range stmts {
		ids.Add(strings.ToLower(s.Text))
	}

	for kind, m := range matchers(t, ids) {
		t.Run(string(kind), func(t *testing.T) {
			got, err := Unmatched(context.Background(), m, stmts)
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestUnmatched_NotSymmetricBetweenInputs(t *testing.T) {
	// The identifier "root_element" has no statement evidence, yet nothing
	// reports it: only statements are checked.
	ids := types.NewIdentifierSet("root_element", "currency")
	stmts := statements("Every currency is a code.")
	got, err := Unmatched(context.Background(), NewLinear(ids), stmts)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUnmatched_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Unmatched(ctx, NewLinear(types.NewIdentifierSet()), statements("anything"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestNewMatcher_Unknown(t *testing.T) {
	_, err := NewMatcher(context.Background(), "trigram", types.NewIdentifierSet())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown matcher")
}

func TestNewMatcher_DefaultIsLinear(t *testing.T) {
	m, err := NewMatcher(context.Background(), "", types.NewIdentifierSet())
	require.NoError(t, err)
	assert.IsType(t, &Linear{}, m)
}

func TestSQLiteIndex_Len(t *testing.T) {
	idx, err := NewSQLiteIndex(context.Background(), types.NewIdentifierSet("a", "b", "c"))
	require.NoError(t, err)
	defer idx.Close()

	n, err := idx.Len(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

// randomText draws from a small alphabet so containment happens often.
func randomText(r *rand.Rand, maxLen int) string {
	const alphabet = "ab c.é"
	runes := []rune(alphabet)
	n := 1 + r.IntN(maxLen)
	var b strings.Builder
	for range n {
		b.WriteRune(runes[r.IntN(len(runes))])
	}
	return b.String()
}

func TestSQLiteIndexAgreesWithLinear(t *testing.T) {
	r := rand.New(rand.NewPCG(20022, 2020))
	for round := range 20 {
		ids := types.NewIdentifierSet()
		for range 1 + r.IntN(30) {
			ids.Add(randomText(r, 6))
		}
		var texts []string
		for range 50 {
			texts = append(texts, randomText(r, 12))
		}
		stmts := statements(texts...)

		ms := matchers(t, ids)
		want, err := Unmatched(context.Background(), ms[types.MatcherLinear], stmts)
		require.NoError(t, err)
		got, err := Unmatched(context.Background(), ms[types.MatcherSQLite], stmts)
		require.NoError(t, err)
		assert.Equal(t, want, got, "round %d", round)

		// Cross-check Linear against the predicate directly.
		for _, s := range stmts {
			lower := strings.ToLower(s.Text)
			found := false
			for id := range ids {
				if Match(lower, id) {
					found = true
					break
				}
			}
			ok, err := ms[types.MatcherLinear].Matches(context.Background(), lower)
			require.NoError(t, err)
			assert.Equal(t, found, ok)
		}
	}
}
