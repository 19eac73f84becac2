// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract pulls rule evidence out of the two inputs being
// reconciled: rule identifiers from a rules-implementation source file, and
// rule-like statements from the paragraphs of a specification document.
// Both are lexical heuristics filtered by the keyword catalog; neither
// parses syntax or understands rule semantics.
package extract

import (
	"strings"

	"github.com/pdiddy/rulecheck/internal/catalog"
	"github.com/pdiddy/rulecheck/pkg/types"
)

// Extractor applies the artifact and document heuristics with one catalog.
type Extractor struct {
	catalog *catalog.Catalog
}

// New returns an Extractor that filters with c.
func New(c *catalog.Catalog) *Extractor {
	return &Extractor{catalog: c}
}

// Statements returns the rule-like statements of paragraphs in document
// order. Each paragraph is trimmed; empty paragraphs are skipped and the
// rest are kept verbatim when their lowercased text contains a catalog
// keyword. Duplicates are preserved.
func (e *Extractor) Statements(paragraphs []types.Paragraph) []types.Statement {
	var out []types.Statement
	for i, p := range paragraphs {
		text := strings.TrimSpace(p.Text)
		if text == "" {
			continue
		}
		if e.catalog.ContainsAny(text) {
			out = append(out, types.Statement{Text: text, Paragraph: i})
		}
	}
	return out
}
