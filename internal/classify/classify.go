// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify buckets specification paragraphs into diagnostic
// categories (namespaces, schema types, array definitions, required
// elements, currency handling, encoding rules). Its output is reported
// alongside reconciliation but never affects which statements match.
package classify

import (
	"strings"

	"github.com/pdiddy/rulecheck/pkg/types"
)

const (
	defaultBatchSize     = 100
	defaultExcerptLength = 100
)

// Text is a trimmed paragraph together with its lowercased form, so rules
// do not fold case repeatedly.
type Text struct {
	Raw   string
	Lower string
}

func newText(s string) Text {
	return Text{Raw: s, Lower: strings.ToLower(s)}
}

// Has reports whether the lowercased text contains every term.
func (t Text) Has(terms ...string) bool {
	for _, term := range terms {
		if !strings.Contains(t.Lower, term) {
			return false
		}
	}
	return true
}

// HasAny reports whether the lowercased text contains at least one term.
func (t Text) HasAny(terms ...string) bool {
	for _, term := range terms {
		if strings.Contains(t.Lower, term) {
			return true
		}
	}
	return false
}

// Rule is one category predicate. Rules are pure and independent; a
// paragraph lands in every bucket whose rule matches.
type Rule struct {
	Category types.Category
	Match    func(Text) bool
}

// isoNamespaceFragment is matched against the original-case text.
const isoNamespaceFragment = "urn:iso:std:iso:20022"

// DefaultRules are evaluated in this order for every paragraph.
var DefaultRules = []Rule{
	{
		Category: types.CategoryNamespaces,
		Match: func(t Text) bool {
			return t.Has("namespace") && strings.Contains(t.Raw, isoNamespaceFragment)
		},
	},
	{
		Category: types.CategorySchemaTypes,
		Match:    func(t Text) bool { return t.Has("type", "object", "schema") },
	},
	{
		Category: types.CategoryArrayDefinitions,
		Match:    func(t Text) bool { return t.Has("array") && t.HasAny("minitems", "maxitems") },
	},
	{
		Category: types.CategoryRequiredElements,
		Match:    func(t Text) bool { return t.Has("required", "element") },
	},
	{
		Category: types.CategoryCurrencyHandling,
		Match:    func(t Text) bool { return t.HasAny("currency", "ccy") && t.Has("amount") },
	},
	{
		Category: types.CategoryEncodingRules,
		Match:    func(t Text) bool { return t.HasAny("encoding", "utf-8") },
	},
}

// Classifier fills a ValidationReport from document paragraphs.
type Classifier struct {
	rules         []Rule
	batchSize     int
	excerptLength int
}

// New returns a classifier using DefaultRules. Zero config values fall back
// to batches of 100 paragraphs and 100-rune excerpts.
func New(cfg types.ClassifierConfig) *Classifier {
	return NewWithRules(cfg, DefaultRules)
}

// NewWithRules returns a classifier that evaluates rules in the given order.
func NewWithRules(cfg types.ClassifierConfig, rules []Rule) *Classifier {
	batch := cfg.BatchSize
	if batch <= 0 {
		batch = defaultBatchSize
	}
	excerpt := cfg.ExcerptLength
	if excerpt <= 0 {
		excerpt = defaultExcerptLength
	}
	return &Classifier{rules: rules, batchSize: batch, excerptLength: excerpt}
}

// Classify builds a fresh report for paragraphs. Paragraphs are processed
// in batches; batch boundaries never change the result.
func (c *Classifier) Classify(paragraphs []types.Paragraph) *types.ValidationReport {
	report := types.NewValidationReport()
	report.TotalParagraphs = len(paragraphs)

	for start := 0; start < len(paragraphs); start += c.batchSize {
		end := min(start+c.batchSize, len(paragraphs))
		c.classifyBatch(report, paragraphs[start:end])
	}
	return report
}

func (c *Classifier) classifyBatch(report *types.ValidationReport, batch []types.Paragraph) {
	for _, p := range batch {
		raw := strings.TrimSpace(p.Text)
		if raw == "" {
			continue
		}
		report.ContentParagraphs++

		t := newText(raw)
		if t.Has("schema") {
			report.SchemaElements++
		}

		excerpt := Excerpt(raw, c.excerptLength)
		for _, rule := range c.rules {
			if rule.Match(t) {
				report.Append(rule.Category, excerpt)
			}
		}
	}
}

// Categorize returns the categories a single paragraph falls into, in rule
// order. An empty paragraph falls into none.
func (c *Classifier) Categorize(text string) []types.Category {
	raw := strings.TrimSpace(text)
	if raw == "" {
		return nil
	}
	t := newText(raw)
	var out []types.Category
	for _, rule := range c.rules {
		if rule.Match(t) {
			out = append(out, rule.Category)
		}
	}
	return out
}

// Excerpt returns the first n runes of s.
func Excerpt(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
