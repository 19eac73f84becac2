// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog holds the keyword catalog: the domain vocabulary that
// decides whether a paragraph or a quoted literal is rule-like. Both
// extractors filter on the same catalog.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/rulecheck/pkg/types"
)

// defaultKeywords is the built-in vocabulary for ISO 20022 to JSON Schema
// conversion rules: normative verbs, structural and validation terms,
// JSON Schema keywords, ISO 20022 data types, and numbered section markers.
var defaultKeywords = []string{
	// normative
	"must", "shall", "should", "required", "constraint",
	// structural
	"type", "object", "array", "property", "element", "cardinality",
	"schema", "ref", "reference", "definition", "component", "choice",
	"message", "document", "file", "anchor", "identifier", "name", "value",
	"set", "list", "map", "description", "format",
	// validation
	"pattern", "encoding", "enum", "validation", "error", "exception",
	"limit", "length", "digits", "minitems", "maxitems",
	"additionalproperties", "minproperties", "maxproperties",
	"minlength", "maxlength", "mininclusive", "maxinclusive",
	"minexclusive", "maxexclusive",
	// data types
	"decimal", "date", "time", "boolean", "code", "amount", "currency",
	"number", "string",
	// ISO 20022 / JSON Schema
	"namespace", "urn", "iso", "json", "xml", "draft", "2020-12",
	// section markers
	"section", "8.", "9.", "10.", "11.",
}

// Catalog is an immutable set of lowercase keywords used for
// case-insensitive substring membership tests.
type Catalog struct {
	keywords []string
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New(defaultKeywords)
	if err != nil {
		panic(err)
	}
	return c
}

// New builds a catalog from keywords. Entries are trimmed and lowercased;
// blanks and duplicates are dropped, first occurrence wins. An empty result
// is an error because every paragraph would be rejected.
func New(keywords []string) (*Catalog, error) {
	seen := make(map[string]bool, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		out = append(out, kw)
	}
	if len(out) == 0 {
		return nil, errors.New("keyword catalog is empty")
	}
	return &Catalog{keywords: out}, nil
}

// FromConfig builds the effective catalog: cfg.Keywords replaces the
// defaults when non-empty and cfg.ExtraKeywords is appended.
func FromConfig(cfg types.CatalogConfig) (*Catalog, error) {
	base := defaultKeywords
	if len(cfg.Keywords) > 0 {
		base = cfg.Keywords
	}
	all := make([]string, 0, len(base)+len(cfg.ExtraKeywords))
	all = append(all, base...)
	all = append(all, cfg.ExtraKeywords...)
	c, err := New(all)
	if err != nil {
		return nil, fmt.Errorf("building catalog: %w", err)
	}
	return c, nil
}

// LoadFile reads a YAML keywords file of the form
//
//	keywords: [...]
//	extra_keywords: [...]
func LoadFile(path string) (types.CatalogConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.CatalogConfig{}, fmt.Errorf("reading keywords file: %w", err)
	}
	var cfg types.CatalogConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return types.CatalogConfig{}, fmt.Errorf("parsing keywords file %s: %w", path, err)
	}
	return cfg, nil
}

// ContainsAny reports whether the lowercased text contains at least one
// catalog keyword as a substring.
func (c *Catalog) ContainsAny(text string) bool {
	return c.ContainsAnyLower(strings.ToLower(text))
}

// ContainsAnyLower is ContainsAny for text that is already lowercased.
func (c *Catalog) ContainsAnyLower(lower string) bool {
	for _, kw := range c.keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Keywords returns a copy of the catalog entries in insertion order.
func (c *Catalog) Keywords() []string {
	out := make([]string, len(c.keywords))
	copy(out, c.keywords)
	return out
}

// Len returns the number of keywords.
func (c *Catalog) Len() int {
	return len(c.keywords)
}
