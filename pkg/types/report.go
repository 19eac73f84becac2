// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Category names the diagnostic buckets filled by the paragraph classifier.
type Category string

const (
	CategoryNamespaces       Category = "namespaces"
	CategorySchemaTypes      Category = "schema_types"
	CategoryArrayDefinitions Category = "array_definitions"
	CategoryRequiredElements Category = "required_elements"
	CategoryCurrencyHandling Category = "currency_handling"
	CategoryEncodingRules    Category = "encoding_rules"
)

// Categories lists every Category in classifier order.
var Categories = []Category{
	CategoryNamespaces,
	CategorySchemaTypes,
	CategoryArrayDefinitions,
	CategoryRequiredElements,
	CategoryCurrencyHandling,
	CategoryEncodingRules,
}

// CategoryBucket holds the truncated excerpts of every paragraph that
// satisfied one category predicate, in document order.
type CategoryBucket struct {
	Name     Category `json:"name" yaml:"name"`
	Excerpts []string `json:"excerpts" yaml:"excerpts"`
}

// ValidationReport is the diagnostic structure built by the paragraph
// classifier for one document. It lives for a single run and is never
// persisted.
type ValidationReport struct {
	// TotalParagraphs counts every paragraph the reader yielded, empty or not.
	TotalParagraphs int `json:"total_paragraphs" yaml:"total_paragraphs"`

	// ContentParagraphs counts paragraphs that are non-empty after trimming.
	ContentParagraphs int `json:"content_paragraphs" yaml:"content_paragraphs"`

	// SchemaElements counts non-empty paragraphs mentioning "schema".
	SchemaElements int `json:"schema_elements" yaml:"schema_elements"`

	// ValidationErrors and Warnings are reserved for future rule checks.
	ValidationErrors []string `json:"validation_errors" yaml:"validation_errors"`
	Warnings         []string `json:"warnings" yaml:"warnings"`

	// RuleMatches holds one bucket per Category, in Categories order.
	RuleMatches []CategoryBucket `json:"rule_matches" yaml:"rule_matches"`
}

// NewValidationReport returns a report with an empty bucket for every category.
func NewValidationReport() *ValidationReport {
	r := &ValidationReport{
		ValidationErrors: []string{},
		Warnings:         []string{},
		RuleMatches:      make([]CategoryBucket, len(Categories)),
	}
	for i, c := range Categories {
		r.RuleMatches[i] = CategoryBucket{Name: c, Excerpts: []string{}}
	}
	return r
}

// Bucket returns the excerpts recorded for c, or nil for an unknown category.
func (r *ValidationReport) Bucket(c Category) []string {
	for _, b := range r.RuleMatches {
		if b.Name == c {
			return b.Excerpts
		}
	}
	return nil
}

// Append records excerpt in the bucket for c. Unknown categories get a new
// bucket at the end so custom classifier rules are never dropped.
func (r *ValidationReport) Append(c Category, excerpt string) {
	for i := range r.RuleMatches {
		if r.RuleMatches[i].Name == c {
			r.RuleMatches[i].Excerpts = append(r.RuleMatches[i].Excerpts, excerpt)
			return
		}
	}
	r.RuleMatches = append(r.RuleMatches, CategoryBucket{Name: c, Excerpts: []string{excerpt}})
}

// CheckResult is the outcome of one reconciliation run between a
// specification document and its rules-implementation artifacts.
type CheckResult struct {
	// RunID uniquely identifies this run in exported reports.
	RunID string `json:"run_id" yaml:"run_id"`

	// Document is the path of the ISO 20022 generation document.
	Document string `json:"document" yaml:"document"`

	// Artifacts lists the artifact files that were scanned, after glob expansion.
	Artifacts []string `json:"artifacts" yaml:"artifacts"`

	// Identifiers is the extracted identifier set in lexical order.
	Identifiers []string `json:"identifiers" yaml:"identifiers"`

	// Statements lists every rule-like statement in document order.
	Statements []Statement `json:"statements" yaml:"statements"`

	// Unmatched lists the statements no identifier matched, in document order.
	Unmatched []Statement `json:"unmatched" yaml:"unmatched"`

	// Report is the paragraph classifier's diagnostic output.
	Report *ValidationReport `json:"report" yaml:"report"`

	// Warnings holds non-fatal problems such as a missing artifact.
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	StartedAt time.Time     `json:"started_at" yaml:"started_at"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
}

// Covered reports whether every statement matched at least one identifier.
func (r *CheckResult) Covered() bool {
	return len(r.Unmatched) == 0
}
