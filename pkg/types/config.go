// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// MatcherKind selects the reconciler implementation.
type MatcherKind string

const (
	// MatcherLinear compares every statement against every identifier.
	MatcherLinear MatcherKind = "linear"
	// MatcherSQLite loads identifiers into an in-memory SQLite table and
	// evaluates the same containment predicate in SQL.
	MatcherSQLite MatcherKind = "sqlite"
)

// OutputFormat selects how a CheckResult is rendered.
type OutputFormat string

const (
	FormatText     OutputFormat = "text"
	FormatMarkdown OutputFormat = "markdown"
	FormatJSON     OutputFormat = "json"
	FormatYAML     OutputFormat = "yaml"
)

// CatalogConfig overrides the built-in keyword catalog.
type CatalogConfig struct {
	// Keywords replaces the default catalog when non-empty.
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty" mapstructure:"keywords"`

	// ExtraKeywords is appended to the catalog (default or replaced).
	ExtraKeywords []string `json:"extra_keywords,omitempty" yaml:"extra_keywords,omitempty" mapstructure:"extra_keywords"`
}

// ClassifierConfig holds settings for the paragraph classifier.
type ClassifierConfig struct {
	// BatchSize is the number of paragraphs classified per batch (default 100).
	// It never changes the output.
	BatchSize int `json:"batch_size" yaml:"batch_size"`

	// ExcerptLength is the number of runes kept per bucket excerpt (default 100).
	ExcerptLength int `json:"excerpt_length" yaml:"excerpt_length"`
}

// CheckConfig holds settings for one reconciliation run.
type CheckConfig struct {
	// Document is the path of the ISO 20022 generation document.
	Document string `json:"document" yaml:"document"`

	// Artifacts lists artifact paths; each entry may be a doublestar glob.
	Artifacts []string `json:"artifacts" yaml:"artifacts"`

	// AllowMissingArtifact turns a missing artifact into a warning and an
	// empty identifier set instead of a failed run.
	AllowMissingArtifact bool `json:"allow_missing_artifact" yaml:"allow_missing_artifact"`

	// Matcher selects the reconciler (default linear).
	Matcher MatcherKind `json:"matcher" yaml:"matcher"`

	Catalog    CatalogConfig    `json:"catalog" yaml:"catalog"`
	Classifier ClassifierConfig `json:"classifier" yaml:"classifier"`
	Reader     ReaderConfig     `json:"reader" yaml:"reader"`
}

// ReaderConfig holds settings for formats converted through a container.
type ReaderConfig struct {
	// ContainerRuntime forces "docker" or "podman"; empty tries docker then podman.
	ContainerRuntime string `json:"container_runtime,omitempty" yaml:"container_runtime,omitempty"`

	// ConverterImage is the markitdown image name (default "markitdown:latest").
	ConverterImage string `json:"converter_image,omitempty" yaml:"converter_image,omitempty"`
}

// OutputConfig holds settings for rendering and exporting a run.
type OutputConfig struct {
	// Format selects the report format.
	Format OutputFormat `json:"format" yaml:"format"`

	// Path is the report destination; empty means stdout.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// MetricsFile, when set, receives Prometheus textfile gauges.
	MetricsFile string `json:"metrics_file,omitempty" yaml:"metrics_file,omitempty"`

	// FailOnUnmatched makes the run exit non-zero when coverage gaps exist.
	FailOnUnmatched bool `json:"fail_on_unmatched" yaml:"fail_on_unmatched"`
}

// WatchConfig holds settings for re-running the check on file changes.
type WatchConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Debounce is how long to wait for further changes before re-running (default 500ms).
	Debounce time.Duration `json:"debounce" yaml:"debounce"`
}
