// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render formats a CheckResult as console text, Markdown, JSON or
// YAML, and dumps the classifier's ValidationReport.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/rulecheck/pkg/types"
)

// Write renders result in format to w.
func Write(w io.Writer, format types.OutputFormat, result *types.CheckResult) error {
	if result == nil {
		return fmt.Errorf("render: nil result")
	}
	switch format {
	case types.FormatText, "":
		return Text(w, result)
	case types.FormatMarkdown:
		_, err := io.WriteString(w, Markdown(result))
		return err
	case types.FormatJSON:
		b, err := JSON(result)
		if err != nil {
			return err
		}
		_, err = w.Write(append(b, '\n'))
		return err
	case types.FormatYAML:
		b, err := YAML(result)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	default:
		return fmt.Errorf("unsupported format %q: use text, markdown, json, or yaml", format)
	}
}

// Text writes the console report: identifier and statement counts, then
// the unmatched statements under a heading, or a full-coverage line.
func Text(w io.Writer, r *types.CheckResult) error {
	doc := documentLabel(r)
	art := artifactLabel(r)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d rule-like entries in %s.\n", len(r.Identifiers), art)
	fmt.Fprintf(&sb, "Found %d rule-like statements in %s.\n", len(r.Statements), doc)
	fmt.Fprintf(&sb, "\nRules in %s NOT found in %s:\n", doc, art)
	if r.Covered() {
		fmt.Fprintf(&sb, "All rule-like statements from %s are represented in %s.\n", doc, art)
	}
	for _, s := range r.Unmatched {
		fmt.Fprintf(&sb, "- %s\n", s.Text)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// Markdown returns a GitHub-flavoured summary of the run.
func Markdown(r *types.CheckResult) string {
	var sb strings.Builder

	sb.WriteString("## Rule Coverage Report\n\n")
	fmt.Fprintf(&sb, "**Document:** `%s`  \n", r.Document)
	fmt.Fprintf(&sb, "**Artifacts:** %s  \n", codeList(r.Artifacts))
	fmt.Fprintf(&sb, "**Run:** %s\n\n", r.RunID)

	sb.WriteString("| Identifiers | Statements | Unmatched |\n")
	sb.WriteString("|---|---|---|\n")
	fmt.Fprintf(&sb, "| %d | %d | %d |\n\n", len(r.Identifiers), len(r.Statements), len(r.Unmatched))

	if r.Report != nil {
		sb.WriteString("## Classification\n\n")
		fmt.Fprintf(&sb, "Paragraphs: %d total, %d with content, %d mentioning schema.\n\n",
			r.Report.TotalParagraphs, r.Report.ContentParagraphs, r.Report.SchemaElements)
		sb.WriteString("| Category | Paragraphs |\n")
		sb.WriteString("|---|---|\n")
		for _, b := range r.Report.RuleMatches {
			fmt.Fprintf(&sb, "| %s | %d |\n", b.Name, len(b.Excerpts))
		}
		sb.WriteString("\n")
	}

	if len(r.Warnings) > 0 {
		sb.WriteString("## Warnings\n\n")
		for _, w := range r.Warnings {
			fmt.Fprintf(&sb, "- %s\n", mdEscape(w))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Unmatched Statements\n\n")
	if r.Covered() {
		sb.WriteString("All rule-like statements are represented in the artifacts.\n")
		return sb.String()
	}
	sb.WriteString("| Paragraph | Statement |\n")
	sb.WriteString("|---|---|\n")
	for _, s := range r.Unmatched {
		fmt.Fprintf(&sb, "| %d | %s |\n", s.Paragraph, mdEscape(s.Text))
	}
	return sb.String()
}

// JSON returns the full result, pretty-printed.
func JSON(r *types.CheckResult) ([]byte, error) {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return b, nil
}

// YAML returns the full result as a YAML document.
func YAML(r *types.CheckResult) ([]byte, error) {
	b, err := yaml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshaling YAML: %w", err)
	}
	return b, nil
}

// Classification writes the totals and every bucket's excerpts.
func Classification(w io.Writer, report *types.ValidationReport) error {
	if report == nil {
		return fmt.Errorf("render: nil report")
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Total paragraphs: %d\n", report.TotalParagraphs)
	fmt.Fprintf(&sb, "Content paragraphs: %d\n", report.ContentParagraphs)
	fmt.Fprintf(&sb, "Schema elements: %d\n", report.SchemaElements)
	for _, b := range report.RuleMatches {
		fmt.Fprintf(&sb, "\n%s (%d)\n", b.Name, len(b.Excerpts))
		for _, e := range b.Excerpts {
			fmt.Fprintf(&sb, "  - %s\n", strings.ReplaceAll(e, "\n", " "))
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func documentLabel(r *types.CheckResult) string {
	return filepath.Base(r.Document)
}

func artifactLabel(r *types.CheckResult) string {
	if len(r.Artifacts) == 0 {
		return "the artifacts"
	}
	names := make([]string, len(r.Artifacts))
	for i, a := range r.Artifacts {
		names[i] = filepath.Base(a)
	}
	return strings.Join(names, ", ")
}

func codeList(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	quoted := make([]string, len(items))
	for i, it := range items {
		quoted[i] = "`" + it + "`"
	}
	return strings.Join(quoted, ", ")
}

// mdEscape replaces characters that would break Markdown table cells.
func mdEscape(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", "")
	return s
}
