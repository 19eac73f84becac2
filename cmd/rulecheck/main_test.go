// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/rulecheck/internal/check"
	"github.com/pdiddy/rulecheck/pkg/types"
)

const testArtifact = `public final class ConversionRules {
    public static final String ROOT_ELEMENT = "Document";
    public static boolean isPreservedElement(String name) {
        return false;
    }
}
`

const testDocument = `The root element is Document.

Every currency amount carries a Ccy attribute.
`

func writeInputs(t *testing.T) (doc, artifact string) {
	t.Helper()
	dir := t.TempDir()
	doc = filepath.Join(dir, "iso20022.md")
	artifact = filepath.Join(dir, "ConversionRules.java")
	require.NoError(t, os.WriteFile(doc, []byte(testDocument), 0o644))
	require.NoError(t, os.WriteFile(artifact, []byte(testArtifact), 0o644))
	return doc, artifact
}

// resetFlags restores every flag to its default between executions.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestCheck_JSON(t *testing.T) {
	doc, artifact := writeInputs(t)
	for _, matcher := range []string{"linear", "sqlite"} {
		t.Run(matcher, func(t *testing.T) {
			out, _, err := execute(t, "check", "--document", doc, "--artifact", artifact,
				"--format", "json", "--matcher", matcher)
			require.NoError(t, err)

			var res types.CheckResult
			require.NoError(t, json.Unmarshal([]byte(out), &res))
			assert.Equal(t, []string{"document", "ispreservedelement", "root_element"}, res.Identifiers)
			require.Len(t, res.Unmatched, 1)
			assert.Equal(t, "Every currency amount carries a Ccy attribute.", res.Unmatched[0].Text)
		})
	}
}

func TestCheck_Text(t *testing.T) {
	doc, artifact := writeInputs(t)
	out, stderr, err := execute(t, "check", "--document", doc, "--artifact", artifact)
	require.NoError(t, err)
	assert.Contains(t, out, "Found 3 rule-like entries in ConversionRules.java.")
	assert.Contains(t, out, "Found 2 rule-like statements in iso20022.md.")
	assert.Contains(t, out, "- Every currency amount carries a Ccy attribute.\n")
	assert.Contains(t, stderr, "Checking "+doc)
}

func TestCheck_OutputAndMetrics(t *testing.T) {
	doc, artifact := writeInputs(t)
	dir := t.TempDir()
	report := filepath.Join(dir, "report.md")
	prom := filepath.Join(dir, "rulecheck.prom")

	out, _, err := execute(t, "check", "--document", doc, "--artifact", artifact,
		"--format", "markdown", "-o", report, "--metrics-file", prom)
	require.NoError(t, err)
	assert.Empty(t, out)

	md, err := os.ReadFile(report)
	require.NoError(t, err)
	assert.Contains(t, string(md), "## Rule Coverage Report")

	metrics, err := os.ReadFile(prom)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "rulecheck_unmatched_statements 1")
}

func TestCheck_FailOnUnmatched(t *testing.T) {
	doc, artifact := writeInputs(t)
	_, _, err := execute(t, "check", "--document", doc, "--artifact", artifact, "--fail-on-unmatched")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errCoverageGaps))
}

func TestCheck_MissingInputs(t *testing.T) {
	doc, artifact := writeInputs(t)

	_, _, err := execute(t, "check", "--document", filepath.Join(t.TempDir(), "none.docx"), "--artifact", artifact)
	require.Error(t, err)
	assert.True(t, errors.Is(err, check.ErrMissingInput))

	missing := filepath.Join(t.TempDir(), "Missing.java")
	_, _, err = execute(t, "check", "--document", doc, "--artifact", missing)
	require.Error(t, err)
	assert.True(t, errors.Is(err, check.ErrMissingInput))

	out, stderr, err := execute(t, "check", "--document", doc, "--artifact", missing, "--allow-missing-artifact")
	require.NoError(t, err)
	assert.Contains(t, stderr, "warning: artifact "+missing)
	assert.Contains(t, out, "Found 0 rule-like entries")
}

func TestCheck_InvalidOptions(t *testing.T) {
	doc, artifact := writeInputs(t)
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "format", args: []string{"--format", "xml"}, want: "unsupported format"},
		{name: "matcher", args: []string{"--matcher", "bloom"}, want: "unsupported matcher"},
		{name: "batch size", args: []string{"--batch-size=-1"}, want: "must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"check", "--document", doc, "--artifact", artifact}, tt.args...)
			_, _, err := execute(t, args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestCatalog(t *testing.T) {
	out, _, err := execute(t, "catalog")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Contains(t, lines, "minitems")
	assert.Contains(t, lines, "2020-12")

	kwFile := filepath.Join(t.TempDir(), "keywords.yaml")
	require.NoError(t, os.WriteFile(kwFile, []byte("keywords: [Alpha, beta]\nextra_keywords: [gamma]\n"), 0o644))
	out, _, err = execute(t, "catalog", "--keywords-file", kwFile)
	require.NoError(t, err)
	assert.Equal(t, "alpha\nbeta\ngamma\n", out)
}

func TestClassify(t *testing.T) {
	doc, _ := writeInputs(t)
	out, _, err := execute(t, "classify", doc, "--json")
	require.NoError(t, err)

	var report types.ValidationReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 2, report.TotalParagraphs)
	assert.Len(t, report.Bucket(types.CategoryCurrencyHandling), 1)

	out, _, err = execute(t, "classify", doc)
	require.NoError(t, err)
	assert.Contains(t, out, "Total paragraphs: 2")
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "rulecheck dev\n", out)
}
