// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package check

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/rulecheck/pkg/types"
)

const artifactSource = `package com.tsg.crossmsg.signing.config;

public final class ConversionRules {
    public static final String ROOT_ELEMENT = "Document";
    public static final String NAMESPACE_PREFIX = "urn:iso:std:iso:20022";
    public static boolean isArrayElement(String name) {
        // Section 8.3.1
        return name.endsWith("List");
    }
    public static final int MAX_ITEMS = 10;
}
`

const documentSource = `Introduction to the generation rules.

The root element is Document.

Arrays use minItems; see Section 8.3.1.

Currency codes use Ccy attributes on each amount.

Namespaces follow urn:iso:std:iso:20022:tech:xsd.
`

type fixture struct {
	dir      string
	document string
	artifact string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	f := fixture{
		dir:      dir,
		document: filepath.Join(dir, "iso20022.md"),
		artifact: filepath.Join(dir, "src", "main", "java", "ConversionRules.java"),
	}
	require.NoError(t, os.MkdirAll(filepath.Dir(f.artifact), 0o755))
	require.NoError(t, os.WriteFile(f.document, []byte(documentSource), 0o644))
	require.NoError(t, os.WriteFile(f.artifact, []byte(artifactSource), 0o644))
	return f
}

func fixedDeps() Deps {
	t0 := time.Date(2026, 3, 21, 12, 0, 0, 0, time.UTC)
	calls := 0
	return Deps{
		Now: func() time.Time {
			calls++
			return t0.Add(time.Duration(calls-1) * time.Second)
		},
		NewID: func() string { return "run-1" },
	}
}

func statementTexts(ss []types.Statement) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = s.Text
	}
	return out
}

func TestRun(t *testing.T) {
	f := newFixture(t)
	for _, kind := range []types.MatcherKind{types.MatcherLinear, types.MatcherSQLite} {
		t.Run(string(kind), func(t *testing.T) {
			cfg := types.CheckConfig{
				Document:  f.document,
				Artifacts: []string{f.artifact},
				Matcher:   kind,
			}
			res, err := Run(context.Background(), cfg, fixedDeps())
			require.NoError(t, err)

			assert.Equal(t, "run-1", res.RunID)
			assert.Equal(t, []string{f.artifact}, res.Artifacts)
			assert.Equal(t, time.Second, res.Duration)
			assert.Contains(t, res.Identifiers, "root_element")
			assert.Contains(t, res.Identifiers, "isarrayelement")
			assert.Contains(t, res.Identifiers, "section 8.3.1")
			assert.Contains(t, res.Identifiers, "document")

			// "Introduction ..." has no catalog keyword; the currency
			// paragraph has no identifier evidence.
			assert.Equal(t, []string{
				"The root element is Document.",
				"Arrays use minItems; see Section 8.3.1.",
				"Currency codes use Ccy attributes on each amount.",
				"Namespaces follow urn:iso:std:iso:20022:tech:xsd.",
			}, statementTexts(res.Statements))
			assert.Equal(t, []string{"Currency codes use Ccy attributes on each amount."}, statementTexts(res.Unmatched))
			assert.False(t, res.Covered())

			require.NotNil(t, res.Report)
			assert.Equal(t, 5, res.Report.TotalParagraphs)
			assert.Len(t, res.Report.Bucket(types.CategoryCurrencyHandling), 1)
			assert.Len(t, res.Report.Bucket(types.CategoryNamespaces), 1)
		})
	}
}

func TestRun_ArtifactGlob(t *testing.T) {
	f := newFixture(t)
	cfg := types.CheckConfig{
		Document:  f.document,
		Artifacts: []string{filepath.Join(f.dir, "src", "**", "*.java")},
	}
	res, err := Run(context.Background(), cfg, fixedDeps())
	require.NoError(t, err)
	assert.Equal(t, []string{f.artifact}, res.Artifacts)
	assert.NotEmpty(t, res.Identifiers)
}

func TestRun_MissingDocument(t *testing.T) {
	f := newFixture(t)
	cfg := types.CheckConfig{
		Document:  filepath.Join(f.dir, "nope.docx"),
		Artifacts: []string{f.artifact},
	}
	_, err := Run(context.Background(), cfg, fixedDeps())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingInput))
}

func TestRun_MissingArtifact(t *testing.T) {
	f := newFixture(t)
	missing := filepath.Join(f.dir, "Missing.java")

	t.Run("fatal by default", func(t *testing.T) {
		cfg := types.CheckConfig{Document: f.document, Artifacts: []string{missing}}
		_, err := Run(context.Background(), cfg, fixedDeps())
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMissingInput))
	})

	t.Run("allowed", func(t *testing.T) {
		cfg := types.CheckConfig{
			Document:             f.document,
			Artifacts:            []string{missing},
			AllowMissingArtifact: true,
		}
		res, err := Run(context.Background(), cfg, fixedDeps())
		require.NoError(t, err)
		assert.Empty(t, res.Identifiers)
		assert.Len(t, res.Warnings, 1)
		assert.Contains(t, res.Warnings[0], "Missing.java")
		// Every statement is unmatched when no identifiers exist.
		assert.Equal(t, res.Statements, res.Unmatched)
	})
}

func TestRun_UnknownMatcher(t *testing.T) {
	f := newFixture(t)
	cfg := types.CheckConfig{Document: f.document, Artifacts: []string{f.artifact}, Matcher: "bloom"}
	_, err := Run(context.Background(), cfg, fixedDeps())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown matcher")
}

func TestRun_Cancelled(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg := types.CheckConfig{Document: f.document, Artifacts: []string{f.artifact}}
	_, err := Run(ctx, cfg, fixedDeps())
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRun_CustomCatalog(t *testing.T) {
	f := newFixture(t)
	cfg := types.CheckConfig{
		Document:  f.document,
		Artifacts: []string{f.artifact},
		Catalog:   types.CatalogConfig{Keywords: []string{"introduction"}},
	}
	res, err := Run(context.Background(), cfg, fixedDeps())
	require.NoError(t, err)
	assert.Equal(t, []string{"Introduction to the generation rules."}, statementTexts(res.Statements))
	assert.Equal(t, res.Statements, res.Unmatched)
}

func TestExpandArtifacts(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a", "Rules.java")
	b := filepath.Join(dir, "b", "c", "Rules.java")
	for _, p := range []string{a, b} {
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("class X {}"), 0o644))
	}

	tests := []struct {
		name        string
		patterns    []string
		wantPaths   []string
		wantMissing []string
		wantErr     bool
	}{
		{name: "plain", patterns: []string{a}, wantPaths: []string{a}},
		{name: "recursive glob", patterns: []string{filepath.Join(dir, "**", "Rules.java")}, wantPaths: []string{a, b}},
		{name: "dedup", patterns: []string{a, filepath.Join(dir, "a", "*.java")}, wantPaths: []string{a}},
		{
			name:        "missing",
			patterns:    []string{filepath.Join(dir, "none.java"), filepath.Join(dir, "**", "*.kt")},
			wantMissing: []string{filepath.Join(dir, "none.java"), filepath.Join(dir, "**", "*.kt")},
		},
		{name: "directory", patterns: []string{dir}, wantErr: true},
		{name: "bad pattern", patterns: []string{filepath.Join(dir, "[")}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paths, missing, err := ExpandArtifacts(tt.patterns)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPaths, paths)
			assert.Equal(t, tt.wantMissing, missing)
		})
	}
}
