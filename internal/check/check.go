// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package check runs one reconciliation between a specification document
// and the artifacts that implement its rules. Stages run in order: artifact
// rule extraction, document reading, statement extraction, classification
// and reconciliation.
package check

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/rulecheck/internal/catalog"
	"github.com/pdiddy/rulecheck/internal/classify"
	"github.com/pdiddy/rulecheck/internal/document"
	"github.com/pdiddy/rulecheck/internal/extract"
	"github.com/pdiddy/rulecheck/internal/reconcile"
	"github.com/pdiddy/rulecheck/pkg/types"
)

// ErrMissingInput is returned when the document, or an artifact while
// missing artifacts are not allowed, does not exist.
var ErrMissingInput = errors.New("missing input")

// Deps holds the collaborators of a run. Zero fields take defaults.
type Deps struct {
	// Reader yields document paragraphs (default document.Default).
	Reader document.Reader

	// Logger receives stage progress (default zap.NewNop).
	Logger *zap.Logger

	// Now and NewID are overridden by tests.
	Now   func() time.Time
	NewID func() string
}

func (d Deps) withDefaults(cfg types.CheckConfig) Deps {
	if d.Reader == nil {
		d.Reader = document.Default(cfg.Reader)
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.NewID == nil {
		d.NewID = uuid.NewString
	}
	return d
}

// Run performs one check and returns its result. Coverage gaps are part
// of the result, not an error.
func Run(ctx context.Context, cfg types.CheckConfig, deps Deps) (*types.CheckResult, error) {
	deps = deps.withDefaults(cfg)
	log := deps.Logger
	started := deps.Now()

	result := &types.CheckResult{
		RunID:     deps.NewID(),
		Document:  cfg.Document,
		StartedAt: started.UTC(),
	}

	if _, err := os.Stat(cfg.Document); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: document %s not found", ErrMissingInput, cfg.Document)
		}
		return nil, fmt.Errorf("checking document %s: %w", cfg.Document, err)
	}

	cat, err := catalog.FromConfig(cfg.Catalog)
	if err != nil {
		return nil, err
	}
	ex := extract.New(cat)

	// Artifacts.
	paths, missing, err := ExpandArtifacts(cfg.Artifacts)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 && !cfg.AllowMissingArtifact {
		return nil, fmt.Errorf("%w: artifact %s not found (use --allow-missing-artifact to continue)", ErrMissingInput, missing[0])
	}
	for _, m := range missing {
		msg := fmt.Sprintf("artifact %s not found; its rules count as absent", m)
		log.Warn("artifact missing", zap.String("artifact", m))
		result.Warnings = append(result.Warnings, msg)
	}
	result.Artifacts = append([]string{}, paths...)

	ids := types.NewIdentifierSet()
	for _, p := range paths {
		set, err := ex.RulesFromFile(p)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) || !cfg.AllowMissingArtifact {
				return nil, err
			}
			result.Warnings = append(result.Warnings, err.Error())
			log.Warn("artifact unreadable", zap.String("artifact", p), zap.Error(err))
		}
		log.Debug("artifact scanned", zap.String("artifact", p), zap.Int("identifiers", set.Len()))
		ids.Merge(set)
	}
	result.Identifiers = ids.Sorted()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Document.
	paragraphs, err := deps.Reader.Paragraphs(ctx, cfg.Document)
	if err != nil {
		return nil, err
	}
	log.Debug("document read", zap.String("document", cfg.Document), zap.Int("paragraphs", len(paragraphs)))

	result.Statements = append([]types.Statement{}, ex.Statements(paragraphs)...)
	result.Report = classify.New(cfg.Classifier).Classify(paragraphs)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Reconciliation.
	m, err := reconcile.NewMatcher(ctx, cfg.Matcher, ids)
	if err != nil {
		return nil, err
	}
	defer m.Close()

	result.Unmatched, err = reconcile.Unmatched(ctx, m, result.Statements)
	if err != nil {
		return nil, err
	}

	result.Duration = deps.Now().Sub(started)
	log.Info("check complete",
		zap.String("run_id", result.RunID),
		zap.Int("identifiers", len(result.Identifiers)),
		zap.Int("statements", len(result.Statements)),
		zap.Int("unmatched", len(result.Unmatched)),
		zap.Duration("duration", result.Duration))
	return result, nil
}
