// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package document turns specification documents into ordered paragraphs.
// A Registry picks a Reader by file extension; docx, markdown, plain text
// and HTML are read natively and other office formats go through the
// markitdown container.
package document

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pdiddy/rulecheck/pkg/types"
)

// ErrUnsupportedFormat is returned when no reader handles a file extension.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// Reader yields the paragraphs of one document in document order.
type Reader interface {
	Paragraphs(ctx context.Context, path string) ([]types.Paragraph, error)
}

// Registry maps lowercased file extensions (with the leading dot) to readers.
type Registry struct {
	mu      sync.RWMutex
	readers map[string]Reader
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{readers: make(map[string]Reader)}
}

// Default returns a registry with every built-in reader registered.
func Default(cfg types.ReaderConfig) *Registry {
	r := NewRegistry()
	r.Register(Docx{}, ".docx")
	r.Register(Markdown{}, ".md", ".markdown", ".txt")
	r.Register(HTML{}, ".html", ".htm")
	r.Register(NewMarkitdown(cfg), ".pdf", ".doc", ".odt", ".rtf")
	return r
}

// Register binds reader to each extension, replacing any earlier binding.
func (r *Registry) Register(reader Reader, exts ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ext := range exts {
		r.readers[strings.ToLower(ext)] = reader
	}
}

// Lookup returns the reader for path's extension.
func (r *Registry) Lookup(path string) (Reader, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reader, ok := r.readers[strings.ToLower(filepath.Ext(path))]
	return reader, ok
}

// Extensions returns the registered extensions, sorted.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	exts := make([]string, 0, len(r.readers))
	for ext := range r.readers {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Paragraphs reads path with the reader registered for its extension.
// A missing file yields an error wrapping os.ErrNotExist.
func (r *Registry) Paragraphs(ctx context.Context, path string) ([]types.Paragraph, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("reading document %s: %w", path, err)
	}
	reader, ok := r.Lookup(path)
	if !ok {
		ext := filepath.Ext(path)
		if ext == "" {
			ext = "(none)"
		}
		return nil, fmt.Errorf("%w %q: %s (supported: %s)",
			ErrUnsupportedFormat, ext, path, strings.Join(r.Extensions(), ", "))
	}
	return reader.Paragraphs(ctx, path)
}
