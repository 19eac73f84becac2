// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/pdiddy/rulecheck/internal/container"
	"github.com/pdiddy/rulecheck/pkg/types"
)

// DefaultConverterImage is the markitdown image used when none is configured.
const DefaultConverterImage = "markitdown:latest"

// Markitdown converts documents to Markdown by piping them through the
// markitdown container image, then splits the result like Markdown. The
// container runtime is detected on first use.
type Markitdown struct {
	image  string
	detect func(ctx context.Context) (container.Runtime, error)

	mu      sync.Mutex
	runtime container.Runtime
}

// NewMarkitdown returns a converting reader that detects docker or podman
// (or the runtime named in cfg) the first time it reads a document.
func NewMarkitdown(cfg types.ReaderConfig) *Markitdown {
	preferred := cfg.ContainerRuntime
	return &Markitdown{
		image: imageOrDefault(cfg.ConverterImage),
		detect: func(ctx context.Context) (container.Runtime, error) {
			return container.Detect(ctx, preferred)
		},
	}
}

// NewMarkitdownWithRuntime returns a converting reader bound to rt.
func NewMarkitdownWithRuntime(rt container.Runtime, image string) *Markitdown {
	return &Markitdown{
		image:   imageOrDefault(image),
		runtime: rt,
	}
}

func imageOrDefault(image string) string {
	if image == "" {
		return DefaultConverterImage
	}
	return image
}

func (m *Markitdown) resolve(ctx context.Context) (container.Runtime, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.runtime != nil {
		return m.runtime, nil
	}
	rt, err := m.detect(ctx)
	if err != nil {
		return nil, err
	}
	if err := rt.ImageExists(ctx, m.image); err != nil {
		return nil, fmt.Errorf("markitdown image not available in %s: %w", rt.Name(), err)
	}
	m.runtime = rt
	return rt, nil
}

func (m *Markitdown) Paragraphs(ctx context.Context, path string) ([]types.Paragraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	rt, err := m.resolve(ctx)
	if err != nil {
		return nil, fmt.Errorf("converting %s: %w", path, err)
	}

	var out bytes.Buffer
	if err := rt.Run(ctx, m.image, f, &out); err != nil {
		return nil, fmt.Errorf("converting %s with markitdown: %w", path, err)
	}
	if out.Len() == 0 {
		return nil, fmt.Errorf("markitdown produced empty output for %s", path)
	}
	return SplitMarkdown(out.String()), nil
}
