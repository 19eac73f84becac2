// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/rulecheck/pkg/types"
)

// Markdown reads markdown and plain text. A leading YAML frontmatter block
// is dropped; the rest is split into paragraphs on blank lines.
type Markdown struct{}

func (Markdown) Paragraphs(_ context.Context, path string) ([]types.Paragraph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return SplitMarkdown(string(data)), nil
}

// SplitMarkdown drops frontmatter and returns the blank-line separated
// blocks of content. Lines inside a block are joined with "\n".
func SplitMarkdown(content string) []types.Paragraph {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimPrefix(content, "\ufeff")
	content = stripFrontmatter(content)

	var (
		paragraphs []types.Paragraph
		block      []string
	)
	flush := func() {
		if len(block) > 0 {
			paragraphs = append(paragraphs, types.Paragraph{Text: strings.Join(block, "\n")})
			block = block[:0]
		}
	}
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		block = append(block, strings.TrimRight(line, " \t"))
	}
	flush()
	return paragraphs
}

// stripFrontmatter removes a "---" delimited header when it parses as a
// YAML mapping. Anything else is left in place as body text.
func stripFrontmatter(content string) string {
	if !strings.HasPrefix(content, "---\n") {
		return content
	}
	rest := content[len("---\n"):]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return content
	}
	after := rest[end+len("\n---"):]
	if after != "" && after[0] != '\n' {
		return content
	}

	var fm map[string]any
	if err := yaml.Unmarshal([]byte(rest[:end]), &fm); err != nil {
		return content
	}
	return strings.TrimPrefix(after, "\n")
}
