// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/net/html"

	"github.com/pdiddy/rulecheck/pkg/types"
)

var blockElements = map[string]bool{
	"p": true, "li": true, "dt": true, "dd": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"td": true, "th": true, "caption": true, "pre": true, "blockquote": true,
}

var skippedElements = map[string]bool{
	"script": true, "style": true, "noscript": true, "template": true,
}

// HTML reads HTML documents. Each block element yields one paragraph from
// the text it holds outside nested blocks; nested blocks yield their own.
// Whitespace is collapsed except inside pre.
type HTML struct{}

func (HTML) Paragraphs(_ context.Context, path string) ([]types.Paragraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	doc, err := html.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing html %s: %w", path, err)
	}
	return htmlParagraphs(doc), nil
}

func htmlParagraphs(root *html.Node) []types.Paragraph {
	var paragraphs []types.Paragraph

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if skippedElements[n.Data] {
				return
			}
			if blockElements[n.Data] {
				var b strings.Builder
				ownText(n, &b)
				text := b.String()
				if n.Data == "pre" {
					text = strings.Trim(text, "\n")
				} else {
					text = strings.Join(strings.Fields(text), " ")
				}
				if strings.TrimSpace(text) != "" {
					paragraphs = append(paragraphs, types.Paragraph{Text: text})
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return paragraphs
}

// ownText appends the text under n, stopping at nested block elements.
func ownText(n *html.Node, b *strings.Builder) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			b.WriteString(c.Data)
		case html.ElementNode:
			if blockElements[c.Data] || skippedElements[c.Data] {
				b.WriteByte(' ')
				continue
			}
			if c.Data == "br" {
				b.WriteByte('\n')
				continue
			}
			ownText(c, b)
		}
	}
}
