// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/rulecheck/pkg/types"
)

const (
	docxBodyPart = "word/document.xml"
	wordNS       = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
)

// Docx reads Office Open XML documents. Only paragraphs that are direct
// children of the document body are yielded, so table cell text is not
// included. Empty paragraphs are kept.
type Docx struct{}

func (Docx) Paragraphs(_ context.Context, path string) ([]types.Paragraph, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening docx %s: %w", path, err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != docxBodyPart {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening %s in %s: %w", docxBodyPart, path, err)
		}
		defer rc.Close()
		paragraphs, err := parseBody(rc)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		return paragraphs, nil
	}
	return nil, fmt.Errorf("docx %s has no %s", path, docxBodyPart)
}

// parseBody walks word/document.xml. Text comes from w:t inside runs;
// w:tab becomes a tab and w:br or w:cr a newline.
func parseBody(r io.Reader) ([]types.Paragraph, error) {
	dec := xml.NewDecoder(r)

	var (
		paragraphs []types.Paragraph
		stack      []xml.Name
		buf        strings.Builder
		paraDepth  = -1
		inText     bool
	)

	parentIs := func(local string) bool {
		if len(stack) == 0 {
			return false
		}
		top := stack[len(stack)-1]
		return top.Space == wordNS && top.Local == local
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch el := tok.(type) {
		case xml.StartElement:
			if el.Name.Space == wordNS {
				switch {
				case el.Name.Local == "p" && paraDepth < 0 && parentIs("body"):
					paraDepth = len(stack)
					buf.Reset()
				case paraDepth >= 0 && parentIs("r"):
					switch el.Name.Local {
					case "t":
						inText = true
					case "tab":
						buf.WriteByte('\t')
					case "br", "cr":
						buf.WriteByte('\n')
					}
				}
			}
			stack = append(stack, el.Name)

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			if el.Name.Space != wordNS {
				continue
			}
			switch {
			case el.Name.Local == "t":
				inText = false
			case el.Name.Local == "p" && len(stack) == paraDepth:
				paragraphs = append(paragraphs, types.Paragraph{Text: buf.String()})
				paraDepth = -1
			}

		case xml.CharData:
			if inText {
				buf.Write(el)
			}
		}
	}
	return paragraphs, nil
}
