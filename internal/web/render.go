// SPDX-License-Identifier: MPL-2.0

package web

import (
	"bytes"
	"html/template"
	"io"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// highlightStyle is the chroma style of highlighted sources.
const highlightStyle = "github"

var (
	formatter = chromahtml.New(chromahtml.WithClasses(true))
	markdown  = goldmark.New(goldmark.WithExtensions(extension.GFM))
	sanitizer = bluemonday.UGCPolicy()
)

// Highlight renders SCSS source as classed HTML.
func Highlight(source string) (template.HTML, error) {
	lexer := lexers.Get("scss")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, source)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, styles.Get(highlightStyle), iterator); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil //nolint:gosec // chroma escapes token text
}

// WriteHighlightCSS writes the stylesheet of the highlight classes.
func WriteHighlightCSS(w io.Writer) error {
	return formatter.WriteCSS(w, styles.Get(highlightStyle))
}

// RenderMarkdown converts part documentation to sanitized HTML.
func RenderMarkdown(source []byte) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert(source, &buf); err != nil {
		return "", err
	}
	return template.HTML(sanitizer.SanitizeBytes(buf.Bytes())), nil //nolint:gosec // sanitized
}

// Selectors lists the selectors of qualified rules in compiled CSS, nested
// at-rules included, in order of first appearance.
func Selectors(compiled string) ([]string, error) {
	sheet, err := parser.Parse(compiled)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var out []string
	var walk func(rules []*css.Rule)
	walk = func(rules []*css.Rule) {
		for _, r := range rules {
			if r.Kind == css.QualifiedRule {
				for _, s := range r.Selectors {
					if !seen[s] {
						seen[s] = true
						out = append(out, s)
					}
				}
			}
			walk(r.Rules)
		}
	}
	walk(sheet.Rules)
	return out, nil
}
