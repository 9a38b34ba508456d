// Package render — Markdown renderer.
// The Markdown body comes from the parse API HTML (extract → normalize),
// so this renderer only prepends the article title.
package render

import (
	"context"
	"errors"
	"strings"

	"github.com/gaurav-prasanna/wikiplain/core"
)

// ErrNoMarkdown is returned when a Document reaches the Markdown renderer
// without having gone through the parsed-HTML path.
var ErrNoMarkdown = errors.New("document has no markdown body")

// MarkdownRenderer writes "# Title" followed by the normalized Markdown.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render returns the titled Markdown document.
func (r *MarkdownRenderer) Render(_ context.Context, doc core.Document) ([]byte, error) {
	if doc.Markdown == "" {
		return nil, ErrNoMarkdown
	}
	var b strings.Builder
	if doc.Metadata.Title != "" {
		b.WriteString("# ")
		b.WriteString(doc.Metadata.Title)
		b.WriteString("\n\n")
	}
	b.WriteString(doc.Markdown)
	b.WriteString("\n")
	return []byte(b.String()), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

// NeedsMarkdown reports whether r consumes Document.Markdown, i.e. whether
// the pipeline must fetch parsed HTML instead of wikitext.
func NeedsMarkdown(r core.Renderer) bool {
	_, ok := r.(*MarkdownRenderer)
	return ok
}
