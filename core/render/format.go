// Package render — output format selection.
package render

import (
	"fmt"

	"github.com/gaurav-prasanna/wikiplain/core"
)

// Format names an output format.
type Format string

const (
	FormatText       Format = "text"
	FormatMarkdown   Format = "markdown"
	FormatJSON       Format = "json"
	FormatPDF        Format = "pdf"
	FormatEmbeddings Format = "embeddings"
)

// Formats lists every supported format in help order.
var Formats = []Format{FormatText, FormatMarkdown, FormatJSON, FormatPDF, FormatEmbeddings}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (want one of %v)", s, Formats)
}

// Options carries the per-format settings.
type Options struct {
	ChunkSize int
	Model     string // embeddings
	OllamaURL string // embeddings
	FontPath  string // pdf
}

// New creates the Renderer for f.
func New(f Format, opts Options) (core.Renderer, error) {
	switch f {
	case FormatText, "":
		return NewTextRenderer(), nil
	case FormatMarkdown:
		return NewMarkdownRenderer(), nil
	case FormatJSON:
		return NewJSONRenderer(opts.ChunkSize), nil
	case FormatPDF:
		return NewPDFRenderer(opts.FontPath), nil
	case FormatEmbeddings:
		if opts.Model == "" {
			return nil, fmt.Errorf("a model is required for the embeddings format")
		}
		return NewEmbeddingsRenderer(NewOllamaEmbedder(opts.OllamaURL), opts.Model, opts.ChunkSize), nil
	}
	return nil, fmt.Errorf("unknown format %q", f)
}
