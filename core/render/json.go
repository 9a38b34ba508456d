// Package render — JSON renderer.
// Builds the structured JSON output from the converted article: metadata,
// plaintext, the section outline, and per-section word chunks.
package render

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gaurav-prasanna/wikiplain/core"
	"github.com/gaurav-prasanna/wikiplain/core/chunk"
)

// JSONRenderer produces structured JSON output.
type JSONRenderer struct {
	chunker *chunk.Chunker
}

// NewJSONRenderer creates a JSONRenderer. chunkSize <= 0 uses the chunk
// package default.
func NewJSONRenderer(chunkSize int) *JSONRenderer {
	return &JSONRenderer{chunker: chunk.New(chunkSize)}
}

// Render converts the document into indented ArticleJSON.
func (r *JSONRenderer) Render(_ context.Context, doc core.Document) ([]byte, error) {
	sections := doc.Sections
	if sections == nil {
		sections = []core.Section{}
	}
	article := core.ArticleJSON{
		Metadata:  doc.Metadata,
		Text:      doc.Text,
		Sections:  sections,
		Chunks:    r.chunker.Document(doc),
		WordCount: chunk.WordCount(doc.Text),
	}

	data, err := json.MarshalIndent(article, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}
