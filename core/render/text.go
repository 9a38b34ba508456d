// Package render provides output renderers for the wikiplain pipeline.
// This file implements the plaintext renderer, the default format.
package render

import (
	"context"

	"github.com/gaurav-prasanna/wikiplain/core"
)

// TextRenderer writes the converted plaintext as-is.
type TextRenderer struct{}

// NewTextRenderer creates a TextRenderer.
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{}
}

// Render returns the plaintext followed by a newline.
func (r *TextRenderer) Render(_ context.Context, doc core.Document) ([]byte, error) {
	if doc.Text == "" {
		return nil, nil
	}
	return []byte(doc.Text + "\n"), nil
}

// Extension returns the file extension for plaintext output.
func (r *TextRenderer) Extension() string {
	return ".txt"
}
