// Package render — PDF renderer.
// Lays out the converted article with gofpdf: title, source line, then
// each section as a heading followed by its paragraphs.
// The core fonts cover Latin-1 only; set FontPath to a UTF-8 TrueType font
// for other scripts.
package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/wikiplain/core"
)

const utf8Family = "article"

// PDFRenderer renders an article as a PDF document.
type PDFRenderer struct {
	FontPath string
}

// NewPDFRenderer creates a PDFRenderer. An empty fontPath selects Helvetica.
func NewPDFRenderer(fontPath string) *PDFRenderer {
	return &PDFRenderer{FontPath: fontPath}
}

// pdfWriter pairs a document with its font family and text translation.
type pdfWriter struct {
	pdf    *gofpdf.Fpdf
	family string
	bold   string // style for headings; UTF-8 fonts are registered regular only
	tr     func(string) string
}

// Render converts the document into PDF bytes.
func (r *PDFRenderer) Render(_ context.Context, doc core.Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)

	w := &pdfWriter{pdf: pdf, family: "Helvetica", bold: "B"}
	if r.FontPath != "" {
		pdf.AddUTF8Font(utf8Family, "", r.FontPath)
		w.family, w.bold = utf8Family, ""
		w.tr = func(s string) string { return s }
	} else {
		w.tr = pdf.UnicodeTranslatorFromDescriptor("")
	}
	pdf.AddPage()

	if doc.Metadata.Title != "" {
		pdf.SetFont(w.family, w.bold, 18)
		pdf.MultiCell(0, 8, w.tr(doc.Metadata.Title), "", "L", false)
		pdf.Ln(4)
	}

	if doc.Metadata.URL != "" {
		pdf.SetFont(w.family, "", 9)
		pdf.SetTextColor(100, 100, 100)
		pdf.MultiCell(0, 5, w.tr("Source: "+doc.Metadata.URL), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(6)
	}

	if len(doc.Sections) == 0 {
		w.paragraphs(doc.Text)
	}
	for _, s := range doc.Sections {
		if s.Heading != "" {
			w.heading(s.Heading, s.Level)
		}
		w.paragraphs(s.Text)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

// heading sets the font size based on section level and writes text.
func (w *pdfWriter) heading(text string, level int) {
	sizes := map[int]float64{2: 15, 3: 13, 4: 12}
	size, ok := sizes[level]
	if !ok {
		size = 11
	}
	w.pdf.Ln(4)
	w.pdf.SetFont(w.family, w.bold, size)
	w.pdf.MultiCell(0, size*0.6, w.tr(text), "", "L", false)
	w.pdf.Ln(2)
}

func (w *pdfWriter) paragraphs(text string) {
	w.pdf.SetFont(w.family, "", 10)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			w.pdf.Ln(3)
			continue
		}
		w.pdf.MultiCell(0, 5, w.tr(line), "", "L", false)
	}
}
