// Package extract implements the Extractor interface.
// It isolates the article body from MediaWiki parse output by:
//  1. Finding the content container (.mw-parser-output, or <body>)
//  2. Removing wiki chrome (edit links, references, infoboxes, navboxes, TOC)
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// noiseSelectors are elements removed before extraction.
// They hold no prose: templates, citations, navigation and media.
var noiseSelectors = []string{
	"script", "style", "noscript", "link", "meta",
	"img", "picture", "figure", "figcaption", "audio", "video",
	"table", ".infobox", ".navbox", ".vertical-navbox", ".sidebar",
	".mw-editsection", "sup.reference", ".reflist", "ol.references",
	".mw-references-wrap", "#toc", ".toc", ".hatnote", ".thumb",
	".metadata", ".mbox-small", ".ambox", ".noprint", ".mw-empty-elt",
	"#coordinates", ".shortdescription",
}

// HTMLExtractor strips wiki chrome and returns the article fragment.
type HTMLExtractor struct{}

// New creates an HTMLExtractor.
func New() *HTMLExtractor {
	return &HTMLExtractor{}
}

// Extract takes parse-API HTML and returns a cleaned fragment containing
// only article prose and headings.
func (e *HTMLExtractor) Extract(raw string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}

	// The parse API wraps the article in .mw-parser-output. Full pages
	// carry it under #mw-content-text.
	var content *goquery.Selection
	for _, sel := range []string{".mw-parser-output", "#mw-content-text", "body"} {
		found := doc.Find(sel)
		if found.Length() > 0 {
			content = found.First()
			break
		}
	}
	if content == nil {
		return "", fmt.Errorf("no content container found in HTML")
	}

	result, err := goquery.OuterHtml(content)
	if err != nil {
		return "", fmt.Errorf("serializing content: %w", err)
	}
	return result, nil
}

// TitleText reduces a displaytitle HTML fragment to its text, e.g.
// `<span class="mw-page-title-main">Ada</span>` becomes "Ada".
func TitleText(displayTitle string) string {
	z := html.NewTokenizer(strings.NewReader(displayTitle))
	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.TextToken:
			b.Write(z.Text())
		}
	}
}
