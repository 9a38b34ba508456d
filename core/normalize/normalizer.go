// Package normalize implements the Normalizer interface.
// It turns the extracted parse output of an article into Markdown, the body
// of the markdown output format. Before conversion, wiki-relative links and
// images are made absolute against the article URL, links to pages that do
// not exist yet (red links) become plain text, and in-page anchors lose
// their link markup.
package normalize

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
)

// blankRuns collapses the empty lines left behind by removed wiki chrome.
var blankRuns = regexp.MustCompile(`\n{3,}`)

// MarkdownNormalizer converts article HTML to Markdown using html-to-markdown.
type MarkdownNormalizer struct{}

// New creates a MarkdownNormalizer.
func New() *MarkdownNormalizer {
	return &MarkdownNormalizer{}
}

// Normalize converts a cleaned HTML fragment into Markdown. Relative hrefs
// and srcs resolve against baseURL; an empty baseURL leaves them as is.
func (n *MarkdownNormalizer) Normalize(html, baseURL string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}
	prepared, err := rewriteLinks(html, baseURL)
	if err != nil {
		return "", err
	}
	markdown, err := htmltomarkdown.ConvertString(prepared)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	markdown = blankRuns.ReplaceAllString(markdown, "\n\n")
	return strings.TrimSpace(markdown), nil
}

func rewriteLinks(html, baseURL string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	// Red links and same-page anchors keep their text only.
	doc.Find(`a.new, a[href^="#"]`).Each(func(_ int, s *goquery.Selection) {
		s.ReplaceWithSelection(s.Contents())
	})

	var base *url.URL
	if baseURL != "" {
		if base, err = url.Parse(baseURL); err != nil {
			return "", fmt.Errorf("parsing base URL: %w", err)
		}
	}
	if base != nil {
		resolve := func(attr string) func(int, *goquery.Selection) {
			return func(_ int, s *goquery.Selection) {
				v, _ := s.Attr(attr)
				ref, err := url.Parse(v)
				if err != nil {
					return
				}
				s.SetAttr(attr, base.ResolveReference(ref).String())
			}
		}
		doc.Find("a[href]").Each(resolve("href"))
		doc.Find("img[src]").Each(resolve("src"))
	}

	return doc.Find("body").Html()
}
