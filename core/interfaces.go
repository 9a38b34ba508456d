// Package core defines the pipeline interfaces for wikiplain.
// Each stage of the pipeline is a clean, testable interface.
package core

import (
	"context"
	"strings"
)

// ArticleRef identifies one article on one wiki edition.
type ArticleRef struct {
	Scheme string // "https" unless the link said otherwise
	Host   string // e.g. "en.wikipedia.org"
	Title  string // decoded page title, e.g. "Ada_Lovelace"
}

// IsDefaultEdition reports whether the ref points at the default-language
// (English) edition, the only one whose references section is stripped.
func (r ArticleRef) IsDefaultEdition() bool {
	return strings.Contains(r.Host, "en.wiki")
}

// Language returns the edition language code taken from the host.
func (r ArticleRef) Language() string {
	lang, _, found := strings.Cut(r.Host, ".")
	if !found {
		return ""
	}
	return lang
}

// FetchResult holds the raw HTML and response metadata from a page fetch.
type FetchResult struct {
	URL        string
	StatusCode int
	HTML       string
}

// RawArticle is the wikitext of one article in the API's JSON string
// encoding, the form the wikitext preprocessor expects.
type RawArticle struct {
	Ref    ArticleRef
	Title  string
	Markup string
}

// ParsedArticle is the server-rendered HTML of one article.
type ParsedArticle struct {
	Ref   ArticleRef
	Title string
	HTML  string
}

// ArticleMetadata describes a converted article.
type ArticleMetadata struct {
	URL       string `json:"url"`
	Host      string `json:"host"`
	Title     string `json:"title"`
	Language  string `json:"language"`
	FetchedAt string `json:"fetched_at"` // ISO8601
}

// Section is a heading-delimited part of an article.
type Section struct {
	Heading string `json:"heading"`
	Level   int    `json:"level"`
	Text    string `json:"text"`
}

// Document is everything a Renderer may draw from.
type Document struct {
	Metadata ArticleMetadata
	Text     string
	Markdown string // set only when the Markdown path ran
	Sections []Section
}

// ArticleJSON is the complete JSON output for a single article.
type ArticleJSON struct {
	Metadata  ArticleMetadata `json:"metadata"`
	Text      string          `json:"text"`
	Sections  []Section       `json:"sections"`
	Chunks    []string        `json:"chunks,omitempty"`
	WordCount int             `json:"word_count"`
}

// Fetcher retrieves raw HTML from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// ArticleFetcher retrieves article wikitext from a wiki API.
type ArticleFetcher interface {
	FetchArticle(ctx context.Context, ref ArticleRef) (*RawArticle, error)
}

// ParsedFetcher retrieves server-rendered article HTML from a wiki API.
type ParsedFetcher interface {
	FetchParsedHTML(ctx context.Context, ref ArticleRef) (*ParsedArticle, error)
}

// Extractor pulls the main content from article HTML, stripping noise.
type Extractor interface {
	Extract(html string) (string, error)
}

// Normalizer converts cleaned HTML into Markdown. baseURL is the page the
// HTML came from, used to resolve relative links.
type Normalizer interface {
	Normalize(html, baseURL string) (string, error)
}

// Renderer converts a Document into a final output format.
type Renderer interface {
	Render(ctx context.Context, doc Document) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".txt", ".pdf").
	Extension() string
}

// Embedder generates a vector embedding for a text input.
type Embedder interface {
	Embed(ctx context.Context, text string, model string) ([]float64, error)
}
