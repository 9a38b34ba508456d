// Package batch runs wiki links through the conversion pipeline:
// ref → fetch → convert → render, for one article or many concurrently.
package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/gaurav-prasanna/wikiplain/core"
	"github.com/gaurav-prasanna/wikiplain/core/extract"
	"github.com/gaurav-prasanna/wikiplain/core/fetch"
	"github.com/gaurav-prasanna/wikiplain/core/render"
	"github.com/gaurav-prasanna/wikiplain/core/wikitext"
)

// Source is what the pipeline fetches from.
type Source interface {
	core.ArticleFetcher
	core.ParsedFetcher
}

// Pipeline converts a single article link into rendered output.
// It is safe for concurrent use.
type Pipeline struct {
	source     Source
	extractor  core.Extractor
	normalizer core.Normalizer
	renderer   core.Renderer

	// Reference stripping depends on the edition, so one converter per mode.
	stripping *wikitext.Converter
	keeping   *wikitext.Converter

	now func() time.Time
}

// NewPipeline creates a Pipeline. cfg.StripReferencesSection is ignored;
// it is decided per article from the link's host.
func NewPipeline(source Source, extractor core.Extractor, normalizer core.Normalizer, renderer core.Renderer, cfg wikitext.Config) *Pipeline {
	strip, keep := cfg, cfg
	strip.StripReferencesSection = true
	keep.StripReferencesSection = false
	return &Pipeline{
		source:     source,
		extractor:  extractor,
		normalizer: normalizer,
		renderer:   renderer,
		stripping:  wikitext.NewConverter(strip),
		keeping:    wikitext.NewConverter(keep),
		now:        time.Now,
	}
}

// Renderer returns the output renderer.
func (p *Pipeline) Renderer() core.Renderer {
	return p.renderer
}

// Result is one processed article.
type Result struct {
	Ref      core.ArticleRef
	Document core.Document
	Data     []byte
	Warnings []*wikitext.ParseError
}

// Process runs a single link through the full pipeline.
func (p *Pipeline) Process(ctx context.Context, link string) (*Result, error) {
	ref, err := fetch.ArticleRefFromURL(link)
	if err != nil {
		return nil, fmt.Errorf("ref: %w", err)
	}

	var res *Result
	if render.NeedsMarkdown(p.renderer) {
		res, err = p.markdown(ctx, ref)
	} else {
		res, err = p.plaintext(ctx, ref)
	}
	if err != nil {
		return nil, err
	}

	data, err := p.renderer.Render(ctx, res.Document)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	res.Data = data
	return res, nil
}

// plaintext fetches wikitext and converts it.
func (p *Pipeline) plaintext(ctx context.Context, ref core.ArticleRef) (*Result, error) {
	raw, err := p.source.FetchArticle(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	conv := p.keeping
	if ref.IsDefaultEdition() {
		conv = p.stripping
	}
	converted, err := conv.Convert(raw.Markup)
	if err != nil {
		return nil, fmt.Errorf("convert: %w", err)
	}

	sections := make([]core.Section, len(converted.Sections))
	for i, s := range converted.Sections {
		sections[i] = core.Section{Heading: s.Heading, Level: s.Level, Text: s.Text}
	}
	return &Result{
		Ref: ref,
		Document: core.Document{
			Metadata: p.metadata(ref, raw.Title),
			Text:     converted.Text,
			Sections: sections,
		},
		Warnings: converted.Warnings,
	}, nil
}

// markdown fetches rendered HTML and normalizes it.
func (p *Pipeline) markdown(ctx context.Context, ref core.ArticleRef) (*Result, error) {
	parsed, err := p.source.FetchParsedHTML(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	content, err := p.extractor.Extract(parsed.HTML)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	md, err := p.normalizer.Normalize(content, fetch.ArticleURL(ref))
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	return &Result{
		Ref: ref,
		Document: core.Document{
			Metadata: p.metadata(ref, extract.TitleText(parsed.Title)),
			Markdown: md,
		},
	}, nil
}

func (p *Pipeline) metadata(ref core.ArticleRef, title string) core.ArticleMetadata {
	if title == "" {
		title = ref.Title
	}
	return core.ArticleMetadata{
		URL:       fetch.ArticleURL(ref),
		Host:      ref.Host,
		Title:     title,
		Language:  ref.Language(),
		FetchedAt: p.now().UTC().Format(time.RFC3339),
	}
}
