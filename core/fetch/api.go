// Package fetch — MediaWiki API client.
// Article wikitext comes from action=query (revisions), rendered HTML from
// action=parse. Both use formatversion=2.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/gaurav-prasanna/wikiplain/core"
	"github.com/gaurav-prasanna/wikiplain/core/wikitext"
)

// ArticleRefFromURL derives the article reference from a wiki link such as
// https://en.wikipedia.org/wiki/Ada_Lovelace or .../w/index.php?title=Ada_Lovelace.
func ArticleRefFromURL(link string) (core.ArticleRef, error) {
	parsed, err := url.Parse(link)
	if err != nil {
		return core.ArticleRef{}, fmt.Errorf("parsing article URL: %w", err)
	}
	if parsed.Host == "" {
		return core.ArticleRef{}, fmt.Errorf("article URL %q has no host", link)
	}

	title := parsed.Query().Get("title")
	if title == "" {
		title = path.Base(parsed.Path)
		if unescaped, err := url.PathUnescape(title); err == nil {
			title = unescaped
		}
	}
	if title == "" || title == "/" || title == "." || strings.HasSuffix(parsed.Path, "/") {
		return core.ArticleRef{}, fmt.Errorf("article URL %q has no title", link)
	}

	scheme := parsed.Scheme
	if scheme == "" {
		scheme = "https"
	}
	return core.ArticleRef{Scheme: scheme, Host: parsed.Host, Title: title}, nil
}

// APIEndpoint returns the api.php URL of the ref's wiki.
func APIEndpoint(ref core.ArticleRef) string {
	scheme := ref.Scheme
	if scheme == "" {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/w/api.php", scheme, ref.Host)
}

// ArticleURL returns the canonical /wiki/ link of the ref.
func ArticleURL(ref core.ArticleRef) string {
	scheme := ref.Scheme
	if scheme == "" {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/wiki/%s", scheme, ref.Host, url.PathEscape(ref.Title))
}

// queryResponse is the subset of an action=query&prop=revisions response we use.
type queryResponse struct {
	Query struct {
		Pages []struct {
			Title     string `json:"title"`
			Missing   bool   `json:"missing"`
			Invalid   bool   `json:"invalid"`
			Revisions []struct {
				Slots struct {
					Main struct {
						Content string `json:"content"`
					} `json:"main"`
				} `json:"slots"`
			} `json:"revisions"`
		} `json:"pages"`
	} `json:"query"`
	Error *apiError `json:"error"`
}

// parseResponse is the subset of an action=parse response we use.
type parseResponse struct {
	Parse struct {
		Title        string `json:"title"`
		Text         string `json:"text"`
		DisplayTitle string `json:"displaytitle"`
	} `json:"parse"`
	Error *apiError `json:"error"`
}

type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

func (e *apiError) err(title string) error {
	if e.Code == "missingtitle" {
		return fmt.Errorf("%s: %w", title, ErrArticleNotFound)
	}
	return fmt.Errorf("api error %s: %s", e.Code, e.Info)
}

// FetchArticle retrieves the main-slot wikitext of ref. The content is
// returned re-encoded as a JSON string literal.
func (f *HTTPFetcher) FetchArticle(ctx context.Context, ref core.ArticleRef) (*core.RawArticle, error) {
	params := url.Values{
		"action":        {"query"},
		"format":        {"json"},
		"prop":          {"revisions"},
		"titles":        {ref.Title},
		"formatversion": {"2"},
		"rvprop":        {"content"},
		"rvslots":       {"*"},
	}
	body, _, err := f.get(ctx, APIEndpoint(ref)+"?"+params.Encode(), "application/json")
	if err != nil {
		return nil, err
	}

	var resp queryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding query response: %w", err)
	}
	if resp.Error != nil {
		return nil, resp.Error.err(ref.Title)
	}
	if len(resp.Query.Pages) == 0 {
		return nil, fmt.Errorf("%s: %w", ref.Title, ErrArticleNotFound)
	}
	page := resp.Query.Pages[0]
	if page.Missing || page.Invalid || len(page.Revisions) == 0 {
		return nil, fmt.Errorf("%s: %w", ref.Title, ErrArticleNotFound)
	}

	title := page.Title
	if title == "" {
		title = ref.Title
	}
	return &core.RawArticle{
		Ref:    ref,
		Title:  title,
		Markup: wikitext.EncodeBody(page.Revisions[0].Slots.Main.Content),
	}, nil
}

// FetchParsedHTML retrieves the rendered HTML of ref.
func (f *HTTPFetcher) FetchParsedHTML(ctx context.Context, ref core.ArticleRef) (*core.ParsedArticle, error) {
	params := url.Values{
		"action":        {"parse"},
		"format":        {"json"},
		"page":          {ref.Title},
		"prop":          {"text|displaytitle"},
		"formatversion": {"2"},
		"redirects":     {"1"},
	}
	body, _, err := f.get(ctx, APIEndpoint(ref)+"?"+params.Encode(), "application/json")
	if err != nil {
		return nil, err
	}

	var resp parseResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding parse response: %w", err)
	}
	if resp.Error != nil {
		return nil, resp.Error.err(ref.Title)
	}

	title := resp.Parse.DisplayTitle
	if title == "" {
		title = resp.Parse.Title
	}
	return &core.ParsedArticle{
		Ref:   ref,
		Title: title,
		HTML:  resp.Parse.Text,
	}, nil
}
