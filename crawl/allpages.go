// Package crawl harvests article links from a wiki edition.
// It walks the paginated Special:AllPages listing, writing each page's
// article links to a <lang>_<n>.links file, keeping crawling logic
// separate from the conversion pipeline.
package crawl

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/wikiplain/core"
)

// DefaultMaxPages bounds a harvest. Large editions list a few hundred
// titles per page.
const DefaultMaxPages = 10000

// Listing is one parsed Special:AllPages page.
type Listing struct {
	Links []string // absolute article URLs, redirects excluded
	Next  string   // absolute URL of the following page, "" on the last
}

// HarvestStats summarizes a harvest.
type HarvestStats struct {
	Batches int
	Links   int
	Files   []string
}

// Harvester walks Special:AllPages listings.
type Harvester struct {
	fetcher  core.Fetcher
	log      *slog.Logger
	MaxPages int
}

// NewHarvester creates a Harvester.
func NewHarvester(fetcher core.Fetcher, log *slog.Logger) *Harvester {
	return &Harvester{fetcher: fetcher, log: log, MaxPages: DefaultMaxPages}
}

// Harvest follows the listing from startURL and writes one links file per
// page into dir. It stops when a page has no unvisited next page.
func (h *Harvester) Harvest(ctx context.Context, startURL, lang, dir string) (*HarvestStats, error) {
	start, err := url.Parse(startURL)
	if err != nil || start.Host == "" {
		return nil, fmt.Errorf("invalid start URL %q", startURL)
	}

	queue := NewPageQueue()
	queue.Push(startURL)
	stats := &HarvestStats{}

	for stats.Batches < h.MaxPages {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		pageURL, ok := queue.Pop()
		if !ok {
			break
		}

		result, err := h.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			return stats, fmt.Errorf("fetching listing %s: %w", pageURL, err)
		}
		listing, err := ParseListing(result.HTML, pageURL)
		if err != nil {
			return stats, fmt.Errorf("parsing listing %s: %w", pageURL, err)
		}

		stats.Batches++
		h.log.Debug("listing page", "batch", stats.Batches, "links", len(listing.Links), "next", listing.Next)

		var links []string
		for _, link := range listing.Links {
			if IsSameDomain(link, start.Host) {
				links = append(links, link)
			}
		}
		if len(links) > 0 {
			name := filepath.Join(dir, fmt.Sprintf("%s_%d.links", lang, stats.Batches))
			if err := writeLinks(name, links); err != nil {
				return stats, err
			}
			stats.Files = append(stats.Files, name)
			stats.Links += len(links)
		}

		if listing.Next != "" && !queue.Push(listing.Next) {
			h.log.Debug("pagination loop", "next", listing.Next)
		}
	}
	return stats, nil
}

// ParseListing extracts article links and the next-page link from a
// Special:AllPages page. Relative hrefs resolve against pageURL.
func ParseListing(html string, pageURL string) (*Listing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parsing page URL: %w", err)
	}

	listing := &Listing{}
	doc.Find("ul.mw-allpages-chunk li:not(.allpagesredirect) a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if resolved := resolveURL(href, base); resolved != "" {
			listing.Links = append(listing.Links, resolved)
		}
	})

	listing.Next = nextPage(doc, base)
	return listing, nil
}

// nextPage picks the navigation link whose "from" title sorts after the
// current page's. The nav bar also carries a "previous" link, and its
// label is localized, so the title order is what identifies "next".
func nextPage(doc *goquery.Document, base *url.URL) string {
	current := fromTitle(base)
	var best, bestFrom string

	doc.Find("div.mw-allpages-nav").First().Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		resolved := resolveURL(href, base)
		if resolved == "" {
			return
		}
		u, err := url.Parse(resolved)
		if err != nil {
			return
		}
		from := fromTitle(u)
		if from <= current {
			return
		}
		if best == "" || from < bestFrom {
			best, bestFrom = resolved, from
		}
	})
	return best
}

// fromTitle returns the title a listing starts at: the "from" query
// parameter, or the subpage of a /wiki/Special:AllPages/<from> path.
func fromTitle(u *url.URL) string {
	if from := u.Query().Get("from"); from != "" {
		return from
	}
	i := strings.LastIndex(u.Path, "/")
	if i <= 0 {
		return ""
	}
	if parent := u.Path[:i]; strings.Contains(parent[strings.LastIndex(parent, "/")+1:], ":") {
		return u.Path[i+1:]
	}
	return ""
}

// resolveURL resolves a potentially relative URL against a base.
func resolveURL(href string, base *url.URL) string {
	if href == "" || strings.HasPrefix(href, "#") {
		return ""
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}

	resolved := base.ResolveReference(parsed)
	resolved.Fragment = ""
	return resolved.String()
}

func writeLinks(name string, links []string) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("creating %s: %w", name, err)
	}
	w := bufio.NewWriter(f)
	for _, link := range links {
		w.WriteString(link)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return f.Close()
}
