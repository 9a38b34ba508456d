// Package crawl — listing page queue.
// Special:AllPages pages are identified by the title they start from, so the
// same page reached through /wiki/Special:AllPages/X, ?from=X or an
// index.php URL is fetched once. A wiki whose nav links point backwards
// therefore ends the walk instead of looping.
package crawl

import "net/url"

// PageQueue is a FIFO of listing page URLs, deduplicated by page key.
type PageQueue struct {
	pending []string
	seen    map[string]struct{}
}

// NewPageQueue creates an empty PageQueue.
func NewPageQueue() *PageQueue {
	return &PageQueue{seen: make(map[string]struct{})}
}

// Push enqueues pageURL unless a page with the same key was already queued.
// It reports whether the URL was added.
func (q *PageQueue) Push(pageURL string) bool {
	key := pageKey(pageURL)
	if _, ok := q.seen[key]; ok {
		return false
	}
	q.seen[key] = struct{}{}
	q.pending = append(q.pending, NormalizeURL(pageURL))
	return true
}

// Pop returns the oldest pending URL.
func (q *PageQueue) Pop() (string, bool) {
	if len(q.pending) == 0 {
		return "", false
	}
	next := q.pending[0]
	q.pending = q.pending[1:]
	return next, true
}

// Seen returns how many distinct listing pages were queued.
func (q *PageQueue) Seen() int {
	return len(q.seen)
}

// pageKey is host plus starting title. Unparseable URLs key on themselves.
func pageKey(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		return pageURL
	}
	return u.Host + "|" + fromTitle(u)
}
