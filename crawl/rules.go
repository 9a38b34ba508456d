// Package crawl — start pages and URL rules.
// Provides the Special:AllPages entry point per edition and helpers to
// filter and normalize harvested URLs.
package crawl

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// startURLs maps an edition language to its Special:AllPages listing.
// The Assamese entry starts at the first letter of its script, as the
// listing otherwise begins with Latin titles.
var startURLs = map[string]string{
	"as": "https://as.wikipedia.org/wiki/%E0%A6%AC%E0%A6%BF%E0%A6%B6%E0%A7%87%E0%A6%B7:%E0%A6%B8%E0%A6%95%E0%A6%B2%E0%A7%8B%E0%A6%AC%E0%A7%8B%E0%A7%B0_%E0%A6%AA%E0%A7%83%E0%A6%B7%E0%A7%8D%E0%A6%A0%E0%A6%BE/%E0%A6%85",
	"bn": allPagesURL("bn"),
	"hi": allPagesURL("hi"),
	"bh": allPagesURL("bh"),
	"ne": allPagesURL("ne"),
	"or": allPagesURL("or"),
	"te": allPagesURL("te"),
	"gu": allPagesURL("gu"),
	"kn": allPagesURL("kn"),
	"mr": allPagesURL("mr"),
	"pi": allPagesURL("pi"),
	"sa": allPagesURL("sa"),
	"ta": allPagesURL("ta"),
	"pa": allPagesURL("pa"),
}

// allPagesURL uses the canonical special page name, which every edition
// accepts regardless of its localized alias.
func allPagesURL(lang string) string {
	return fmt.Sprintf("https://%s.wikipedia.org/wiki/Special:AllPages", lang)
}

// StartURL returns the Special:AllPages URL for lang.
func StartURL(lang string) (string, error) {
	u, ok := startURLs[lang]
	if !ok {
		return "", fmt.Errorf("unsupported language %q (supported: %s)", lang, strings.Join(Languages(), ", "))
	}
	return u, nil
}

// Languages returns the supported edition languages, sorted.
func Languages() []string {
	langs := make([]string, 0, len(startURLs))
	for l := range startURLs {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	return langs
}

// IsSameDomain checks if the given URL belongs to the specified domain.
func IsSameDomain(rawURL string, domain string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return parsed.Host == domain
}

// NormalizeURL strips fragments and trailing slashes for deduplication.
func NormalizeURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	parsed.Fragment = ""

	// Remove trailing slash (but keep root "/").
	if parsed.Path != "/" {
		parsed.Path = strings.TrimSuffix(parsed.Path, "/")
	}

	return parsed.String()
}
