// Package wikitext — preprocessor.
// Removes structure the tokenizer must never see: citations, the trailing
// references section and {{...}} templates. It also locates the body start
// inside the JSON-string encoded API payload.
package wikitext

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	// refSpan matches <ref>...</ref> and <ref name=...>...</ref>, non-greedy.
	refSpan = regexp.MustCompile(`(?s)<ref(?:\s[^>]*[^/])?>.*?</ref>`)
	// refSelfClosing matches <ref name=... />.
	refSelfClosing = regexp.MustCompile(`<ref\s[^>]*/>`)
	// referencesSection matches a references heading of any level and
	// everything after it. The full equals run is consumed on both sides.
	referencesSection = regexp.MustCompile(`(?s)={2,}\s*References\s*={2,}.*`)
)

// Preprocess reduces raw API markup to a sentinel-terminated Buffer.
//
// The raw text is expected in the upstream encoding: a JSON string literal,
// so the body starts after the first '"' and the closing quote is dropped.
// When no quote exists the whole input is used as body and an
// EncodingAssumptionViolated warning is returned.
func Preprocess(raw string, stripReferences bool) (Buffer, []*ParseError) {
	var warnings []*ParseError

	text := refSpan.ReplaceAllString(raw, "")
	text = refSelfClosing.ReplaceAllString(text, "")
	if stripReferences {
		text = referencesSection.ReplaceAllString(text, "")
		// Keep the closing quote so the trailing trim below drops it, not text.
		if strings.HasSuffix(raw, `"`) && !strings.HasSuffix(text, `"`) {
			text += `"`
		}
	}
	text = RemoveTemplates(text)

	body := text
	if idx := strings.IndexByte(text, '"'); idx >= 0 {
		body = text[idx+1:]
	} else {
		warnings = append(warnings, &ParseError{
			Kind:      EncodingAssumptionViolated,
			Offset:    0,
			Construct: "body",
			Detail:    "no opening quote, using whole input",
		})
	}

	runes := []rune(body)
	if len(runes) > 0 {
		runes = runes[:len(runes)-1]
	}
	return Buffer{runes: append(runes, Sentinel)}, warnings
}

// RemoveTemplates drops every {{...}} span using a depth counter over
// "{{" / "}}" pairs. Text at depth zero passes through unchanged. A stray
// "}}" at depth zero is consumed without effect.
func RemoveTemplates(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	depth := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '{' && i+1 < len(s) && s[i+1] == '{':
			depth++
			i++
		case c == '}' && i+1 < len(s) && s[i+1] == '}':
			if depth > 0 {
				depth--
			}
			i++
		case depth == 0:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// EncodeBody wraps plain wikitext into the JSON string encoding that
// Preprocess expects from the API collaborator.
func EncodeBody(markup string) string {
	var b strings.Builder
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(markup)
	return strings.TrimSuffix(b.String(), "\n")
}
