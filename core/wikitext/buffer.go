// Package wikitext converts MediaWiki markup into plaintext.
//
// The conversion is a three stage pipeline over one document:
//
//	Preprocess -> Tokenize -> Render
//
// Preprocess strips citations, templates and the trailing references
// section and produces a sentinel-terminated Buffer. The Tokenizer walks the
// buffer once with a forward cursor and emits typed Tokens that point back
// into it. The Renderer turns the token stream into text.
//
// Every stage is pure. Independent documents may be converted concurrently.
package wikitext

// Sentinel terminates every Buffer. It is not a valid Unicode scalar value,
// so it can never collide with input text.
const Sentinel rune = -1

// Buffer is an immutable, index-addressable rune sequence whose last element
// is always Sentinel.
type Buffer struct {
	runes []rune
}

// NewBuffer builds a buffer from already-extracted body text.
func NewBuffer(body string) Buffer {
	runes := make([]rune, 0, len(body)+1)
	for _, r := range body {
		runes = append(runes, r)
	}
	return Buffer{runes: append(runes, Sentinel)}
}

// Len returns the number of elements including the sentinel.
func (b Buffer) Len() int {
	return len(b.runes)
}

// End is the offset of the sentinel.
func (b Buffer) End() int {
	return len(b.runes) - 1
}

// At returns the rune at i, or Sentinel when i is out of range.
func (b Buffer) At(i int) rune {
	if i < 0 || i >= len(b.runes) {
		return Sentinel
	}
	return b.runes[i]
}

// Slice returns the text of [start, start+length), clamped to the body.
func (b Buffer) Slice(start, length int) string {
	end := start + length
	if start < 0 {
		start = 0
	}
	if end > b.End() {
		end = b.End()
	}
	if start >= end {
		return ""
	}
	return string(b.runes[start:end])
}

// Body returns the buffer text without the sentinel.
func (b Buffer) Body() string {
	if len(b.runes) == 0 {
		return ""
	}
	return string(b.runes[:b.End()])
}
