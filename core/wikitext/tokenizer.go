// Package wikitext — tokenizer.
// A single forward cursor with single-character dispatch. Tokens are offsets
// into the Buffer, never copies. Every scan that needs a terminator is bounded
// by the sentinel and by the configured scan-step ceiling.
package wikitext

import (
	"strings"
	"unicode"
	"unicode/utf16"
)

const (
	// DefaultMaxScanSteps bounds each terminator-seeking scan.
	DefaultMaxScanSteps = 150000
	// DefaultMaxBraceDepth is the deepest {...} nesting the scanner skips.
	DefaultMaxBraceDepth = 3
)

// Tokenizer converts a Buffer into a Stream. It holds no per-document state
// and is safe for concurrent use.
type Tokenizer struct {
	maxSteps int
	maxDepth int
}

// NewTokenizer creates a Tokenizer with the limits from cfg.
func NewTokenizer(cfg Config) *Tokenizer {
	cfg = cfg.withDefaults()
	return &Tokenizer{
		maxSteps: cfg.MaxScanSteps,
		maxDepth: cfg.MaxBraceDepth,
	}
}

// Tokenize scans buf once and returns its tokens in increasing offset order.
func (t *Tokenizer) Tokenize(buf Buffer) (Stream, error) {
	s := scanner{buf: buf, maxSteps: t.maxSteps, maxDepth: t.maxDepth}

	var tokens Stream
	emit := func(tok Token) {
		if tok.Length > 0 {
			tokens = append(tokens, tok)
		}
	}

	bullet := false
	pos := 0
	end := buf.End()
	for pos < end {
		c := buf.At(pos)
		switch {
		case c == '{':
			next, err := s.skipBraces(pos)
			if err != nil {
				return nil, err
			}
			pos = next

		case c == '\'' && buf.At(pos+1) == '\'':
			tok, next, consumed, err := s.scanEmphasis(pos, bullet)
			if err != nil {
				return nil, err
			}
			if consumed {
				bullet = false
			}
			emit(tok)
			pos = next

		case c == '\'':
			emit(Token{Start: pos, Length: 1, Kind: PlainWord})
			pos++

		case c == '[':
			tok, next, err := s.scanLink(pos)
			if err != nil {
				return nil, err
			}
			emit(tok)
			pos = next

		case c == ' ':
			emit(Token{Start: pos, Length: 1, Kind: Space})
			pos++

		case c == '<':
			closeAt, err := s.find(pos+1, '>', pos, "html tag")
			if err != nil {
				return nil, err
			}
			pos = closeAt + 1

		case c == '=':
			tok, next, err := s.scanHeading(pos)
			if err != nil {
				return nil, err
			}
			emit(tok)
			pos = next

		case c == '\\':
			tok, next, err := s.scanEscape(pos)
			if err != nil {
				return nil, err
			}
			emit(tok)
			pos = next

		case c == '*':
			bullet = true
			pos++

		default:
			start := pos
			for !isTrigger(buf.At(pos)) {
				pos++
			}
			emit(Token{Start: start, Length: pos - start, Kind: PlainWord})
			if buf.At(pos) == Sentinel {
				return tokens, nil
			}
		}
	}
	return tokens, nil
}

// isTrigger reports whether r ends a PlainWord run.
func isTrigger(r rune) bool {
	switch r {
	case '<', '=', '{', '[', '\\', '*', ' ', '\'', Sentinel:
		return true
	}
	return false
}

// ClassifyEmphasis maps an apostrophe run onto a token kind. Two apostrophes
// are italic, three or more bold. A pending bullet turns the kind into its
// bullet variant and is reported as consumed.
func ClassifyEmphasis(apostrophes int, bullet bool) (kind Kind, consumed bool) {
	if apostrophes == 2 {
		if bullet {
			return BulletItalic, true
		}
		return Italic, false
	}
	if bullet {
		return BulletBold, true
	}
	return Bold, false
}

// scanner carries the read-only inputs of one Tokenize call.
type scanner struct {
	buf      Buffer
	maxSteps int
	maxDepth int
}

// find returns the offset of the first target at or after from.
// open is the offset of the construct being closed, used for errors.
func (s *scanner) find(from int, target rune, open int, construct string) (int, error) {
	steps := 0
	for i := from; ; i++ {
		steps++
		if steps > s.maxSteps {
			return 0, malformed(open, construct, "scan step ceiling exceeded")
		}
		switch s.buf.At(i) {
		case target:
			return i, nil
		case Sentinel:
			return 0, malformed(open, construct, "missing "+string(target))
		}
	}
}

// skipBraces skips a balanced {...} region starting at pos and returns the
// offset just past its closing brace.
func (s *scanner) skipBraces(pos int) (int, error) {
	depth := 0
	for i, steps := pos, 0; ; i++ {
		steps++
		if steps > s.maxSteps {
			return 0, malformed(pos, "braces", "scan step ceiling exceeded")
		}
		switch s.buf.At(i) {
		case '{':
			depth++
			if depth > s.maxDepth {
				return 0, &ParseError{
					Kind:      UnsupportedNestingDepth,
					Offset:    i,
					Construct: "braces",
					Detail:    "deeper than the configured maximum",
				}
			}
		case '}':
			depth--
			if depth == 0 {
				return i + 1, nil
			}
		case Sentinel:
			return 0, malformed(pos, "braces", "missing }")
		}
	}
}

// scanEmphasis reads ''...'' or '''...''' at pos. bullet is the pending
// list-item flag; consumed reports whether the returned token used it.
func (s *scanner) scanEmphasis(pos int, bullet bool) (tok Token, next int, consumed bool, err error) {
	n := 0
	for s.buf.At(pos+n) == '\'' {
		n++
	}
	start := pos + n
	closeAt, err := s.find(start, '\'', pos, "emphasis")
	if err != nil {
		return Token{}, 0, false, err
	}

	kind, consumed := ClassifyEmphasis(n, bullet)
	next = closeAt
	for k := 0; k < n && s.buf.At(next) == '\''; k++ {
		next++
	}
	return Token{Start: start, Length: closeAt - start, Kind: kind}, next, consumed, nil
}

// scanLink reads [[...]] or a single-bracket [...] span at pos. Plain
// internal links become WikiLink; piped or nested ones, and single-bracket
// spans, become PossibleLink with their target and display ranges.
func (s *scanner) scanLink(pos int) (Token, int, error) {
	if s.buf.At(pos+1) != '[' {
		return s.scanExternalLink(pos)
	}

	start := pos + 2
	depth := 0
	pipe := -1
	nested := false
	closeAt := -1
	for i, steps := start, 0; closeAt < 0; steps++ {
		if steps > s.maxSteps {
			return Token{}, 0, malformed(pos, "wikilink", "scan step ceiling exceeded")
		}
		c := s.buf.At(i)
		switch {
		case c == Sentinel:
			return Token{}, 0, malformed(pos, "wikilink", "missing ]]")
		case c == '[' && s.buf.At(i+1) == '[':
			nested = true
			depth++
			i += 2
		case c == ']' && s.buf.At(i+1) == ']':
			if depth == 0 {
				closeAt = i
				continue
			}
			depth--
			i += 2
		default:
			if c == '|' && depth == 0 && pipe < 0 {
				pipe = i
			}
			i++
		}
	}

	next := closeAt + 2
	if !nested && pipe < 0 {
		return Token{Start: start, Length: closeAt - start, Kind: WikiLink}, next, nil
	}

	tok := Token{
		Start:  start,
		Length: closeAt - start,
		Kind:   PossibleLink,
		Nested: nested,
		Target: Span{Start: start, Length: closeAt - start},
	}
	if pipe >= 0 {
		tok.Target = Span{Start: start, Length: pipe - start}
		tok.Display = Span{Start: pipe + 1, Length: closeAt - pipe - 1}
	}
	return tok, next, nil
}

// scanExternalLink reads [url label] at pos. Bracketed text that does not
// start with a URL is kept whole as both target and display.
func (s *scanner) scanExternalLink(pos int) (Token, int, error) {
	start := pos + 1
	closeAt, err := s.find(start, ']', pos, "external link")
	if err != nil {
		return Token{}, 0, err
	}

	whole := Span{Start: start, Length: closeAt - start}
	tok := Token{Start: start, Length: closeAt - start, Kind: PossibleLink, Target: whole, Display: whole}
	if hasURLScheme(s.buf.Slice(start, closeAt-start)) {
		tok.External = true
		tok.Display = Span{}
		for i := start; i < closeAt; i++ {
			if s.buf.At(i) == ' ' {
				tok.Target = Span{Start: start, Length: i - start}
				tok.Display = Span{Start: i + 1, Length: closeAt - i - 1}
				break
			}
		}
	}
	return tok, closeAt + 1, nil
}

var urlSchemes = []string{"http://", "https://", "//", "ftp://", "mailto:"}

func hasURLScheme(text string) bool {
	for _, prefix := range urlSchemes {
		if strings.HasPrefix(text, prefix) {
			return true
		}
	}
	return false
}

// scanHeading reads an equals run at pos. Runs of 2, 3 and 4 (or more, up to
// 6) become headings; a single '=' drops the text up to the next '='.
func (s *scanner) scanHeading(pos int) (Token, int, error) {
	n := 0
	for s.buf.At(pos+n) == '=' {
		n++
	}
	start := pos + n
	closeAt, err := s.find(start, '=', pos, "heading")
	if err != nil {
		return Token{}, 0, err
	}

	next := closeAt
	for k := 0; k < n && s.buf.At(next) == '='; k++ {
		next++
	}

	var kind Kind
	switch {
	case n == 2:
		kind = Title
	case n == 3:
		kind = Subtitle
	case n >= 4 && n <= 6:
		kind = Subsubtitle
	default:
		return Token{}, next, nil
	}
	return Token{Start: start, Length: closeAt - start, Kind: kind}, next, nil
}

// scanEscape handles a JSON escape at pos. \n is a line break, \t a space,
// \"...\" an inline quote, \\ and \/ their literal character and \uXXXX the
// decoded rune. Control characters and other escapes are dropped.
func (s *scanner) scanEscape(pos int) (Token, int, error) {
	switch s.buf.At(pos + 1) {
	case 'n':
		return Token{Start: pos, Length: 2, Kind: NewLine}, pos + 2, nil
	case 't':
		return Token{Start: pos, Length: 2, Kind: Space}, pos + 2, nil
	case '\\', '/':
		return Token{Start: pos + 1, Length: 1, Kind: PlainWord}, pos + 2, nil
	case 'u':
		return s.scanUnicodeEscape(pos)
	case '"':
		start := pos + 2
		closeAt, err := s.find(start, '\\', pos, "inline quote")
		if err != nil {
			return Token{}, 0, err
		}
		next := closeAt
		if s.buf.At(closeAt+1) == '"' {
			next = closeAt + 2
		}
		return Token{Start: start, Length: closeAt - start, Kind: InlineQuote}, next, nil
	case Sentinel:
		return Token{}, pos + 1, nil
	default:
		return Token{}, pos + 2, nil
	}
}

// scanUnicodeEscape decodes \uXXXX at pos, joining a surrogate pair when the
// low half follows. U+2028 and U+2029 are line breaks. A truncated escape
// skips only the backslash and the 'u'.
func (s *scanner) scanUnicodeEscape(pos int) (Token, int, error) {
	r, ok := s.hex4(pos + 2)
	if !ok {
		return Token{}, pos + 2, nil
	}
	length := 6
	if utf16.IsSurrogate(r) {
		lo, ok := rune(0), false
		if s.buf.At(pos+6) == '\\' && s.buf.At(pos+7) == 'u' {
			lo, ok = s.hex4(pos + 8)
		}
		if pair := utf16.DecodeRune(r, lo); ok && pair != unicode.ReplacementChar {
			r, length = pair, 12
		} else {
			return Token{}, pos + 6, nil
		}
	}

	switch {
	case r == '\u2028' || r == '\u2029':
		return Token{Start: pos, Length: length, Kind: NewLine}, pos + length, nil
	case r == '\t':
		return Token{Start: pos, Length: length, Kind: Space}, pos + length, nil
	case unicode.IsControl(r):
		return Token{}, pos + length, nil
	}
	return Token{Start: pos, Length: length, Kind: PlainWord, Decoded: r}, pos + length, nil
}

// hex4 reads four hex digits at pos.
func (s *scanner) hex4(pos int) (rune, bool) {
	var r rune
	for i := 0; i < 4; i++ {
		c := s.buf.At(pos + i)
		switch {
		case c >= '0' && c <= '9':
			r = r<<4 | (c - '0')
		case c >= 'a' && c <= 'f':
			r = r<<4 | (c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			r = r<<4 | (c - 'A' + 10)
		default:
			return 0, false
		}
	}
	return r, true
}
