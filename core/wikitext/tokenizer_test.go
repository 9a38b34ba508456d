package wikitext

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenize(t *testing.T, body string) (Buffer, Stream) {
	t.Helper()
	buf := NewBuffer(body)
	stream, err := NewTokenizer(Config{}).Tokenize(buf)
	require.NoError(t, err)
	return buf, stream
}

// kinds flattens a stream to its kinds for compact assertions.
func kinds(stream Stream) []Kind {
	out := make([]Kind, len(stream))
	for i, tok := range stream {
		out[i] = tok.Kind
	}
	return out
}

func TestTokenize_PlainTextWithSpaces(t *testing.T) {
	buf, stream := tokenize(t, "Hello plain world")

	assert.Equal(t, []Kind{PlainWord, Space, PlainWord, Space, PlainWord}, kinds(stream))
	assert.Equal(t, "Hello", stream[0].Text(buf))
	assert.Equal(t, "world", stream[4].Text(buf))
}

func TestTokenize_SigilFreeInputIsOnePlainWord(t *testing.T) {
	inputs := []string{
		"word",
		"Ünïcödé_text-with.punctuation,and;more!",
		"অসমীয়া",
		"line1\nline2",
	}
	for _, in := range inputs {
		buf, stream := tokenize(t, in)
		require.Len(t, stream, 1, "input %q", in)
		assert.Equal(t, PlainWord, stream[0].Kind)
		assert.Equal(t, in, stream[0].Text(buf))
	}
}

func TestTokenize_Headings(t *testing.T) {
	tests := []struct {
		in   string
		kind Kind
		text string
	}{
		{"==Heading==", Title, "Heading"},
		{"===Sub===", Subtitle, "Sub"},
		{"====Deep====", Subsubtitle, "Deep"},
		{"=====Five=====", Subsubtitle, "Five"},
		{"== Spaced ==", Title, " Spaced "},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			buf, stream := tokenize(t, tt.in)
			require.Len(t, stream, 1)
			assert.Equal(t, tt.kind, stream[0].Kind)
			assert.Equal(t, tt.text, stream[0].Text(buf))
		})
	}
}

func TestTokenize_SingleEqualsDropsSpan(t *testing.T) {
	buf, stream := tokenize(t, "a = b = c")
	assert.Equal(t, "a  c", NewRenderer(Config{}).Render(buf, stream).Text)
}

func TestTokenize_Emphasis(t *testing.T) {
	buf, stream := tokenize(t, "'''bold'''")
	require.Len(t, stream, 1)
	assert.Equal(t, Bold, stream[0].Kind)
	assert.Equal(t, "bold", stream[0].Text(buf))

	buf, stream = tokenize(t, "''it''")
	require.Len(t, stream, 1)
	assert.Equal(t, Italic, stream[0].Kind)
	assert.Equal(t, "it", stream[0].Text(buf))
}

func TestTokenize_BulletEmphasis(t *testing.T) {
	buf, stream := tokenize(t, "* '''bold'''")
	assert.Equal(t, []Kind{Space, BulletBold}, kinds(stream))
	assert.Equal(t, "bold", stream[1].Text(buf))

	_, stream = tokenize(t, "*''it''")
	assert.Equal(t, []Kind{BulletItalic}, kinds(stream))
}

func TestTokenize_BulletConsumedOnce(t *testing.T) {
	_, stream := tokenize(t, "* '''a''' '''b'''")
	assert.Equal(t, []Kind{Space, BulletBold, Space, Bold}, kinds(stream))
}

func TestClassifyEmphasis(t *testing.T) {
	tests := []struct {
		n        int
		bullet   bool
		kind     Kind
		consumed bool
	}{
		{2, false, Italic, false},
		{2, true, BulletItalic, true},
		{3, false, Bold, false},
		{3, true, BulletBold, true},
		{5, false, Bold, false},
	}
	for _, tt := range tests {
		kind, consumed := ClassifyEmphasis(tt.n, tt.bullet)
		assert.Equal(t, tt.kind, kind, "n=%d bullet=%v", tt.n, tt.bullet)
		assert.Equal(t, tt.consumed, consumed, "n=%d bullet=%v", tt.n, tt.bullet)
	}
}

func TestTokenize_LoneApostropheIsKept(t *testing.T) {
	buf, stream := tokenize(t, "don't stop")
	assert.Equal(t, "don't stop", NewRenderer(Config{}).Render(buf, stream).Text)
}

func TestTokenize_PlainWikiLink(t *testing.T) {
	buf, stream := tokenize(t, "[[Plain_Link]]")
	require.Len(t, stream, 1)
	assert.Equal(t, WikiLink, stream[0].Kind)
	assert.Equal(t, "Plain_Link", stream[0].Text(buf))
}

func TestTokenize_PipedLinkIsNotWikiLink(t *testing.T) {
	buf, stream := tokenize(t, "[[Target|Display]]")
	assert.Zero(t, stream.Count(WikiLink))
	require.Len(t, stream, 1)

	tok := stream[0]
	assert.Equal(t, PossibleLink, tok.Kind)
	assert.False(t, tok.Nested)
	assert.Equal(t, "Target", buf.Slice(tok.Target.Start, tok.Target.Length))
	assert.Equal(t, "Display", buf.Slice(tok.Display.Start, tok.Display.Length))
}

func TestTokenize_NestedLink(t *testing.T) {
	_, stream := tokenize(t, "[[File:a.jpg|thumb|A [[cat]] here]] after")
	require.NotEmpty(t, stream)
	assert.Equal(t, PossibleLink, stream[0].Kind)
	assert.True(t, stream[0].Nested)
	assert.Zero(t, stream.Count(WikiLink))
}

func TestTokenize_ExternalLinks(t *testing.T) {
	buf, stream := tokenize(t, "[https://example.com Example site]")
	require.Len(t, stream, 1)
	tok := stream[0]
	assert.True(t, tok.External)
	assert.Equal(t, "https://example.com", buf.Slice(tok.Target.Start, tok.Target.Length))
	assert.Equal(t, "Example site", buf.Slice(tok.Display.Start, tok.Display.Length))

	buf, stream = tokenize(t, "[citation needed]")
	require.Len(t, stream, 1)
	assert.False(t, stream[0].External)
	assert.Equal(t, "citation needed", NewRenderer(Config{}).Render(buf, stream).Text)
}

func TestTokenize_BracesContributeNothing(t *testing.T) {
	_, stream := tokenize(t, "{{Infobox|x=1}}")
	assert.Empty(t, stream)

	buf, stream := tokenize(t, "a{| class=wikitable |}b")
	assert.Equal(t, "ab", NewRenderer(Config{}).Render(buf, stream).Text)
}

func TestTokenize_Escapes(t *testing.T) {
	buf, stream := tokenize(t, `line one\nline two`)
	assert.Equal(t, 1, stream.Count(NewLine))
	assert.Equal(t, "line one\nline two", NewRenderer(Config{}).Render(buf, stream).Text)

	buf, stream = tokenize(t, `He said \"hi\" ok`)
	assert.Equal(t, 1, stream.Count(InlineQuote))
	assert.Equal(t, "He said hi ok", NewRenderer(Config{}).Render(buf, stream).Text)

	buf, stream = tokenize(t, `back\\slash`)
	assert.Equal(t, `back\slash`, NewRenderer(Config{}).Render(buf, stream).Text)
}

func TestTokenize_JSONEscapes(t *testing.T) {
	cases := map[string]struct {
		body string
		want string
	}{
		"tab is a space":            {`tab\there`, "tab here"},
		"solidus":                   {`a\/b`, "a/b"},
		"carriage return dropped":   {`a\r\nb`, "a\nb"},
		"line separator":            {`a\u2028b`, "a\nb"},
		"paragraph separator":       {`a\u2029b`, "a\nb"},
		"control character dropped": {`x\u0001y`, "xy"},
		"escaped tab":               {`x\u0009y`, "x y"},
		"bmp rune":                  {`caf\u00e9`, "café"},
		"uppercase hex":             {`\u00C9t\u00E9`, "Été"},
		"surrogate pair":            {`smile \ud83d\ude00`, "smile \U0001F600"},
		"lone surrogate dropped":    {`a\ud83db`, "ab"},
		"truncated escape":          {`a\u12`, "a12"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			buf, stream := tokenize(t, tc.body)
			assert.Equal(t, tc.want, NewRenderer(Config{}).Render(buf, stream).Text)
		})
	}
}

func TestTokenize_DecodedEscapeToken(t *testing.T) {
	buf, stream := tokenize(t, `\u00e9`)
	require.Len(t, stream, 1)
	assert.Equal(t, PlainWord, stream[0].Kind)
	assert.Equal(t, 0, stream[0].Start)
	assert.Equal(t, 6, stream[0].Length)
	assert.Equal(t, "é", stream[0].Text(buf))
}

func TestTokenize_HTMLTagsSkipped(t *testing.T) {
	buf, stream := tokenize(t, "x<span>y</span>z")
	assert.Equal(t, "xyz", NewRenderer(Config{}).Render(buf, stream).Text)
}

func TestTokenize_UnterminatedBraces(t *testing.T) {
	_, err := NewTokenizer(Config{}).Tokenize(NewBuffer("abc {{def"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedMarkup))

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, MalformedMarkup, perr.Kind)
	assert.Equal(t, 4, perr.Offset)
	assert.Equal(t, "braces", perr.Construct)
}

func TestTokenize_UnterminatedConstructs(t *testing.T) {
	inputs := map[string]string{
		"emphasis":      "''never closed",
		"wikilink":      "[[never closed",
		"external link": "[never closed",
		"heading":       "==never closed",
		"html tag":      "<span never closed",
		"inline quote":  `\"never closed`,
	}
	for construct, in := range inputs {
		t.Run(construct, func(t *testing.T) {
			_, err := NewTokenizer(Config{}).Tokenize(NewBuffer(in))
			var perr *ParseError
			require.True(t, errors.As(err, &perr), "expected ParseError, got %v", err)
			assert.Equal(t, MalformedMarkup, perr.Kind)
			assert.Equal(t, construct, perr.Construct)
			assert.Equal(t, 0, perr.Offset)
		})
	}
}

func TestTokenize_ScanStepCeiling(t *testing.T) {
	body := "''" + strings.Repeat("a", 100) + "''"

	_, err := NewTokenizer(Config{MaxScanSteps: 10}).Tokenize(NewBuffer(body))
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, MalformedMarkup, perr.Kind)
	assert.Contains(t, perr.Detail, "ceiling")

	_, err = NewTokenizer(Config{MaxScanSteps: 200}).Tokenize(NewBuffer(body))
	assert.NoError(t, err)
}

func TestTokenize_BraceDepthLimit(t *testing.T) {
	body := "{a{b{c{d}}}}"

	_, err := NewTokenizer(Config{}).Tokenize(NewBuffer(body))
	assert.True(t, errors.Is(err, ErrUnsupportedNesting))

	_, stream := tokenizeWith(t, Config{MaxBraceDepth: 4}, body)
	assert.Empty(t, stream)
}

func tokenizeWith(t *testing.T, cfg Config, body string) (Buffer, Stream) {
	t.Helper()
	buf := NewBuffer(body)
	stream, err := NewTokenizer(cfg).Tokenize(buf)
	require.NoError(t, err)
	return buf, stream
}

func TestTokenize_StreamInvariants(t *testing.T) {
	body := `'''Bold''' and ''it'' with [[Link]] and [[A|B]]\n==Head==\n* '''x''' <b>tag</b> {tpl} \"q\" end`
	buf, stream := tokenize(t, body)
	require.NotEmpty(t, stream)

	prevEnd := 0
	for i, tok := range stream {
		assert.Greater(t, tok.Length, 0, "token %d has no length", i)
		assert.GreaterOrEqual(t, tok.Start, prevEnd, "token %d overlaps its predecessor", i)
		assert.LessOrEqual(t, tok.End(), buf.End(), "token %d covers the sentinel", i)
		prevEnd = tok.End()
	}
}

func TestTokenize_EmptyBuffer(t *testing.T) {
	_, stream := tokenize(t, "")
	assert.Empty(t, stream)
}
