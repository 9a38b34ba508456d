// Package wikitext — token model.
package wikitext

// Kind is the closed set of token classes the scanner produces.
type Kind int

const (
	Title Kind = iota
	Subtitle
	Subsubtitle
	Bold
	Italic
	BulletBold
	BulletItalic
	PlainWord
	Space
	NewLine
	WikiLink
	InlineQuote
	// PossibleLink is a bracket span the scanner cannot classify as a plain
	// WikiLink: piped, nested or single-bracket external links.
	PossibleLink
)

var kindNames = [...]string{
	Title:        "Title",
	Subtitle:     "Subtitle",
	Subsubtitle:  "Subsubtitle",
	Bold:         "Bold",
	Italic:       "Italic",
	BulletBold:   "BulletBold",
	BulletItalic: "BulletItalic",
	PlainWord:    "PlainWord",
	Space:        "Space",
	NewLine:      "NewLine",
	WikiLink:     "WikiLink",
	InlineQuote:  "InlineQuote",
	PossibleLink: "PossibleLink",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

// IsHeading reports whether k is one of the heading kinds.
func (k Kind) IsHeading() bool {
	return k == Title || k == Subtitle || k == Subsubtitle
}

// Span is a sub-range of the buffer. A zero Length means absent.
type Span struct {
	Start  int
	Length int
}

// Token is an immutable view of [Start, Start+Length) in a Buffer.
type Token struct {
	Start  int
	Length int
	Kind   Kind

	// Link structure, set only for PossibleLink.
	Target   Span
	Display  Span
	Nested   bool
	External bool

	// Decoded is the rune of a \uXXXX escape. The token's span still
	// covers the escape itself.
	Decoded rune
}

// Text returns the token's slice of b, or the decoded rune for an escape.
func (t Token) Text(b Buffer) string {
	if t.Decoded != 0 {
		return string(t.Decoded)
	}
	return b.Slice(t.Start, t.Length)
}

// End is the offset one past the token.
func (t Token) End() int {
	return t.Start + t.Length
}

// Stream is the ordered token sequence of one document.
type Stream []Token

// Count returns how many tokens of kind k the stream holds.
func (s Stream) Count(k Kind) int {
	n := 0
	for _, t := range s {
		if t.Kind == k {
			n++
		}
	}
	return n
}
