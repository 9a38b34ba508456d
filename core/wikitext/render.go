// Package wikitext — plaintext renderer.
// Walks the token stream once, in order, and builds the output text together
// with a section outline keyed on heading tokens.
package wikitext

import "strings"

// Section is a heading and the rendered text that follows it up to the next
// heading. The lead section before the first heading has Level 0.
type Section struct {
	Heading string `json:"heading"`
	Level   int    `json:"level"`
	Text    string `json:"text"`
}

// Result is the outcome of converting one document.
type Result struct {
	Text     string
	Sections []Section
	// Warnings holds recovered problems, e.g. a missing body-start quote.
	Warnings []*ParseError
}

// Renderer turns a Stream back into text.
type Renderer struct {
	linkText LinkText
}

// NewRenderer creates a Renderer using the link policy from cfg.
func NewRenderer(cfg Config) *Renderer {
	return &Renderer{linkText: cfg.LinkText}
}

// Render builds the plaintext for stream over buf.
func (r *Renderer) Render(buf Buffer, stream Stream) Result {
	var out strings.Builder
	var sections []Section

	current := Section{Level: 0}
	sectionStart := 0
	flush := func() {
		current.Text = strings.TrimSpace(out.String()[sectionStart:])
		if current.Level > 0 || current.Text != "" {
			sections = append(sections, current)
		}
	}

	for _, tok := range stream {
		switch tok.Kind {
		case Title, Subtitle, Subsubtitle:
			flush()
			text := tok.Text(buf)
			out.WriteString(text)
			current = Section{Heading: strings.TrimSpace(text), Level: headingLevel(tok.Kind)}
			sectionStart = out.Len()
		case Bold, PlainWord, WikiLink, BulletBold, BulletItalic, InlineQuote:
			out.WriteString(tok.Text(buf))
		case Italic:
			out.WriteString(RepairLinks(tok.Text(buf), r.linkText))
		case PossibleLink:
			out.WriteString(r.linkText.pick(tok, buf))
		case Space:
			out.WriteByte(' ')
		case NewLine:
			out.WriteByte('\n')
		}
	}
	flush()

	return Result{
		Text:     strings.TrimSpace(out.String()),
		Sections: sections,
	}
}

func headingLevel(k Kind) int {
	switch k {
	case Title:
		return 2
	case Subtitle:
		return 3
	case Subsubtitle:
		return 4
	}
	return 0
}

// RepairLinks fixes text that captured raw [[...]] markup, which happens when
// an italic span encloses a piped link. The markers are stripped and, if the
// interior has a '|', only one side of it is kept according to mode. Text
// without both markers is returned unchanged.
func RepairLinks(text string, mode LinkText) string {
	open := strings.Index(text, "[[")
	if open < 0 {
		return text
	}
	closeAt := strings.Index(text[open+2:], "]]")
	if closeAt < 0 {
		return text
	}
	closeAt += open + 2

	inner := text[open+2 : closeAt]
	if target, display, ok := strings.Cut(inner, "|"); ok {
		inner = target
		if mode == LinkDisplay && display != "" {
			inner = display
		}
	}
	return text[:open] + inner + RepairLinks(text[closeAt+2:], mode)
}
