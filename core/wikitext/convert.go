// Package wikitext — conversion entry points.
package wikitext

import "fmt"

// LinkText selects which side of a piped link [[Target|Display]] is kept.
type LinkText int

const (
	// LinkTarget keeps the link target, discarding the display text.
	LinkTarget LinkText = iota
	// LinkDisplay keeps the display text, falling back to the target.
	LinkDisplay
)

func (l LinkText) String() string {
	if l == LinkDisplay {
		return "display"
	}
	return "target"
}

// ParseLinkText parses "target" or "display".
func ParseLinkText(s string) (LinkText, error) {
	switch s {
	case "target", "":
		return LinkTarget, nil
	case "display":
		return LinkDisplay, nil
	}
	return LinkTarget, fmt.Errorf("unknown link text mode %q (want target or display)", s)
}

// pick renders a PossibleLink token. Nested spans are dropped, external
// links keep their label, piped links keep the side chosen by l.
func (l LinkText) pick(tok Token, buf Buffer) string {
	switch {
	case tok.Nested:
		return ""
	case tok.External:
		return buf.Slice(tok.Display.Start, tok.Display.Length)
	case l == LinkDisplay && tok.Display.Length > 0:
		return buf.Slice(tok.Display.Start, tok.Display.Length)
	default:
		return buf.Slice(tok.Target.Start, tok.Target.Length)
	}
}

// Config controls one conversion.
type Config struct {
	// StripReferencesSection drops "== References ==" and everything after
	// it. Only meaningful for the default-language edition.
	StripReferencesSection bool
	// MaxScanSteps bounds each terminator-seeking scan. Zero means default.
	MaxScanSteps int
	// MaxBraceDepth bounds {...} nesting. Zero means default.
	MaxBraceDepth int
	LinkText      LinkText
}

func (c Config) withDefaults() Config {
	if c.MaxScanSteps <= 0 {
		c.MaxScanSteps = DefaultMaxScanSteps
	}
	if c.MaxBraceDepth <= 0 {
		c.MaxBraceDepth = DefaultMaxBraceDepth
	}
	return c
}

// Converter runs Preprocess, Tokenize and Render with a fixed Config.
// It is stateless and safe for concurrent use.
type Converter struct {
	cfg       Config
	tokenizer *Tokenizer
	renderer  *Renderer
}

// NewConverter creates a Converter.
func NewConverter(cfg Config) *Converter {
	cfg = cfg.withDefaults()
	return &Converter{
		cfg:       cfg,
		tokenizer: NewTokenizer(cfg),
		renderer:  NewRenderer(cfg),
	}
}

// Config returns the effective configuration.
func (c *Converter) Config() Config {
	return c.cfg
}

// Convert turns raw API markup into plaintext. On failure no partial text
// is returned.
func (c *Converter) Convert(markup string) (*Result, error) {
	buf, warnings := Preprocess(markup, c.cfg.StripReferencesSection)
	stream, err := c.tokenizer.Tokenize(buf)
	if err != nil {
		return nil, err
	}
	result := c.renderer.Render(buf, stream)
	result.Warnings = warnings
	return &result, nil
}

// Convert is the one-shot form of Converter.Convert returning only the text.
func Convert(markup string, cfg Config) (string, error) {
	result, err := NewConverter(cfg).Convert(markup)
	if err != nil {
		return "", err
	}
	return result.Text, nil
}
