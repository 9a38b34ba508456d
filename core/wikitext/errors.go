// Package wikitext — parse errors.
// Every failure of the scanner is reported as a *ParseError carrying the
// buffer offset and the construct that was open when scanning stopped.
package wikitext

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a ParseError.
type ErrorKind int

const (
	// MalformedMarkup means a required terminator was never found before
	// the sentinel or the scan-step ceiling.
	MalformedMarkup ErrorKind = iota + 1
	// EncodingAssumptionViolated means the body-start quote was missing.
	// It is recovered locally and only surfaces as a warning.
	EncodingAssumptionViolated
	// UnsupportedNestingDepth means braces nested deeper than MaxBraceDepth.
	UnsupportedNestingDepth
)

func (k ErrorKind) String() string {
	switch k {
	case MalformedMarkup:
		return "malformed_markup"
	case EncodingAssumptionViolated:
		return "encoding_assumption_violated"
	case UnsupportedNestingDepth:
		return "unsupported_nesting_depth"
	default:
		return "unknown"
	}
}

// Sentinel errors for errors.Is matching.
var (
	ErrMalformedMarkup    = errors.New("malformed markup")
	ErrEncodingAssumption = errors.New("body start quote not found")
	ErrUnsupportedNesting = errors.New("unsupported nesting depth")
)

// ParseError reports where and why scanning failed.
type ParseError struct {
	Kind      ErrorKind
	Offset    int    // rune offset into the buffer
	Construct string // the open construct, e.g. "template", "wikilink"
	Detail    string
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("%s: %s at offset %d", e.Kind, e.Construct, e.Offset)
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

// Unwrap maps the kind onto its sentinel error.
func (e *ParseError) Unwrap() error {
	switch e.Kind {
	case MalformedMarkup:
		return ErrMalformedMarkup
	case EncodingAssumptionViolated:
		return ErrEncodingAssumption
	case UnsupportedNestingDepth:
		return ErrUnsupportedNesting
	}
	return nil
}

func malformed(offset int, construct, detail string) *ParseError {
	return &ParseError{Kind: MalformedMarkup, Offset: offset, Construct: construct, Detail: detail}
}
