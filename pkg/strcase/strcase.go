// Package strcase converts identifiers between naming conventions and
// compares code-point sequences with or without Unicode case folding.
//
// Every transform takes a chars.Buffer and returns a freshly allocated rune
// slice; inputs are never mutated. The String helpers decode and re-encode
// UTF-8 around the buffer versions.
package strcase

import (
	"errors"

	"github.com/yaklabco/stdkit/pkg/chars"
)

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrInvalidOptions is returned when mutually exclusive options are combined.
	ErrInvalidOptions = errors.New("invalid options: screaming and preserve case are mutually exclusive")

	// ErrOutOfRange is returned when a start index lies outside the buffer.
	ErrOutOfRange = errors.New("start index out of range")
)

// Options controls case transforms. Not every transform honors every field;
// see the individual functions.
type Options struct {
	// PreserveCase keeps the original case of letters that the transform
	// would otherwise lower case.
	PreserveCase bool

	// Screaming upper cases every letter (Underscore and Dasherize only).
	Screaming bool

	// TrimSuffix is removed from the end of the input before transforming,
	// when the input ends with it exactly.
	TrimSuffix chars.Buffer
}

func (o Options) validate() error {
	if o.Screaming && o.PreserveCase {
		return ErrInvalidOptions
	}
	return nil
}

// input applies TrimSuffix to b.
func (o Options) input(b chars.Buffer) chars.Buffer {
	if b == nil {
		return chars.Runes(nil)
	}
	if o.TrimSuffix == nil || o.TrimSuffix.Len() == 0 {
		return b
	}
	if ok, _ := EndsWith(b, o.TrimSuffix, b.Len()); ok {
		return chars.Slice(b, 0, b.Len()-o.TrimSuffix.Len())
	}
	return b
}

// letterCase applies the non-boundary case rule shared by the transforms.
func (o Options) letterCase(r rune) rune {
	switch {
	case o.Screaming:
		return chars.ToUpper(r)
	case o.PreserveCase:
		return r
	default:
		return chars.ToLower(r)
	}
}
