// Package chars provides the code-point buffer shared by the text packages.
//
// A Buffer is a sequence of Unicode code points addressable by index. Strings
// are decoded once at entry so that transforms and comparisons never operate
// on raw UTF-8 bytes.
package chars

import (
	"strings"
	"unicode/utf8"
)

// Buffer is an indexable sequence of code points.
type Buffer interface {
	// Len returns the number of code points in the buffer.
	Len() int

	// At returns the code point at index i. It panics if i is out of range.
	At(i int) rune
}

// Runes is a Buffer backed by a rune slice.
type Runes []rune

// Len implements Buffer.
func (r Runes) Len() int { return len(r) }

// At implements Buffer.
func (r Runes) At(i int) rune { return r[i] }

// FromString decodes s into a Buffer. Invalid UTF-8 sequences decode to
// utf8.RuneError, one per invalid byte.
func FromString(s string) Runes {
	out := make(Runes, 0, utf8.RuneCountInString(s))
	for _, r := range s {
		out = append(out, r)
	}
	return out
}

// FromRunes wraps r as a Buffer without copying.
func FromRunes(r []rune) Runes {
	return Runes(r)
}

// view is a window over another Buffer.
type view struct {
	buf   Buffer
	start int
	end   int
}

func (v view) Len() int { return v.end - v.start }

func (v view) At(i int) rune {
	if i < 0 || i >= v.end-v.start {
		panic("chars: index out of range")
	}
	return v.buf.At(v.start + i)
}

// Slice returns a view of b covering [start, end). Bounds are clamped to the
// buffer so that Slice never panics.
func Slice(b Buffer, start, end int) Buffer {
	n := b.Len()
	start = max(0, min(start, n))
	end = max(start, min(end, n))
	if r, ok := b.(Runes); ok {
		return r[start:end]
	}
	return view{buf: b, start: start, end: end}
}

// ToRunes copies b into a fresh rune slice.
func ToRunes(b Buffer) []rune {
	if b == nil {
		return nil
	}
	out := make([]rune, b.Len())
	for i := range out {
		out[i] = b.At(i)
	}
	return out
}

// String encodes b back to UTF-8.
func String(b Buffer) string {
	if b == nil {
		return ""
	}
	if r, ok := b.(Runes); ok {
		return string(r)
	}
	var sb strings.Builder
	sb.Grow(b.Len())
	for i := range b.Len() {
		sb.WriteRune(b.At(i))
	}
	return sb.String()
}
