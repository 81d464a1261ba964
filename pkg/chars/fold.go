package chars

import (
	"unicode"
	"unicode/utf8"
)

// Fold returns the canonical representative of r's simple case-fold orbit:
// the smallest code point that folds to r. Two runes are equal under simple
// case folding exactly when their Fold values match.
//
// Besides ASCII this covers Latin, Greek, Cyrillic, ß/ẞ and the Greek
// iota-subscript family (U+1F80..U+1F8F).
func Fold(r rune) rune {
	if r < utf8.RuneSelf {
		// Upper case is the smallest member of every ASCII letter orbit,
		// including those of K (U+212A) and ſ (U+017F).
		if 'a' <= r && r <= 'z' {
			return r - ('a' - 'A')
		}
		return r
	}
	low := r
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		if f < low {
			low = f
		}
	}
	return low
}

// EqualFoldRune reports whether a and b are equal under simple case folding.
func EqualFoldRune(a, b rune) bool {
	if a == b {
		return true
	}
	if a < utf8.RuneSelf && b < utf8.RuneSelf {
		if 'A' <= a && a <= 'Z' {
			a += 'a' - 'A'
		}
		if 'A' <= b && b <= 'Z' {
			b += 'a' - 'A'
		}
		return a == b
	}
	return Fold(a) == Fold(b)
}
