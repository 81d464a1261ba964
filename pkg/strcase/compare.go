package strcase

import "github.com/yaklabco/stdkit/pkg/chars"

// runeEq compares two code points.
type runeEq func(a, b rune) bool

func exact(a, b rune) bool { return a == b }

// Equal reports whether a and b hold the same code points.
func Equal(a, b chars.Buffer) bool {
	return equal(a, b, exact)
}

// EqualFold reports whether a and b are equal under simple Unicode case
// folding. Buffers of different lengths are never equal.
func EqualFold(a, b chars.Buffer) bool {
	return equal(a, b, chars.EqualFoldRune)
}

// EqualString is Equal over strings.
func EqualString(a, b string) bool { return Equal(chars.FromString(a), chars.FromString(b)) }

// EqualFoldString is EqualFold over strings.
func EqualFoldString(a, b string) bool {
	return EqualFold(chars.FromString(a), chars.FromString(b))
}

func equal(a, b chars.Buffer, eq runeEq) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := range a.Len() {
		if !eq(a.At(i), b.At(i)) {
			return false
		}
	}
	return true
}

// matchAt reports whether needle occurs in b at offset i.
func matchAt(b, needle chars.Buffer, i int, eq runeEq) bool {
	if i < 0 || i+needle.Len() > b.Len() {
		return false
	}
	for j := range needle.Len() {
		if !eq(b.At(i+j), needle.At(j)) {
			return false
		}
	}
	return true
}

// StartsWith reports whether prefix occurs in b at start. An empty prefix
// always matches. A start outside [0, b.Len()] returns ErrOutOfRange.
func StartsWith(b, prefix chars.Buffer, start int) (bool, error) {
	return startsWith(b, prefix, start, exact)
}

// StartsWithFold is StartsWith under simple case folding.
func StartsWithFold(b, prefix chars.Buffer, start int) (bool, error) {
	return startsWith(b, prefix, start, chars.EqualFoldRune)
}

func startsWith(b, prefix chars.Buffer, start int, eq runeEq) (bool, error) {
	if start < 0 || start > b.Len() {
		return false, ErrOutOfRange
	}
	return matchAt(b, prefix, start, eq), nil
}

// EndsWith reports whether suffix occurs in b ending at end, so that
// EndsWith(b, s, b.Len()) tests the whole buffer. An empty suffix always
// matches. An end outside [0, b.Len()] returns ErrOutOfRange.
func EndsWith(b, suffix chars.Buffer, end int) (bool, error) {
	return endsWith(b, suffix, end, exact)
}

// EndsWithFold is EndsWith under simple case folding.
func EndsWithFold(b, suffix chars.Buffer, end int) (bool, error) {
	return endsWith(b, suffix, end, chars.EqualFoldRune)
}

func endsWith(b, suffix chars.Buffer, end int, eq runeEq) (bool, error) {
	if end < 0 || end > b.Len() {
		return false, ErrOutOfRange
	}
	return matchAt(b, suffix, end-suffix.Len(), eq), nil
}

// IndexOf returns the index of the first occurrence of needle in b at or
// after start, or -1. An empty needle matches at start. A start outside
// [0, b.Len()] returns ErrOutOfRange.
func IndexOf(b, needle chars.Buffer, start int) (int, error) {
	return indexOf(b, needle, start, exact)
}

// IndexOfFold is IndexOf under simple case folding.
func IndexOfFold(b, needle chars.Buffer, start int) (int, error) {
	return indexOf(b, needle, start, chars.EqualFoldRune)
}

func indexOf(b, needle chars.Buffer, start int, eq runeEq) (int, error) {
	if start < 0 || start > b.Len() {
		return -1, ErrOutOfRange
	}
	for i := start; i+needle.Len() <= b.Len(); i++ {
		if matchAt(b, needle, i, eq) {
			return i, nil
		}
	}
	return -1, nil
}

// LastIndexOf returns the index of the last occurrence of needle in b that
// starts at or before start, or -1. An empty needle matches at start. A start
// outside [0, b.Len()] returns ErrOutOfRange.
func LastIndexOf(b, needle chars.Buffer, start int) (int, error) {
	return lastIndexOf(b, needle, start, exact)
}

// LastIndexOfFold is LastIndexOf under simple case folding.
func LastIndexOfFold(b, needle chars.Buffer, start int) (int, error) {
	return lastIndexOf(b, needle, start, chars.EqualFoldRune)
}

func lastIndexOf(b, needle chars.Buffer, start int, eq runeEq) (int, error) {
	if start < 0 || start > b.Len() {
		return -1, ErrOutOfRange
	}
	for i := min(start, b.Len()-needle.Len()); i >= 0; i-- {
		if matchAt(b, needle, i, eq) {
			return i, nil
		}
	}
	return -1, nil
}

// Contains reports whether needle occurs anywhere in b.
func Contains(b, needle chars.Buffer) bool {
	i, _ := IndexOf(b, needle, 0)
	return i >= 0
}

// ContainsFold is Contains under simple case folding.
func ContainsFold(b, needle chars.Buffer) bool {
	i, _ := IndexOfFold(b, needle, 0)
	return i >= 0
}
