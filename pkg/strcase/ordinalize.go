package strcase

import "github.com/yaklabco/stdkit/pkg/chars"

// Ordinalize appends an English ordinal suffix ("st", "nd", "rd", "th") to
// every run of ASCII digits that is followed by white space or the end of
// input. Digit runs embedded in a word, like the 123 in "test123abc", are
// left alone.
func Ordinalize(b chars.Buffer) []rune {
	n := b.Len()
	out := make([]rune, 0, n+2)

	// lastTwo holds the value of the final two digits of the current run.
	lastTwo := -1
	for i := range n {
		r := b.At(i)
		out = append(out, r)

		if !isASCIIDigit(r) {
			lastTwo = -1
			continue
		}
		if lastTwo < 0 {
			lastTwo = 0
		}
		lastTwo = (lastTwo*10 + int(r-'0')) % 100

		if i+1 == n || chars.IsSpace(b.At(i+1)) {
			out = append(out, []rune(ordinalSuffix(lastTwo))...)
		}
	}
	return out
}

// OrdinalizeString is Ordinalize over a string.
func OrdinalizeString(s string) string {
	return string(Ordinalize(chars.FromString(s)))
}

func ordinalSuffix(lastTwo int) string {
	switch lastTwo {
	case 11, 12, 13:
		return "th"
	}
	switch lastTwo % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

func isASCIIDigit(r rune) bool {
	return '0' <= r && r <= '9'
}
