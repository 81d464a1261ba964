package strcase

import "github.com/yaklabco/stdkit/pkg/chars"

// Camelize converts a '_', '-' or space separated identifier to camelCase.
//
// The first output code point is always lower case and the code point after
// each run of separators is upper cased. Everything else is lower cased unless
// opts.PreserveCase is set. Existing camelCase boundaries are not detected, so
// "HelloWorld" becomes "helloworld"; input that is already camelCase (no
// separators and a lower case first letter) is returned as is. That includes
// shapes like "hELLO", which cannot be told apart from Camelize("h_e_l_l_o").
func Camelize(b chars.Buffer, opts Options) []rune {
	b = opts.input(b)
	if isCamel(b) {
		return chars.ToRunes(b)
	}
	return joinWords(b, false, opts)
}

// CamelizeString is Camelize over a string.
func CamelizeString(s string, opts Options) string {
	return string(Camelize(chars.FromString(s), opts))
}

// Pascalize converts a '_', '-' or space separated identifier to PascalCase.
// Like Camelize it does not split camelCase input: "helloWorld" becomes
// "Helloworld".
func Pascalize(b chars.Buffer, opts Options) []rune {
	return joinWords(opts.input(b), true, opts)
}

// PascalizeString is Pascalize over a string.
func PascalizeString(s string, opts Options) string {
	return string(Pascalize(chars.FromString(s), opts))
}

// joinWords drops separators and upper cases the first letter of each word
// after the first. The first word is upper cased only when upperFirst is set.
// Digits pass through without consuming a pending word boundary.
func joinWords(b chars.Buffer, upperFirst bool, opts Options) []rune {
	out := make([]rune, 0, b.Len())
	upperNext := upperFirst
	for i := range b.Len() {
		r := b.At(i)
		if chars.IsSeparator(r) {
			if len(out) > 0 {
				upperNext = true
			}
			continue
		}

		switch {
		case chars.IsDigit(r):
			out = append(out, r)
			continue
		case upperNext:
			out = append(out, chars.ToUpper(r))
		case len(out) == 0:
			out = append(out, chars.ToLower(r))
		case opts.PreserveCase:
			out = append(out, r)
		default:
			out = append(out, chars.ToLower(r))
		}
		upperNext = false
	}
	return out
}

// isCamel reports whether b has no separators and starts with a lower case
// letter.
func isCamel(b chars.Buffer) bool {
	if b.Len() == 0 || !chars.IsLower(b.At(0)) {
		return false
	}
	for i := range b.Len() {
		if chars.IsSeparator(b.At(i)) {
			return false
		}
	}
	return true
}
