package strcase

import "github.com/yaklabco/stdkit/pkg/chars"

// Underscore converts an identifier to snake_case. Word boundaries are
// separators ('_', '-', space) and lower-to-upper transitions. Letters are
// lower cased unless opts.Screaming (upper) or opts.PreserveCase (unchanged)
// is set; setting both returns ErrInvalidOptions.
func Underscore(b chars.Buffer, opts Options) ([]rune, error) {
	return delimit(b, '_', opts)
}

// UnderscoreString is Underscore over a string.
func UnderscoreString(s string, opts Options) (string, error) {
	out, err := Underscore(chars.FromString(s), opts)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Dasherize converts an identifier to kebab-case with the same rules as
// Underscore.
func Dasherize(b chars.Buffer, opts Options) ([]rune, error) {
	return delimit(b, '-', opts)
}

// DasherizeString is Dasherize over a string.
func DasherizeString(s string, opts Options) (string, error) {
	out, err := Dasherize(chars.FromString(s), opts)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func delimit(b chars.Buffer, sep rune, opts Options) ([]rune, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	b = opts.input(b)

	out := make([]rune, 0, b.Len()+b.Len()/4)
	for _, word := range splitWords(b) {
		if len(out) > 0 {
			out = append(out, sep)
		}
		for _, r := range word {
			out = append(out, opts.letterCase(r))
		}
	}
	return out, nil
}

// splitWords breaks b at separators and lower-to-upper transitions. Empty
// words are never produced, so leading, trailing and repeated separators
// disappear.
func splitWords(b chars.Buffer) [][]rune {
	var words [][]rune
	var word []rune
	prevLower := false

	flush := func() {
		if len(word) > 0 {
			words = append(words, word)
			word = nil
		}
	}

	for i := range b.Len() {
		r := b.At(i)
		if chars.IsSeparator(r) {
			flush()
			prevLower = false
			continue
		}
		if prevLower && chars.IsUpper(r) {
			flush()
		}
		word = append(word, r)
		prevLower = chars.IsLower(r)
	}
	flush()

	return words
}
