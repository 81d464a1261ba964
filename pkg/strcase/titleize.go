package strcase

import "github.com/yaklabco/stdkit/pkg/chars"

// stopWords stay lower case in titles unless they open the title.
//
//nolint:gochecknoglobals // Read-only lookup table.
var stopWords = []string{
	"a", "an", "the",
	"and", "or", "but", "nor", "for", "so", "yet",
	"of", "in", "on", "to", "at", "by", "up", "as", "off", "per", "via",
}

// Titleize splits b into words the same way Underscore does and joins them
// with single spaces. Each word is capitalized except stop words such as
// "of" or "the", which are lower cased unless they are the first word.
func Titleize(b chars.Buffer) []rune {
	words := splitWords(b)
	out := make([]rune, 0, b.Len()+len(words))
	for i, word := range words {
		if i > 0 {
			out = append(out, ' ')
		}
		lowerAll := i > 0 && isStopWord(word)
		for j, r := range word {
			if j == 0 && !lowerAll {
				out = append(out, chars.ToUpper(r))
				continue
			}
			out = append(out, chars.ToLower(r))
		}
	}
	return out
}

// TitleizeString is Titleize over a string.
func TitleizeString(s string) string {
	return string(Titleize(chars.FromString(s)))
}

func isStopWord(word []rune) bool {
	for _, stop := range stopWords {
		if EqualFold(chars.Runes(word), chars.FromString(stop)) {
			return true
		}
	}
	return false
}
