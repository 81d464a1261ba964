package strcase

import "github.com/yaklabco/stdkit/pkg/chars"

// Capitalize upper cases the first code point and lower cases the rest,
// unless opts.PreserveCase is set.
func Capitalize(b chars.Buffer, opts Options) []rune {
	b = opts.input(b)
	out := make([]rune, b.Len())
	for i := range out {
		r := b.At(i)
		switch {
		case i == 0:
			out[i] = chars.ToUpper(r)
		case opts.PreserveCase:
			out[i] = r
		default:
			out[i] = chars.ToLower(r)
		}
	}
	return out
}

// CapitalizeString is Capitalize over a string.
func CapitalizeString(s string, opts Options) string {
	return string(Capitalize(chars.FromString(s), opts))
}
