package chars

import "unicode"

// IsSpace reports whether r is Unicode white space.
func IsSpace(r rune) bool { return unicode.IsSpace(r) }

// IsUpper reports whether r is an upper case letter.
func IsUpper(r rune) bool { return unicode.IsUpper(r) }

// IsLower reports whether r is a lower case letter.
func IsLower(r rune) bool { return unicode.IsLower(r) }

// IsDigit reports whether r is a decimal digit.
func IsDigit(r rune) bool { return unicode.IsDigit(r) }

// IsLetter reports whether r is a letter.
func IsLetter(r rune) bool { return unicode.IsLetter(r) }

// IsSeparator reports whether r separates words in identifiers: '_', '-' or
// white space.
func IsSeparator(r rune) bool {
	return r == '_' || r == '-' || unicode.IsSpace(r)
}

// ToUpper maps r to upper case using the one-to-one Unicode mapping.
func ToUpper(r rune) rune { return unicode.ToUpper(r) }

// ToLower maps r to lower case using the one-to-one Unicode mapping.
func ToLower(r rune) rune { return unicode.ToLower(r) }
