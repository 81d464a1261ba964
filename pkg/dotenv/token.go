// Package dotenv parses, edits and writes .env files.
//
// A file is parsed into a Document: an ordered list of tokens (comments, blank
// lines and KEY=VALUE items) that keeps the file's line order so it can be
// edited and written back. Values are stored fully unescaped.
package dotenv

// TokenKind classifies a token in a Document.
type TokenKind uint8

// Token kinds, one per source line (or multi-line quoted item).
const (
	KindComment TokenKind = iota + 1 // '#' comment line
	KindNewline                      // blank line
	KindItem                         // KEY=VALUE assignment
)

// String returns the lower case name of the kind.
func (k TokenKind) String() string {
	switch k {
	case KindComment:
		return "comment"
	case KindNewline:
		return "newline"
	case KindItem:
		return "item"
	default:
		return "unknown"
	}
}

// Token is one structural unit of a Document.
type Token struct {
	// Kind selects which of the remaining fields are meaningful.
	Kind TokenKind

	// Text is the comment text without the leading '#' (KindComment only).
	Text string

	// Key is the variable name (KindItem only).
	Key string

	// Value is the unescaped value (KindItem only).
	Value string
}

// CommentToken returns a comment token.
func CommentToken(text string) Token {
	return Token{Kind: KindComment, Text: text}
}

// NewlineToken returns a blank line token.
func NewlineToken() Token {
	return Token{Kind: KindNewline}
}

// ItemToken returns a KEY=VALUE token.
func ItemToken(key, value string) Token {
	return Token{Kind: KindItem, Key: key, Value: value}
}
