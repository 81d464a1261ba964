package dotenv

import (
	"runtime"
	"strings"
)

// StringifyOptions controls Stringify.
type StringifyOptions struct {
	// OnlyLineFeed separates lines with "\n" even on Windows.
	OnlyLineFeed bool
}

// EOL returns the line separator selected by opts.
func (o StringifyOptions) EOL() string {
	if o.OnlyLineFeed || runtime.GOOS != "windows" {
		return "\n"
	}
	return "\r\n"
}

// Stringify renders doc as .env text. Tokens are joined with the line
// separator, so the first token never gets a leading separator and a
// newline token contributes only its separator.
//
// Values are single quoted unless they contain a single quote or a newline,
// in which case they are double quoted with '"' escaped as \". No other
// escaping is done, so values holding backslash sequences may not read back
// identically.
func Stringify(doc *Document, opts StringifyOptions) string {
	eol := opts.EOL()

	var sb strings.Builder
	for i, tok := range doc.All() {
		if i > 0 {
			sb.WriteString(eol)
		}
		switch tok.Kind {
		case KindComment:
			sb.WriteByte('#')
			sb.WriteString(tok.Text)
		case KindItem:
			sb.WriteString(tok.Key)
			sb.WriteByte('=')
			sb.WriteString(quote(tok.Value))
		case KindNewline:
		}
	}
	return sb.String()
}

func quote(value string) string {
	if !strings.ContainsAny(value, "'\n") {
		return "'" + value + "'"
	}
	return `"` + strings.ReplaceAll(value, `"`, `\"`) + `"`
}
