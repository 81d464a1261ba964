package dotenv

import (
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/yaklabco/stdkit/pkg/chars"
)

// Parse tokenizes .env content into a Document.
//
// Every physical line becomes one token, except that a quoted value may span
// several lines and still yields a single item. Blank lines, including the
// empty remainder after a final newline, become newline tokens. Parse fails
// only on empty or invalid keys; malformed quoting is read permissively.
//
// Quoting rules:
//   - 'single' values are literal except for \' .
//   - "double" and `backtick` values resolve \n \r \t \b \\ \" \' \` as well
//     as \uXXXX and \UXXXXXXXX; other escapes are kept as written.
//   - Inside "double" values a $( ... ) span is copied verbatim, quotes
//     included.
//   - Unquoted values run to the end of the line with trailing white space
//     trimmed.
//   - An unterminated quote is read as an unquoted value.
func Parse(content string) (*Document, error) {
	doc := NewDocument()
	if content == "" {
		return doc, nil
	}

	p := &parser{src: chars.FromString(content), line: 1}
	for {
		tok, err := p.parseLine()
		if err != nil {
			return nil, err
		}
		doc.Append(tok)
		if !p.consumeNewline() {
			break
		}
	}
	return doc, nil
}

// parser walks the source one line at a time. pos always points at the
// start of unread input.
type parser struct {
	src  chars.Runes
	pos  int
	line int
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() rune {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

// atEOL reports whether pos is at a line terminator or the end of input. A
// carriage return counts when it precedes a line feed or ends the input.
func (p *parser) atEOL() bool {
	if p.eof() {
		return true
	}
	r := p.src[p.pos]
	return r == '\n' || (r == '\r' && (p.pos+1 == len(p.src) || p.src[p.pos+1] == '\n'))
}

// consumeNewline steps over a line terminator and reports whether there was
// one.
func (p *parser) consumeNewline() bool {
	if p.eof() {
		return false
	}
	if p.src[p.pos] == '\r' {
		p.pos++
	}
	if p.pos < len(p.src) && p.src[p.pos] == '\n' {
		p.pos++
		p.line++
		return true
	}
	return false
}

// restOfLine returns the text up to the line terminator and leaves pos on it.
func (p *parser) restOfLine() string {
	start := p.pos
	for !p.atEOL() {
		p.pos++
	}
	return string(p.src[start:p.pos])
}

func (p *parser) skipBlanks() {
	for !p.atEOL() && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *parser) parseLine() (Token, error) {
	p.skipBlanks()
	if p.atEOL() {
		return NewlineToken(), nil
	}
	if p.peek() == '#' {
		p.pos++
		return CommentToken(p.restOfLine()), nil
	}
	return p.parseItem()
}

func (p *parser) parseItem() (Token, error) {
	startLine := p.line

	start := p.pos
	for !p.atEOL() && p.src[p.pos] != '=' {
		p.pos++
	}
	key := strings.TrimSpace(string(p.src[start:p.pos]))
	key = trimExport(key)

	if key == "" {
		return Token{}, &ParseError{Kind: ErrKindEmptyKey, Line: startLine}
	}
	if ValidateKey(key) != nil {
		return Token{}, &ParseError{Kind: ErrKindInvalidKey, Line: startLine, Key: key}
	}

	// A bare KEY without '=' is an item with an empty value.
	if p.atEOL() {
		return ItemToken(key, ""), nil
	}
	p.pos++ // '='

	p.skipBlanks()
	switch q := p.peek(); q {
	case '\'', '"', '`':
		if value, ok := p.quoted(q); ok {
			// Anything after the closing quote is ignored.
			p.restOfLine()
			return ItemToken(key, value), nil
		}
	}
	return ItemToken(key, strings.TrimRight(p.restOfLine(), " \t")), nil
}

// trimExport drops a leading "export " from a key.
func trimExport(key string) string {
	rest, ok := strings.CutPrefix(key, "export")
	if !ok || rest == "" || (rest[0] != ' ' && rest[0] != '\t') {
		return key
	}
	return strings.TrimSpace(rest)
}

// quoted reads a value opened by quote q at pos. On success pos is left just
// after the closing quote. When the quote is never closed pos is restored
// and ok is false.
func (p *parser) quoted(q rune) (string, bool) {
	save, saveLine := p.pos, p.line
	p.pos++ // opening quote

	var sb strings.Builder
	for !p.eof() {
		r := p.src[p.pos]
		switch {
		case r == q:
			p.pos++
			return sb.String(), true

		case r == '\r' && p.pos+1 < len(p.src) && p.src[p.pos+1] == '\n':
			p.pos++

		case r == '\n':
			sb.WriteRune('\n')
			p.pos++
			p.line++

		case r == '\\' && q == '\'':
			if p.pos+1 < len(p.src) && p.src[p.pos+1] == '\'' {
				sb.WriteRune('\'')
				p.pos += 2
				continue
			}
			sb.WriteRune(r)
			p.pos++

		case r == '\\':
			p.escape(&sb)

		case r == '$' && q == '"' && p.pos+1 < len(p.src) && p.src[p.pos+1] == '(':
			if !p.substitution(&sb) {
				p.pos, p.line = save, saveLine
				return "", false
			}

		default:
			sb.WriteRune(r)
			p.pos++
		}
	}

	p.pos, p.line = save, saveLine
	return "", false
}

// escape resolves the backslash sequence at pos.
func (p *parser) escape(sb *strings.Builder) {
	if p.pos+1 >= len(p.src) {
		sb.WriteRune('\\')
		p.pos++
		return
	}

	next := p.src[p.pos+1]
	switch next {
	case 'n':
		sb.WriteRune('\n')
	case 'r':
		sb.WriteRune('\r')
	case 't':
		sb.WriteRune('\t')
	case 'b':
		sb.WriteRune('\b')
	case '\\', '"', '\'', '`':
		sb.WriteRune(next)
	case 'u':
		if p.unicodeEscape(sb, 4) {
			return
		}
		sb.WriteRune('\\')
		sb.WriteRune(next)
	case 'U':
		if p.unicodeEscape(sb, 8) {
			return
		}
		sb.WriteRune('\\')
		sb.WriteRune(next)
	case '\n':
		// Backslash before a raw newline keeps both; the newline is read
		// by the caller.
		sb.WriteRune('\\')
		p.pos++
		return
	default:
		sb.WriteRune('\\')
		sb.WriteRune(next)
	}
	p.pos += 2
}

// unicodeEscape decodes \u or \U followed by digits hex digits at pos.
func (p *parser) unicodeEscape(sb *strings.Builder, digits int) bool {
	start := p.pos + 2
	end := start + digits
	if end > len(p.src) {
		return false
	}
	n, err := strconv.ParseUint(string(p.src[start:end]), 16, 32)
	if err != nil {
		return false
	}

	r := rune(n)
	if digits == 4 && utf16.IsSurrogate(r) {
		// A high surrogate pairs with a directly following \uXXXX low
		// surrogate. Lone halves are kept as written.
		low, ok := p.hex4(end)
		if !ok {
			return false
		}
		r = utf16.DecodeRune(r, low)
		if r == utf8.RuneError {
			return false
		}
		end += 6
	}
	if !utf8.ValidRune(r) {
		return false
	}
	sb.WriteRune(r)
	p.pos = end
	return true
}

// hex4 decodes a \uXXXX escape at i.
func (p *parser) hex4(i int) (rune, bool) {
	if i+6 > len(p.src) || p.src[i] != '\\' || p.src[i+1] != 'u' {
		return 0, false
	}
	n, err := strconv.ParseUint(string(p.src[i+2:i+6]), 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(n), true
}

// substitution copies a $( ... ) span verbatim, balancing nested parens.
func (p *parser) substitution(sb *strings.Builder) bool {
	depth := 0
	for !p.eof() {
		r := p.src[p.pos]
		sb.WriteRune(r)
		p.pos++
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return true
			}
		case '\n':
			p.line++
		}
	}
	return false
}
