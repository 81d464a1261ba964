package dotenv

import (
	"errors"
	"fmt"
)

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrEmptyKey indicates an item whose key is empty after trimming.
	ErrEmptyKey = errors.New("empty key")

	// ErrInvalidKey indicates an item whose key contains a disallowed character.
	ErrInvalidKey = errors.New("invalid key")

	// ErrExpansionCycle indicates variables that reference each other.
	ErrExpansionCycle = errors.New("variable expansion cycle")
)

// ErrorKind classifies a ParseError.
type ErrorKind int

// Parse error kinds.
const (
	ErrKindEmptyKey ErrorKind = iota + 1
	ErrKindInvalidKey
)

// ParseError reports a malformed item. A ParseError aborts the whole parse.
type ParseError struct {
	// Kind is the failure class.
	Kind ErrorKind

	// Line is the 1-based line the item starts on.
	Line int

	// Key is the offending key as written, trimmed.
	Key string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	switch e.Kind {
	case ErrKindEmptyKey:
		return fmt.Sprintf("line %d: %v", e.Line, ErrEmptyKey)
	case ErrKindInvalidKey:
		return fmt.Sprintf("line %d: %v %q", e.Line, ErrInvalidKey, e.Key)
	default:
		return fmt.Sprintf("line %d: parse error", e.Line)
	}
}

// Unwrap returns the sentinel matching Kind.
func (e *ParseError) Unwrap() error {
	switch e.Kind {
	case ErrKindEmptyKey:
		return ErrEmptyKey
	case ErrKindInvalidKey:
		return ErrInvalidKey
	default:
		return nil
	}
}

// ValidateKey reports whether key can be used as a variable name: it must be
// non-empty and contain only ASCII letters, digits, '_', '.' or '-'.
func ValidateKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	for i := range len(key) {
		if !isKeyByte(key[i]) {
			return fmt.Errorf("%w %q: character %q not allowed", ErrInvalidKey, key, key[i])
		}
	}
	return nil
}

func isKeyByte(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '_', c == '.', c == '-':
		return true
	default:
		return false
	}
}
