package dotenv

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/compose-spec/compose-go/v2/template"
)

// LookupFunc resolves a variable that is not defined in the values being
// expanded, typically from the process environment.
type LookupFunc func(key string) (string, bool)

// Expand resolves variable references in values and returns a new map.
//
// Substitution follows the Compose interpolation syntax: $NAME, ${NAME},
// ${NAME:-default} (default when unset or empty), ${NAME-default} (default
// when unset), the :? ? :+ and + forms, and $$ for a literal '$'. In
// addition \$ yields a literal '$', a '$' that starts no reference is kept
// as written, and ${key} may name a defined key holding '.' or '-'.
//
// References resolve against the other entries of values first and then
// lookup. A value may refer to its own key, which reads the looked-up value
// (PATH=$PATH:/opt/bin); any longer cycle returns ErrExpansionCycle.
func Expand(values map[string]string, lookup LookupFunc) (map[string]string, error) {
	exp := &expander{
		values:  values,
		lookup:  lookup,
		done:    make(map[string]string, len(values)),
		aliases: make(map[string]string),
	}

	out := make(map[string]string, len(values))
	for key := range values {
		value, err := exp.resolve(key)
		if err != nil {
			return nil, err
		}
		out[key] = value
	}
	return out, nil
}

type expander struct {
	values map[string]string
	lookup LookupFunc
	done   map[string]string
	stack  []string

	// aliases maps placeholder names to keys that Compose names cannot
	// spell.
	aliases map[string]string

	// err is the first failure raised inside a template mapping.
	err error
}

func (e *expander) resolve(key string) (string, error) {
	if value, ok := e.done[key]; ok {
		return value, nil
	}
	for _, active := range e.stack {
		if active == key {
			return "", fmt.Errorf("%w: %s -> %s", ErrExpansionCycle, strings.Join(e.stack, " -> "), key)
		}
	}

	e.stack = append(e.stack, key)
	value, err := e.expand(e.values[key])
	e.stack = e.stack[:len(e.stack)-1]
	if err != nil {
		return "", err
	}

	e.done[key] = value
	return value, nil
}

func (e *expander) get(name string) (string, bool, error) {
	self := len(e.stack) > 0 && e.stack[len(e.stack)-1] == name
	if _, ok := e.values[name]; ok && !self {
		value, err := e.resolve(name)
		return value, true, err
	}
	if e.lookup == nil {
		return "", false, nil
	}
	value, ok := e.lookup(name)
	return value, ok, nil
}

// mapping adapts get to a template.Mapping. Errors are parked in e.err
// because a Mapping cannot return one.
func (e *expander) mapping(name string) (string, bool) {
	if key, ok := e.aliases[name]; ok {
		name = key
	}
	value, ok, err := e.get(name)
	if err != nil {
		if e.err == nil {
			e.err = err
		}
		return "", true
	}
	return value, ok
}

func (e *expander) expand(s string) (string, error) {
	if !strings.Contains(s, "$") {
		return s, nil
	}

	out, err := template.SubstituteWithOptions(e.prepare(s), e.mapping, template.WithoutLogging)
	if e.err != nil {
		err, e.err = e.err, nil
		return "", err
	}
	if err != nil {
		return "", fmt.Errorf("expand %q: %w", s, err)
	}
	return out, nil
}

// prepare rewrites s into a Compose template: \$ and any '$' that starts no
// reference become $$, and ${key} for a defined key outside the Compose name
// syntax is replaced by a placeholder resolved through aliases.
func (e *expander) prepare(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s) && s[i+1] == '$':
			sb.WriteString("$$")
			i++

		case c != '$':
			sb.WriteByte(c)

		case i+1 < len(s) && s[i+1] == '$':
			sb.WriteString("$$")
			i++

		case i+1 < len(s) && isNameStart(s[i+1]):
			sb.WriteByte('$')

		case i+1 < len(s) && s[i+1] == '{':
			end := closingBrace(s, i+2)
			if end < 0 || i+2 >= len(s) || !isNameStart(s[i+2]) {
				sb.WriteString("$$")
				continue
			}
			if name := s[i+2 : end]; !isComposeName(name) {
				if _, defined := e.values[name]; defined {
					sb.WriteString("${" + e.alias(name) + "}")
					i = end
					continue
				}
			}
			sb.WriteByte('$')

		default:
			sb.WriteString("$$")
		}
	}
	return sb.String()
}

func (e *expander) alias(key string) string {
	for name, aliased := range e.aliases {
		if aliased == key {
			return name
		}
	}
	name := "_stdkit_ref_" + strconv.Itoa(len(e.aliases))
	e.aliases[name] = key
	return name
}

// closingBrace returns the index of the '}' matching an opening brace just
// before start, or -1.
func closingBrace(s string, start int) int {
	depth := 1
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func isNameStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isNameByte(c byte) bool {
	return isNameStart(c) || ('0' <= c && c <= '9')
}

// isComposeName reports whether name is a plain Compose variable name.
func isComposeName(name string) bool {
	if name == "" || !isNameStart(name[0]) {
		return false
	}
	for i := 1; i < len(name); i++ {
		if !isNameByte(name[i]) {
			return false
		}
	}
	return true
}
