// Package assert provides assertions that return errors instead of failing a
// test, for use in stave targets, health checks and other non-test code.
package assert

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/google/go-cmp/cmp"
)

// AssertionError describes a failed assertion.
type AssertionError struct {
	// Assertion names the check, e.g. "Equal".
	Assertion string

	// Message is the caller's optional description.
	Message string

	// Diff is a go-cmp diff (-expected +actual) when the check compares
	// values.
	Diff string
}

func (e *AssertionError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Assertion)
	sb.WriteString(" failed")
	if e.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}
	if e.Diff != "" {
		sb.WriteString("\n")
		sb.WriteString(e.Diff)
	}
	return sb.String()
}

func fail(assertion, diff string, msg []any) error {
	return &AssertionError{Assertion: assertion, Message: message(msg), Diff: diff}
}

// message formats optional trailing arguments: a lone value is printed with
// %v, a leading string with more arguments is used as a format.
func message(msg []any) string {
	switch len(msg) {
	case 0:
		return ""
	case 1:
		return fmt.Sprint(msg[0])
	}
	if format, ok := msg[0].(string); ok {
		return fmt.Sprintf(format, msg[1:]...)
	}
	return fmt.Sprint(msg...)
}

// Equal checks that actual and expected are equal according to cmp.Equal.
// Unexported struct fields are compared too.
func Equal(actual, expected any, msg ...any) error {
	opt := cmp.Exporter(func(reflect.Type) bool { return true })
	if cmp.Equal(expected, actual, opt) {
		return nil
	}
	return fail("Equal", cmp.Diff(expected, actual, opt), msg)
}

// NotEqual checks that actual and expected differ.
func NotEqual(actual, expected any, msg ...any) error {
	if !cmp.Equal(expected, actual, cmp.Exporter(func(reflect.Type) bool { return true })) {
		return nil
	}
	return fail("NotEqual", fmt.Sprintf("both values are %#v", actual), msg)
}

// True checks that cond holds.
func True(cond bool, msg ...any) error {
	if cond {
		return nil
	}
	return fail("True", "", msg)
}

// False checks that cond does not hold.
func False(cond bool, msg ...any) error {
	if !cond {
		return nil
	}
	return fail("False", "", msg)
}

// Nil checks that v is nil, including typed nil pointers, maps, slices,
// channels, funcs and interfaces.
func Nil(v any, msg ...any) error {
	if isNil(v) {
		return nil
	}
	return fail("Nil", fmt.Sprintf("got %#v", v), msg)
}

// NotNil checks that v is not nil.
func NotNil(v any, msg ...any) error {
	if !isNil(v) {
		return nil
	}
	return fail("NotNil", "", msg)
}

// NoError checks that err is nil.
func NoError(err error, msg ...any) error {
	if err == nil {
		return nil
	}
	return fail("NoError", "unexpected error: "+err.Error(), msg)
}

// Contains checks that s contains substr. s may be a string, a slice or
// array (element equality), or a map (key presence).
func Contains(s, substr any, msg ...any) error {
	found, ok := contains(s, substr)
	if !ok {
		return fail("Contains", fmt.Sprintf("cannot search %T", s), msg)
	}
	if found {
		return nil
	}
	return fail("Contains", fmt.Sprintf("%#v does not contain %#v", s, substr), msg)
}

// Panics checks that fn panics.
func Panics(fn func(), msg ...any) (err error) {
	defer func() {
		if recover() == nil {
			err = fail("Panics", "function did not panic", msg)
		}
	}()
	fn()
	return nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return rv.IsNil()
	default:
		return false
	}
}

func contains(s, elem any) (found, ok bool) {
	if str, isStr := s.(string); isStr {
		sub, isSub := elem.(string)
		if !isSub {
			return false, false
		}
		return strings.Contains(str, sub), true
	}

	rv := reflect.ValueOf(s)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := range rv.Len() {
			if cmp.Equal(rv.Index(i).Interface(), elem) {
				return true, true
			}
		}
		return false, true
	case reflect.Map:
		for _, key := range rv.MapKeys() {
			if cmp.Equal(key.Interface(), elem) {
				return true, true
			}
		}
		return false, true
	default:
		return false, false
	}
}
