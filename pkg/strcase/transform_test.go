package strcase_test

import (
	"errors"
	"testing"

	"github.com/yaklabco/stdkit/pkg/chars"
	"github.com/yaklabco/stdkit/pkg/strcase"
)

func TestCapitalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		opts  strcase.Options
		want  string
	}{
		{"empty", "", strcase.Options{}, ""},
		{"lower", "hello", strcase.Options{}, "Hello"},
		{"mixed", "hELLO wORLD", strcase.Options{}, "Hello world"},
		{"preserve", "hELLO", strcase.Options{PreserveCase: true}, "HELLO"},
		{"non ascii", "élan", strcase.Options{}, "Élan"},
		{"trim suffix", "helloService", strcase.Options{TrimSuffix: chars.FromString("Service")}, "Hello"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			if got := strcase.CapitalizeString(testCase.input, testCase.opts); got != testCase.want {
				t.Errorf("CapitalizeString(%q) = %q, want %q", testCase.input, got, testCase.want)
			}
		})
	}
}

func TestCamelize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		opts  strcase.Options
		want  string
	}{
		{"snake", "hello_world", strcase.Options{}, "helloWorld"},
		{"kebab", "hello-world", strcase.Options{}, "helloWorld"},
		{"spaces", "hello world again", strcase.Options{}, "helloWorldAgain"},
		{"pascal input is not split", "HelloWorld", strcase.Options{}, "helloworld"},
		{"camel input kept", "helloWorld", strcase.Options{}, "helloWorld"},
		{"single letter words", "a_b_c", strcase.Options{}, "aBC"},
		{"lower initial upper run kept", "hELLO", strcase.Options{}, "hELLO"},
		{"upper initial lowered", "HELLO", strcase.Options{}, "hello"},
		{"screaming snake", "HELLO_WORLD", strcase.Options{}, "helloWorld"},
		{"preserve", "HELLO_WORLD", strcase.Options{PreserveCase: true}, "hELLOWORLD"},
		{"collapsed separators", "hello__--world", strcase.Options{}, "helloWorld"},
		{"leading separators", "__hello_world", strcase.Options{}, "helloWorld"},
		{"trailing separators", "hello_world__", strcase.Options{}, "helloWorld"},
		{"digit keeps boundary", "hello_2world", strcase.Options{}, "hello2World"},
		{"digit in word", "v2_api", strcase.Options{}, "v2Api"},
		{"greek", "γειά_σου", strcase.Options{}, "γειάΣου"},
		{"empty", "", strcase.Options{}, ""},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			if got := strcase.CamelizeString(testCase.input, testCase.opts); got != testCase.want {
				t.Errorf("CamelizeString(%q) = %q, want %q", testCase.input, got, testCase.want)
			}
		})
	}
}

func TestCamelize_Idempotent(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"hello_world", "a-b-c", "some long phrase", "HTTP_SERVER"} {
		once := strcase.CamelizeString(input, strcase.Options{})
		twice := strcase.CamelizeString(once, strcase.Options{})
		if once != twice {
			t.Errorf("Camelize not idempotent for %q: %q then %q", input, once, twice)
		}
	}
}

func TestPascalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"snake", "hello_world", "HelloWorld"},
		{"kebab", "foo-bar-baz", "FooBarBaz"},
		{"spaces", "hello world", "HelloWorld"},
		{"camel is not split", "helloWorld", "Helloworld"},
		{"screaming", "HELLO_WORLD", "HelloWorld"},
		{"leading separator", "_private", "Private"},
		{"cyrillic", "привет_мир", "ПриветМир"},
		{"empty", "", ""},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			if got := strcase.PascalizeString(testCase.input, strcase.Options{}); got != testCase.want {
				t.Errorf("PascalizeString(%q) = %q, want %q", testCase.input, got, testCase.want)
			}
		})
	}
}

func TestUnderscore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		opts  strcase.Options
		want  string
	}{
		{"camel", "helloWorld", strcase.Options{}, "hello_world"},
		{"pascal", "HelloWorld", strcase.Options{}, "hello_world"},
		{"kebab", "hello-world", strcase.Options{}, "hello_world"},
		{"spaces", "hello big world", strcase.Options{}, "hello_big_world"},
		{"collapse", "hello__ -world", strcase.Options{}, "hello_world"},
		{"strip edges", "_hello_world_", strcase.Options{}, "hello_world"},
		{"screaming", "helloWorld", strcase.Options{Screaming: true}, "HELLO_WORLD"},
		{"preserve", "helloWorld", strcase.Options{PreserveCase: true}, "hello_World"},
		{"acronym run", "HTTPServer", strcase.Options{}, "httpserver"},
		{"digits", "version2Beta", strcase.Options{}, "version2beta"},
		{"greek", "καλήΜέρα", strcase.Options{}, "καλή_μέρα"},
		{"empty", "", strcase.Options{}, ""},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, err := strcase.UnderscoreString(testCase.input, testCase.opts)
			if err != nil {
				t.Fatalf("UnderscoreString(%q) error = %v", testCase.input, err)
			}
			if got != testCase.want {
				t.Errorf("UnderscoreString(%q) = %q, want %q", testCase.input, got, testCase.want)
			}
		})
	}
}

func TestDasherize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		opts  strcase.Options
		want  string
	}{
		{"camel", "helloWorld", strcase.Options{}, "hello-world"},
		{"snake", "hello_world", strcase.Options{}, "hello-world"},
		{"screaming", "hello world", strcase.Options{Screaming: true}, "HELLO-WORLD"},
		{"strip edges", "--hello--", strcase.Options{}, "hello"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, err := strcase.DasherizeString(testCase.input, testCase.opts)
			if err != nil {
				t.Fatalf("DasherizeString(%q) error = %v", testCase.input, err)
			}
			if got != testCase.want {
				t.Errorf("DasherizeString(%q) = %q, want %q", testCase.input, got, testCase.want)
			}
		})
	}
}

func TestDelimit_MutuallyExclusiveOptions(t *testing.T) {
	t.Parallel()

	opts := strcase.Options{Screaming: true, PreserveCase: true}

	if _, err := strcase.Underscore(chars.FromString("x"), opts); !errors.Is(err, strcase.ErrInvalidOptions) {
		t.Errorf("Underscore error = %v, want ErrInvalidOptions", err)
	}
	if _, err := strcase.Dasherize(chars.FromString("x"), opts); !errors.Is(err, strcase.ErrInvalidOptions) {
		t.Errorf("Dasherize error = %v, want ErrInvalidOptions", err)
	}
}

func TestTitleize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "hello world", "Hello World"},
		{"camel", "lordOfTheRings", "Lord of the Rings"},
		{"snake", "the_lord_of_the_rings", "The Lord of the Rings"},
		{"stop word first", "a tale of two cities", "A Tale of Two Cities"},
		{"stop word upper", "war AND peace", "War and Peace"},
		{"collapses separators", "  hello--world__", "Hello World"},
		{"empty", "", ""},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			if got := strcase.TitleizeString(testCase.input); got != testCase.want {
				t.Errorf("TitleizeString(%q) = %q, want %q", testCase.input, got, testCase.want)
			}
		})
	}
}

func TestOrdinalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"1", "1st"},
		{"2", "2nd"},
		{"3", "3rd"},
		{"4", "4th"},
		{"11", "11th"},
		{"12", "12th"},
		{"13", "13th"},
		{"21", "21st"},
		{"22", "22nd"},
		{"101", "101st"},
		{"111", "111th"},
		{"1000", "1000th"},
		{"test123abc", "test123abc"},
		{"1 2 3", "1st 2nd 3rd"},
		{"page 42\tline 7", "page 42nd\tline 7th"},
		{"no digits", "no digits"},
		{"", ""},
	}

	for _, testCase := range tests {
		t.Run(testCase.input, func(t *testing.T) {
			t.Parallel()

			if got := strcase.OrdinalizeString(testCase.input); got != testCase.want {
				t.Errorf("OrdinalizeString(%q) = %q, want %q", testCase.input, got, testCase.want)
			}
		})
	}
}

func BenchmarkUnderscore(b *testing.B) {
	buf := chars.FromString("someRatherLongIdentifierWithManyWords")
	for b.Loop() {
		_, _ = strcase.Underscore(buf, strcase.Options{})
	}
}

func BenchmarkCamelize(b *testing.B) {
	buf := chars.FromString("some_rather_long_identifier_with_many_words")
	for b.Loop() {
		strcase.Camelize(buf, strcase.Options{})
	}
}
