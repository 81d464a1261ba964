package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/stdkit/pkg/chars"
	"github.com/yaklabco/stdkit/pkg/strcase"
)

// caseStyle converts one identifier.
type caseStyle func(s string, opts strcase.Options) (string, error)

func infallible(fn func(string, strcase.Options) string) caseStyle {
	return func(s string, opts strcase.Options) (string, error) { return fn(s, opts), nil }
}

//nolint:gochecknoglobals // Read-only lookup table.
var caseStyles = map[string]caseStyle{
	"camel":      infallible(strcase.CamelizeString),
	"pascal":     infallible(strcase.PascalizeString),
	"capitalize": infallible(strcase.CapitalizeString),
	"snake":      strcase.UnderscoreString,
	"kebab":      strcase.DasherizeString,
	"title":      func(s string, _ strcase.Options) (string, error) { return strcase.TitleizeString(s), nil },
	"ordinal":    func(s string, _ strcase.Options) (string, error) { return strcase.OrdinalizeString(s), nil },
}

//nolint:gochecknoglobals // Read-only lookup table.
var caseAliases = map[string]string{
	"underscore": "snake",
	"dasherize":  "kebab",
	"camelize":   "camel",
	"pascalize":  "pascal",
	"titleize":   "title",
	"ordinalize": "ordinal",
}

func lookupCaseStyle(name string) (caseStyle, error) {
	name = strings.ToLower(name)
	if alias, ok := caseAliases[name]; ok {
		name = alias
	}
	style, ok := caseStyles[name]
	if !ok {
		styles := slices.Sorted(maps.Keys(caseStyles))
		return nil, fmt.Errorf("%w: unknown case style %q (want %s)", ErrUsage, name, strings.Join(styles, ", "))
	}
	return style, nil
}

func newCaseCommand() *cobra.Command {
	var opts strcase.Options
	var trimSuffix string

	cmd := &cobra.Command{
		Use:   "case STYLE [words...]",
		Short: "Convert identifiers between naming conventions",
		Long: `Convert identifiers to another naming convention, one result per line.
With no words, each line of standard input is converted.

Styles:
  camel       helloWorld
  pascal      HelloWorld
  capitalize  Hello world
  snake       hello_world   (--screaming: HELLO_WORLD)
  kebab       hello-world   (--screaming: HELLO-WORLD)
  title       Hello World
  ordinal     1 -> 1st

Examples:
  stdkit case snake helloWorld          # hello_world
  stdkit case kebab --screaming a_b     # A-B
  stdkit case camel --trim-suffix _id user_id`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			style, err := lookupCaseStyle(args[0])
			if err != nil {
				return err
			}
			if trimSuffix != "" {
				opts.TrimSuffix = chars.FromString(trimSuffix)
			}

			convert := func(word string) error {
				out, err := style(word, opts)
				if errors.Is(err, strcase.ErrInvalidOptions) {
					return fmt.Errorf("%w: %w", ErrUsage, err)
				}
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			}

			if len(args) > 1 {
				for _, word := range args[1:] {
					if err := convert(word); err != nil {
						return err
					}
				}
				return nil
			}
			return eachLine(cmd.InOrStdin(), convert)
		},
	}

	cmd.Flags().BoolVar(&opts.Screaming, "screaming", false, "upper case every letter (snake and kebab)")
	cmd.Flags().BoolVar(&opts.PreserveCase, "preserve-case", false, "keep the case of letters that would be lower cased")
	cmd.Flags().StringVar(&trimSuffix, "trim-suffix", "", "remove this suffix before converting")
	return cmd
}

func eachLine(r io.Reader, fn func(string) error) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if err := fn(strings.TrimRight(scanner.Text(), "\r")); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

type foldFlags struct {
	mode  string
	exact bool
	start int
}

func newFoldCommand() *cobra.Command {
	flags := &foldFlags{}

	cmd := &cobra.Command{
		Use:   "fold TEXT OTHER",
		Short: "Compare strings without regard to case",
		Long: `Compare TEXT with OTHER using simple Unicode case folding, so "Straße"
and "STRASSE" differ but "ǅ" matches "ǆ".

Modes:
  equal     TEXT and OTHER are the same
  prefix    OTHER occurs in TEXT at --start (default 0)
  suffix    OTHER occurs in TEXT ending at --start (default: end of TEXT)
  contains  OTHER occurs in TEXT
  index     print the first index of OTHER in TEXT at or after --start
  last      print the last index of OTHER in TEXT at or before --start

Prints the answer and exits 1 when it is false or -1.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, other := chars.FromString(args[0]), chars.FromString(args[1])
			if !cmd.Flags().Changed("start") && (flags.mode == "last" || flags.mode == "suffix") {
				flags.start = text.Len()
			}

			answer, err := foldCompare(flags, text, other)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), answer)
			if answer == "false" || answer == "-1" {
				return ErrIssuesFound
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.mode, "mode", "m", "equal", "equal, prefix, suffix, contains, index or last")
	cmd.Flags().BoolVar(&flags.exact, "exact", false, "compare code points exactly instead of folding")
	cmd.Flags().IntVar(&flags.start, "start", 0, "position for the prefix, suffix, index and last modes")
	return cmd
}

func foldCompare(flags *foldFlags, text, other chars.Buffer) (string, error) {
	pick := func(exact, fold func(a, b chars.Buffer) bool) string {
		if flags.exact {
			return fmt.Sprint(exact(text, other))
		}
		return fmt.Sprint(fold(text, other))
	}
	at := func(exact, fold func(a, b chars.Buffer, pos int) (bool, error)) (string, error) {
		fn := fold
		if flags.exact {
			fn = exact
		}
		ok, err := fn(text, other, flags.start)
		if errors.Is(err, strcase.ErrOutOfRange) {
			return "", fmt.Errorf("%w: start %d: %w", ErrUsage, flags.start, err)
		}
		return fmt.Sprint(ok), err
	}
	index := func(exact, fold func(a, b chars.Buffer, start int) (int, error)) (string, error) {
		fn := fold
		if flags.exact {
			fn = exact
		}
		i, err := fn(text, other, flags.start)
		if errors.Is(err, strcase.ErrOutOfRange) {
			return "", fmt.Errorf("%w: start %d: %w", ErrUsage, flags.start, err)
		}
		return fmt.Sprint(i), err
	}

	switch flags.mode {
	case "equal":
		return pick(strcase.Equal, strcase.EqualFold), nil
	case "prefix":
		return at(strcase.StartsWith, strcase.StartsWithFold)
	case "suffix":
		return at(strcase.EndsWith, strcase.EndsWithFold)
	case "contains":
		return pick(strcase.Contains, strcase.ContainsFold), nil
	case "index":
		return index(strcase.IndexOf, strcase.IndexOfFold)
	case "last":
		return index(strcase.LastIndexOf, strcase.LastIndexOfFold)
	default:
		return "", fmt.Errorf("%w: unknown mode %q", ErrUsage, flags.mode)
	}
}
