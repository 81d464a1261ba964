package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/stdkit/internal/logging"
	"github.com/yaklabco/stdkit/internal/ui/pretty"
	"github.com/yaklabco/stdkit/pkg/config"
	"github.com/yaklabco/stdkit/pkg/dotenv"
	"github.com/yaklabco/stdkit/pkg/env"
	"github.com/yaklabco/stdkit/pkg/fsutil"
	"github.com/yaklabco/stdkit/pkg/secrets"
)

// ErrKeyNotFound is returned by "dotenv get" and "dotenv unset" for an
// absent key.
var ErrKeyNotFound = errors.New("key not found")

// loaded is the merged view of several dotenv files.
type loaded struct {
	keys    []string // first appearance order
	values  map[string]string
	sources map[string]string // file that set the final value
}

func loadFiles(ctx context.Context, files []string, expand bool) (*loaded, error) {
	out := &loaded{values: make(map[string]string), sources: make(map[string]string)}
	logger := logging.Default()

	for _, path := range files {
		doc, err := dotenv.LoadFile(ctx, path)
		if errors.Is(err, fsutil.ErrNotFound) {
			logger.Debug("skipping missing dotenv file", logging.FieldPath, path)
			continue
		}
		if err != nil {
			return nil, err
		}
		for _, tok := range doc.All() {
			if tok.Kind != dotenv.KindItem {
				continue
			}
			if _, seen := out.values[tok.Key]; !seen {
				out.keys = append(out.keys, tok.Key)
			}
			out.values[tok.Key] = tok.Value
			out.sources[tok.Key] = path
		}
	}

	if expand {
		expanded, err := dotenv.Expand(out.values, env.OS().Lookup)
		if err != nil {
			return nil, err
		}
		out.values = expanded
	}
	return out, nil
}

type fileFlags struct {
	files  []string
	expand bool
}

func (f *fileFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&f.files, "file", "f", nil, "dotenv files to read, in order (default from config)")
	cmd.Flags().BoolVar(&f.expand, "expand", false, "resolve $VAR references")
}

func (f *fileFlags) overrides() *config.Config {
	cfg := &config.Config{}
	if len(f.files) > 0 {
		cfg.Dotenv.Files = f.files
	}
	if f.expand {
		cfg.Dotenv.Expand = config.Bool(true)
	}
	return cfg
}

func newDotenvGetCommand() *cobra.Command {
	flags := &fileFlags{}
	var ignoreCase bool

	cmd := &cobra.Command{
		Use:   "get KEY",
		Short: "Print the value of a variable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags.overrides())
			if err != nil {
				return err
			}
			vars, err := loadFiles(cmd.Context(), cfg.Dotenv.Files, cfg.ExpandEnabled())
			if err != nil {
				return err
			}

			value, ok := vars.values[args[0]]
			if !ok && ignoreCase {
				value, ok = env.LookupFold(env.NewMap(vars.values), args[0])
			}
			if !ok {
				return fmt.Errorf("%w: %s", ErrKeyNotFound, args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&ignoreCase, "ignore-case", "i", false, "match the key without regard to case")
	return cmd
}

// targetFile is the file "set" and "unset" edit: --file, or the first
// configured dotenv file.
func targetFile(file string, cfg *config.Config) string {
	if file != "" {
		return file
	}
	if len(cfg.Dotenv.Files) > 0 {
		return cfg.Dotenv.Files[0]
	}
	return dotenv.DefaultFile
}

func saveDocument(cmd *cobra.Command, cfg *config.Config, path string, doc *dotenv.Document) error {
	written, err := dotenv.Save(cmd.Context(), path, doc, dotenv.SaveOptions{
		Backup:       cfg.BackupConfig(),
		OnlyLineFeed: cfg.OnlyLineFeed(),
	})
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	logging.Default().Debug("saved dotenv file", logging.FieldPath, path, "written", written)
	return nil
}

func newDotenvSetCommand() *cobra.Command {
	var file string
	var noBackups bool

	cmd := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a variable, creating the file if needed",
		Long: `Set a variable in a dotenv file.

An existing item keeps its place in the file; a new one is added at the end.
Comments and blank lines are preserved.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			if err := dotenv.ValidateKey(key); err != nil {
				return fmt.Errorf("%w: %w", ErrUsage, err)
			}

			overrides := &config.Config{}
			if noBackups {
				overrides.Backups.Enabled = config.Bool(false)
			}
			cfg, err := loadConfig(cmd, overrides)
			if err != nil {
				return err
			}

			path := targetFile(file, cfg)
			doc, err := dotenv.LoadFile(cmd.Context(), path)
			switch {
			case errors.Is(err, fsutil.ErrNotFound):
				doc = dotenv.NewDocument().Newline()
			case err != nil:
				return err
			}

			if _, exists := doc.Get(key); exists {
				doc.Set(key, value)
			} else {
				appendItem(doc, key, value)
			}
			return saveDocument(cmd, cfg, path, doc)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "dotenv file to edit (default: first configured file)")
	cmd.Flags().BoolVar(&noBackups, "no-backups", false, "disable backup creation")
	return cmd
}

// appendItem adds an item after the last line with content, so a file's
// final line break stays at the end.
func appendItem(doc *dotenv.Document, key, value string) {
	at := doc.Len()
	for at > 0 && doc.At(at-1).Kind == dotenv.KindNewline {
		at--
	}
	if at == doc.Len() {
		doc.Item(key, value)
		return
	}
	doc.Insert(at, dotenv.ItemToken(key, value))
}

func newDotenvUnsetCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "unset KEY",
		Short: "Remove every item with a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, nil)
			if err != nil {
				return err
			}

			path := targetFile(file, cfg)
			doc, err := dotenv.LoadFile(cmd.Context(), path)
			if err != nil {
				return err
			}
			if doc.Delete(args[0]) == 0 {
				return fmt.Errorf("%w: %s", ErrKeyNotFound, args[0])
			}
			return saveDocument(cmd, cfg, path, doc)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "dotenv file to edit (default: first configured file)")
	return cmd
}

func newDotenvListCommand() *cobra.Command {
	flags := &fileFlags{}
	var showSecrets, asJSON bool
	var maskKeys []string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List variables from the configured dotenv files",
		Long: `List the merged variables from the configured dotenv files with the file
that set each one. Values of keys named in secrets.env or --mask are hidden
unless --show-secrets is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, flags.overrides())
			if err != nil {
				return err
			}
			vars, err := loadFiles(cmd.Context(), cfg.Dotenv.Files, cfg.ExpandEnabled())
			if err != nil {
				return err
			}

			secretKeys := append(slices.Clone(cfg.Secrets.Env), maskKeys...)
			hidden := func(key string) bool {
				return !showSecrets && slices.Contains(secretKeys, key)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				view := make(map[string]string, len(vars.values))
				for key, value := range vars.values {
					if hidden(key) {
						value = secrets.Mask
					}
					view[key] = value
				}
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				if err := encoder.Encode(view); err != nil {
					return fmt.Errorf("encode JSON: %w", err)
				}
				return nil
			}

			rows := make([]pretty.TableRow, 0, len(vars.keys))
			for _, key := range vars.keys {
				row := pretty.TableRow{Key: key, Value: vars.values[key], Source: vars.sources[key]}
				if hidden(key) {
					row.Value, row.Masked = secrets.Mask, true
				}
				rows = append(rows, row)
			}

			styles := pretty.NewStyles(pretty.IsColorEnabled(cfg.Color, out))
			fmt.Fprint(out, pretty.NewTableFormatter(styles, terminalWidth(out)).FormatTable(rows))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&showSecrets, "show-secrets", false, "print secret values")
	cmd.Flags().StringSliceVar(&maskKeys, "mask", nil, "additional keys whose values are hidden")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print a JSON object instead of a table")
	return cmd
}

func newDotenvExpandCommand() *cobra.Command {
	flags := &fileFlags{}
	var export bool

	cmd := &cobra.Command{
		Use:   "expand",
		Short: "Print the merged, expanded variables as a dotenv file",
		Long: `Print the merged variables from the configured dotenv files with $VAR
references resolved, one KEY='value' per line. With --export each line
is "export KEY='value'" quoted for a POSIX shell, so the output can be
sourced; keys that are not valid shell names are skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags.expand = true
			cfg, err := loadConfig(cmd, flags.overrides())
			if err != nil {
				return err
			}
			vars, err := loadFiles(cmd.Context(), cfg.Dotenv.Files, true)
			if err != nil {
				return err
			}

			opts := dotenv.StringifyOptions{OnlyLineFeed: cfg.OnlyLineFeed()}
			if export {
				return writeExports(cmd.OutOrStdout(), vars, opts.EOL())
			}

			doc := dotenv.NewDocument()
			for _, key := range vars.keys {
				doc.Item(key, vars.values[key])
			}
			if doc.Len() > 0 {
				doc.Newline()
			}
			_, err = io.WriteString(cmd.OutOrStdout(), dotenv.Stringify(doc, opts))
			return err
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&export, "export", false, `prefix each line with "export "`)
	return cmd
}

// writeExports prints one "export KEY='value'" line per variable, quoted so
// that a POSIX shell reads every value literally. Keys that are not shell
// names are skipped.
func writeExports(w io.Writer, vars *loaded, eol string) error {
	var sb strings.Builder
	for _, key := range vars.keys {
		if !isShellName(key) {
			logging.Default().Warn("skipping key that is not a shell variable name", logging.FieldKey, key)
			continue
		}
		sb.WriteString("export ")
		sb.WriteString(key)
		sb.WriteByte('=')
		sb.WriteString(shellQuote(vars.values[key]))
		sb.WriteString(eol)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// shellQuote single quotes s, writing each ' as '\''.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func isShellName(key string) bool {
	for i := range len(key) {
		c := key[i]
		switch {
		case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return key != ""
}

// terminalWidth returns the width of w when it is a terminal, else 0.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
