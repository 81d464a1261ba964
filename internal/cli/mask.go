package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/stdkit/internal/logging"
	"github.com/yaklabco/stdkit/pkg/config"
	"github.com/yaklabco/stdkit/pkg/dotenv"
	"github.com/yaklabco/stdkit/pkg/env"
	"github.com/yaklabco/stdkit/pkg/secrets"
)

func newMaskCommand() *cobra.Command {
	var secretValues []string
	var prompt bool

	cmd := &cobra.Command{
		Use:   "mask [file]",
		Short: "Copy text with secret values hidden",
		Long: `Copy a file, or standard input, to standard output with every secret
replaced by "` + secrets.Mask + `".

Secrets are the values of the variables named in secrets.env, looked up in
the configured dotenv files and then the environment, plus any --secret
values. --prompt reads one more secret from the terminal without echo.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, nil)
			if err != nil {
				return err
			}

			masker, err := secretMasker(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			masker.Add(secretValues...)
			if prompt {
				secret, err := readSecret(cmd.ErrOrStderr())
				if err != nil {
					return err
				}
				masker.Add(secret)
			}

			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open %s: %w", args[0], err)
				}
				defer f.Close()
				in = f
			}
			return maskLines(in, cmd.OutOrStdout(), masker)
		},
	}

	cmd.Flags().StringArrayVarP(&secretValues, "secret", "s", nil, "a value to hide (repeatable)")
	cmd.Flags().BoolVar(&prompt, "prompt", false, "read a secret from the terminal")
	return cmd
}

// secretMasker builds a Masker from the variables named in
// cfg.Secrets.Env. Dotenv values win over the process environment.
func secretMasker(ctx context.Context, cfg *config.Config) (*secrets.Masker, error) {
	masker := secrets.NewMasker()
	if len(cfg.Secrets.Env) == 0 {
		return masker, nil
	}

	values, err := dotenv.Load(ctx, dotenv.LoadOptions{
		Paths:  cfg.Dotenv.Files,
		Expand: cfg.ExpandEnabled(),
		Logger: logging.Default(),
	})
	if err != nil {
		return nil, err
	}

	lookup := env.NewMap(values)
	for _, key := range cfg.Secrets.Env {
		value, ok := lookup.Lookup(key)
		if !ok {
			value, ok = env.OS().Lookup(key)
		}
		if ok && value != "" {
			masker.Add(value)
		}
	}
	logging.Default().Debug("loaded secrets", logging.FieldKeys, masker.Len())
	return masker, nil
}

// maskLines copies in to out one line at a time so that a secret is never
// split across two writes.
func maskLines(in io.Reader, out io.Writer, masker *secrets.Masker) error {
	w := bufio.NewWriter(out)
	reader := bufio.NewReader(in)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			if _, werr := w.WriteString(masker.Mask(line)); werr != nil {
				return fmt.Errorf("write output: %w", werr)
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

var errNoTerminal = errors.New("--prompt needs a terminal on standard input")

func readSecret(prompt io.Writer) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("%w: %w", ErrUsage, errNoTerminal)
	}
	fmt.Fprint(prompt, "Secret: ")
	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(prompt)
	if err != nil {
		return "", fmt.Errorf("read secret: %w", err)
	}
	return string(secret), nil
}
