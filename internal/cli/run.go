package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/stdkit/internal/logging"
	"github.com/yaklabco/stdkit/pkg/config"
	"github.com/yaklabco/stdkit/pkg/dotenv"
	"github.com/yaklabco/stdkit/pkg/env"
	"github.com/yaklabco/stdkit/pkg/exec"
)

type execFlags struct {
	envFiles []string
	override bool
	noExpand bool
	command  string
	dir      string
}

func newExecCommand() *cobra.Command {
	flags := &execFlags{}

	cmd := &cobra.Command{
		Use:   "exec [flags] -- COMMAND [args...]",
		Short: "Run a command with dotenv files loaded",
		Long: `Run a command with the variables from dotenv files added to its
environment. Variables already set in the environment are kept unless
--override is given.

Output is passed through with the values of secrets.env variables masked.
The command's exit status becomes stdkit's exit status.

Examples:
  stdkit exec -- go test ./...
  stdkit exec --env-file .env.test -- make integration
  stdkit exec -c 'echo "$DATABASE_URL"'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExec(cmd, args, flags)
		},
	}

	cmd.Flags().StringSliceVarP(&flags.envFiles, "env-file", "e", nil, "dotenv files to load, in order (default from config)")
	cmd.Flags().BoolVar(&flags.override, "override", false, "let dotenv values replace variables already set")
	cmd.Flags().BoolVar(&flags.noExpand, "no-expand", false, "do not resolve $VAR references")
	cmd.Flags().StringVarP(&flags.command, "command", "c", "", "command line to split shell-style instead of COMMAND args")
	cmd.Flags().StringVar(&flags.dir, "dir", "", "working directory for the command")
	return cmd
}

func runExec(cmd *cobra.Command, args []string, flags *execFlags) error {
	overrides := &config.Config{}
	if len(flags.envFiles) > 0 {
		overrides.Dotenv.Files = flags.envFiles
	}
	if flags.override {
		overrides.Dotenv.Override = config.Bool(true)
	}
	if flags.noExpand {
		overrides.Dotenv.Expand = config.Bool(false)
	}
	cfg, err := loadConfig(cmd, overrides)
	if err != nil {
		return err
	}

	var command exec.Command
	switch {
	case flags.command != "" && len(args) > 0:
		return fmt.Errorf("%w: give either --command or COMMAND args, not both", ErrUsage)
	case flags.command != "":
		if command, err = exec.Parse(flags.command); err != nil {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
	case len(args) > 0:
		command = exec.Command{Name: args[0], Args: args[1:]}
	default:
		return fmt.Errorf("%w: no command given", ErrUsage)
	}

	logger := logging.Default()
	values, err := dotenv.Load(cmd.Context(), dotenv.LoadOptions{
		Paths:    cfg.Dotenv.Files,
		Required: len(flags.envFiles) > 0,
		Expand:   cfg.ExpandEnabled(),
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	// Apply against a copy of the environment to honor Override, then pass
	// on only the dotenv keys.
	scratch := env.NewMap(env.OS().Environ())
	if err := env.Apply(scratch, values, cfg.OverrideEnabled()); err != nil {
		return err
	}
	command.Env = make(map[string]string, len(values))
	for key := range values {
		command.Env[key] = scratch.Get(key)
	}
	command.Dir = flags.dir
	command.Stdin = cmd.InOrStdin()

	masker, err := secretMasker(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	out, err := exec.Run(cmd.Context(), command, exec.Options{
		Masker: masker,
		Logger: logger,
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	})
	if out != nil {
		logger.Debug("command exited",
			logging.FieldCommand, command.Name,
			logging.FieldExitCode, out.ExitCode,
			logging.FieldDuration, out.Duration,
		)
	}
	return err
}
