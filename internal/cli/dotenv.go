package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/stdkit/internal/logging"
	"github.com/yaklabco/stdkit/pkg/config"
	"github.com/yaklabco/stdkit/pkg/reporter"
	"github.com/yaklabco/stdkit/pkg/runner"
)

func newDotenvCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "dotenv",
		Aliases: []string{"env"},
		Short:   "Check, format and edit .env files",
		Long: `Work with .env files.

Files are discovered by name: ".env", ".env.<suffix>" and "<name>.env".
Values are written single quoted unless they contain a quote or a newline.`,
	}

	cmd.AddCommand(newDotenvRunCommand(runner.ModeCheck))
	cmd.AddCommand(newDotenvRunCommand(runner.ModeFormat))
	cmd.AddCommand(newDotenvGetCommand())
	cmd.AddCommand(newDotenvSetCommand())
	cmd.AddCommand(newDotenvUnsetCommand())
	cmd.AddCommand(newDotenvListCommand())
	cmd.AddCommand(newDotenvExpandCommand())
	cmd.AddCommand(newDotenvWatchCommand())

	return cmd
}

type runFlags struct {
	format    string
	ignore    []string
	jobs      int
	dryRun    bool
	noBackups bool
	lf        bool
	verbose   bool
	compact   bool
}

func newDotenvRunCommand(mode runner.Mode) *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDotenv(cmd, args, mode, flags)
		},
	}

	switch mode {
	case runner.ModeFormat:
		cmd.Use = "fmt [paths...]"
		cmd.Short = "Rewrite .env files in canonical form"
		cmd.Long = `Rewrite .env files in canonical form.

Each file is parsed and written back with one KEY='value' item per line,
comments and blank lines kept in place. Files are replaced atomically and
a sidecar backup is kept unless backups are disabled.

Examples:
  stdkit dotenv fmt                  # Format files under the current directory
  stdkit dotenv fmt --dry-run        # Report what would change
  stdkit dotenv fmt --format diff    # Show the changes as a diff`
		cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "show changes without writing them")
		cmd.Flags().BoolVar(&flags.noBackups, "no-backups", false, "disable backup creation")
		cmd.Flags().BoolVar(&flags.lf, "lf", false, `always write "\n" line endings`)
	default:
		cmd.Use = "check [paths...]"
		cmd.Short = "Check that .env files parse and are formatted"
		cmd.Long = `Check that .env files parse and are in canonical form.

Exits 1 when a file cannot be parsed or would be changed by "stdkit dotenv fmt".

Examples:
  stdkit dotenv check                # Check the current directory
  stdkit dotenv check --format json  # Machine readable output for CI`
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, diff")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "list files that need no changes")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "compact JSON output")

	return cmd
}

func runDotenv(cmd *cobra.Command, args []string, mode runner.Mode, flags *runFlags) error {
	overrides := &config.Config{
		Jobs:   flags.jobs,
		Ignore: flags.ignore,
		DryRun: flags.dryRun,
	}
	if cmd.Flags().Changed("format") {
		format, err := reporter.ParseFormat(flags.format)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
		overrides.Format = config.OutputFormat(format)
	}
	if flags.noBackups {
		overrides.Backups.Enabled = config.Bool(false)
	}
	if flags.lf {
		overrides.Dotenv.OnlyLineFeed = config.Bool(true)
	}

	cfg, err := loadConfig(cmd, overrides)
	if err != nil {
		return err
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	logger := logging.Default()
	logger.Debug("starting dotenv run",
		logging.FieldPaths, args,
		logging.FieldMode, mode,
		logging.FieldJobs, cfg.Jobs,
		logging.FieldDryRun, cfg.DryRun,
	)

	result, err := runner.Run(cmd.Context(), runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
		Mode:         mode,
		DryRun:       cfg.DryRun,
		Config:       cfg,
		Logger:       logger,
	})
	if err != nil {
		return fmt.Errorf("dotenv %s: %w", mode, err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      reporter.Format(cfg.Format),
		Color:       cfg.Color,
		ShowSummary: true,
		Verbose:     flags.verbose,
		Compact:     flags.compact,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(cmd.Context(), result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrIssuesFound
	}
	return nil
}
