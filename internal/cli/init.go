package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/stdkit/internal/configloader"
	"github.com/yaklabco/stdkit/internal/logging"
	"github.com/yaklabco/stdkit/pkg/config"
	"github.com/yaklabco/stdkit/pkg/fsutil"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force   bool
	user    bool
	output  string
	files   []string
	secrets []string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a stdkit configuration file",
		Long: `Create a .stdkit.yml configuration file in the current directory with
the default settings written out.

Examples:
  stdkit init                               Create .stdkit.yml
  stdkit init --user                        Create the per-user config file
  stdkit init --files .env,.env.local       Load two dotenv files
  stdkit init --secret API_KEY              Mask $API_KEY in command output`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.user, "user", false, "write the per-user config file instead")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file path (default: .stdkit.yml)")
	cmd.Flags().StringSliceVar(&flags.files, "files", nil, "dotenv files to load")
	cmd.Flags().StringSliceVar(&flags.secrets, "secret", nil, "variable names whose values are secrets")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive()

	outputPath := flags.output
	switch {
	case outputPath != "" && flags.user:
		return fmt.Errorf("%w: --output and --user cannot be combined", ErrUsage)
	case flags.user:
		dir := configloader.UserConfigDir()
		if err := fsutil.EnsureDir(dir); err != nil {
			return err
		}
		outputPath = filepath.Join(dir, "config.yaml")
	case outputPath == "":
		outputPath = ".stdkit.yml"
	}

	cfg := config.NewConfig()
	if len(flags.files) > 0 {
		cfg.Dotenv.Files = flags.files
	}
	cfg.Secrets.Env = flags.secrets

	if flags.force && fsutil.Exists(outputPath) {
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}
	err := configloader.WriteConfig(cmd.Context(), cfg, outputPath, flags.force)
	if errors.Is(err, configloader.ErrConfigExists) {
		return fmt.Errorf("%w; use --force to overwrite", err)
	}
	if err != nil {
		return err
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("run 'stdkit dotenv check' to validate your dotenv files")
	return nil
}
