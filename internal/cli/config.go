package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/stdkit/internal/configloader"
	"github.com/yaklabco/stdkit/internal/logging"
	"github.com/yaklabco/stdkit/pkg/config"
	"github.com/yaklabco/stdkit/pkg/pathutil"
)

// loadConfig resolves the configuration for cmd. overrides holds values
// from the command's own flags and wins over every other source.
func loadConfig(cmd *cobra.Command, overrides *config.Config) (*config.Config, error) {
	if overrides == nil {
		overrides = &config.Config{}
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}
	if cmd.Flags().Changed("color") {
		if overrides.Color, err = cmd.Flags().GetString("color"); err != nil {
			return nil, fmt.Errorf("get color flag: %w", err)
		}
	}

	if configPath, err = pathutil.ExpandHome(configPath); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(cmd.Context(), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    overrides,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	cfg := loadResult.Config

	for i, file := range cfg.Dotenv.Files {
		if cfg.Dotenv.Files[i], err = pathutil.ExpandHome(file); err != nil {
			return nil, fmt.Errorf("%w: dotenv.files: %w", ErrConfig, err)
		}
	}

	logger := logging.Default()
	if debug, _ := cmd.Flags().GetBool("debug"); !debug {
		logging.SetLevel(cfg.LogLevel)
	}
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldFiles, loadResult.LoadedFrom)
	}

	return cfg, nil
}
