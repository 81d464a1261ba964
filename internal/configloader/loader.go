// Package configloader resolves the stdkit configuration from system, user
// and project files, the environment and command line flags.
package configloader

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/stdkit/pkg/config"
	"github.com/yaklabco/stdkit/pkg/env"
	"github.com/yaklabco/stdkit/pkg/fsutil"
)

// configFilePermissions is the file mode for configuration files.
const configFilePermissions = 0o644

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to the current working directory.
	WorkingDir string

	// ExplicitPath is a config file given with --config. It is loaded after
	// the discovered files.
	ExplicitPath string

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// Env supplies STDKIT_* overrides. Nil means the process environment.
	Env env.Env

	// CLIConfig contains configuration from CLI flags and takes highest
	// precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and where it came from.
type LoadResult struct {
	Config *config.Config

	Paths *ConfigPaths

	// LoadedFrom lists the files that were loaded, in order.
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (STDKIT_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.stdkit.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/stdkit/config.yaml)
//  6. System config (/etc/stdkit/config.yaml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	layers := []struct {
		name    string
		path    string
		skip    bool
		explain string
	}{
		{"system", paths.System, opts.IgnoreSystemConfig, "load system config"},
		{"user", paths.User, opts.IgnoreUserConfig, "load user config"},
		{"project", paths.Project, opts.IgnoreProjectConfig, "load project config"},
		{"explicit", paths.Explicit, false, "load explicit config"},
	}
	for _, layer := range layers {
		if layer.skip || layer.path == "" {
			continue
		}
		fileCfg, err := loadConfigFile(ctx, layer.path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", layer.explain, err)
		}
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}

	if !opts.IgnoreEnv {
		source := opts.Env
		if source == nil {
			source = env.OS()
		}
		if err := LoadFromEnv(cfg, source); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Message)
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile reads and validates a single YAML config file.
func loadConfigFile(ctx context.Context, path string) (*config.Config, error) {
	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, &ValidationError{FilePath: path, Message: err.Error()}
	}

	if validation := ValidateWithFile(cfg, path); !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	return cfg, nil
}

// ErrConfigExists is returned by WriteConfig when the target exists and
// overwriting was not requested.
var ErrConfigExists = errors.New("config file already exists")

// WriteConfig writes cfg to path as YAML with a comment header.
func WriteConfig(ctx context.Context, cfg *config.Config, path string, force bool) error {
	if !force && fsutil.Exists(path) {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}

	content, err := cfg.ToYAMLWithHeader("# stdkit configuration\n# Values here override the user and system config files.")
	if err != nil {
		return err
	}
	if err := fsutil.WriteAtomic(ctx, path, content, configFilePermissions); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
