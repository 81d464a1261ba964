// Package config defines the stdkit configuration types.
// These are plain data structures; loading and merging live in
// internal/configloader.
package config

import "github.com/yaklabco/stdkit/pkg/fsutil"

// OutputFormat selects how runner results are rendered.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatDiff OutputFormat = "diff"
)

// DotenvConfig controls how dotenv files are loaded and written.
type DotenvConfig struct {
	// Files are loaded in order by commands that read the environment.
	Files []string `yaml:"files,omitempty"`

	// Expand resolves $VAR references after loading.
	Expand *bool `yaml:"expand,omitempty"`

	// Override lets loaded values replace variables that are already set.
	Override *bool `yaml:"override,omitempty"`

	// OnlyLineFeed writes "\n" line endings on every platform.
	OnlyLineFeed *bool `yaml:"only_line_feed,omitempty"`
}

// BackupsConfig controls backups made before files are rewritten.
type BackupsConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty"`
	Mode    string `yaml:"mode,omitempty"` // "sidecar" or "none"
}

// SecretsConfig lists the secrets to mask in command output.
type SecretsConfig struct {
	// Env names environment variables whose values are secrets.
	Env []string `yaml:"env,omitempty"`
}

// Config is the root configuration structure for stdkit.
type Config struct {
	Dotenv DotenvConfig `yaml:"dotenv,omitempty"`

	// Color is "auto", "always" or "never".
	Color string `yaml:"color,omitempty"`

	// LogLevel is "debug", "info", "warn" or "error".
	LogLevel string `yaml:"log_level,omitempty"`

	Backups BackupsConfig `yaml:"backups,omitempty"`

	// Jobs is the number of parallel workers; 0 means GOMAXPROCS.
	Jobs int `yaml:"jobs,omitempty"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore,omitempty"`

	Secrets SecretsConfig `yaml:"secrets,omitempty"`

	// CLI-level options (not persisted to config files).

	// DryRun reports what would change without writing.
	DryRun bool `yaml:"-"`

	// Format is the output format.
	Format OutputFormat `yaml:"-"`
}

// NewConfig returns a Config with defaults.
func NewConfig() *Config {
	return &Config{
		Dotenv: DotenvConfig{
			Files:        []string{".env"},
			Expand:       Bool(false),
			Override:     Bool(false),
			OnlyLineFeed: Bool(false),
		},
		Color:    "auto",
		LogLevel: "info",
		Backups: BackupsConfig{
			Enabled: Bool(true),
			Mode:    string(fsutil.BackupModeSidecar),
		},
		Format: FormatText,
	}
}

// Bool returns a pointer to b, for optional config fields.
func Bool(b bool) *bool {
	return &b
}

func boolValue(p *bool) bool {
	return p != nil && *p
}

// ExpandEnabled reports whether dotenv values are expanded.
func (c *Config) ExpandEnabled() bool { return boolValue(c.Dotenv.Expand) }

// OverrideEnabled reports whether loaded values replace existing variables.
func (c *Config) OverrideEnabled() bool { return boolValue(c.Dotenv.Override) }

// OnlyLineFeed reports whether "\n" is forced as line ending.
func (c *Config) OnlyLineFeed() bool { return boolValue(c.Dotenv.OnlyLineFeed) }

// BackupConfig converts the backups section for fsutil.
func (c *Config) BackupConfig() fsutil.BackupConfig {
	mode := fsutil.BackupMode(c.Backups.Mode)
	if mode == "" {
		mode = fsutil.BackupModeSidecar
	}
	return fsutil.BackupConfig{Enabled: boolValue(c.Backups.Enabled), Mode: mode}
}
