package configloader

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/stdkit/pkg/ansi"
	"github.com/yaklabco/stdkit/pkg/config"
	"github.com/yaklabco/stdkit/pkg/dotenv"
	"github.com/yaklabco/stdkit/pkg/fsutil"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "backups.mode").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResult) errorf(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warnf(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	knownLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}
	knownFormats   = map[config.OutputFormat]bool{config.FormatText: true, config.FormatJSON: true, config.FormatDiff: true}
	knownBackups   = map[fsutil.BackupMode]bool{fsutil.BackupModeSidecar: true, fsutil.BackupModeNone: true}
)

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Color != "" {
		if _, err := ansi.ParseMode(cfg.Color); err != nil {
			result.errorf("color", cfg.Color, "invalid color %q; must be one of: auto, always, never", cfg.Color)
		}
	}

	if cfg.LogLevel != "" && !knownLogLevels[strings.ToLower(cfg.LogLevel)] {
		result.errorf("log_level", cfg.LogLevel, "invalid log level %q; must be one of: debug, info, warn, error", cfg.LogLevel)
	}

	if cfg.Format != "" && !knownFormats[cfg.Format] {
		result.errorf("format", cfg.Format, "invalid format %q; must be one of: text, json, diff", cfg.Format)
	}

	if cfg.Jobs < 0 {
		result.errorf("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	if mode := fsutil.BackupMode(cfg.Backups.Mode); mode != "" && !knownBackups[mode] {
		result.errorf("backups.mode", cfg.Backups.Mode, "invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode)
	}

	for i, file := range cfg.Dotenv.Files {
		if strings.TrimSpace(file) == "" {
			result.errorf(fmt.Sprintf("dotenv.files[%d]", i), file, "file name must not be empty")
		}
	}

	for i, pattern := range cfg.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			result.errorf(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}

	for i, name := range cfg.Secrets.Env {
		if err := dotenv.ValidateKey(name); err != nil {
			result.warnf(fmt.Sprintf("secrets.env[%d]", i), name, "%q is not a valid variable name; it will never match", name)
		}
	}

	return result
}

// ValidateWithFile validates cfg and records filePath on every finding.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}
