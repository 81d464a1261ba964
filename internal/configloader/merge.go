package configloader

import "github.com/yaklabco/stdkit/pkg/config"

// merge combines two configurations, with override taking precedence:
//   - scalars replace base when non-zero
//   - optional booleans replace base when non-nil, so false can be set
//   - slices replace base entirely when non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Color != "" {
		result.Color = override.Color
	}
	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.DryRun {
		result.DryRun = true
	}

	if override.Dotenv.Files != nil {
		result.Dotenv.Files = override.Dotenv.Files
	}
	if override.Dotenv.Expand != nil {
		result.Dotenv.Expand = override.Dotenv.Expand
	}
	if override.Dotenv.Override != nil {
		result.Dotenv.Override = override.Dotenv.Override
	}
	if override.Dotenv.OnlyLineFeed != nil {
		result.Dotenv.OnlyLineFeed = override.Dotenv.OnlyLineFeed
	}

	if override.Backups.Enabled != nil {
		result.Backups.Enabled = override.Backups.Enabled
	}
	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}

	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}
	if override.Secrets.Env != nil {
		result.Secrets.Env = override.Secrets.Env
	}

	return &result
}

// MergeAll merges configurations in order, later ones taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for _, cfg := range configs[1:] {
		result = merge(result, cfg)
	}
	return result
}
