package configloader

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/stdkit/pkg/config"
	"github.com/yaklabco/stdkit/pkg/env"
)

// EnvVarPrefix is the prefix for all stdkit environment variables.
const EnvVarPrefix = "STDKIT_"

type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping binds one environment variable to a config field.
type envMapping struct {
	typ         envFieldType
	description string
	apply       func(cfg *config.Config, v envValue)
}

// envValue carries the parsed value; only the member matching the mapping
// type is set.
type envValue struct {
	s     string
	b     bool
	i     int
	slice []string
}

// envMappings maps environment variable names (without prefix) to config
// fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"DOTENV_FILES": {envTypeSlice, "Comma-separated dotenv files to load",
		func(c *config.Config, v envValue) { c.Dotenv.Files = v.slice }},
	"DOTENV_EXPAND": {envTypeBool, "Expand $VAR references: true or false",
		func(c *config.Config, v envValue) { c.Dotenv.Expand = config.Bool(v.b) }},
	"DOTENV_OVERRIDE": {envTypeBool, "Let dotenv values replace set variables: true or false",
		func(c *config.Config, v envValue) { c.Dotenv.Override = config.Bool(v.b) }},
	"DOTENV_ONLY_LINE_FEED": {envTypeBool, "Write \\n line endings everywhere: true or false",
		func(c *config.Config, v envValue) { c.Dotenv.OnlyLineFeed = config.Bool(v.b) }},
	"COLOR": {envTypeString, "Color output: auto, always or never",
		func(c *config.Config, v envValue) { c.Color = v.s }},
	"LOG_LEVEL": {envTypeString, "Log level: debug, info, warn or error",
		func(c *config.Config, v envValue) { c.LogLevel = v.s }},
	"BACKUPS_ENABLED": {envTypeBool, "Back up files before rewriting: true or false",
		func(c *config.Config, v envValue) { c.Backups.Enabled = config.Bool(v.b) }},
	"BACKUPS_MODE": {envTypeString, "Backup mode: sidecar or none",
		func(c *config.Config, v envValue) { c.Backups.Mode = v.s }},
	"JOBS": {envTypeInt, "Number of parallel workers (0 = auto)",
		func(c *config.Config, v envValue) { c.Jobs = v.i }},
	"IGNORE": {envTypeSlice, "Comma-separated list of ignore patterns",
		func(c *config.Config, v envValue) { c.Ignore = v.slice }},
	"SECRETS_ENV": {envTypeSlice, "Comma-separated variables whose values are masked",
		func(c *config.Config, v envValue) { c.Secrets.Env = v.slice }},
	"DRY_RUN": {envTypeBool, "Dry-run mode: true or false",
		func(c *config.Config, v envValue) { c.DryRun = v.b }},
	"FORMAT": {envTypeString, "Output format: text, json or diff",
		func(c *config.Config, v envValue) { c.Format = config.OutputFormat(v.s) }},
}

// LoadFromEnv applies STDKIT_* overrides from e to cfg. Empty variables are
// ignored.
func LoadFromEnv(cfg *config.Config, e env.Env) error {
	if cfg == nil {
		return nil
	}

	for _, suffix := range slices.Sorted(maps.Keys(envMappings)) {
		name := EnvVarPrefix + suffix
		raw := e.Get(name)
		if raw == "" {
			continue
		}

		mapping := envMappings[suffix]
		value, err := parseEnvValue(mapping.typ, raw, name)
		if err != nil {
			return err
		}
		mapping.apply(cfg, value)
	}
	return nil
}

func parseEnvValue(typ envFieldType, raw, name string) (envValue, error) {
	switch typ {
	case envTypeString:
		return envValue{s: raw}, nil
	case envTypeBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return envValue{}, fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", name, raw)
		}
		return envValue{b: b}, nil
	case envTypeInt:
		i, err := strconv.Atoi(raw)
		if err != nil {
			return envValue{}, fmt.Errorf("invalid integer for %s: %q", name, raw)
		}
		return envValue{i: i}, nil
	case envTypeSlice:
		return envValue{slice: parseSliceValue(raw)}, nil
	default:
		return envValue{}, fmt.Errorf("unknown field type for %s", name)
	}
}

// parseSliceValue splits a comma-separated value, trimming each element and
// dropping empty ones.
func parseSliceValue(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ListEnvVars returns every supported environment variable with its
// description.
func ListEnvVars() map[string]string {
	out := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		out[EnvVarPrefix+suffix] = mapping.description
	}
	return out
}
