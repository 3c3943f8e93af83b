package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/yaklabco/sclangfmt/pkg/config"
)

// envVarPrefix is the prefix for all sclangfmt environment variables.
const envVarPrefix = "SCLANGFMT_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines an environment variable to config field mapping.
type envMapping struct {
	field string
	typ   envFieldType
	help  string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"INDENT_STYLE":    {field: "indent.style", typ: envTypeString, help: "Indent style: spaces or tabs"},
	"INDENT_WIDTH":    {field: "indent.width", typ: envTypeInt, help: "Spaces per indent level"},
	"MAX_WIDTH":       {field: "max_width", typ: envTypeInt, help: "Column limit for layout rules"},
	"MAX_PASSES":      {field: "max_passes", typ: envTypeInt, help: "Maximum pipeline passes"},
	"PHASE":           {field: "phase", typ: envTypeString, help: "Phase: pre, inline, post, or all"},
	"JOBS":            {field: "jobs", typ: envTypeInt, help: "Number of parallel workers (0 = auto)"},
	"OUTPUT_FORMAT":   {field: "output_format", typ: envTypeString, help: "Report format: text, json, or diff"},
	"BACKUPS_ENABLED": {field: "backups.enabled", typ: envTypeBool, help: "Enable backups when writing: true or false"},
	"BACKUPS_MODE":    {field: "backups.mode", typ: envTypeString, help: "Backup mode: sidecar or none"},
	"IGNORE":          {field: "ignore", typ: envTypeSlice, help: "Comma-separated list of ignore patterns"},
	"EXTENSIONS":      {field: "extensions", typ: envTypeSlice, help: "Comma-separated list of file extensions"},
	"MARKDOWN":        {field: "markdown.enabled", typ: envTypeBool, help: "Format SuperCollider fences in Markdown: true or false"},
	"MARKDOWN_LANGS":  {field: "markdown.languages", typ: envTypeSlice, help: "Comma-separated fence languages treated as SuperCollider"},
	"NO_BACKUPS":      {field: "no_backups", typ: envTypeBool, help: "Disable backups: true or false"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with SCLANGFMT_ (e.g., SCLANGFMT_PHASE).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "indent.style":
		cfg.Indent.Style = config.IndentStyle(value)
	case "phase":
		cfg.Phase = value
	case "output_format":
		cfg.OutputFormat = config.OutputFormat(value)
	case "backups.mode":
		cfg.Backups.Mode = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "backups.enabled":
		cfg.Backups.Enabled = value
	case "markdown.enabled":
		cfg.Markdown.Enabled = value
	case "no_backups":
		cfg.NoBackups = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "indent.width":
		cfg.Indent.Width = value
	case "max_width":
		cfg.MaxWidth = value
	case "max_passes":
		cfg.MaxPasses = value
	case "jobs":
		cfg.Jobs = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "ignore":
		cfg.Ignore = value
	case "extensions":
		cfg.Extensions = value
	case "markdown.languages":
		cfg.Markdown.Languages = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.help
	}
	return vars
}

// sortedKeys returns the keys of m in ascending order.
func sortedKeys[V any](m map[string]V) []string {
	keys := lo.Keys(m)
	sort.Strings(keys)
	return keys
}
