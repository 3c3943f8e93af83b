package configloader

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/sclangfmt/pkg/config"
	"github.com/yaklabco/sclangfmt/pkg/format"
)

// Limits enforced by Validate.
const (
	minMaxWidth    = 20
	minIndentWidth = 1
	maxIndentWidth = 16
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "indent.width").
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

	// Warnings are non-fatal issues (e.g., unknown rules).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) addError(field string, value any, msg string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf(msg, args...),
	})
}

// knownBackupModes lists valid backup mode values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownBackupModes = map[string]bool{
	"sidecar": true,
	"none":    true,
}

// Validate checks a configuration against the default rule registry.
func Validate(cfg *config.Config) *ValidationResult {
	return ValidateWithRegistry(cfg, format.DefaultRegistry)
}

// ValidateWithRegistry checks a configuration for errors and warnings.
// Unknown rule keys are looked up in registry and reported as warnings.
func ValidateWithRegistry(cfg *config.Config, registry *format.Registry) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Indent.Style != "" && !cfg.Indent.Style.IsValid() {
		result.addError("indent.style", cfg.Indent.Style,
			"invalid indent style %q; must be one of: spaces, tabs", cfg.Indent.Style)
	}
	if cfg.Indent.Width < minIndentWidth || cfg.Indent.Width > maxIndentWidth {
		result.addError("indent.width", cfg.Indent.Width,
			"indent width must be between %d and %d", minIndentWidth, maxIndentWidth)
	}
	if cfg.MaxWidth < minMaxWidth {
		result.addError("max_width", cfg.MaxWidth, "max_width must be >= %d", minMaxWidth)
	}
	if cfg.MaxPasses < 1 {
		result.addError("max_passes", cfg.MaxPasses, "max_passes must be >= 1")
	}
	if _, err := format.ParsePhase(cfg.Phase); err != nil {
		result.addError("phase", cfg.Phase, "%v", err)
	}
	if cfg.OutputFormat != "" && !cfg.OutputFormat.IsValid() {
		result.addError("output_format", cfg.OutputFormat,
			"invalid format %q; must be one of: text, json, diff", cfg.OutputFormat)
	}
	if cfg.Jobs < 0 {
		result.addError("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}
	if cfg.Backups.Mode != "" && !knownBackupModes[cfg.Backups.Mode] {
		result.addError("backups.mode", cfg.Backups.Mode,
			"invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode)
	}

	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			result.addError(fmt.Sprintf("extensions[%d]", i), ext,
				"extension %q must start with a dot", ext)
		}
	}

	validateRules(cfg, registry, result)
	validateIgnorePatterns(cfg, result)

	return result
}

// validateRules warns about rule keys the registry does not know.
func validateRules(cfg *config.Config, registry *format.Registry, result *ValidationResult) {
	if registry == nil {
		return
	}

	for _, key := range sortedKeys(cfg.Rules) {
		if _, exists := registry.Get(key); !exists {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   "rules." + key,
				Value:   key,
				Message: fmt.Sprintf("unknown rule %q; it will be ignored", key),
			})
		}
	}
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			result.addError(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
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

// IsValidBackupMode returns true if the backup mode is valid.
func IsValidBackupMode(mode string) bool {
	return knownBackupModes[mode]
}
