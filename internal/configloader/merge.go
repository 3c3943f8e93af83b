package configloader

import (
	"maps"

	"github.com/yaklabco/sclangfmt/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Maps: deep merge, with override's values taking precedence
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Indent.Style != "" {
		result.Indent.Style = override.Indent.Style
	}
	if override.Indent.Width != 0 {
		result.Indent.Width = override.Indent.Width
	}
	if override.MaxWidth != 0 {
		result.MaxWidth = override.MaxWidth
	}
	if override.MaxPasses != 0 {
		result.MaxPasses = override.MaxPasses
	}
	if override.Phase != "" {
		result.Phase = override.Phase
	}
	if override.OutputFormat != "" {
		result.OutputFormat = override.OutputFormat
	}
	if override.RuleFormat != "" {
		result.RuleFormat = override.RuleFormat
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	// Booleans can only be switched on by a later source; false is the
	// zero value and indistinguishable from unset.
	if override.Write {
		result.Write = true
	}
	if override.Check {
		result.Check = true
	}
	if override.Diff {
		result.Diff = true
	}
	if override.NoBackups {
		result.NoBackups = true
	}
	if override.Markdown.Enabled {
		result.Markdown.Enabled = true
	}
	if override.Backups.Enabled {
		result.Backups.Enabled = true
	}
	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}

	result.Rules = mergeRules(base.Rules, override.Rules)

	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}
	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}
	if override.Markdown.Languages != nil {
		result.Markdown.Languages = override.Markdown.Languages
	}
	if override.EnableRules != nil {
		result.EnableRules = override.EnableRules
	}
	if override.DisableRules != nil {
		result.DisableRules = override.DisableRules
	}

	return &result
}

// mergeRules performs deep merge of rule configurations.
// Both maps are iterated, with override's values taking precedence.
func mergeRules(base, override map[string]config.RuleConfig) map[string]config.RuleConfig {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]config.RuleConfig, len(base)+len(override))
	maps.Copy(result, base)

	for key, val := range override {
		if existing, ok := result[key]; ok {
			result[key] = mergeRuleConfig(existing, val)
		} else {
			result[key] = val
		}
	}

	return result
}

// mergeRuleConfig merges individual rule configurations.
func mergeRuleConfig(base, override config.RuleConfig) config.RuleConfig {
	result := base
	if override.Enabled != nil {
		result.Enabled = override.Enabled
	}
	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
