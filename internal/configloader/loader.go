// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, hierarchical merging,
// environment variable support and validation.
package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yaklabco/sclangfmt/pkg/config"
	"github.com/yaklabco/sclangfmt/pkg/format"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	// If set, project config discovery is skipped.
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// Registry resolves rule names in the rules map and flags unknown
	// rules. Defaults to format.DefaultRegistry.
	Registry *format.Registry

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (SCLANGFMT_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.sclangfmt.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/sclangfmt/config.yaml)
//  6. System config (/etc/sclangfmt/config.yaml)
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

	registry := opts.Registry
	if registry == nil {
		registry = format.DefaultRegistry
	}

	cfg := config.NewConfig()

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	if opts.ExplicitPath != "" {
		paths.Explicit = opts.ExplicitPath
	}
	result := &LoadResult{Paths: paths}

	// Files, lowest precedence first.
	sources := []struct {
		label string
		path  string
		skip  bool
	}{
		{"system", paths.System, opts.IgnoreSystemConfig},
		{"user", paths.User, opts.IgnoreUserConfig},
		{"project", paths.Project, opts.IgnoreProjectConfig || opts.ExplicitPath != ""},
		{"explicit", opts.ExplicitPath, false},
	}
	for _, src := range sources {
		if src.skip || src.path == "" {
			continue
		}
		fileCfg, err := loadConfigFile(src.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", src.label, err)
		}
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, src.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, &ValidationError{Field: "environment", Message: err.Error()}
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	// Users may key rules by name ("comma-spacing") as well as by ID.
	normalizeRuleKeys(cfg, registry, result)

	validation := ValidateWithRegistry(cfg, registry)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Message)
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile loads a configuration file. Files ending in .toml are
// parsed as TOML, everything else as YAML.
func loadConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var cfg *config.Config
	if IsTOMLConfig(path) {
		cfg, err = config.FromTOML(content)
	} else {
		cfg, err = config.FromYAML(content)
	}
	if err != nil {
		return nil, &ValidationError{FilePath: path, Message: err.Error()}
	}
	return cfg, nil
}

// IsTOMLConfig returns true if the path is a TOML config file.
func IsTOMLConfig(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// normalizeRuleKeys converts rule names to canonical IDs in the config.
// If a rule is specified by both ID and name, it warns and keeps the
// value of the key that sorts last.
func normalizeRuleKeys(cfg *config.Config, registry *format.Registry, result *LoadResult) {
	if len(cfg.Rules) == 0 {
		return
	}

	normalized := make(map[string]config.RuleConfig, len(cfg.Rules))
	seenIDs := make(map[string]string) // canonical ID -> original key

	for _, key := range sortedKeys(cfg.Rules) {
		ruleCfg := cfg.Rules[key]
		canonicalID, found := registry.Resolve(key)
		if !found {
			// Unknown rule - keep it as-is, validation will warn about it later
			normalized[key] = ruleCfg
			continue
		}

		if originalKey, exists := seenIDs[canonicalID]; exists {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("duplicate rule configuration: %q and %q both refer to %s; using %q",
					originalKey, key, canonicalID, key))
		}

		seenIDs[canonicalID] = key
		normalized[canonicalID] = ruleCfg
	}

	cfg.Rules = normalized
}
