// Package config defines core configuration types for sclangfmt.
// These types are pure data structures with no dependency on the loaders
// that fill them.
package config

// IndentStyle selects the character used for indentation.
type IndentStyle string

const (
	IndentSpaces IndentStyle = "spaces"
	IndentTabs   IndentStyle = "tabs"
)

// Defaults applied by NewConfig.
const (
	DefaultIndentWidth = 4
	DefaultMaxWidth    = 80
	DefaultMaxPasses   = 10
	DefaultPhase       = "inline"
)

// RuleConfig holds per-rule configuration options.
type RuleConfig struct {
	Enabled *bool `yaml:"enabled,omitempty" toml:"enabled,omitempty"`
}

// IndentConfig controls the indentation rules emit.
type IndentConfig struct {
	Style IndentStyle `yaml:"style,omitempty" toml:"style,omitempty"`
	Width int         `yaml:"width,omitempty" toml:"width,omitempty"`
}

// MarkdownConfig controls formatting of code fences inside Markdown files.
type MarkdownConfig struct {
	Enabled bool `yaml:"enabled,omitempty" toml:"enabled,omitempty"`

	// Languages are the fence info strings treated as SuperCollider.
	Languages []string `yaml:"languages,omitempty" toml:"languages,omitempty"`
}

// BackupsConfig controls backup behavior when writing files in place.
type BackupsConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Mode    string `yaml:"mode,omitempty" toml:"mode,omitempty"` // "sidecar" or "none"
}

// OutputFormat specifies the output format for run reports.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatDiff OutputFormat = "diff"
)

// RuleFormat controls how rule identifiers appear in output.
type RuleFormat string

const (
	RuleFormatName     RuleFormat = "name"     // "comma-spacing"
	RuleFormatID       RuleFormat = "id"       // "SC301"
	RuleFormatCombined RuleFormat = "combined" // "SC301/comma-spacing"
)

// Config is the root configuration structure for sclangfmt.
type Config struct {
	// Indent selects tabs or N-width spaces.
	Indent IndentConfig `yaml:"indent" toml:"indent"`

	// MaxWidth is the column limit used by layout rules.
	MaxWidth int `yaml:"max_width,omitempty" toml:"max_width,omitempty"`

	// MaxPasses bounds the number of full pipeline passes.
	MaxPasses int `yaml:"max_passes,omitempty" toml:"max_passes,omitempty"`

	// Phase is one of pre, inline, post or all.
	Phase string `yaml:"phase,omitempty" toml:"phase,omitempty"`

	// Rules contains per-rule configuration keyed by rule ID.
	Rules map[string]RuleConfig `yaml:"rules,omitempty" toml:"rules,omitempty"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `yaml:"ignore,omitempty" toml:"ignore,omitempty"`

	// Extensions lists the file extensions collected from directories.
	Extensions []string `yaml:"extensions,omitempty" toml:"extensions,omitempty"`

	// Markdown configures code fence formatting.
	Markdown MarkdownConfig `yaml:"markdown" toml:"markdown"`

	// Backups configures backup behavior when writing.
	Backups BackupsConfig `yaml:"backups" toml:"backups"`

	// CLI-level options (not persisted to config files).

	// Write rewrites files in place.
	Write bool `yaml:"-" toml:"-"`

	// Check reports files that would change and fails if any would.
	Check bool `yaml:"-" toml:"-"`

	// Diff prints a unified diff instead of the formatted text.
	Diff bool `yaml:"-" toml:"-"`

	// OutputFormat specifies the report format.
	OutputFormat OutputFormat `yaml:"-" toml:"-"`

	// RuleFormat controls how rule identifiers appear in output.
	RuleFormat RuleFormat `yaml:"-" toml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-" toml:"-"`

	// EnableRules contains rule IDs to explicitly enable.
	EnableRules []string `yaml:"-" toml:"-"`

	// DisableRules contains rule IDs to explicitly disable.
	DisableRules []string `yaml:"-" toml:"-"`

	// NoBackups disables backup creation when writing.
	NoBackups bool `yaml:"-" toml:"-"`
}

// DefaultExtensions are the file extensions formatted when walking directories.
func DefaultExtensions() []string {
	return []string{".scd", ".sc"}
}

// DefaultMarkdownLanguages are the fence info strings treated as SuperCollider.
func DefaultMarkdownLanguages() []string {
	return []string{"supercollider", "sclang", "sc", "scd"}
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Indent: IndentConfig{
			Style: IndentSpaces,
			Width: DefaultIndentWidth,
		},
		MaxWidth:   DefaultMaxWidth,
		MaxPasses:  DefaultMaxPasses,
		Phase:      DefaultPhase,
		Rules:      make(map[string]RuleConfig),
		Extensions: DefaultExtensions(),
		Markdown: MarkdownConfig{
			Languages: DefaultMarkdownLanguages(),
		},
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    "sidecar",
		},
		OutputFormat: FormatText,
		RuleFormat:   RuleFormatCombined,
		Jobs:         0, // 0 means use GOMAXPROCS
	}
}
