package config

import (
	"bytes"
	"fmt"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// Template formats.
const (
	TemplateYAML = "yaml"
	TemplateTOML = "toml"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full includes every rule with its documentation.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "toml".
	Format string
}

// RuleInfo contains rule metadata for template generation.
type RuleInfo struct {
	ID          string
	Name        string
	Description string
	Stage       string
	Enabled     bool
	Tags        []string
}

// RuleInfoProvider is a function that returns rule information in pipeline
// order. This decouples config from the format package.
type RuleInfoProvider func() []RuleInfo

// DefaultRuleInfoProvider is set by the rules package during init.
//
//nolint:gochecknoglobals // Intentional extension point for rule info.
var DefaultRuleInfoProvider RuleInfoProvider

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	switch opts.Format {
	case "", TemplateYAML:
		return generateYAMLTemplate(opts), nil
	case TemplateTOML:
		return generateTOMLTemplate(opts), nil
	default:
		return nil, fmt.Errorf("unknown template format %q; must be yaml or toml", opts.Format)
	}
}

func generateYAMLTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Indentation: style is spaces or tabs
indent:
  style: spaces
  width: 4

# Column limit for collapse/expand decisions
max_width: 80

# Upper bound on full pipeline passes
max_passes: 10

# Phase: pre, inline, post or all
phase: inline

# File patterns to ignore (glob patterns)
# ignore:
#   - "vendor/**"
#   - "build/**"

# Extensions collected when walking directories
# extensions: [".scd", ".sc"]

# Format SuperCollider code fences inside Markdown files
# markdown:
#   enabled: true
#   languages: [supercollider, sclang, sc, scd]

# Backups before writing files in place
backups:
  enabled: true
  mode: sidecar
`)

	rules := getRuleInfos()
	if !opts.Full || len(rules) == 0 {
		buf.WriteString(`
# Rule-specific configuration
# rules:
#   SC306:
#     enabled: true
`)
		return buf.Bytes()
	}

	buf.WriteString("\n# Rule-specific configuration, in pipeline order\nrules:\n")
	for _, rule := range rules {
		fmt.Fprintf(&buf, "\n  # %s: %s (%s)\n", rule.ID, rule.Name, rule.Stage)
		fmt.Fprintf(&buf, "  # %s\n", wrapComment(rule.Description, commentWrapWidth, "  # "))
		if len(rule.Tags) > 0 {
			fmt.Fprintf(&buf, "  # Tags: %s\n", strings.Join(rule.Tags, ", "))
		}
		fmt.Fprintf(&buf, "  %s:\n", rule.ID)
		fmt.Fprintf(&buf, "    enabled: %t\n", rule.Enabled)
	}

	return buf.Bytes()
}

func generateTOMLTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Column limit for collapse/expand decisions
max_width = 80

# Upper bound on full pipeline passes
max_passes = 10

# Phase: pre, inline, post or all
phase = "inline"

# File patterns to ignore (glob patterns)
# ignore = ["vendor/**", "build/**"]

# Extensions collected when walking directories
# extensions = [".scd", ".sc"]

# Indentation: style is spaces or tabs
[indent]
style = "spaces"
width = 4

# Format SuperCollider code fences inside Markdown files
[markdown]
enabled = false
languages = ["supercollider", "sclang", "sc", "scd"]

# Backups before writing files in place
[backups]
enabled = true
mode = "sidecar"
`)

	rules := getRuleInfos()
	if !opts.Full || len(rules) == 0 {
		buf.WriteString(`
# Rule-specific configuration
# [rules.SC306]
# enabled = true
`)
		return buf.Bytes()
	}

	for _, rule := range rules {
		fmt.Fprintf(&buf, "\n# %s: %s (%s)\n", rule.ID, rule.Name, rule.Stage)
		fmt.Fprintf(&buf, "# %s\n", wrapComment(rule.Description, commentWrapWidth, "# "))
		fmt.Fprintf(&buf, "[rules.%s]\n", rule.ID)
		fmt.Fprintf(&buf, "enabled = %t\n", rule.Enabled)
	}

	return buf.Bytes()
}

// getRuleInfos returns information about all registered rules.
func getRuleInfos() []RuleInfo {
	if DefaultRuleInfoProvider != nil {
		return DefaultRuleInfoProvider()
	}
	return nil
}

// wrapComment wraps text to maxWidth, continuing lines with prefix.
func wrapComment(text string, maxWidth int, prefix string) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	var line strings.Builder
	for _, word := range strings.Fields(text) {
		if line.Len() > 0 && line.Len()+1+len(word) > maxWidth {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}

	return strings.Join(lines, "\n"+prefix)
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# sclangfmt configuration
# See: https://github.com/yaklabco/sclangfmt`
}
