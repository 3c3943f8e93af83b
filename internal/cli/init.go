package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/sclangfmt/internal/logging"
	"github.com/yaklabco/sclangfmt/pkg/config"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a sclangfmt configuration file",
		Long: `Create a new .sclangfmt.yml configuration file in the current directory
with the default settings. Edit it to change indentation, the column limit,
or to enable and disable rules.

Examples:
  sclangfmt init                      Create a minimal .sclangfmt.yml
  sclangfmt init --full               Document every rule in the file
  sclangfmt init --format toml        Create .sclangfmt.toml instead
  sclangfmt init --output custom.yml  Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with all rules documented")
	cmd.Flags().StringVar(&flags.format, "format", config.TemplateYAML, "Output format: yaml or toml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"Output file path (default: .sclangfmt.yml or .sclangfmt.toml)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewWithWriter(cmd.OutOrStdout(), "info")

	if flags.format != config.TemplateYAML && flags.format != config.TemplateTOML {
		return usageError("invalid format %q: must be yaml or toml", flags.format)
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".sclangfmt.yml"
		if flags.format == config.TemplateTOML {
			outputPath = ".sclangfmt.toml"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return usageError("file %q already exists; use --force to overwrite", outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := os.WriteFile(absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	if flags.full {
		logger.Info("full template includes all rules with documentation")
	}
	logger.Info("run 'sclangfmt rules' to see all available rules")

	return nil
}
