// Package cli provides the Cobra command structure for sclangfmt.
package cli

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/sclangfmt/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root sclangfmt command with all subcommands.
// Run without a subcommand it behaves like "sclangfmt format".
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string
	flags := &formatFlags{}

	rootCmd := &cobra.Command{
		Use:   "sclangfmt [paths...]",
		Short: "An opinionated formatter for SuperCollider code",
		Long: `sclangfmt formats SuperCollider (sclang) source files.

It runs a fixed sequence of small rewriting rules (brace layout, trailing
closures, spacing, indentation, line layout) until the text stops changing,
so formatting is idempotent. Files are formatted in parallel; code fences in
Markdown documents can be formatted too.

With no paths and piped standard input, sclangfmt formats stdin to stdout.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, args, flags)
		},
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	addFormatFlags(rootCmd, flags)
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError("%v", err)
	})

	// Add subcommands.
	rootCmd.AddCommand(newFormatCommand())
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	ApplyToCommand(rootCmd)

	return rootCmd
}

// commandContext returns the command's context, never nil.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// commandLogger returns a logger on the command's error stream honoring
// --debug.
func commandLogger(cmd *cobra.Command) *log.Logger {
	level := "info"
	if debug, err := cmd.Flags().GetBool("debug"); err == nil && debug {
		level = "debug"
	}
	return logging.NewWithWriter(cmd.ErrOrStderr(), level)
}

// colorMode returns the --color flag value.
func colorMode(cmd *cobra.Command) string {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return "auto"
	}
	return mode
}
