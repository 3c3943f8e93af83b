// Package runner formats many files concurrently.
package runner

import (
	"slices"

	"github.com/yaklabco/sclangfmt/pkg/config"
)

// Options controls a multi-file run.
type Options struct {
	// Paths are the user-specified files or directories.
	// If empty, defaults to the working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths and
	// to match ExcludeGlobs. If empty, the process working directory is used.
	WorkingDir string

	// Extensions are the source extensions collected from directories.
	// Defaults to config.DefaultExtensions().
	Extensions []string

	// Markdown also collects Markdown files and formats their
	// SuperCollider fences.
	Markdown bool

	// ExcludeGlobs skip matching files and directories. "**" crosses
	// directory boundaries; a pattern without a slash matches base names.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs bounds the number of files formatted at once.
	// 0 or negative means runtime.NumCPU().
	Jobs int

	// Config is the resolved configuration for this run.
	Config *config.Config
}

// OptionsFromConfig fills the discovery and concurrency options from cfg.
func OptionsFromConfig(cfg *config.Config, paths []string) Options {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return Options{
		Paths:        paths,
		Extensions:   slices.Clone(cfg.Extensions),
		Markdown:     cfg.Markdown.Enabled,
		ExcludeGlobs: slices.Clone(cfg.Ignore),
		Jobs:         cfg.Jobs,
		Config:       cfg,
	}
}

// MarkdownExtensions are the extensions collected when Markdown is set.
func MarkdownExtensions() []string {
	return []string{".md", ".markdown"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return config.DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

func (o Options) effectiveConfig() *config.Config {
	if o.Config == nil {
		return config.NewConfig()
	}
	return o.Config
}
