package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/yaklabco/sclangfmt/internal/logging"
	"github.com/yaklabco/sclangfmt/pkg/config"
	"github.com/yaklabco/sclangfmt/pkg/langdetect"
	"github.com/yaklabco/sclangfmt/pkg/runner"
)

// defaultDebounce is how long a file must stay quiet before it is formatted.
const defaultDebounce = 200 * time.Millisecond

type watchFlags struct {
	markdown  bool
	noBackups bool
	debounce  time.Duration
}

func newWatchCommand() *cobra.Command {
	flags := &watchFlags{}

	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Reformat files whenever they change",
		Long: `Watch files and directories and rewrite SuperCollider files in place
each time they are saved. Directories are watched recursively; hidden
directories are skipped. Stop with Ctrl-C.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCfg := &config.Config{Write: true, NoBackups: flags.noBackups}
			cliCfg.Markdown.Enabled = flags.markdown

			cfg, workDir, err := loadConfig(cmd, cliCfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return watch(ctx, watchOptions{
				paths:    args,
				workDir:  workDir,
				cfg:      cfg,
				debounce: flags.debounce,
				logger:   commandLogger(cmd),
			})
		},
	}

	cmd.Flags().BoolVar(&flags.markdown, "markdown", false, "also format SuperCollider fences in Markdown files")
	cmd.Flags().BoolVar(&flags.noBackups, "no-backups", false, "disable backup creation when writing")
	cmd.Flags().DurationVar(&flags.debounce, "debounce", defaultDebounce, "quiet period before a changed file is formatted")

	return cmd
}

type watchOptions struct {
	paths    []string
	workDir  string
	cfg      *config.Config
	debounce time.Duration
	logger   *log.Logger

	// ready is called once every directory is being watched.
	ready func()
}

// watch formats changed files until ctx is done. Events are collected
// until no new one arrives for the debounce period, then every pending
// file is formatted on its own so one failure does not hold up the rest.
func watch(ctx context.Context, opts watchOptions) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	paths := opts.paths
	if len(paths) == 0 {
		paths = []string{"."}
	}
	scope := &watchScope{files: make(map[string]bool)}
	for _, path := range paths {
		if !filepath.IsAbs(path) {
			path = filepath.Join(opts.workDir, path)
		}
		if err := scope.add(watcher, filepath.Clean(path)); err != nil {
			return err
		}
	}
	opts.logger.Info("watching for changes", logging.FieldPaths, paths)
	if opts.ready != nil {
		opts.ready()
	}

	debounce := opts.debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	timer := time.NewTimer(debounce)
	timer.Stop()
	pending := make(map[string]struct{})

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if !scope.contains(event.Name) || strings.HasPrefix(info.Name(), ".") {
						continue
					}
					if err := addWatchTree(watcher, event.Name); err != nil {
						opts.logger.Warn("cannot watch directory", logging.FieldPath, event.Name, logging.FieldError, err)
					}
					continue
				}
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !scope.contains(event.Name) || !watchable(event.Name, opts.cfg) {
				continue
			}
			pending[event.Name] = struct{}{}
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			opts.logger.Warn("watch error", logging.FieldError, err)

		case <-timer.C:
			files := lo.Keys(pending)
			slices.Sort(files)
			clear(pending)
			for _, file := range files {
				formatWatched(ctx, file, opts)
			}
		}
	}
}

// formatWatched formats one changed file in place and logs the outcome.
func formatWatched(ctx context.Context, path string, opts watchOptions) {
	runOpts := runner.OptionsFromConfig(opts.cfg, []string{path})
	runOpts.WorkingDir = opts.workDir

	result, err := newRunner().Run(logging.WithLogger(ctx, opts.logger), runOpts)
	switch {
	case errors.Is(err, runner.ErrNoFiles), errors.Is(err, fs.ErrNotExist):
		return
	case err != nil:
		opts.logger.Error("format failed", logging.FieldPath, path, logging.FieldError, err)
		return
	}

	for _, file := range result.Files {
		switch {
		case file.Error != nil:
			opts.logger.Error("format failed", logging.FieldPath, file.Path, logging.FieldError, file.Error)
		case file.Written:
			opts.logger.Info("formatted", logging.FieldPath, file.Path)
		}
	}
}

// watchable reports whether a changed path is a file the run would format.
// Backups and temporary files never match.
func watchable(path string, cfg *config.Config) bool {
	if strings.HasPrefix(filepath.Base(path), ".") {
		return false
	}
	if cfg.Markdown.Enabled && runner.IsMarkdownPath(path) {
		return true
	}
	return langdetect.IsSuperColliderPath(path, cfg.Extensions)
}

// watchScope tracks what the user asked to watch. Files are watched
// through their directory, since editors and atomic writes replace them.
type watchScope struct {
	dirs  []string
	files map[string]bool
}

func (s *watchScope) add(watcher *fsnotify.Watcher, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("stat %s: %w", root, err)
	}
	if info.IsDir() {
		s.dirs = append(s.dirs, root)
		return addWatchTree(watcher, root)
	}

	s.files[root] = true
	if err := watcher.Add(filepath.Dir(root)); err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}
	return nil
}

// contains reports whether path is a watched file or lies below a watched
// directory.
func (s *watchScope) contains(path string) bool {
	if s.files[path] {
		return true
	}
	for _, dir := range s.dirs {
		if rel, err := filepath.Rel(dir, path); err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// addWatchTree watches root and every directory below it that is not
// hidden.
func addWatchTree(watcher *fsnotify.Watcher, root string) error {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}
	return nil
}
