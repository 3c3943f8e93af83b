package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/sclangfmt/internal/logging"
	"github.com/yaklabco/sclangfmt/pkg/langdetect"
)

// ErrNoFiles is returned by Run when discovery finds nothing to format.
var ErrNoFiles = errors.New("no SuperCollider files found")

// matcher decides which discovered paths are formatted.
type matcher struct {
	workDir    string
	extensions []string
	markdown   bool
	excludes   []glob.Glob
	baseOnly   []bool
}

func newMatcher(workDir string, opts Options) (*matcher, error) {
	m := &matcher{
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		markdown:   opts.Markdown,
	}

	for _, pattern := range opts.ExcludeGlobs {
		pattern = filepath.ToSlash(pattern)
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}
		m.excludes = append(m.excludes, g)
		m.baseOnly = append(m.baseOnly, !strings.Contains(pattern, "/"))
	}
	return m, nil
}

// excluded matches path against the ignore globs. Directories also match
// patterns that name their contents, so "build/**" prunes build itself.
func (m *matcher) excluded(path string, isDir bool) bool {
	rel, err := filepath.Rel(m.workDir, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	base := filepath.Base(path)

	for i, g := range m.excludes {
		if m.baseOnly[i] && g.Match(base) {
			return true
		}
		if g.Match(rel) || (isDir && g.Match(rel+"/")) {
			return true
		}
	}
	return false
}

func (m *matcher) isMarkdown(path string) bool {
	return m.markdown && IsMarkdownPath(path)
}

// wanted reports whether a file found in a directory walk is formatted.
func (m *matcher) wanted(path string) bool {
	return langdetect.IsSuperColliderPath(path, m.extensions) || m.isMarkdown(path)
}

// IsMarkdownPath reports whether path is a Markdown file by extension.
func IsMarkdownPath(path string) bool {
	return slices.Contains(MarkdownExtensions(), strings.ToLower(filepath.Ext(path)))
}

// Discover finds the files to format under opts.Paths and returns them as
// sorted, deduplicated absolute paths. Files named explicitly are kept
// when their extension matches or their content looks like sclang.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	m, err := newMatcher(workDir, opts)
	if err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx)
	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	for _, inputPath := range opts.effectivePaths() {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("discovery cancelled: %w", ctx.Err())
		default:
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if info.IsDir() {
			found, err := walkDirectory(ctx, absPath, m, opts.FollowSymlinks)
			if err != nil {
				return nil, err
			}
			for _, f := range found {
				add(f)
			}
			continue
		}

		if m.excluded(absPath, false) {
			continue
		}
		if m.wanted(absPath) || sniff(absPath) {
			add(absPath)
			continue
		}
		logger.Debug("skipping file that is not SuperCollider", logging.FieldPath, inputPath)
	}

	slices.Sort(files)

	logger.Debug("discovery complete", logging.FieldFilesDiscovered, len(files))
	return files, nil
}

// sniff reads an explicitly named file with an unknown extension and
// checks its content.
func sniff(path string) bool {
	content, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return langdetect.IsSuperColliderContent(content)
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// walkDirectory returns the matching files under root. Hidden entries and
// excluded directories are pruned.
func walkDirectory(ctx context.Context, root string, m *matcher, followSymlinks bool) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		hidden := path != root && strings.HasPrefix(entry.Name(), ".")

		if entry.IsDir() {
			if hidden || (path != root && m.excluded(path, true)) {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := os.Stat(path)
			if err != nil {
				return nil //nolint:nilerr // Broken symlinks are skipped.
			}
			if target.IsDir() {
				if !followSymlinks || m.excluded(path, true) {
					return nil
				}
				realPath, err := filepath.EvalSymlinks(path)
				if err != nil {
					return nil //nolint:nilerr // Unresolvable symlinks are skipped.
				}
				// WalkDir does not descend into symlinks, so walk the target.
				sub, err := walkDirectory(ctx, realPath, m, followSymlinks)
				if err != nil {
					return err
				}
				files = append(files, sub...)
				return nil
			}
		}

		if m.wanted(path) && !m.excluded(path, false) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}
