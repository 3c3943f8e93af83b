package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/sclangfmt/internal/logging"
	"github.com/yaklabco/sclangfmt/pkg/config"
)

func TestWatchable(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	withMarkdown := config.NewConfig()
	withMarkdown.Markdown.Enabled = true

	tests := []struct {
		name string
		path string
		cfg  *config.Config
		want bool
	}{
		{name: "scd", path: "/p/a.scd", cfg: cfg, want: true},
		{name: "class file", path: "/p/Foo.sc", cfg: cfg, want: true},
		{name: "backup", path: "/p/a.scd.sclangfmt.bak", cfg: cfg},
		{name: "temp file", path: "/p/a.scd.tmp.1234", cfg: cfg},
		{name: "hidden", path: "/p/.a.scd", cfg: cfg},
		{name: "markdown off", path: "/p/README.md", cfg: cfg},
		{name: "markdown on", path: "/p/README.md", cfg: withMarkdown, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, watchable(tt.path, tt.cfg))
		})
	}
}

func TestWatchScope(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	other := t.TempDir()
	file := filepath.Join(other, "one.scd")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	watcher, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer watcher.Close()

	scope := &watchScope{files: make(map[string]bool)}
	require.NoError(t, scope.add(watcher, sub))
	require.NoError(t, scope.add(watcher, file))

	assert.True(t, scope.contains(filepath.Join(sub, "a.scd")))
	assert.True(t, scope.contains(filepath.Join(sub, "deep", "a.scd")))
	assert.False(t, scope.contains(filepath.Join(dir, "a.scd")))
	assert.True(t, scope.contains(file))
	assert.False(t, scope.contains(filepath.Join(other, "two.scd")))

	require.Error(t, scope.add(watcher, filepath.Join(dir, "missing")))
}

func TestWatch_FormatsChangedFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := config.NewConfig()
	cfg.Write = true
	cfg.NoBackups = true

	ctx, cancel := context.WithCancel(context.Background())
	ready := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- watch(ctx, watchOptions{
			paths:    []string{dir},
			workDir:  dir,
			cfg:      cfg,
			debounce: 20 * time.Millisecond,
			logger:   logging.Discard(),
			ready:    func() { close(ready) },
		})
	}()

	select {
	case <-ready:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not start")
	}

	path := filepath.Join(dir, "live.scd")
	ignored := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("x=1;"), 0o644))
	require.NoError(t, os.WriteFile(ignored, []byte("x=1;"), 0o644))

	assert.Eventually(t, func() bool {
		content, err := os.ReadFile(path)
		return err == nil && string(content) == "x = 1;\n"
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	content, err := os.ReadFile(ignored)
	require.NoError(t, err)
	assert.Equal(t, "x=1;", string(content))
}
