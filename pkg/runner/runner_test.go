package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/sclangfmt/pkg/config"
	"github.com/yaklabco/sclangfmt/pkg/format"
	_ "github.com/yaklabco/sclangfmt/pkg/format/rules" // Register rules
	"github.com/yaklabco/sclangfmt/pkg/fsutil"
	"github.com/yaklabco/sclangfmt/pkg/parser/sclang"
	"github.com/yaklabco/sclangfmt/pkg/runner"
)

func newRunner() *runner.Runner {
	return runner.New(format.NewPipeline(sclang.New(), format.DefaultRegistry))
}

func runOpts(dir string, mutate func(*config.Config)) runner.Options {
	cfg := config.NewConfig()
	if mutate != nil {
		mutate(cfg)
	}
	opts := runner.OptionsFromConfig(cfg, nil)
	opts.WorkingDir = dir
	return opts
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	result, err := newRunner().Run(context.Background(), runOpts(t.TempDir(), nil))
	require.ErrorIs(t, err, runner.ErrNoFiles)
	assert.Empty(t, result.Files)
	assert.False(t, result.HasChanges())
}

func TestRunner_Run_Check(t *testing.T) {
	t.Parallel()

	dir := tree(t, map[string]string{
		"clean.scd": "x = 1;\n",
		"dirty.scd": "x=1;   \n\n\n",
	})

	result, err := newRunner().Run(context.Background(), runOpts(dir, nil))
	require.NoError(t, err)
	require.Len(t, result.Files, 2)

	clean, dirty := result.Files[0], result.Files[1]
	assert.False(t, clean.Changed())
	assert.True(t, dirty.Changed())
	assert.Equal(t, "x = 1;\n", string(dirty.Result.Output))
	assert.Equal(t, "x=1;   \n\n\n", string(dirty.Original))
	assert.False(t, dirty.Written)

	assert.Equal(t, 2, result.Stats.FilesProcessed)
	assert.Equal(t, 1, result.Stats.FilesChanged)
	assert.Positive(t, result.Stats.EditsApplied)
	assert.True(t, result.HasChanges())
	assert.False(t, result.HasErrors())

	// Without Write nothing touches the disk.
	content, err := os.ReadFile(filepath.Join(dir, "dirty.scd"))
	require.NoError(t, err)
	assert.Equal(t, "x=1;   \n\n\n", string(content))
}

func TestRunner_Run_Write(t *testing.T) {
	t.Parallel()

	dir := tree(t, map[string]string{"a.scd": "f = {1};"})

	opts := runOpts(dir, func(cfg *config.Config) { cfg.Write = true })
	result, err := newRunner().Run(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, result.Files, 1)

	outcome := result.Files[0]
	require.NoError(t, outcome.Error)
	assert.True(t, outcome.Written)
	assert.True(t, outcome.BackedUp)
	assert.Equal(t, 1, result.Stats.FilesWritten)

	path := filepath.Join(dir, "a.scd")
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "f = { 1 };\n", string(content))

	backup, err := os.ReadFile(path + fsutil.BackupSuffix)
	require.NoError(t, err)
	assert.Equal(t, "f = {1};", string(backup))

	// A second run finds nothing to do.
	again, err := newRunner().Run(context.Background(), opts)
	require.NoError(t, err)
	assert.False(t, again.HasChanges())
}

func TestRunner_Run_NoBackups(t *testing.T) {
	t.Parallel()

	dir := tree(t, map[string]string{"a.scd": "x=1;"})

	opts := runOpts(dir, func(cfg *config.Config) {
		cfg.Write = true
		cfg.NoBackups = true
	})
	result, err := newRunner().Run(context.Background(), opts)
	require.NoError(t, err)
	assert.False(t, result.Files[0].BackedUp)

	_, err = os.Stat(filepath.Join(dir, "a.scd"+fsutil.BackupSuffix))
	assert.True(t, os.IsNotExist(err))
}

func TestRunner_Run_Markdown(t *testing.T) {
	t.Parallel()

	doc := "# Demo\n\n```supercollider\nx=1;   \n```\n\n```go\nx:=1\n```\n"
	dir := tree(t, map[string]string{"README.md": doc})

	opts := runOpts(dir, func(cfg *config.Config) { cfg.Markdown.Enabled = true })
	result, err := newRunner().Run(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, result.Files, 1)

	outcome := result.Files[0]
	require.NoError(t, outcome.Error)
	assert.True(t, outcome.Markdown)
	assert.Equal(t, 1, outcome.Fences)
	assert.Equal(t, "# Demo\n\n```supercollider\nx = 1;\n```\n\n```go\nx:=1\n```\n", string(outcome.Result.Output))
}

func TestRunner_Run_PhaseOff(t *testing.T) {
	t.Parallel()

	dir := tree(t, map[string]string{"a.scd": "x=1;"})

	result, err := newRunner().Run(context.Background(), runOpts(dir, func(cfg *config.Config) { cfg.Phase = "pre" }))
	require.NoError(t, err)
	assert.False(t, result.HasChanges())
}

func TestRunner_Run_SerialVsParallel(t *testing.T) {
	t.Parallel()

	files := map[string]string{}
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		files[name+".scd"] = "[1,2 ,3];\nif(x, { 1 }, { 2 });\n"
	}
	dir := tree(t, files)

	serial := runOpts(dir, func(cfg *config.Config) { cfg.Jobs = 1 })
	parallel := runOpts(dir, func(cfg *config.Config) { cfg.Jobs = 8 })

	r1, err := newRunner().Run(context.Background(), serial)
	require.NoError(t, err)
	r2, err := newRunner().Run(context.Background(), parallel)
	require.NoError(t, err)

	require.Len(t, r2.Files, len(r1.Files))
	for i := range r1.Files {
		assert.Equal(t, r1.Files[i].Path, r2.Files[i].Path)
		assert.Equal(t, string(r1.Files[i].Result.Output), string(r2.Files[i].Result.Output))
	}
	assert.Equal(t, r1.Stats, r2.Stats)
}

func TestRunner_Run_InvalidPhase(t *testing.T) {
	t.Parallel()

	_, err := newRunner().Run(context.Background(), runOpts(t.TempDir(), func(cfg *config.Config) { cfg.Phase = "late" }))
	require.ErrorIs(t, err, format.ErrUnknownPhase)
}

func TestRunner_Run_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := tree(t, map[string]string{"a.scd": "x;"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRunner().Run(ctx, runOpts(dir, nil))
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunner_FormatContent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		src      string
		markdown bool
		want     string
		changed  bool
	}{
		{name: "source", src: "x=1;", want: "x = 1;\n", changed: true},
		{name: "already formatted", src: "x = 1;\n", want: "x = 1;\n"},
		{
			name:     "markdown",
			src:      "```sclang\nf={1}\n```\n",
			markdown: true,
			want:     "```sclang\nf = { 1 }\n```\n",
			changed:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := newRunner().FormatContent(context.Background(), "<stdin>", []byte(tt.src), nil, tt.markdown)
			require.NoError(t, err)
			require.Len(t, result.Files, 1)

			outcome := result.Files[0]
			require.NoError(t, outcome.Error)
			assert.Equal(t, tt.want, string(outcome.Result.Output))
			assert.Equal(t, tt.changed, outcome.Changed())
			assert.Equal(t, tt.src, string(outcome.Original))
			assert.Equal(t, 1, result.Stats.FilesProcessed)
			assert.False(t, outcome.Written)
		})
	}
}

func TestRunner_FormatContent_InvalidPhase(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Phase = "late"

	_, err := newRunner().FormatContent(context.Background(), "<stdin>", []byte("x;"), cfg, false)
	require.ErrorIs(t, err, format.ErrUnknownPhase)
}
