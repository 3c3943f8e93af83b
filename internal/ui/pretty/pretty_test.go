package pretty_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/sclangfmt/internal/ui/pretty"
	"github.com/yaklabco/sclangfmt/pkg/config"
	"github.com/yaklabco/sclangfmt/pkg/runner"
)

func TestIsColorEnabled(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.True(t, pretty.IsColorEnabled(pretty.ColorAlways, &buf))
	assert.False(t, pretty.IsColorEnabled(pretty.ColorNever, &buf))
	assert.False(t, pretty.IsColorEnabled(pretty.ColorAuto, &buf), "a buffer is not a terminal")
	assert.False(t, pretty.IsColorEnabled("", &buf))
}

func TestNewStyles_NoColorIsPlain(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "x", styles.Error.Render("x"))
	assert.Equal(t, "x", styles.DiffAdd.Render("x"))
	assert.Equal(t, "x", styles.StageHeader.Render("x"))
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		check bool
		want  string
	}{
		{
			name:  "clean",
			stats: runner.Stats{FilesProcessed: 3},
			want:  "All files formatted (3 files checked)\n",
		},
		{
			name:  "check",
			stats: runner.Stats{FilesProcessed: 4, FilesChanged: 2, FilesErrored: 1},
			check: true,
			want:  "2 of 5 files need formatting, 1 failed\n",
		},
		{
			name:  "written",
			stats: runner.Stats{FilesProcessed: 1, FilesChanged: 1, FilesWritten: 1},
			want:  "1 of 1 file reformatted\n",
		},
		{
			name:  "preview",
			stats: runner.Stats{FilesProcessed: 2, FilesChanged: 1, FilesUnstable: 1},
			want:  "1 of 2 files would change, 1 did not settle\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, styles.FormatSummary(tt.stats, tt.check))
		})
	}
}

func TestFormatRulesTable(t *testing.T) {
	t.Parallel()

	rules := []config.RuleInfo{
		{ID: "SC101", Name: "block-brace-layout", Description: "Opening braces join the line", Stage: "structural", Enabled: true},
		{ID: "SC306", Name: "binary-operator-spacing", Description: "One space around binary operators", Stage: "spacing"},
	}

	out := pretty.NewStyles(false).FormatRulesTable(rules, 60)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")

	assert.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Equal(t, "structural", lines[1])
	assert.Contains(t, lines[2], "block-brace-layout")
	assert.Contains(t, lines[2], " on ")
	assert.Equal(t, "spacing", lines[3])
	assert.Contains(t, lines[4], " off ")
	assert.True(t, strings.HasSuffix(lines[4], "…"), "long descriptions are truncated")
	assert.Empty(t, pretty.NewStyles(false).FormatRulesTable(nil, 80))
}
