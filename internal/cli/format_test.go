package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/sclangfmt/internal/cli"
	"github.com/yaklabco/sclangfmt/pkg/fsutil"
	"github.com/yaklabco/sclangfmt/pkg/reporter"
)

const unformatted = "x=1;"

type execResult struct {
	stdout string
	stderr string
	err    error
}

// execute runs the root command with an explicit config file so project
// configuration around the test does not leak in.
func execute(t *testing.T, stdin string, args ...string) execResult {
	t.Helper()

	cfgFile := filepath.Join(t.TempDir(), ".sclangfmt.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("max_width: 80\n"), 0o644))

	cmd := cli.NewRootCommand(testInfo())

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append(args, "--config", cfgFile, "--color", "never"))

	err := cmd.Execute()
	return execResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeSource(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

func TestFormat_PrintsFormattedText(t *testing.T) {
	t.Parallel()

	path := writeSource(t, "a.scd", unformatted)

	res := execute(t, "", path)
	require.NoError(t, res.err)
	assert.Equal(t, "x = 1;\n", res.stdout)
	assert.Equal(t, unformatted, readFile(t, path), "file must not be touched")
}

func TestFormat_Check(t *testing.T) {
	t.Parallel()

	path := writeSource(t, "a.scd", unformatted)

	res := execute(t, "", "format", "--check", path)
	require.ErrorIs(t, res.err, cli.ErrUnformatted)
	assert.Equal(t, cli.ExitUnformatted, cli.ExitCode(res.err))
	assert.Contains(t, res.stdout, "unformatted")
	assert.Contains(t, res.stdout, "1 of 1 file need formatting")
	assert.Equal(t, unformatted, readFile(t, path))
}

func TestFormat_CheckClean(t *testing.T) {
	t.Parallel()

	path := writeSource(t, "a.scd", "x = 1;\n")

	res := execute(t, "", "--check", path)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "All files formatted")
}

func TestFormat_Write(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantBackup bool
	}{
		{name: "with backup", args: []string{"-w"}, wantBackup: true},
		{name: "no backups", args: []string{"-w", "--no-backups"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeSource(t, "a.scd", unformatted)

			res := execute(t, "", append(tt.args, path)...)
			require.NoError(t, res.err)
			assert.Equal(t, "x = 1;\n", readFile(t, path))
			assert.Contains(t, res.stdout, "reformatted")

			_, err := os.Stat(fsutil.BackupPath(path, fsutil.BackupModeSidecar))
			assert.Equal(t, tt.wantBackup, err == nil)
		})
	}
}

func TestFormat_Diff(t *testing.T) {
	t.Parallel()

	path := writeSource(t, "a.scd", "x=1;\n")

	res := execute(t, "", "--diff", path)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "-x=1;\n")
	assert.Contains(t, res.stdout, "+x = 1;\n")
	assert.Contains(t, res.stdout, "1 file changed, 1 insertion(+), 1 deletion(-)")
}

func TestFormat_JSON(t *testing.T) {
	t.Parallel()

	path := writeSource(t, "a.scd", unformatted)

	res := execute(t, "", "--output-format", "json", "--rule-format", "id", path)
	require.NoError(t, res.err)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &output))
	require.Len(t, output.Files, 1)
	assert.True(t, output.Files[0].Changed)
	assert.Equal(t, 1, output.Summary.FilesChanged)

	var rules []string
	for _, rs := range output.Files[0].Rules {
		rules = append(rules, rs.Rule)
	}
	assert.Contains(t, rules, "SC302")
}

func TestFormat_DisableRule(t *testing.T) {
	t.Parallel()

	path := writeSource(t, "a.scd", unformatted)

	res := execute(t, "", "--disable", "assignment-spacing", path)
	require.NoError(t, res.err)
	assert.Equal(t, "x=1;\n", res.stdout)
}

func TestFormat_Stdin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		args  []string
		stdin string
		want  string
	}{
		{name: "implicit", stdin: unformatted, want: "x = 1;\n"},
		{name: "dash", args: []string{"-"}, stdin: "f={1}", want: "f = { 1 }\n"},
		{name: "empty input", stdin: "", want: ""},
		{
			name:  "markdown",
			args:  []string{"--markdown"},
			stdin: "# Title\n\n```sc\nx=1;\n```\n",
			want:  "# Title\n\n```sc\nx = 1;\n```\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := execute(t, tt.stdin, tt.args...)
			require.NoError(t, res.err)
			assert.Equal(t, tt.want, res.stdout)
		})
	}
}

func TestFormat_StdinCheck(t *testing.T) {
	t.Parallel()

	res := execute(t, unformatted, "--check")
	require.ErrorIs(t, res.err, cli.ErrUnformatted)
	assert.Contains(t, res.stdout, "<stdin>")
}

func TestFormat_UsageErrors(t *testing.T) {
	t.Parallel()

	path := writeSource(t, "a.scd", unformatted)

	tests := []struct {
		name string
		args []string
	}{
		{name: "write and check", args: []string{"-w", "--check", path}},
		{name: "write and diff", args: []string{"-w", "--diff", path}},
		{name: "write stdin", args: []string{"-w"}},
		{name: "bad output format", args: []string{"--output-format", "xml", path}},
		{name: "bad rule format", args: []string{"--rule-format", "long", path}},
		{name: "unknown flag", args: []string{"--frobnicate", path}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := execute(t, "", tt.args...)
			require.Error(t, res.err)
			assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(res.err))
		})
	}
}

func TestFormat_ConfigErrors(t *testing.T) {
	t.Parallel()

	path := writeSource(t, "a.scd", unformatted)

	res := execute(t, "", "--phase", "late", path)
	require.Error(t, res.err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(res.err))

	res = execute(t, "", "--max-width", "5", path)
	require.Error(t, res.err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(res.err))
}

func TestFormat_MissingPath(t *testing.T) {
	t.Parallel()

	res := execute(t, "", filepath.Join(t.TempDir(), "missing.scd"))
	require.Error(t, res.err)
	assert.Equal(t, cli.ExitIOError, cli.ExitCode(res.err))
}

func TestFormat_NoFiles(t *testing.T) {
	t.Parallel()

	res := execute(t, "", t.TempDir())
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "no SuperCollider files found")
}

func TestFormatHelp_GroupsFlags(t *testing.T) {
	t.Parallel()

	res := execute(t, "", "format", "--help")
	require.NoError(t, res.err)

	out := res.stdout
	headings := []string{"Mode Flags:", "Layout Flags:", "Rules Flags:", "Files Flags:", "Output Flags:", "Other Flags:", "Global Flags:"}
	last := -1
	for _, heading := range headings {
		idx := strings.Index(out, heading)
		require.GreaterOrEqual(t, idx, 0, "missing %q in:\n%s", heading, out)
		assert.Greater(t, idx, last, "%q out of order", heading)
		last = idx
	}

	mode := out[strings.Index(out, "Mode Flags:"):strings.Index(out, "Layout Flags:")]
	assert.Contains(t, mode, "-w, --write")
	assert.Contains(t, mode, "--check")
	assert.NotContains(t, mode, "--tabs")
	assert.Contains(t, out, "--help")
	assert.NotContains(t, out, "\x1b[", "color never must not emit escapes")
}
