package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/sclangfmt/internal/cli"
)

func TestInitCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		format   string
		file     string
		contains string
	}{
		{name: "yaml", format: "yaml", file: "config.yml", contains: "indent:"},
		{name: "toml", format: "toml", file: "config.toml", contains: "[indent]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := filepath.Join(t.TempDir(), tt.file)

			res := execute(t, "", "init", "--format", tt.format, "--output", out)
			require.NoError(t, res.err)

			content, err := os.ReadFile(out)
			require.NoError(t, err)
			assert.Contains(t, string(content), tt.contains)

			res = execute(t, "", "init", "--format", tt.format, "--output", out)
			require.Error(t, res.err, "existing file needs --force")
			assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(res.err))

			res = execute(t, "", "init", "--format", tt.format, "--output", out, "--force")
			require.NoError(t, res.err)
		})
	}
}

func TestInitCommand_BadFormat(t *testing.T) {
	t.Parallel()

	res := execute(t, "", "init", "--format", "json", "--output", filepath.Join(t.TempDir(), "x"))
	require.Error(t, res.err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(res.err))
}
