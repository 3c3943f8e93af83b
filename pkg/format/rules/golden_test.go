package rules

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGolden formats every testdata/*.input.scd file with the default
// rules and compares it with the matching *.golden.scd file.
func TestGolden(t *testing.T) {
	t.Parallel()

	inputs, err := filepath.Glob(filepath.Join("testdata", "*.input.scd"))
	require.NoError(t, err)
	require.NotEmpty(t, inputs, "no golden inputs found")

	for _, inputPath := range inputs {
		name := strings.TrimSuffix(filepath.Base(inputPath), ".input.scd")
		goldenPath := filepath.Join("testdata", name+".golden.scd")

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			input, err := os.ReadFile(inputPath)
			require.NoError(t, err)
			golden, err := os.ReadFile(goldenPath)
			require.NoError(t, err, "missing golden file for %s", inputPath)

			result := formatText(t, string(input), nil)
			assert.True(t, result.Converged)
			assert.Equal(t, string(golden), string(result.Output))

			again := formatText(t, string(result.Output), nil)
			assert.False(t, again.Changed, "golden output should be stable")
		})
	}
}
