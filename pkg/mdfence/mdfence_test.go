package mdfence_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/sclangfmt/pkg/mdfence"
)

var languages = []string{"supercollider", "sclang", "sc", "scd"}

// upper is a stand-in formatter that makes rewritten blocks easy to spot.
func upper(_ context.Context, _ mdfence.Block, code []byte) ([]byte, error) {
	return bytes.ToUpper(code), nil
}

func TestFind(t *testing.T) {
	t.Parallel()

	src := "# Title\n\n```supercollider\nx = 1;\n```\n\n```go\nfmt.Println()\n```\n\n~~~scd\ny = 2;\nz = 3;\n~~~\n"

	blocks := mdfence.Find([]byte(src), languages)
	require.Len(t, blocks, 2)

	assert.Equal(t, "supercollider", blocks[0].Info)
	assert.Equal(t, 4, blocks[0].Line)
	assert.Equal(t, "x = 1;\n", src[blocks[0].Start:blocks[0].End])

	assert.Equal(t, "scd", blocks[1].Info)
	assert.Equal(t, "y = 2;\nz = 3;\n", src[blocks[1].Start:blocks[1].End])
}

func TestFind_SkipsQuotedFences(t *testing.T) {
	t.Parallel()

	src := "> ```sclang\n> x = 1;\n> ```\n"
	assert.Empty(t, mdfence.Find([]byte(src), languages))
}

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		input       string
		want        string
		wantBlocks  int
		wantChanged int
	}{
		{
			name:        "rewrites only matching fences",
			input:       "text\n```sclang\nx = 1;\n```\n```python\nx = 1\n```\n",
			want:        "text\n```sclang\nX = 1;\n```\n```python\nx = 1\n```\n",
			wantBlocks:  1,
			wantChanged: 1,
		},
		{
			name:        "unchanged fence",
			input:       "```sc\n1;\n```\n",
			want:        "```sc\n1;\n```\n",
			wantBlocks:  1,
			wantChanged: 0,
		},
		{
			name:        "no fences",
			input:       "just prose\n",
			want:        "just prose\n",
			wantBlocks:  0,
			wantChanged: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := mdfence.Format(context.Background(), []byte(tt.input), languages, upper)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(result.Output))
			assert.Equal(t, tt.wantBlocks, result.Blocks)
			assert.Equal(t, tt.wantChanged, result.Changed)
		})
	}
}

func TestFormat_AddsMissingNewline(t *testing.T) {
	t.Parallel()

	trim := func(_ context.Context, _ mdfence.Block, code []byte) ([]byte, error) {
		return bytes.TrimSpace(code), nil
	}

	result, err := mdfence.Format(context.Background(), []byte("```sc\nx;  \n```\n"), languages, trim)
	require.NoError(t, err)
	assert.Equal(t, "```sc\nx;\n```\n", string(result.Output))
}

func TestFormat_Error(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	fail := func(context.Context, mdfence.Block, []byte) ([]byte, error) { return nil, boom }

	_, err := mdfence.Format(context.Background(), []byte("\n```sc\nx\n```\n"), languages, fail)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "line 3")
}
