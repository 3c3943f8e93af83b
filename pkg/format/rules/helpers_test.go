package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/sclangfmt/pkg/format"
	"github.com/yaklabco/sclangfmt/pkg/parser/sclang"
)

// ruleCase is one input and the text expected after a single application
// of the rule under test.
type ruleCase struct {
	name   string
	input  string
	want   string
	width  int
	indent format.IndentStyle
}

// applyOnce parses input, applies rule once through a document and returns
// the document so callers can inspect or reapply.
func applyOnce(t *testing.T, rule format.Rule, tc ruleCase) *format.Document {
	t.Helper()

	ctx := context.Background()
	doc, err := format.NewDocument(ctx, sclang.New(), "test.scd", []byte(tc.input), tc.indent)
	require.NoError(t, err)
	doc.WithMaxWidth(tc.width)

	_, err = doc.Apply(ctx, rule.Apply(doc.Snapshot()))
	require.NoError(t, err)
	return doc
}

// runRuleCases checks every case and that the result is a fixed point of
// the rule.
func runRuleCases(t *testing.T, rule format.Rule, tests []ruleCase) {
	t.Helper()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := applyOnce(t, rule, tt)
			assert.Equal(t, tt.want, string(doc.Text()))
			assert.Empty(t, rule.Apply(doc.Snapshot()), "fix should be idempotent")
		})
	}
}

// formatText runs the default registry over src.
func formatText(t *testing.T, src string, mutate func(*format.Options)) *format.Result {
	t.Helper()

	opts := format.DefaultOptions()
	if mutate != nil {
		mutate(&opts)
	}

	result, err := format.NewPipeline(sclang.New(), format.DefaultRegistry).
		Run(context.Background(), "test.scd", []byte(src), opts)
	require.NoError(t, err)
	return result
}
