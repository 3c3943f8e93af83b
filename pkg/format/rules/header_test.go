package rules

import (
	"testing"
)

func TestPipeDefaultParensRule(t *testing.T) {
	t.Parallel()

	runRuleCases(t, NewPipeDefaultParensRule(), []ruleCase{
		{
			name:  "arithmetic default",
			input: "{ |a = 1 + 2| a }",
			want:  "{ |a = (1 + 2)| a }",
		},
		{
			name:  "message default",
			input: "{ |a = foo.bar| a }",
			want:  "{ |a = (foo.bar)| a }",
		},
		{
			name:  "array default",
			input: "{ |a = -1, b = \\sym, c = [1, 2]| a }",
			want:  "{ |a = -1, b = \\sym, c = ([1, 2])| a }",
		},
		{
			name:  "literal defaults",
			input: "{ |a = #[1, 2], b = nil, c = \"s\"| a }",
			want:  "{ |a = #[1, 2], b = nil, c = \"s\"| a }",
		},
		{
			name:  "already parenthesized",
			input: "{ |a = (1 + 2)| a }",
			want:  "{ |a = (1 + 2)| a }",
		},
		{
			name:  "arg declaration",
			input: "{ arg a = 1 + 2; a }",
			want:  "{ arg a = (1 + 2); a }",
		},
	})
}
