package rules

import (
	"testing"
)

func TestBlockBraceLayoutRule(t *testing.T) {
	t.Parallel()

	runRuleCases(t, NewBlockBraceLayoutRule(), []ruleCase{
		{
			name:  "brace after condition",
			input: "x = 1;\nif (x > 0)\n{\n    x.postln\n}",
			want:  "x = 1;\nif (x > 0) {\n    x.postln\n}",
		},
		{
			name:  "brace after assignment",
			input: "f =\n{\n    1\n}",
			want:  "f = {\n    1\n}",
		},
		{
			name:  "brace after statement end stays",
			input: "x = 1;\n{\n    2\n}",
			want:  "x = 1;\n{\n    2\n}",
		},
		{
			name:  "brace with content stays",
			input: "x = y\n{ 2 }",
			want:  "x = y\n{ 2 }",
		},
		{
			name:  "brace in comment",
			input: "f = ()\n// {\n",
			want:  "f = ()\n// {\n",
		},
		{
			name:  "else triple",
			input: "x = {\n    a\n}\nelse\n{\n    b\n};",
			want:  "x = {\n    a\n} else {\n    b\n};",
		},
		{
			name:  "indented else triple",
			input: "(\n    {\n        a\n    }\n    else\n    {\n        b\n    }\n)",
			want:  "(\n    {\n        a\n    } else {\n        b\n    }\n)",
		},
		{
			name:  "attached brace and else triple",
			input: "if (x)\n{\n    a\n}\nelse\n{\n    b\n}",
			want:  "if (x) {\n    a\n} else {\n    b\n}",
		},
		{
			name:  "else with different indentation",
			input: "x = {\n    a\n}\n  else\n{\n    b\n}",
			want:  "x = {\n    a\n}\n  else\n{\n    b\n}",
		},
		{
			name:  "longer word than else",
			input: "x = {\n    a\n}\nelsewhere\n{\n    b\n}",
			want:  "x = {\n    a\n}\nelsewhere\n{\n    b\n}",
		},
		{
			name:  "else triple inside string",
			input: "x = \"\n}\nelse\n{\n\";",
			want:  "x = \"\n}\nelse\n{\n\";",
		},
	})
}

func TestArgToPipeRule(t *testing.T) {
	t.Parallel()

	runRuleCases(t, NewArgToPipeRule(), []ruleCase{
		{
			name:  "two parameters",
			input: "{ arg a, b; a + b }",
			want:  "{ |a, b| a + b }",
		},
		{
			name:  "default kept",
			input: "{ arg freq = 440; freq }",
			want:  "{ |freq = 440| freq }",
		},
		{
			name:  "pipe header stays",
			input: "{ |a| a }",
			want:  "{ |a| a }",
		},
		{
			name:  "arg as a name elsewhere",
			input: "x = argument;",
			want:  "x = argument;",
		},
	})
}

func TestPipeHeaderOnBraceLineRule(t *testing.T) {
	t.Parallel()

	runRuleCases(t, NewPipeHeaderOnBraceLineRule(), []ruleCase{
		{
			name:  "header on next line",
			input: "{\n    |a, b|\n    a + b\n}",
			want:  "{ |a, b|\n    a + b\n}",
		},
		{
			name:  "header already on brace line",
			input: "{ |a| a }",
			want:  "{ |a| a }",
		},
		{
			name:  "comment between brace and header",
			input: "{ // params\n    |a|\n    a\n}",
			want:  "{ // params\n    |a|\n    a\n}",
		},
	})
}

func TestTrailingClosureRule(t *testing.T) {
	t.Parallel()

	runRuleCases(t, NewTrailingClosureRule(), []ruleCase{
		{
			name:  "if with two branches",
			input: "if(x > 0, { 1 }, { 2 })",
			want:  "if (x > 0) { 1 } { 2 }",
		},
		{
			name:  "if with one branch",
			input: "if(x, { 1 })",
			want:  "if (x) { 1 }",
		},
		{
			name:  "do with block argument",
			input: "[1, 2].do({ |i| i.postln })",
			want:  "[1, 2].do { |i| i.postln }",
		},
		{
			name:  "if with plain values",
			input: "if(x, 1, 2)",
			want:  "if(x, 1, 2)",
		},
		{
			name:  "result used as receiver",
			input: "if(x, { 1 }, { 2 }).postln",
			want:  "if(x, { 1 }, { 2 }).postln",
		},
		{
			name:  "do with extra argument",
			input: "x.do({ 1 }, 2)",
			want:  "x.do({ 1 }, 2)",
		},
		{
			name:  "keyword argument",
			input: "x.do(function: { 1 })",
			want:  "x.do(function: { 1 })",
		},
		{
			name:  "comment between arguments",
			input: "if(x, /* yes */ { 1 })",
			want:  "if(x, /* yes */ { 1 })",
		},
		{
			name:  "collect is not handled here",
			input: "x.collect({ 1 })",
			want:  "x.collect({ 1 })",
		},
	})
}

func TestIterationClosureRule(t *testing.T) {
	t.Parallel()

	runRuleCases(t, NewIterationClosureRule(), []ruleCase{
		{
			name:  "collect",
			input: "x.collect({ |v| v * 2 })",
			want:  "x.collect { |v| v * 2 }",
		},
		{
			name:  "select",
			input: "y = x.select({ |v| v > 2 });",
			want:  "y = x.select { |v| v > 2 };",
		},
		{
			name:  "while",
			input: "while({ i < 3 }, { i = i + 1 })",
			want:  "while { i < 3 } { i = i + 1 }",
		},
		{
			name:  "while with plain condition",
			input: "while(c, { 1 })",
			want:  "while(c, { 1 })",
		},
		{
			name:  "do is not handled here",
			input: "x.do({ 1 })",
			want:  "x.do({ 1 })",
		},
	})
}

func TestPipeParamCommasRule(t *testing.T) {
	t.Parallel()

	runRuleCases(t, NewPipeParamCommasRule(), []ruleCase{
		{
			name:  "missing comma",
			input: "{ |a b| a }",
			want:  "{ |a, b| a }",
		},
		{
			name:  "missing comma after default",
			input: "{ |a = 1 b| a }",
			want:  "{ |a = 1, b| a }",
		},
		{
			name:  "commas present",
			input: "{ |a, b| a }",
			want:  "{ |a, b| a }",
		},
	})
}

func TestDotChainLayoutRule(t *testing.T) {
	t.Parallel()

	runRuleCases(t, NewDotChainLayoutRule(), []ruleCase{
		{
			name:  "trailing dot moves down",
			input: "x.\n    foo",
			want:  "x\n    .foo",
		},
		{
			name:  "trailing dot with spaces",
			input: "Synth(\\a).  \n    play",
			want:  "Synth(\\a)\n    .play",
		},
		{
			name:  "leading dot stays",
			input: "x\n    .foo",
			want:  "x\n    .foo",
		},
		{
			name:  "inline chain",
			input: "x.foo.bar",
			want:  "x.foo.bar",
		},
	})
}
