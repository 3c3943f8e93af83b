package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommaSpacingRule(t *testing.T) {
	t.Parallel()

	runRuleCases(t, NewCommaSpacingRule(), []ruleCase{
		{name: "missing and misplaced spaces", input: "[1,2 ,3]", want: "[1, 2, 3]"},
		{name: "wide gaps", input: "f(a ,  b)", want: "f(a, b)"},
		{name: "trailing comma before closer", input: "foo(a,)", want: "foo(a,)"},
		{name: "comma ends the line", input: "foo(a,\n  b)", want: "foo(a,\n  b)"},
		{name: "comma inside string", input: "[\"a,b\",x]", want: "[\"a,b\", x]"},
		{name: "comment after comma", input: "f(a,  // note\n  b)", want: "f(a,  // note\n  b)"},
		{name: "spaces before closer removed", input: "f(a,   )", want: "f(a,)"},
	})
}

func TestAssignmentSpacingRule(t *testing.T) {
	t.Parallel()

	runRuleCases(t, NewAssignmentSpacingRule(), []ruleCase{
		{name: "statements", input: "x=1; y =2; z = 1+2;", want: "x = 1; y = 2; z = 1+2;"},
		{name: "comparisons untouched", input: "a==b; c<=d; e>=f; g!=h;", want: "a==b; c<=d; e>=f; g!=h;"},
		{name: "value on next line", input: "x =\n    1", want: "x =\n    1"},
		{name: "parameter default", input: "{ |a=1| a }", want: "{ |a = 1| a }"},
		{name: "inside string", input: "\"a=b\"", want: "\"a=b\""},
		{name: "wide gaps", input: "x   =    1", want: "x = 1"},
	})
}

func TestSemicolonSpacingRule(t *testing.T) {
	t.Parallel()

	runRuleCases(t, NewSemicolonSpacingRule(), []ruleCase{
		{name: "space before", input: "x = 1 ;", want: "x = 1;"},
		{name: "several statements", input: "x = 1  ;\ny = 2 ;", want: "x = 1;\ny = 2;"},
		{name: "already tight", input: "a; b;", want: "a; b;"},
	})
}

func TestDotSpacingRule(t *testing.T) {
	t.Parallel()

	runRuleCases(t, NewDotSpacingRule(), []ruleCase{
		{name: "spaced chain", input: "Button()  .  states_(1)", want: "Button().states_(1)"},
		{name: "after collection", input: "x = [1, 2] . size", want: "x = [1, 2].size"},
		{name: "after string", input: "\"x\" .postln", want: "\"x\".postln"},
		{name: "range", input: "(1..5)", want: "(1..5)"},
		{name: "float", input: "x = 1.5", want: "x = 1.5"},
		{name: "continuation line", input: "foo\n    .bar", want: "foo\n    .bar"},
	})
}

func TestBlockPaddingRule(t *testing.T) {
	t.Parallel()

	runRuleCases(t, NewBlockPaddingRule(), []ruleCase{
		{name: "tight block", input: "f = {1}", want: "f = { 1 }"},
		{name: "wide block", input: "f = {  a + b   }", want: "f = { a + b }"},
		{name: "nested blocks", input: "{{1}}", want: "{ { 1 } }"},
		{name: "closed function", input: "#{a}", want: "#{ a }"},
		{name: "empty block", input: "f = {}", want: "f = {}"},
		{name: "multi-line block", input: "f = {\n    1\n}", want: "f = {\n    1\n}"},
	})
}

func TestBinaryOperatorSpacingRule(t *testing.T) {
	t.Parallel()

	assert.False(t, NewBinaryOperatorSpacingRule().DefaultEnabled())

	runRuleCases(t, NewBinaryOperatorSpacingRule(), []ruleCase{
		{name: "addition", input: "x = 1+2;", want: "x = 1 + 2;"},
		{name: "comparison", input: "a==b", want: "a == b"},
		{name: "unary minus", input: "x = -1;", want: "x = -1;"},
		{name: "unary in arguments", input: "f(-x, a*b)", want: "f(-x, a * b)"},
		{name: "already spaced", input: "a + b", want: "a + b"},
	})
}

func TestColonSpacingRule(t *testing.T) {
	t.Parallel()

	runRuleCases(t, NewColonSpacingRule(), []ruleCase{
		{name: "keyword argument", input: "f(freq:440)", want: "f(freq: 440)"},
		{name: "event entries", input: "(freq :440, amp:  0.1)", want: "(freq: 440, amp: 0.1)"},
		{name: "already spaced", input: "(freq: 440)", want: "(freq: 440)"},
	})
}

func TestKeywordParenSpacingRule(t *testing.T) {
	t.Parallel()

	runRuleCases(t, NewKeywordParenSpacingRule(), []ruleCase{
		{name: "if", input: "if(x) { 1 }", want: "if (x) { 1 }"},
		{name: "while with wide gap", input: "while  (x) { 1 }", want: "while (x) { 1 }"},
		{name: "selector named if", input: "x.if(y)", want: "x.if(y)"},
		{name: "longer identifier", input: "iffy(1)", want: "iffy(1)"},
	})
}

func TestCallParenSpacingRule(t *testing.T) {
	t.Parallel()

	runRuleCases(t, NewCallParenSpacingRule(), []ruleCase{
		{name: "call", input: "foo (1)", want: "foo(1)"},
		{name: "index", input: "a [0]", want: "a[0]"},
		{name: "index after collection", input: "x = [1, 2] [0]", want: "x = [1, 2][0]"},
		{name: "control keyword", input: "if (x) { 1 }", want: "if (x) { 1 }"},
		{name: "after assignment", input: "x = (1)", want: "x = (1)"},
	})
}

func TestParenPaddingRule(t *testing.T) {
	t.Parallel()

	runRuleCases(t, NewParenPaddingRule(), []ruleCase{
		{name: "call arguments", input: "foo( 1, 2 )", want: "foo(1, 2)"},
		{name: "brackets", input: "[ 1 ]", want: "[1]"},
		{name: "empty parens", input: "( )", want: "()"},
		{name: "closer on its own line", input: "foo(\n    1\n    )", want: "foo(\n    1\n    )"},
		{name: "comment after opener", input: "foo( // c\n    1)", want: "foo( // c\n    1)"},
	})
}

func TestBlockBraceSpacingRule(t *testing.T) {
	t.Parallel()

	runRuleCases(t, NewBlockBraceSpacingRule(), []ruleCase{
		{name: "after selector", input: "x.do{ 1 }", want: "x.do { 1 }"},
		{name: "after condition", input: "if (x){ 1 }", want: "if (x) { 1 }"},
		{name: "after assignment", input: "f={ 1 }", want: "f= { 1 }"},
		{name: "argument", input: "f({ 1 })", want: "f({ 1 })"},
		{name: "element", input: "[{ 1 }]", want: "[{ 1 }]"},
	})
}

func TestDeclarationKeywordSpacingRule(t *testing.T) {
	t.Parallel()

	runRuleCases(t, NewDeclarationKeywordSpacingRule(), []ruleCase{
		{name: "var", input: "var   a = 1;", want: "var a = 1;"},
		{name: "arg with tab", input: "{ arg\ta; a }", want: "{ arg a; a }"},
		{name: "already spaced", input: "var a, b;", want: "var a, b;"},
	})
}

func TestPipeHeaderSpacingRule(t *testing.T) {
	t.Parallel()

	runRuleCases(t, NewPipeHeaderSpacingRule(), []ruleCase{
		{name: "tight brace", input: "{|a, b| a }", want: "{ |a, b| a }"},
		{name: "padded pipes", input: "{ |  a, b  | a }", want: "{ |a, b| a }"},
		{name: "wide gap", input: "{   |a| a }", want: "{ |a| a }"},
		{name: "empty header", input: "{ || 1 }", want: "{ || 1 }"},
	})
}

func TestPipeBodySpacingRule(t *testing.T) {
	t.Parallel()

	runRuleCases(t, NewPipeBodySpacingRule(), []ruleCase{
		{name: "tight body", input: "{ |a|a + 1 }", want: "{ |a| a + 1 }"},
		{name: "wide body", input: "{ |a|   a }", want: "{ |a| a }"},
		{name: "body on next line", input: "{ |a|\n    a\n}", want: "{ |a|\n    a\n}"},
		{name: "trailing spaces", input: "{ |a|  \n    a\n}", want: "{ |a|\n    a\n}"},
	})
}

func TestInlineCommentSpacingRule(t *testing.T) {
	t.Parallel()

	runRuleCases(t, NewInlineCommentSpacingRule(), []ruleCase{
		{name: "tight comment", input: "x = 1;// note", want: "x = 1;  // note"},
		{name: "wide gap and no space", input: "x = 1;    //note", want: "x = 1;  // note"},
		{name: "tabs", input: "x;\t//\tnote", want: "x;  // note"},
		{name: "comment line", input: "// top comment", want: "// top comment"},
		{name: "comment line without space", input: "//note", want: "// note"},
		{name: "doc comment", input: "x; ///doc", want: "x;  ///doc"},
		{name: "url in string", input: "\"http://x\"", want: "\"http://x\""},
	})
}
