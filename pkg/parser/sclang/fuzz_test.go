package sclang_test

import (
	"context"
	"testing"

	"github.com/yaklabco/sclangfmt/pkg/cst"
	"github.com/yaklabco/sclangfmt/pkg/parser/sclang"
	"github.com/yaklabco/sclangfmt/pkg/scan"
)

// FuzzParse fuzzes the parser with random input.
func FuzzParse(f *testing.F) {
	seeds := []string{
		"",
		"x = 1;",
		"{ |a, b = 2| a + b }",
		"{ arg a; a }",
		"if (x) { 1 } { 2 };",
		"[1, [2, 3], (a: 4)]",
		"SynthDef(\\a, { Out.ar(0, SinOsc.ar(440)) }).add;",
		"\"unterminated",
		"/* open comment",
		"{|a|-a}",
		"#a, b = [1, 2];",
		"Foo : Bar { var <>x; *new { ^super.new } }",
		"((((",
		"))))",
		"$",
		"\\",
	}

	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		tree, err := sclang.New().Parse(context.Background(), "", data)
		if err != nil {
			return
		}

		if tree.Root.Start != 0 || tree.Root.End != len(data) {
			t.Fatalf("root covers [%d, %d), want [0, %d)", tree.Root.Start, tree.Root.End, len(data))
		}

		//nolint:errcheck,revive // walk callback never fails
		cst.Walk(tree.Root, func(n *cst.Node) error {
			if n.Start < 0 || n.End > len(data) || n.Start > n.End {
				t.Fatalf("%s node has invalid range [%d, %d)", n.Kind, n.Start, n.End)
			}
			return nil
		})

		classes := scan.Classify(data)
		for off := range data {
			if classes.InStringOrComment(off) != tree.InStringOrComment(off) {
				t.Fatalf("classifiers disagree at offset %d", off)
			}
		}
	})
}
