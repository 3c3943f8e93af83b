package scan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/sclangfmt/pkg/scan"
)

func TestLineBounds(t *testing.T) {
	t.Parallel()

	src := []byte("ab\r\n  cd\nef")

	assert.Equal(t, 0, scan.LineStart(src, 1))
	assert.Equal(t, 2, scan.LineEnd(src, 0))
	assert.Equal(t, 4, scan.LineStart(src, 6))
	assert.Equal(t, 8, scan.LineEnd(src, 4))
	assert.Equal(t, 9, scan.NextLineStart(src, 5))
	assert.Equal(t, len(src), scan.LineEnd(src, 9))
	assert.Equal(t, len(src), scan.NextLineStart(src, 9))
	assert.Equal(t, "  ", scan.Indent(src, 7))
	assert.Equal(t, 6, scan.IndentEnd(src, 4))
}

func TestLinePositions(t *testing.T) {
	t.Parallel()

	src := []byte("  x ,  \ny")

	assert.True(t, scan.AtLineStart(src, 2))
	assert.False(t, scan.AtLineStart(src, 4))
	assert.True(t, scan.RestIsBlank(src, 5))
	assert.False(t, scan.RestIsBlank(src, 3))
	assert.True(t, scan.HasNewline(src, 0, len(src)))
	assert.False(t, scan.HasNewline(src, 0, 7))
	assert.Equal(t, 3, scan.SkipSpacesBack(src, 4))
	assert.Equal(t, 8, scan.SkipWhitespace(src, 5))
	assert.Equal(t, 4, scan.PrevNonWhitespace(src, 8))
	assert.Equal(t, -1, scan.PrevNonWhitespace(src, 2))
}

func TestWordAt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		at   int
		kw   string
		want bool
	}{
		{name: "whole word", src: "if (x)", at: 0, kw: "if", want: true},
		{name: "prefix of identifier", src: "iffy", at: 0, kw: "if", want: false},
		{name: "suffix of identifier", src: "elif(x)", at: 2, kw: "if", want: false},
		{name: "at end of buffer", src: "x = var", at: 4, kw: "var", want: true},
		{name: "out of range", src: "va", at: 0, kw: "var", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, scan.WordAt([]byte(tt.src), tt.at, tt.kw))
		})
	}
}

func TestWordBefore(t *testing.T) {
	t.Parallel()

	word, start := scan.WordBefore([]byte("x.collect("), 9)
	assert.Equal(t, "collect", word)
	assert.Equal(t, 2, start)

	word, start = scan.WordBefore([]byte("(a"), 1)
	assert.Empty(t, word)
	assert.Equal(t, 1, start)
}

func TestCollapseSpace(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a, b", scan.CollapseSpace("  a,\n\t b  "))
	assert.Empty(t, scan.CollapseSpace(" \n "))
}

func TestWidth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		s    string
		tab  int
		want int
	}{
		{name: "ascii", s: "abc", tab: 4, want: 3},
		{name: "tab counts as tab width", s: "\tx", tab: 4, want: 5},
		{name: "wide runes", s: "音楽", tab: 4, want: 4},
		{name: "combining mark has no width", s: "é", tab: 4, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, scan.Width(tt.s, tt.tab))
		})
	}

	assert.Equal(t, 3, scan.LineWidth([]byte("a\nbcd\ne"), 3, 4))
}
