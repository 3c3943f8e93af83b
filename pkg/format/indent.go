package format

import (
	"strconv"
	"strings"

	"github.com/yaklabco/sclangfmt/pkg/config"
)

// IndentStyle is either tab indentation or N-width space indentation.
// The zero value means four spaces.
type IndentStyle struct {
	Tabs  bool
	Width int
}

// DefaultIndent returns four-space indentation.
func DefaultIndent() IndentStyle {
	return IndentStyle{Width: config.DefaultIndentWidth}
}

// SpacesIndent returns width-space indentation.
func SpacesIndent(width int) IndentStyle {
	return IndentStyle{Width: width}
}

// TabsIndent returns tab indentation. Tabs are measured as four columns.
func TabsIndent() IndentStyle {
	return IndentStyle{Tabs: true, Width: config.DefaultIndentWidth}
}

// IndentFromConfig converts the configured indentation.
func IndentFromConfig(cfg config.IndentConfig) IndentStyle {
	style := IndentStyle{
		Tabs:  cfg.Style == config.IndentTabs,
		Width: cfg.Width,
	}
	if style.Width <= 0 {
		style.Width = config.DefaultIndentWidth
	}
	return style
}

// ColumnWidth returns the number of columns one indent level occupies.
func (s IndentStyle) ColumnWidth() int {
	if s.Width <= 0 {
		return config.DefaultIndentWidth
	}
	return s.Width
}

// Unit returns the text of one indent level.
func (s IndentStyle) Unit() string {
	if s.Tabs {
		return "\t"
	}
	return strings.Repeat(" ", s.ColumnWidth())
}

// Repeat returns the text of level indent levels.
func (s IndentStyle) Repeat(level int) string {
	if level <= 0 {
		return ""
	}
	return strings.Repeat(s.Unit(), level)
}

// Level returns how many indent levels the leading whitespace ws
// represents, rounding down. Tabs always count as one level.
func (s IndentStyle) Level(ws string) int {
	cols := 0
	for i := range len(ws) {
		if ws[i] == '\t' {
			cols += s.ColumnWidth()
		} else {
			cols++
		}
	}
	return cols / s.ColumnWidth()
}

// String describes the style for logs.
func (s IndentStyle) String() string {
	if s.Tabs {
		return "tabs"
	}
	return strconv.Itoa(s.ColumnWidth()) + " spaces"
}
