package scan

import "github.com/mattn/go-runewidth"

// Width returns the display width of s in terminal columns. Tabs count as
// tabWidth columns; wide runes count as two.
func Width(s string, tabWidth int) int {
	w := 0
	for _, r := range s {
		if r == '\t' {
			w += tabWidth
			continue
		}
		w += runewidth.RuneWidth(r)
	}
	return w
}

// LineWidth returns the display width of the line holding off.
func LineWidth(src []byte, off, tabWidth int) int {
	return Width(string(src[LineStart(src, off):LineEnd(src, off)]), tabWidth)
}
