// Package fix provides text edit types, conflict resolution, application and
// unified diffs for source rewriting.
package fix

// TextEdit represents a single text replacement in a file.
// Offsets refer to the text the edit was computed against.
type TextEdit struct {
	// StartOffset is the byte index where the edit begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the edit ends (exclusive).
	EndOffset int

	// NewText is the replacement text.
	NewText string
}

// Len returns the number of bytes the edit replaces.
func (e TextEdit) Len() int {
	return e.EndOffset - e.StartOffset
}

// IsInsert returns true if the edit replaces nothing.
func (e TextEdit) IsInsert() bool {
	return e.StartOffset == e.EndOffset
}

// EditBuilder accumulates text edits against one version of a file.
type EditBuilder struct {
	src   []byte
	edits []TextEdit
}

// NewEditBuilder creates a builder for edits against src.
// src may be nil when the Set helper is not used.
func NewEditBuilder(src []byte) *EditBuilder {
	return &EditBuilder{src: src}
}

// ReplaceRange adds an edit that replaces bytes [start, end) with newText.
func (b *EditBuilder) ReplaceRange(start, end int, newText string) {
	b.edits = append(b.edits, TextEdit{
		StartOffset: start,
		EndOffset:   end,
		NewText:     newText,
	})
}

// Insert adds an edit that inserts text at the given offset.
func (b *EditBuilder) Insert(offset int, text string) {
	b.ReplaceRange(offset, offset, text)
}

// Delete adds an edit that deletes bytes [start, end). Empty ranges are
// ignored.
func (b *EditBuilder) Delete(start, end int) {
	if end > start {
		b.ReplaceRange(start, end, "")
	}
}

// Set replaces [start, end) with want unless the source already holds
// exactly that text. Rules use it to normalize a run without emitting
// no-op edits.
func (b *EditBuilder) Set(start, end int, want string) {
	if start < 0 || end > len(b.src) || start > end {
		return
	}
	if string(b.src[start:end]) == want {
		return
	}
	b.ReplaceRange(start, end, want)
}

// Len returns the number of accumulated edits.
func (b *EditBuilder) Len() int {
	return len(b.edits)
}

// Edits returns the accumulated edits.
func (b *EditBuilder) Edits() []TextEdit {
	return b.edits
}
