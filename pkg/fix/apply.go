package fix

import "bytes"

// ApplyEdits applies sorted, non-overlapping edits to content and returns
// the new text. Every offset refers to the original content, so a single
// forward copy produces the same result as applying the edits from the
// highest start to the lowest. Content is never modified in place.
func ApplyEdits(content []byte, edits []TextEdit) []byte {
	if len(edits) == 0 {
		return content
	}

	size := len(content)
	for _, e := range edits {
		size += len(e.NewText) - e.Len()
	}

	var out bytes.Buffer
	out.Grow(max(size, 0))

	cursor := 0
	for _, e := range edits {
		out.Write(content[cursor:e.StartOffset])
		out.WriteString(e.NewText)
		cursor = e.EndOffset
	}
	out.Write(content[cursor:])

	return out.Bytes()
}
