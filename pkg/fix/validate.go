package fix

import (
	"fmt"
	"sort"
)

// ValidationError describes an invalid edit.
type ValidationError struct {
	Edit    TextEdit
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.StartOffset, e.Edit.EndOffset, e.Message)
}

// ConflictError describes overlapping edits.
type ConflictError struct {
	Edit1 TextEdit
	Edit2 TextEdit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping edits: [%d:%d] and [%d:%d]",
		e.Edit1.StartOffset, e.Edit1.EndOffset,
		e.Edit2.StartOffset, e.Edit2.EndOffset)
}

// ValidateEdits checks that all edits have valid ranges for the given content length.
// Returns nil if all edits are valid, or the first validation error encountered.
func ValidateEdits(edits []TextEdit, contentLen int) error {
	for _, edit := range edits {
		switch {
		case edit.StartOffset < 0:
			return &ValidationError{Edit: edit, Message: "start offset is negative"}
		case edit.EndOffset < edit.StartOffset:
			return &ValidationError{Edit: edit, Message: "end offset is before start offset"}
		case edit.EndOffset > contentLen:
			return &ValidationError{
				Edit:    edit,
				Message: fmt.Sprintf("end offset %d exceeds content length %d", edit.EndOffset, contentLen),
			}
		}
	}
	return nil
}

// SortEdits sorts edits by start offset, then by end offset. Edits with the
// same range keep their relative order, so several inserts at one offset are
// applied in the order they were proposed.
func SortEdits(edits []TextEdit) {
	sort.SliceStable(edits, func(i, j int) bool {
		if edits[i].StartOffset != edits[j].StartOffset {
			return edits[i].StartOffset < edits[j].StartOffset
		}
		return edits[i].EndOffset < edits[j].EndOffset
	})
}

// DetectConflicts checks for overlapping edits in a sorted slice.
// Returns nil if no conflicts, or the first conflict found.
// Edits must be sorted by SortEdits before calling.
func DetectConflicts(edits []TextEdit) error {
	for i := 1; i < len(edits); i++ {
		prev, curr := edits[i-1], edits[i]
		if curr.StartOffset < prev.EndOffset {
			return &ConflictError{Edit1: prev, Edit2: curr}
		}
	}
	return nil
}

// ResolveLaterWins removes overlapping edits from a sorted slice, letting
// the edit with the later start win. Walking from the highest start down,
// an edit whose end passes the start of an already kept edit is dropped.
// An insert touching a kept edit's start does not overlap it.
//
// Both returned slices are in ascending order.
func ResolveLaterWins(edits []TextEdit) ([]TextEdit, []TextEdit) {
	if len(edits) == 0 {
		return nil, nil
	}

	keep := make([]bool, len(edits))
	floor := edits[len(edits)-1].EndOffset
	dropped := 0

	for i := len(edits) - 1; i >= 0; i-- {
		if edits[i].EndOffset > floor {
			dropped++
			continue
		}
		keep[i] = true
		floor = edits[i].StartOffset
	}

	accepted := make([]TextEdit, 0, len(edits)-dropped)
	skipped := make([]TextEdit, 0, dropped)
	for i, e := range edits {
		if keep[i] {
			accepted = append(accepted, e)
		} else {
			skipped = append(skipped, e)
		}
	}

	return accepted, skipped
}

// PrepareEdits validates, copies, sorts and resolves conflicts.
// Returns (accepted edits, dropped edits, error); the error is only for
// validation failures, in which case the whole batch is rejected.
func PrepareEdits(edits []TextEdit, contentLen int) ([]TextEdit, []TextEdit, error) {
	if len(edits) == 0 {
		return nil, nil, nil
	}

	if err := ValidateEdits(edits, contentLen); err != nil {
		return nil, nil, err
	}

	sorted := make([]TextEdit, len(edits))
	copy(sorted, edits)
	SortEdits(sorted)

	accepted, skipped := ResolveLaterWins(sorted)
	return accepted, skipped, nil
}
