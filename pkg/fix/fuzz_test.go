package fix_test

import (
	"bytes"
	"testing"

	"github.com/yaklabco/sclangfmt/pkg/fix"
)

// FuzzPrepareAndApply derives edits from the fuzz input and checks that the
// accepted set never overlaps and applies the same as a reverse splice.
func FuzzPrepareAndApply(f *testing.F) {
	f.Add([]byte("f(a,b) ;g( c )"), []byte{1, 3, 0, 4, 6, 1})
	f.Add([]byte(""), []byte{0, 0, 2})
	f.Add([]byte("x=1;"), []byte{1, 1, 1, 2, 2, 1, 0, 4, 0})

	f.Fuzz(func(t *testing.T, content, ops []byte) {
		n := len(content)
		var edits []fix.TextEdit
		for i := 0; i+2 < len(ops); i += 3 {
			start := int(ops[i]) % (n + 1)
			end := start + int(ops[i+1])%(n-start+1)
			text := string(bytes.Repeat([]byte{' '}, int(ops[i+2])%3))
			edits = append(edits, fix.TextEdit{StartOffset: start, EndOffset: end, NewText: text})
		}

		accepted, skipped, err := fix.PrepareEdits(edits, n)
		if err != nil {
			t.Fatalf("generated edits must be valid: %v", err)
		}
		if len(accepted)+len(skipped) != len(edits) {
			t.Fatalf("accepted %d + skipped %d != %d", len(accepted), len(skipped), len(edits))
		}
		if err := fix.DetectConflicts(accepted); err != nil {
			t.Fatalf("accepted edits overlap: %v", err)
		}

		want := append([]byte(nil), content...)
		for i := len(accepted) - 1; i >= 0; i-- {
			e := accepted[i]
			tail := append([]byte(e.NewText), want[e.EndOffset:]...)
			want = append(want[:e.StartOffset], tail...)
		}

		got := fix.ApplyEdits(content, accepted)
		if !bytes.Equal(got, want) {
			t.Fatalf("ApplyEdits = %q, want %q", got, want)
		}
	})
}
