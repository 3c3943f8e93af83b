package fsutil_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/yaklabco/sclangfmt/pkg/fsutil"
)

func writeTemp(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("reads content and metadata", func(t *testing.T) {
		t.Parallel()

		content := []byte("x = 1;\n")
		path := writeTemp(t, "a.scd", content)

		got, info, err := fsutil.ReadFile(context.Background(), path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		if string(got) != string(content) {
			t.Errorf("content = %q, want %q", got, content)
		}
		if info.Path != path || info.Size != int64(len(content)) || info.Mode != 0o644 {
			t.Errorf("unexpected info %+v", info)
		}
		if info.Encoding != fsutil.EncodingUTF8 {
			t.Errorf("Encoding = %q, want utf-8", info.Encoding)
		}
	})

	t.Run("strips a UTF-8 BOM", func(t *testing.T) {
		t.Parallel()

		path := writeTemp(t, "bom.scd", []byte("\xEF\xBB\xBFx = 1;\n"))

		got, info, err := fsutil.ReadFile(context.Background(), path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		if string(got) != "x = 1;\n" {
			t.Errorf("content = %q", got)
		}
		if info.Encoding != fsutil.EncodingUTF8BOM {
			t.Errorf("Encoding = %q", info.Encoding)
		}
		if info.Size != int64(len("x = 1;\n")+3) {
			t.Errorf("Size should be the on-disk size, got %d", info.Size)
		}
	})

	t.Run("decodes UTF-16LE", func(t *testing.T) {
		t.Parallel()

		path := writeTemp(t, "wide.scd", []byte{0xFF, 0xFE, 'x', 0, ';', 0})

		got, info, err := fsutil.ReadFile(context.Background(), path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		if string(got) != "x;" || info.Encoding != fsutil.EncodingUTF16LE {
			t.Errorf("got %q as %q", got, info.Encoding)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), filepath.Join(t.TempDir(), "nope.scd"))
		if !errors.Is(err, fsutil.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), t.TempDir())
		if !errors.Is(err, fsutil.ErrIsDirectory) {
			t.Errorf("error = %v, want ErrIsDirectory", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, _, err := fsutil.ReadFile(ctx, "whatever.scd"); !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
	})
}

func TestCheckModified(t *testing.T) {
	t.Parallel()

	t.Run("unchanged", func(t *testing.T) {
		t.Parallel()

		path := writeTemp(t, "a.scd", []byte("x;\n"))
		_, info, err := fsutil.ReadFile(context.Background(), path)
		if err != nil {
			t.Fatal(err)
		}

		modified, err := fsutil.CheckModified(context.Background(), info)
		if err != nil || modified {
			t.Errorf("CheckModified() = %v, %v; want false, nil", modified, err)
		}
	})

	t.Run("same size and time but new content", func(t *testing.T) {
		t.Parallel()

		path := writeTemp(t, "a.scd", []byte("x;\n"))
		_, info, err := fsutil.ReadFile(context.Background(), path)
		if err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("y;\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := os.Chtimes(path, time.Time{}, info.ModTime); err != nil {
			t.Fatal(err)
		}

		modified, err := fsutil.CheckModified(context.Background(), info)
		if err != nil || !modified {
			t.Errorf("CheckModified() = %v, %v; want true, nil", modified, err)
		}
	})

	t.Run("deleted", func(t *testing.T) {
		t.Parallel()

		path := writeTemp(t, "a.scd", []byte("x;\n"))
		_, info, err := fsutil.ReadFile(context.Background(), path)
		if err != nil {
			t.Fatal(err)
		}
		if err := os.Remove(path); err != nil {
			t.Fatal(err)
		}

		modified, err := fsutil.CheckModified(context.Background(), info)
		if err != nil || !modified {
			t.Errorf("CheckModified() = %v, %v; want true, nil", modified, err)
		}
	})

	t.Run("nil info", func(t *testing.T) {
		t.Parallel()

		if _, err := fsutil.CheckModified(context.Background(), nil); !errors.Is(err, fsutil.ErrNilFileInfo) {
			t.Errorf("error = %v, want ErrNilFileInfo", err)
		}
	})
}

func TestEncodeRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  []byte
		enc  fsutil.Encoding
	}{
		{"plain", []byte("a = 1;"), fsutil.EncodingUTF8},
		{"utf-8 bom", []byte("\xEF\xBB\xBFa = \"é\";"), fsutil.EncodingUTF8BOM},
		{"utf-16le", []byte{0xFF, 0xFE, 'a', 0, ';', 0}, fsutil.EncodingUTF16LE},
		{"utf-16be", []byte{0xFE, 0xFF, 0, 'a', 0, ';'}, fsutil.EncodingUTF16BE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			content, enc, err := fsutil.Decode(tt.raw)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if enc != tt.enc {
				t.Errorf("encoding = %q, want %q", enc, tt.enc)
			}

			back, err := fsutil.Encode(content, enc)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			if string(back) != string(tt.raw) {
				t.Errorf("round trip = %x, want %x", back, tt.raw)
			}
		})
	}
}
