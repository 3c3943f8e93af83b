package fsutil

import (
	"bytes"
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// Encoding identifies how a source file was stored on disk.
type Encoding string

const (
	EncodingUTF8    Encoding = "utf-8"
	EncodingUTF8BOM Encoding = "utf-8-bom"
	EncodingUTF16LE Encoding = "utf-16le"
	EncodingUTF16BE Encoding = "utf-16be"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// DetectEncoding inspects the byte order mark of raw. Input without a BOM
// is treated as UTF-8.
func DetectEncoding(raw []byte) Encoding {
	switch {
	case bytes.HasPrefix(raw, bomUTF8):
		return EncodingUTF8BOM
	case bytes.HasPrefix(raw, bomUTF16LE):
		return EncodingUTF16LE
	case bytes.HasPrefix(raw, bomUTF16BE):
		return EncodingUTF16BE
	default:
		return EncodingUTF8
	}
}

func (e Encoding) codec() encoding.Encoding {
	switch e {
	case EncodingUTF8BOM:
		return unicode.UTF8BOM
	case EncodingUTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case EncodingUTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	default:
		return nil
	}
}

// Decode converts raw file bytes to UTF-8 with any byte order mark removed.
func Decode(raw []byte) ([]byte, Encoding, error) {
	enc := DetectEncoding(raw)
	codec := enc.codec()
	if codec == nil {
		return raw, enc, nil
	}

	out, err := codec.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, enc, fmt.Errorf("decode %s: %w", enc, err)
	}
	return out, enc, nil
}

// Encode converts UTF-8 content back to enc, restoring its byte order mark.
func Encode(content []byte, enc Encoding) ([]byte, error) {
	codec := enc.codec()
	if codec == nil {
		return content, nil
	}

	out, err := codec.NewEncoder().Bytes(content)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", enc, err)
	}
	return out, nil
}
