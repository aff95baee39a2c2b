package registry

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode converts uploaded bytes to text. UTF-8 input (with or without a
// byte order mark) is used as-is; anything else is read as Windows-1255,
// the code page Hebrew spreadsheet exports default to.
func Decode(b []byte) (string, error) {
	b = bytes.TrimPrefix(b, utf8BOM)
	if utf8.Valid(b) {
		return string(b), nil
	}
	out, _, err := transform.Bytes(charmap.Windows1255.NewDecoder(), b)
	if err != nil {
		return "", fmt.Errorf("registry.Decode: windows-1255: %w", err)
	}
	return string(out), nil
}
