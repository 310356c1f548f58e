// Package textfile reads word-processor text exports, which come in a
// variety of encodings, and writes UTF-8 text.
package textfile

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Auto detects the encoding from a byte order mark, falling back to UTF-8
// when the input is valid UTF-8 and to Windows-1251 otherwise
const Auto = "auto"

var ErrInvalidUTF8 = errors.New("input is not valid UTF-8")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// lookup finds an encoding by its WHATWG name or one of its aliases
// ("windows-1251", "cp1251", "koi8-r", "utf-16le", ...)
func lookup(name string) (encoding.Encoding, string, error) {
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, "", fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	canonical, err := htmlindex.Name(enc)
	if err != nil {
		canonical = strings.ToLower(name)
	}
	return enc, canonical, nil
}

// ValidEncoding reports an error if name is neither "auto" nor a known
// encoding
func ValidEncoding(name string) error {
	if name == "" || strings.EqualFold(name, Auto) {
		return nil
	}
	_, _, err := lookup(name)
	return err
}

// Decode converts buf to a UTF-8 string. It returns the name of the
// encoding that was used. Line endings are normalized to "\n".
func Decode(buf []byte, name string) (string, string, error) {
	if name == "" || strings.EqualFold(name, Auto) {
		return detect(buf)
	}

	enc, canonical, err := lookup(name)
	if err != nil {
		return "", "", err
	}

	if canonical == "utf-8" {
		buf = bytes.TrimPrefix(buf, utf8BOM)
		if !utf8.Valid(buf) {
			return "", "", ErrInvalidUTF8
		}
		return normalizeNewlines(string(buf)), canonical, nil
	}

	// a byte order mark overrides the requested encoding
	out, _, err := transform.Bytes(unicode.BOMOverride(enc.NewDecoder()), buf)
	if err != nil {
		return "", "", fmt.Errorf("error decoding %s: %w", canonical, err)
	}
	return normalizeNewlines(string(out)), canonical, nil
}

func detect(buf []byte) (string, string, error) {
	switch {
	case bytes.HasPrefix(buf, utf8BOM):
		return normalizeNewlines(string(buf[len(utf8BOM):])), "utf-8", nil
	case bytes.HasPrefix(buf, []byte{0xFF, 0xFE}):
		return decodeWith(unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder(), buf, "utf-16le")
	case bytes.HasPrefix(buf, []byte{0xFE, 0xFF}):
		return decodeWith(unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder(), buf, "utf-16be")
	case utf8.Valid(buf):
		return normalizeNewlines(string(buf)), "utf-8", nil
	}
	return decodeWith(charmap.Windows1251.NewDecoder(), buf, "windows-1251")
}

func decodeWith(dec *encoding.Decoder, buf []byte, name string) (string, string, error) {
	out, err := dec.Bytes(buf)
	if err != nil {
		return "", "", fmt.Errorf("error decoding %s: %w", name, err)
	}
	return normalizeNewlines(string(out)), name, nil
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

// ReadFile reads and decodes a text file
func ReadFile(path string, name string) (string, string, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("error reading input file: %w", err)
	}

	text, used, err := Decode(buf, name)
	if err != nil {
		return "", "", fmt.Errorf("error decoding %s: %w", path, err)
	}
	return text, used, nil
}

// WriteFile writes text as UTF-8 without a byte order mark
func WriteFile(path string, text string) error {
	err := os.WriteFile(path, []byte(text), 0666)
	if err != nil {
		return fmt.Errorf("error writing to %s: %w", path, err)
	}
	return nil
}
