// Package replacements loads the glyph-to-LaTeX dictionary used by the
// converter. A dictionary is a JSON object whose keys and values are both
// strings; entries keep the order in which they appear in the file.
package replacements

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/alexflint/word2tex/mathtex"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// DefaultPath is the dictionary that is looked for in the working directory
// when no other path is given
const DefaultPath = "replacements.json"

var (
	ErrNotFound         = errors.New("dictionary file not found")
	ErrInvalidJSON      = errors.New("dictionary is not valid JSON")
	ErrInvalidStructure = errors.New("dictionary must be a JSON object mapping strings to strings")
	ErrEmpty            = errors.New("dictionary is empty")
)

//go:embed default.json
var defaultJSON []byte

// Load reads and parses a dictionary file
func Load(path string) (mathtex.SubstitutionMap, error) {
	buf, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading %s: %w", path, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}

	m, err := Parse(buf)
	if err != nil {
		return nil, fmt.Errorf("error loading %s: %w", path, err)
	}
	return m, nil
}

// Parse parses a dictionary from its JSON encoding
func Parse(buf []byte) (mathtex.SubstitutionMap, error) {
	if !json.Valid(buf) {
		return nil, ErrInvalidJSON
	}
	if trimmed := bytes.TrimSpace(buf); len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, ErrInvalidStructure
	}

	om := orderedmap.New[string, any]()
	if err := json.Unmarshal(buf, om); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStructure, err)
	}

	var m mathtex.SubstitutionMap
	for pair := om.Oldest(); pair != nil; pair = pair.Next() {
		value, ok := pair.Value.(string)
		if !ok {
			return nil, fmt.Errorf("%w: value for %q is not a string", ErrInvalidStructure, pair.Key)
		}
		if pair.Key == "" || value == "" {
			return nil, fmt.Errorf("%w: empty key or value", ErrInvalidStructure)
		}
		m = append(m, mathtex.Substitution{Key: pair.Key, Value: value})
	}

	if len(m) == 0 {
		return nil, ErrEmpty
	}
	return m, nil
}

// Default returns the dictionary that is built into the binary
func Default() mathtex.SubstitutionMap {
	m, err := Parse(defaultJSON)
	if err != nil {
		panic(fmt.Sprintf("built-in dictionary is invalid: %v", err))
	}
	return m
}

// Encode writes a dictionary as an indented JSON object, preserving the
// order of entries
func Encode(m mathtex.SubstitutionMap) ([]byte, error) {
	om := orderedmap.New[string, string]()
	for _, s := range m {
		om.Set(s.Key, s.Value)
	}

	buf, err := json.Marshal(om)
	if err != nil {
		return nil, fmt.Errorf("error encoding dictionary: %w", err)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, buf, "", "  "); err != nil {
		return nil, fmt.Errorf("error indenting dictionary: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}
