package morse

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
)

//go:embed resources/morsecode.json
var defaultCodebook []byte

// CodeEntry maps a character to its Morse code.
type CodeEntry struct {
	// Character the encoded character. For example, "A".
	Character string `json:"character"`
	// Code the dots and dashes. For example, ".-".
	Code string `json:"code"`
}

// LoadCodebook reads a JSON array of {"character", "code"} records.
func LoadCodebook(r io.Reader) ([]CodeEntry, error) {
	var entries []CodeEntry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to parse the codebook: %w", err)
	}
	if len(entries) == 0 {
		return nil, ErrEmptyCodebook
	}
	for i, e := range entries {
		if err := validateCode(e.Code); err != nil {
			return nil, &CodebookError{Index: i, Entry: e, Err: err}
		}
	}
	return entries, nil
}

// LoadTree reads a codebook and builds its tree.
func LoadTree(r io.Reader) (*Tree, error) {
	entries, err := LoadCodebook(r)
	if err != nil {
		return nil, err
	}
	return NewTree(entries...)
}

// DefaultTree builds the tree of the embedded international Morse codebook.
func DefaultTree() (*Tree, error) {
	return LoadTree(bytes.NewReader(defaultCodebook))
}
