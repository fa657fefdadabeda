package morse

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"strings"
)

//go:embed resources/words.txt
var defaultWords []byte

// DictionaryEntry is a dictionary word in Morse code.
type DictionaryEntry struct {
	// Word the letters of the word separated by a single space. For example, ".- -" for "at".
	Word string
	// Compact the word without letter breaks. For example, ".--" for "at".
	Compact string
}

// Dictionary is an immutable list of Morse words, unique by their Morse form.
type Dictionary struct {
	entries []DictionaryEntry
	skipped []string
}

// NewDictionary converts the words into Morse using the tree's codebook.
//
// Words containing a character which has no code are skipped (see Skipped). Duplicates,
// by Morse form, are removed keeping the first occurrence.
func NewDictionary(tree *Tree, words ...string) (*Dictionary, error) {
	d := &Dictionary{}
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		word, ok := toMorseWord(tree, w)
		if !ok {
			d.skipped = append(d.skipped, w)
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		d.entries = append(d.entries, DictionaryEntry{
			Word:    word,
			Compact: strings.Replace(word, " ", "", -1),
		})
	}
	if len(d.entries) == 0 {
		return nil, ErrEmptyDictionary
	}
	return d, nil
}

// LoadDictionary reads a newline delimited list of words.
func LoadDictionary(r io.Reader, tree *Tree) (*Dictionary, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		words = append(words, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read the dictionary: %w", err)
	}
	return NewDictionary(tree, words...)
}

// DefaultDictionary loads the embedded list of common English words.
func DefaultDictionary(tree *Tree) (*Dictionary, error) {
	return LoadDictionary(bytes.NewReader(defaultWords), tree)
}

// Len returns the number of entries.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

// Entry returns the i-th entry.
func (d *Dictionary) Entry(i int) DictionaryEntry {
	return d.entries[i]
}

// Skipped returns the words which could not be converted into Morse code.
func (d *Dictionary) Skipped() []string {
	return d.skipped
}

func toMorseWord(tree *Tree, word string) (string, bool) {
	var sb strings.Builder
	for i, r := range word {
		code, ok := tree.Code(string(r))
		if !ok {
			return "", false
		}
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(code)
	}
	return sb.String(), true
}
