package morse

import (
	"math/rand"
	"strings"
)

// maxLetterAttempts caps the random length draws of NextLetter before it falls back to a
// deterministic scan.
const maxLetterAttempts = 64

// Matcher splits Morse symbol strings into plausible Morse words.
//
// The output of a Matcher is random. Two matchers with the same seed produce the same output
// for the same input. A Matcher is not safe for concurrent use.
type Matcher struct {
	codec      *Codec
	rng        *rand.Rand
	candidates []int
}

// EncodeChunk converts raw bytes into Morse text using the codec's method.
func (m *Matcher) EncodeChunk(chunk []byte) (string, error) {
	symbols := BytesToSymbols(chunk)
	if m.codec.method == Letters {
		return m.SymbolsToLetters(symbols)
	}
	return m.SymbolsToWords(symbols)
}

// SymbolsToWords consumes the symbols from the front, one word at a time, until the input is
// exhausted. Words are joined by WordDelimiter.
func (m *Matcher) SymbolsToWords(symbols string) (string, error) {
	return m.split(symbols, WordDelimiter, m.NextWord)
}

// SymbolsToLetters consumes the symbols from the front, one letter at a time, until the input is
// exhausted. Letters are joined by a single space.
func (m *Matcher) SymbolsToLetters(symbols string) (string, error) {
	return m.split(symbols, LetterDelimiter, m.NextLetter)
}

func (m *Matcher) split(symbols, delimiter string, next func(string) (string, error)) (string, error) {
	if err := validateSymbols(symbols); err != nil {
		return "", err
	}
	var sb strings.Builder
	// every symbol costs at least one byte of output, plus the letter breaks
	sb.Grow(len(symbols) * 2)
	for index := 0; index < len(symbols); {
		unit, err := next(symbols[index:])
		if err != nil {
			return "", err
		}
		if index > 0 {
			sb.WriteString(delimiter)
		}
		sb.WriteString(unit)
		index += compactLength(unit)
	}
	return sb.String(), nil
}

// NextWord returns a Morse word, with spaces at the letter breaks, which matches the start of input.
//
// The dictionary is scanned from a random position, wrapping around, until either every entry has
// been checked once or the match budget has been reached. The longest match wins and ties are broken
// randomly. If nothing matches, a single letter is returned (see NextLetter).
func (m *Matcher) NextWord(input string) (string, error) {
	if input == "" {
		return "", nil
	}
	dict := m.codec.dict
	size := dict.Len()
	if size == 0 {
		return m.NextLetter(input)
	}

	m.candidates = m.candidates[:0]
	index := m.rng.Intn(size)
	for checked := 0; checked < size && len(m.candidates) < m.codec.budget; checked++ {
		if strings.HasPrefix(input, dict.Entry(index).Compact) {
			m.candidates = append(m.candidates, index)
		}
		index = (index + 1) % size
	}

	if len(m.candidates) == 0 {
		return m.NextLetter(input)
	}

	selected, longest, ties := -1, -1, 0
	for _, c := range m.candidates {
		l := len(dict.Entry(c).Word)
		switch {
		case l > longest:
			selected, longest, ties = c, l, 1
		case l == longest:
			ties++
			if m.rng.Intn(ties) == 0 {
				selected = c
			}
		}
	}
	return dict.Entry(selected).Word, nil
}

// NextLetter returns the code of a randomly sized letter which matches the start of input.
func (m *Matcher) NextLetter(input string) (string, error) {
	if input == "" {
		return "", nil
	}
	tree := m.codec.tree
	maxDepth := tree.MaxDepth()
	maxLength := min(len(input), maxDepth)

	for attempt := 0; attempt < maxLetterAttempts; attempt++ {
		length := min(maxLength, 1+m.rng.Intn(maxDepth))
		if e, ok := tree.Lookup(input[:length]); ok && e != nil {
			return e.Code, nil
		}
	}

	for length := maxLength; length > 0; length-- {
		if e, ok := tree.Lookup(input[:length]); ok && e != nil {
			return e.Code, nil
		}
	}
	return "", ErrNoLetterMatch
}

func validateSymbols(symbols string) error {
	for i := 0; i < len(symbols); i++ {
		if symbols[i] != Dot && symbols[i] != Dash {
			return &InvalidMorseError{Input: symbols, Offset: i}
		}
	}
	return nil
}

func compactLength(unit string) int {
	return len(unit) - strings.Count(unit, " ")
}
