package morse

import (
	"errors"
	"fmt"
)

const maxQuotedInput = 32

var (
	// ErrInvalidBudget is returned when the number of candidate words to collect is not positive.
	ErrInvalidBudget = errors.New("match budget must be greater than zero")
	// ErrInvalidLength is returned when the number of decoded bits is not a multiple of eight.
	ErrInvalidLength = errors.New("binary length must be a multiple of eight")
	// ErrEmptyCodebook is returned when the codebook does not contain any entry.
	ErrEmptyCodebook = errors.New("codebook is empty")
	// ErrIncompleteCodebook is returned when the codebook has no single symbol code for '.' or '-'.
	// Without both of them the letter matcher cannot cover every possible input.
	ErrIncompleteCodebook = errors.New("codebook must define the single symbol codes '.' and '-'")
	// ErrEmptyDictionary is returned when none of the dictionary words can be expressed by the codebook.
	ErrEmptyDictionary = errors.New("dictionary does not contain any encodable word")
	// ErrNoLetterMatch is returned when no codebook entry is a prefix of the input.
	ErrNoLetterMatch = errors.New("no codebook entry matches the input")
	// ErrUnknownMethod is returned by ParseMethod for unsupported method names.
	ErrUnknownMethod = errors.New("unknown encoding method")
)

// InvalidBinaryError is returned when a binary string contains anything other than '0' and '1'.
type InvalidBinaryError struct {
	Input  string
	Offset int
}

func (e *InvalidBinaryError) Error() string {
	return fmt.Sprintf("the provided string %q is not valid binary (offset %d)", quote(e.Input), e.Offset)
}

// InvalidMorseError is returned when Morse text contains anything other than dots, dashes,
// whitespace and word delimiters.
type InvalidMorseError struct {
	Input  string
	Offset int
}

func (e *InvalidMorseError) Error() string {
	return fmt.Sprintf("the provided string %q is not valid morse code (offset %d)", quote(e.Input), e.Offset)
}

// CodebookError reports a malformed codebook entry.
type CodebookError struct {
	Index int
	Entry CodeEntry
	Err   error
}

func (e *CodebookError) Error() string {
	return fmt.Sprintf("codebook entry %d (%q => %q): %v", e.Index, e.Entry.Character, e.Entry.Code, e.Err)
}

func (e *CodebookError) Unwrap() error { return e.Err }

func quote(s string) string {
	if len(s) > maxQuotedInput {
		return s[:maxQuotedInput] + "..."
	}
	return s
}
