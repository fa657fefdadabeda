package morse

import (
	"bytes"
	"errors"
	"testing"

	"github.com/xitonix/mornary/assert"
)

const (
	sentence     = "The quick brown fox jumps over the lazy dog."
	sentenceBits = "01010100011010000110010100100000011100010111010101101001011000110110101100100000" +
		"01100010011100100110111101110111011011100010000001100110011011110111100000100000" +
		"01101010011101010110110101110000011100110010000001101111011101100110010101110010" +
		"00100000011101000110100001100101001000000110110001100001011110100111100100100000" +
		"01100100011011110110011100101110"
)

func TestBytesToBits(t *testing.T) {
	testCases := []struct {
		title    string
		input    string
		expected string
	}{
		{title: "empty", input: "", expected: ""},
		{title: "letter", input: "A", expected: "01000001"},
		{title: "sentence", input: sentence, expected: sentenceBits},
	}
	for _, tc := range testCases {
		t.Run(tc.title, func(t *testing.T) {
			if actual := BytesToBits([]byte(tc.input)); actual != tc.expected {
				t.Errorf("expected %s, actual %s", tc.expected, actual)
			}
		})
	}
}

func TestBytesToSymbols(t *testing.T) {
	if actual := BytesToSymbols([]byte{0x41, 0xFF, 0x00}); actual != ".-.....---------........" {
		t.Errorf("unexpected symbols %s", actual)
	}
	symbols, err := BitsToSymbols("01000001")
	if err != nil || symbols != ".-.....-" {
		t.Errorf("expected .-.....-, actual %q (%v)", symbols, err)
	}
	_, err = BitsToSymbols("0120")
	var binErr *InvalidBinaryError
	if !errors.As(err, &binErr) || binErr.Offset != 2 {
		t.Errorf("expected an InvalidBinaryError at offset 2, received %v", err)
	}
}

func TestBitsToBytes(t *testing.T) {
	testCases := []struct {
		title       string
		input       string
		expected    string
		expectError bool
	}{
		{title: "empty", input: "", expected: ""},
		{title: "letter", input: "01000001", expected: "A"},
		{title: "sentence", input: sentenceBits, expected: sentence},
		{title: "not_a_multiple_of_eight", input: "010", expectError: true},
		{title: "not_binary", input: "0100000a", expectError: true},
	}
	for _, tc := range testCases {
		t.Run(tc.title, func(t *testing.T) {
			data, err := BitsToBytes(tc.input)
			if !assert.Errors(t, tc.expectError, err, assert.Fields{"input": tc.input}) {
				return
			}
			if string(data) != tc.expected {
				t.Errorf("expected %q, actual %q", tc.expected, data)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	testCases := []struct {
		title         string
		input         string
		expected      []byte
		expectedError error
	}{
		{title: "empty", input: "", expected: []byte{}},
		{title: "single_letter_word", input: ".-.....-", expected: []byte{0x41}},
		{title: "words_and_letters", input: ".- .. / ... / -", expected: []byte{0x41}},
		{title: "trailing_line_break", input: ".- .. / ... / -\n", expected: []byte{0x41}},
		{title: "letters_only", input: ".- . . . . . -", expected: []byte{0x41}},
		{title: "three_bits", input: "...", expectedError: ErrInvalidLength},
		{title: "nine_bits", input: ".-.....- .", expectedError: ErrInvalidLength},
	}
	for _, tc := range testCases {
		t.Run(tc.title, func(t *testing.T) {
			data, err := Decode(tc.input)
			if err != tc.expectedError {
				t.Fatalf("expected '%v' as error, but received '%v'", tc.expectedError, err)
			}
			if err == nil && !bytes.Equal(data, tc.expected) {
				t.Errorf("expected %v, actual %v", tc.expected, data)
			}
		})
	}
}

func TestDecodeInvalidCharacter(t *testing.T) {
	_, err := Decode(".-.. x")
	var morseErr *InvalidMorseError
	if !errors.As(err, &morseErr) {
		t.Fatalf("expected an InvalidMorseError, received %v", err)
	}
	if morseErr.Offset != 5 {
		t.Errorf("expected offset 5, actual %d", morseErr.Offset)
	}
}

func TestStrip(t *testing.T) {
	bits, err := Strip(".- .. / ... / -")
	if err != nil || bits != "01000001" {
		t.Errorf("expected 01000001, actual %q (%v)", bits, err)
	}
	if _, err := Strip("._"); err == nil {
		t.Error("expected an error for '_'")
	}
}

func TestPackerAcrossWrites(t *testing.T) {
	var p Packer
	out, err := p.Write(nil, []byte(".-..."))
	if err != nil || len(out) != 0 {
		t.Fatalf("no byte was expected yet, actual %v (%v)", out, err)
	}
	out, err = p.Write(out, []byte(" / ..- .-"))
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Close(); err != ErrInvalidLength {
		t.Errorf("expected '%v' for the dangling bit, received '%v'", ErrInvalidLength, err)
	}
	if !bytes.Equal(out, []byte{0x41}) {
		t.Errorf("expected [0x41], actual %v", out)
	}
}

func TestPackerKeepsCompletedBytesOnError(t *testing.T) {
	var p Packer
	out, err := p.Write(nil, []byte(".-.. ...- .- x"))
	var morseErr *InvalidMorseError
	if !errors.As(err, &morseErr) || morseErr.Offset != 13 {
		t.Fatalf("expected an InvalidMorseError at offset 13, received %v", err)
	}
	if !bytes.Equal(out, []byte{0x41}) {
		t.Errorf("expected the completed byte [0x41], actual %v", out)
	}
}

func TestPackerSplitsEverywhere(t *testing.T) {
	data := []byte{0x00, 0xFF, 0x5A, 0x81, 0x7E}
	symbols := BytesToSymbols(data)
	for size := 1; size <= len(symbols); size++ {
		var p Packer
		var out []byte
		for i := 0; i < len(symbols); i += size {
			end := i + size
			if end > len(symbols) {
				end = len(symbols)
			}
			var err error
			if out, err = p.Write(out, []byte(symbols[i:end])); err != nil {
				t.Fatalf("size %d: %v", size, err)
			}
		}
		if err := p.Close(); err != nil {
			t.Fatalf("size %d: %v", size, err)
		}
		if !bytes.Equal(out, data) {
			t.Errorf("size %d: expected %v, actual %v", size, data, out)
		}
	}
}

func TestIsText(t *testing.T) {
	testCases := []struct {
		title    string
		input    []byte
		expected bool
	}{
		{title: "empty", input: nil, expected: true},
		{title: "ascii", input: []byte(sentence), expected: true},
		{title: "line_breaks_and_tabs", input: []byte("a\tb\r\nc"), expected: true},
		{title: "nul", input: []byte{'a', 0}, expected: false},
		{title: "high_bytes", input: []byte("naïve"), expected: false},
	}
	for _, tc := range testCases {
		t.Run(tc.title, func(t *testing.T) {
			if IsText(tc.input) != tc.expected {
				t.Errorf("expected %v for %q", tc.expected, tc.input)
			}
		})
	}
}
