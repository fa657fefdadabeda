package morse

import (
	"bytes"
	"strings"

	"github.com/icza/bitio"
)

const (
	// WordDelimiter separates two Morse words
	WordDelimiter = " / "
	// LetterDelimiter separates two letters of a Morse word
	LetterDelimiter = " "

	bitsPerByte = 8
)

// BytesToBits expands every byte into eight binary digits, most significant bit first.
func BytesToBits(data []byte) string {
	return string(appendBits(make([]byte, 0, len(data)*bitsPerByte), data, '0', '1'))
}

// BytesToSymbols expands every byte into eight Morse symbols, most significant bit first.
// Zero bits become dots and one bits become dashes.
func BytesToSymbols(data []byte) string {
	return string(AppendSymbols(make([]byte, 0, len(data)*bitsPerByte), data))
}

// AppendSymbols appends the Morse symbols of data to dst and returns the extended buffer.
func AppendSymbols(dst, data []byte) []byte {
	return appendBits(dst, data, Dot, Dash)
}

func appendBits(dst, data []byte, zero, one byte) []byte {
	r := bitio.NewReader(bytes.NewReader(data))
	for n := len(data) * bitsPerByte; n > 0; n-- {
		if r.TryReadBool() {
			dst = append(dst, one)
		} else {
			dst = append(dst, zero)
		}
	}
	return dst
}

// BitsToSymbols maps '0' to a dot and '1' to a dash.
func BitsToSymbols(bits string) (string, error) {
	out := make([]byte, len(bits))
	for i := 0; i < len(bits); i++ {
		switch bits[i] {
		case '0':
			out[i] = Dot
		case '1':
			out[i] = Dash
		default:
			return "", &InvalidBinaryError{Input: bits, Offset: i}
		}
	}
	return string(out), nil
}

// BitsToBytes groups a binary string into bytes, most significant bit first.
// The length of the input must be a multiple of eight.
func BitsToBytes(bits string) ([]byte, error) {
	if len(bits)%bitsPerByte != 0 {
		return nil, ErrInvalidLength
	}
	var buf bytes.Buffer
	buf.Grow(len(bits) / bitsPerByte)
	w := bitio.NewWriter(&buf)
	for i := 0; i < len(bits); i++ {
		switch bits[i] {
		case '0', '1':
			w.TryWriteBool(bits[i] == '1')
		default:
			return nil, &InvalidBinaryError{Input: bits, Offset: i}
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	if w.TryError != nil {
		return nil, w.TryError
	}
	return buf.Bytes(), nil
}

// Strip removes whitespace and word delimiters from Morse text and maps dots to '0' and dashes to '1'.
func Strip(morse string) (string, error) {
	var sb strings.Builder
	sb.Grow(len(morse))
	for i := 0; i < len(morse); i++ {
		c := morse[i]
		switch {
		case c == Dot:
			sb.WriteByte('0')
		case c == Dash:
			sb.WriteByte('1')
		case isSeparator(c):
		default:
			return "", &InvalidMorseError{Input: morse, Offset: i}
		}
	}
	return sb.String(), nil
}

// Decode converts Morse text back into the original bytes.
func Decode(morse string) ([]byte, error) {
	var p Packer
	out, err := p.Write(make([]byte, 0, len(morse)/bitsPerByte), []byte(morse))
	if err != nil {
		return nil, err
	}
	if err := p.Close(); err != nil {
		return nil, err
	}
	return out, nil
}

// Packer incrementally regroups a stream of Morse text into bytes.
// The zero value is ready to use. A Packer must not be copied after the first Write.
type Packer struct {
	packed bytes.Buffer
	w      *bitio.Writer
	bits   int
	offset int
}

// Write appends the bytes completed by text to dst and returns the extended buffer.
// Bits of an incomplete byte are carried over to the next call.
func (p *Packer) Write(dst, text []byte) ([]byte, error) {
	if p.w == nil {
		p.w = bitio.NewWriter(&p.packed)
	}
	for i, c := range text {
		switch {
		case c == Dot, c == Dash:
			p.w.TryWriteBool(c == Dash)
			p.bits++
		case isSeparator(c):
		default:
			return p.drain(dst), &InvalidMorseError{Input: string(text[i:]), Offset: p.offset + i}
		}
	}
	p.offset += len(text)
	if p.w.TryError != nil {
		return dst, p.w.TryError
	}
	return p.drain(dst), nil
}

// drain moves the completed bytes to dst
func (p *Packer) drain(dst []byte) []byte {
	dst = append(dst, p.packed.Bytes()...)
	p.packed.Reset()
	return dst
}

// Close reports ErrInvalidLength if the stream ended in the middle of a byte.
func (p *Packer) Close() error {
	if p.bits%bitsPerByte != 0 {
		return ErrInvalidLength
	}
	return nil
}

// IsText returns true if the data only contains printable ASCII characters, tabs and line breaks.
func IsText(data []byte) bool {
	for _, b := range data {
		if b < 0x20 || b > 0x7E {
			if b != '\t' && b != '\n' && b != '\r' {
				return false
			}
		}
	}
	return true
}

func isSeparator(c byte) bool {
	switch c {
	case ' ', '/', '\t', '\n', '\r':
		return true
	}
	return false
}
