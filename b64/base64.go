// Package b64 renders binary data as base64 text, for terminals which cannot display raw bytes
package b64

import (
	"encoding/base64"
)

// LineWidth the maximum number of characters per line produced by Wrap
const LineWidth = 76

// Encode encodes the input using base64 standard encoder
func Encode(in []byte) []byte {
	buf := make([]byte, base64.StdEncoding.EncodedLen(len(in)))
	base64.StdEncoding.Encode(buf, in)
	return buf
}

// Decode decodes a base64 encoded []byte using standard encoder.
// Line breaks in the input are ignored.
func Decode(in []byte) ([]byte, error) {
	buf := make([]byte, base64.StdEncoding.DecodedLen(len(in)))
	n, err := base64.StdEncoding.Decode(buf, in)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

// Wrap encodes the input and breaks the result into lines of at most LineWidth characters.
// Every line, including the last one, ends with a line break.
func Wrap(in []byte) []byte {
	encoded := Encode(in)
	if len(encoded) == 0 {
		return encoded
	}
	out := make([]byte, 0, len(encoded)+len(encoded)/LineWidth+1)
	for len(encoded) > LineWidth {
		out = append(out, encoded[:LineWidth]...)
		out = append(out, '\n')
		encoded = encoded[LineWidth:]
	}
	out = append(out, encoded...)
	return append(out, '\n')
}
