// Package mornary disguises arbitrary data as Morse code.
//
// Every byte is expanded into eight symbols, a dot for a zero bit and a dash for a one bit. The
// symbol stream is then cut into codes of the Morse codebook, preferably spelling out dictionary
// words, so the result reads like a real (if odd) Morse message. Decoding simply drops the spacing
// and regroups the symbols into bytes.
//
// The morse package holds the codebook and the matching algorithms. Large inputs are split into
// chunks which are encoded concurrently by the obfuscate package. You can use its Encoder and
// Decoder types directly or automate the encoding of a directory by passing one of the taps to an
// Engine. Check the watcher command to see an example.
package mornary
