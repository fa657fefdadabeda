// Package hash provides the digests used to verify that a decoded stream matches its source.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
	stdhash "hash"
)

// SHA256 returns a 32 bytes SHA256 hash of the input
func SHA256(in []byte) []byte {
	sum := sha256.Sum256(in)
	return sum[:]
}

// Digest is a streaming SHA256 hash. It can be used as the io.Writer side of an io.TeeReader
// or an io.MultiWriter.
type Digest struct {
	h stdhash.Hash
}

// NewSHA256 creates a new streaming SHA256 digest
func NewSHA256() *Digest {
	return &Digest{h: sha256.New()}
}

// Write adds more data to the running hash. It never returns an error.
func (d *Digest) Write(p []byte) (int, error) {
	return d.h.Write(p)
}

// Sum returns the 32 bytes hash of everything written so far
func (d *Digest) Sum() []byte {
	return d.h.Sum(nil)
}

// Hex returns the hex encoded hash of everything written so far
func Hex(sum []byte) string {
	return hex.EncodeToString(sum)
}
