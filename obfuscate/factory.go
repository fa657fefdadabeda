package obfuscate

import (
	"sync/atomic"

	"github.com/xitonix/mornary/morse"
)

// MatcherFactory returns a ChunkEncoderFactory which creates Morse matchers for the codec.
//
// If seed is zero, every matcher is seeded randomly. Otherwise the n-th matcher created by the
// factory is seeded with seed+n. Note that even with a fixed seed, the output of a concurrent
// Encoder depends on which worker picks which chunk.
func MatcherFactory(codec *morse.Codec, seed int64) ChunkEncoderFactory {
	var created int64
	return func() ChunkEncoder {
		if seed == 0 {
			return codec.NewMatcher(morse.NewSeed())
		}
		n := atomic.AddInt64(&created, 1) - 1
		return codec.NewMatcher(seed + n)
	}
}
