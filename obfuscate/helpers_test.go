package obfuscate

import (
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/xitonix/mornary/morse"
)

var errBoom = errors.New("boom")

func newTestCodec(t *testing.T) *morse.Codec {
	t.Helper()
	tree, err := morse.DefaultTree()
	if err != nil {
		t.Fatal(err)
	}
	dict, err := morse.DefaultDictionary(tree)
	if err != nil {
		t.Fatal(err)
	}
	codec, err := morse.NewCodec(tree, dict, 10, morse.Words)
	if err != nil {
		t.Fatal(err)
	}
	return codec
}

// symbolEncoder is a deterministic ChunkEncoder which optionally delays or fails.
type symbolEncoder struct {
	delay func(chunk []byte) time.Duration
	fail  func(chunk []byte) bool
	gate  <-chan None
	panic bool
	calls *int64
}

func (s *symbolEncoder) EncodeChunk(chunk []byte) (string, error) {
	if s.calls != nil {
		atomic.AddInt64(s.calls, 1)
	}
	if s.gate != nil {
		<-s.gate
	}
	if s.delay != nil {
		time.Sleep(s.delay(chunk))
	}
	if s.panic {
		panic("unexpected chunk")
	}
	if s.fail != nil && s.fail(chunk) {
		return "", errBoom
	}
	return morse.BytesToSymbols(chunk), nil
}

func factoryOf(s *symbolEncoder) ChunkEncoderFactory {
	return func() ChunkEncoder {
		clone := *s
		return &clone
	}
}

// sequentialReference encodes the input one chunk at a time on the calling goroutine.
func sequentialReference(input []byte, chunkSize int, separator string) string {
	var parts []string
	for len(input) > 0 {
		n := chunkSize
		if n > len(input) {
			n = len(input)
		}
		parts = append(parts, morse.BytesToSymbols(input[:n]))
		input = input[n:]
	}
	return strings.Join(parts, separator)
}

// lockedBuffer is a strings.Builder which can be inspected while being written.
type lockedBuffer struct {
	mux sync.Mutex
	sb  strings.Builder
}

func (l *lockedBuffer) Write(p []byte) (int, error) {
	l.mux.Lock()
	defer l.mux.Unlock()
	return l.sb.Write(p)
}

func (l *lockedBuffer) String() string {
	l.mux.Lock()
	defer l.mux.Unlock()
	return l.sb.String()
}
