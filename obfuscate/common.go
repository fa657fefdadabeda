package obfuscate

import (
	"io"

	"github.com/xitonix/mornary/logging"
	"github.com/xitonix/mornary/morse"
)

// None represents an empty struct{}
type None struct{}

const (
	defaultBufferSize = 1024
	defaultChunkSize  = 1024
	defaultWorkers    = 10
	// the submission queue holds this many chunks on top of one per worker
	queuePadding = 2
)

// Options configures an Encoder. Zero values are replaced with the defaults.
type Options struct {
	// ChunkSize the number of input bytes encoded by one unit of work
	ChunkSize int
	// Workers the number of encoding goroutines
	Workers int
	// QueueCapacity the number of chunks which can wait for a worker. Once the queue is full,
	// the reading goroutine encodes the next chunk itself.
	QueueCapacity int
	// Separator the text written between two encoded chunks
	Separator string
	// Logger receives the debug details of the pipeline
	Logger logging.Logger
}

func (o Options) normalise() Options {
	if o.ChunkSize <= 0 {
		o.ChunkSize = defaultChunkSize
	}
	if o.Workers <= 0 {
		o.Workers = defaultWorkers
	}
	if o.QueueCapacity <= 0 {
		o.QueueCapacity = o.Workers + queuePadding
	}
	if o.Separator == "" {
		o.Separator = morse.WordDelimiter
	}
	if o.Logger == nil {
		o.Logger = logging.Discard()
	}
	return o
}

// Summary the statistics of a completed Encode or Decode call
type Summary struct {
	// Chunks the number of chunks the input has been split into
	Chunks int
	// Inline the number of chunks encoded by the reading goroutine because the queue was full
	Inline int
	// BytesRead the number of bytes consumed from the input
	BytesRead int64
	// BytesWritten the number of bytes written to the outputs
	BytesWritten int64
	// Digest the SHA256 hash of the raw (not encoded) data
	Digest []byte
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
