package obfuscate

import (
	"errors"
	"fmt"
)

var (
	// ErrNoChunkEncoder is returned when an Encoder has been created without a ChunkEncoderFactory
	ErrNoChunkEncoder = errors.New("no chunk encoder has been provided")
	// ErrOperationInProgress is the result of any invalid operation on an entity which is already being processed
	ErrOperationInProgress = errors.New("the operation is in progress")
)

// WorkerPanicError is returned when encoding a chunk panics
type WorkerPanicError struct {
	Index int
	Value interface{}
}

func (e *WorkerPanicError) Error() string {
	return fmt.Sprintf("chunk %d: worker panicked: %v", e.Index, e.Value)
}
