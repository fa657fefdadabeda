package obfuscate

import "fmt"

// WorkUnit is a chunk of the input waiting to be encoded
type WorkUnit struct {
	// Index the position of the chunk in the input, starting at zero
	Index int
	// Payload the chunk buffer
	Payload []byte
	// Length the number of bytes of Payload filled with input
	Length int
}

func (w *WorkUnit) data() []byte {
	return w.Payload[:w.Length]
}

// runChunk encodes the work unit. Panics are reported as errors.
func runChunk(encoder ChunkEncoder, wu *WorkUnit) (result *IndexedResult) {
	defer func() {
		if p := recover(); p != nil {
			result = &IndexedResult{Index: wu.Index, Err: &WorkerPanicError{Index: wu.Index, Value: p}}
		}
	}()

	value, err := encoder.EncodeChunk(wu.data())
	if err != nil {
		err = fmt.Errorf("chunk %d: %w", wu.Index, err)
	}
	return &IndexedResult{Index: wu.Index, Value: value, Err: err}
}
