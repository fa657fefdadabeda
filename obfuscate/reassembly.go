package obfuscate

import "io"

// reassembler writes encoded chunks in index order, whatever order they complete in.
// It is owned by the goroutine which reads the input and is never touched by the workers.
type reassembler struct {
	w          io.Writer
	separator  string
	pending    map[int]string
	writeIndex int
	received   int
}

func newReassembler(w io.Writer, separator string) *reassembler {
	return &reassembler{
		w:         w,
		separator: separator,
		pending:   make(map[int]string),
	}
}

// add buffers the result and flushes every chunk which is next in line.
func (r *reassembler) add(result *IndexedResult) error {
	if result.Err != nil {
		return result.Err
	}
	r.received++
	r.pending[result.Index] = result.Value

	for {
		value, ok := r.pending[r.writeIndex]
		if !ok {
			return nil
		}
		delete(r.pending, r.writeIndex)
		if r.writeIndex > 0 {
			if _, err := io.WriteString(r.w, r.separator); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(r.w, value); err != nil {
			return err
		}
		r.writeIndex++
	}
}

// buffered returns the number of completed chunks waiting for an earlier one.
func (r *reassembler) buffered() int {
	return len(r.pending)
}
