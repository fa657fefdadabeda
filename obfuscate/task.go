package obfuscate

import (
	"io"
	"sync"
)

// Operation represents the operation which needs to be done by a Task
type Operation int8

const (
	// Encode disguises the input as Morse code
	Encode Operation = iota
	// Decode restores the original data from Morse code
	Decode
)

// String returns the string representation of the operation
func (o Operation) String() string {
	if o == Decode {
		return "decode"
	}
	return "encode"
}

// MetadataMap the user defined details of a Task
type MetadataMap map[string]interface{}

// CallbackFunc is a callback function which will get called by the engine once
// the processing of a task has been finished
type CallbackFunc func(*Task)

// Task is a unit of encoding/decoding work processed by an Engine
type Task struct {
	// Metadata the user defined details of the task
	Metadata MetadataMap

	mode     Operation
	input    io.Reader
	callback CallbackFunc

	mux     sync.Mutex
	status  Status
	err     error
	outputs []io.Writer
}

// NewTask creates a new Task object
func NewTask(mode Operation, input io.Reader, output io.Writer, callback CallbackFunc) *Task {
	return &Task{
		Metadata: make(MetadataMap),
		mode:     mode,
		input:    input,
		outputs:  []io.Writer{output},
		callback: callback,
		status:   Queued,
	}
}

// Mode returns the operation of the task
func (t *Task) Mode() Operation {
	return t.mode
}

// AddOutput adds a new output to the Task
// Calling this function on an in-progress Task will return ErrOperationInProgress error
func (t *Task) AddOutput(output io.Writer) error {
	t.mux.Lock()
	defer t.mux.Unlock()
	if t.status == InProgress {
		return ErrOperationInProgress
	}
	t.outputs = append(t.outputs, output)
	return nil
}

// CloseInput closes the input Reader.
// If the reader is not a io.Closer, calling this function will have no effect
// Calling this function on an in-progress Task will return ErrOperationInProgress error
func (t *Task) CloseInput() error {
	t.mux.Lock()
	defer t.mux.Unlock()
	if t.status == InProgress {
		return ErrOperationInProgress
	}
	input, ok := t.input.(io.Closer)
	if ok && input != nil {
		return input.Close()
	}
	return nil
}

// CloseOutputs closes all the output Writers.
// If the output is not a io.Closer, calling this function will have no effect
// Calling this function on an in-progress Task will return ErrOperationInProgress error
func (t *Task) CloseOutputs() error {
	t.mux.Lock()
	defer t.mux.Unlock()
	if t.status == InProgress {
		return ErrOperationInProgress
	}
	for _, out := range t.outputs {
		output, ok := out.(io.Closer)
		if ok && output != nil {
			err := output.Close()
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// Status returns the current status of the task
func (t *Task) Status() Status {
	t.mux.Lock()
	defer t.mux.Unlock()
	return t.status
}

// Err returns the reason the task failed or has been cancelled
func (t *Task) Err() error {
	t.mux.Lock()
	defer t.mux.Unlock()
	return t.err
}

func (t *Task) markAsInProgress() []io.Writer {
	t.mux.Lock()
	defer t.mux.Unlock()
	t.status = InProgress
	return t.outputs
}

func (t *Task) markAsComplete(status Status, err error) {
	t.mux.Lock()
	defer t.mux.Unlock()
	t.status = status
	t.err = err
}

func (t *Task) callBack() {
	if t.callback != nil {
		t.callback(t)
	}
}
