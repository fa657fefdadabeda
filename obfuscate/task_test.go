package obfuscate

import (
	"testing"

	"github.com/mattetti/filebuffer"
	"github.com/xitonix/mornary/obfuscate/mocks"
)

func TestTaskMetadata(t *testing.T) {
	const (
		metaKey   = "key"
		metaValue = "value"
	)
	task := NewTask(Encode, filebuffer.New(nil), filebuffer.New(nil), nil)
	task.Metadata[metaKey] = metaValue
	val, ok := task.Metadata[metaKey]
	if !ok {
		t.Errorf("Could not find '%s' in the Metadata map", metaKey)
	}
	if val.(string) != metaValue {
		t.Errorf("Expected '%s' Metadata value, but received %v", metaValue, val)
	}
	if task.Status() != Queued {
		t.Errorf("Expected a new task to be '%s', actual '%s'", Queued, task.Status())
	}
}

func TestTaskAddOutput(t *testing.T) {
	testCases := []struct {
		title         string
		expectedError error
		markAsRunning bool
	}{
		{
			title: "adding_output_must_append_to_the_output_slice",
		},
		{
			title:         "adding_output_to_an_in_progress_task_must_fail",
			expectedError: ErrOperationInProgress,
			markAsRunning: true,
		},
	}

	in := filebuffer.New(nil)
	out := filebuffer.New(nil)

	for _, tc := range testCases {
		t.Run(tc.title, func(t *testing.T) {
			task := NewTask(Encode, in, out, nil)
			if tc.markAsRunning {
				task.markAsInProgress()
			}

			anotherOut := filebuffer.New(nil)
			err := task.AddOutput(anotherOut)
			if tc.expectedError != err {
				t.Errorf("Expected '%v' as error, but received '%v'", tc.expectedError, err)
			}

			if tc.markAsRunning {
				if len(task.outputs) != 1 {
					t.Error("There should only be one io.Writer in the output list")
				}
			} else {
				if len(task.outputs) != 2 {
					t.Error("The second io.Writer did not get added to the output list")
				}
			}
		})
	}
}

func TestTaskCloseInputOutput(t *testing.T) {
	in := &mocks.ReadCloser{}
	out := &mocks.WriteCloser{}

	task := NewTask(Decode, in, out, nil)
	if err := task.CloseInput(); err != nil {
		t.Errorf("Failed to close the input: %v", err)
	}
	if err := task.CloseOutputs(); err != nil {
		t.Errorf("Failed to close the outputs: %v", err)
	}

	if !in.IsClosed {
		t.Error("Input was supposed to get closed")
	}

	if !out.IsClosed {
		t.Error("Output was supposed to get closed")
	}
}

func TestTaskCloseInputInProgress(t *testing.T) {
	in := &mocks.ReadCloser{}
	out := &mocks.WriteCloser{}

	task := NewTask(Encode, in, out, nil)
	task.markAsInProgress()

	err := task.CloseInput()
	if ErrOperationInProgress != err {
		t.Errorf("Expected 'ErrOperationInProgress' as error, but received '%v'", err)
	}

	err = task.CloseOutputs()
	if ErrOperationInProgress != err {
		t.Errorf("Expected 'ErrOperationInProgress' as error, but received '%v'", err)
	}

	task.markAsComplete(Completed, nil)
	if err := task.CloseOutputs(); err != nil {
		t.Errorf("A completed task must close its outputs, received '%v'", err)
	}
	if !out.IsClosed {
		t.Error("Output was supposed to get closed")
	}
}

func TestOperationString(t *testing.T) {
	if Encode.String() != "encode" || Decode.String() != "decode" {
		t.Errorf("unexpected operation names %q and %q", Encode, Decode)
	}
}

func TestStatus(t *testing.T) {
	testCases := []struct {
		status   Status
		name     string
		terminal bool
	}{
		{status: Queued, name: "queued"},
		{status: InProgress, name: "in progress"},
		{status: Completed, name: "completed", terminal: true},
		{status: Cancelled, name: "cancelled", terminal: true},
		{status: Failed, name: "failed", terminal: true},
		{status: Status(42), name: "unknown"},
	}
	for _, tc := range testCases {
		if tc.status.String() != tc.name {
			t.Errorf("expected %q, actual %q", tc.name, tc.status)
		}
		if tc.status.IsFinal() != tc.terminal {
			t.Errorf("%s: expected IsFinal to be %v", tc.name, tc.terminal)
		}
	}
}
