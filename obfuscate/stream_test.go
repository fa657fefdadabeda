package obfuscate

import (
	"testing"
	"time"

	"github.com/xitonix/mornary/logging"
)

func TestStreamClosure(t *testing.T) {
	tap := newMockedTap()
	stream := newStream(1, tap, logging.Discard())
	closed := make(chan None)
	stream.open()
	go func() {
		for range stream.tube {
		}
		close(closed)
	}()

	if !tap.IsOpen() {
		t.Error("The tap was supposed to be open")
	}

	stream.shutdown()

	select {
	case <-closed:
	case <-time.After(time.Second):
		t.Error("The stream was supposed to be closed")
	}

	if tap.IsOpen() {
		t.Error("The tap was supposed to be closed")
	}

	// a closed stream cannot be reopened
	stream.open()
	if tap.IsOpen() {
		t.Error("The tap was not supposed to be reopened")
	}
}

func TestStreamForwardsTasks(t *testing.T) {
	tap := newMockedTap()
	stream := newStream(1, tap, logging.Discard())
	stream.open()
	defer stream.shutdown()

	task := NewTask(Encode, nil, nil, nil)
	go tap.Push(task)

	select {
	case received := <-stream.tube:
		if received != task {
			t.Error("The stream delivered an unexpected task")
		}
		if stream.count() != 1 {
			t.Errorf("Expected one forwarded task, actual %d", stream.count())
		}
	case <-time.After(time.Second):
		t.Error("The task was not forwarded")
	}
}

func TestStreamShutdownWithPendingTask(t *testing.T) {
	tap := newMockedTap()
	stream := newStream(1, tap, logging.Discard())
	stream.open()

	// nobody reads the tube, so the second task blocks the consumer
	tap.Push(NewTask(Encode, nil, nil, nil))
	tap.Push(NewTask(Encode, nil, nil, nil))

	done := make(chan None)
	go func() {
		stream.shutdown()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Error("shutdown blocked on a pending task")
	}
}
