// Package mocks provides io test doubles
package mocks

import (
	"errors"
	"io"
)

// ErrBrokenWriter is returned by every FailingWriter.Write call
var ErrBrokenWriter = errors.New("broken writer")

// FailingWriter accepts Limit bytes and fails afterwards
type FailingWriter struct {
	Limit   int
	written int
}

func (f *FailingWriter) Write(p []byte) (n int, err error) {
	if f.written+len(p) > f.Limit {
		return 0, ErrBrokenWriter
	}
	f.written += len(p)
	return len(p), nil
}

type WriteCloser struct {
	IsClosed bool
}

func (o *WriteCloser) Write(p []byte) (n int, err error) {
	return len(p), nil
}

func (o *WriteCloser) Close() error {
	o.IsClosed = true
	return nil
}

type ReadCloser struct {
	IsClosed bool
}

func (o *ReadCloser) Read(p []byte) (n int, err error) {
	return 0, io.EOF
}

func (o *ReadCloser) Close() error {
	o.IsClosed = true
	return nil
}
