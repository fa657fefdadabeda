package obfuscate

import (
	"sync"
	"sync/atomic"

	"github.com/xitonix/mornary/logging"
)

type streamState int8

const (
	streamIdle streamState = iota
	streamOpen
	streamClosed
)

// stream pumps the tasks of a tap into the tube the engine workers read from.
// A stream can be opened and shut down once.
type stream struct {
	tube RequestChannel
	tap  Tap
	log  logging.Logger

	done      chan None
	pumping   sync.WaitGroup
	forwarded int64

	// serialises open and shutdown
	mux   sync.Mutex
	state streamState
}

func newStream(capacity uint16, tap Tap, log logging.Logger) *stream {
	return &stream{
		tube: make(RequestChannel, capacity),
		tap:  tap,
		log:  log,
		done: make(chan None),
	}
}

func (s *stream) pump() {
	defer s.pumping.Done()
	for {
		select {
		case <-s.done:
			return
		case t, more := <-s.tap.Requests():
			if !more {
				s.log.Debug("the tap has been closed")
				return
			}
			select {
			case s.tube <- t:
				atomic.AddInt64(&s.forwarded, 1)
			case <-s.done:
				return
			}
		}
	}
}

// count returns the number of tasks handed to the engine so far
func (s *stream) count() int64 {
	return atomic.LoadInt64(&s.forwarded)
}

func (s *stream) open() {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.state != streamIdle {
		return
	}

	s.pumping.Add(1)
	go s.pump()
	if !s.tap.IsOpen() {
		s.tap.Open()
	}
	s.state = streamOpen
}

// shutdown stops pumping, closes the tap, then closes the tube once nothing can write to it
func (s *stream) shutdown() {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.state != streamOpen {
		return
	}

	close(s.done)
	if s.tap.IsOpen() {
		s.tap.Close()
	}
	s.pumping.Wait()
	close(s.tube)
	s.state = streamClosed
	s.log.Debugf("the stream has been closed after forwarding %d task(s)", s.count())
}
