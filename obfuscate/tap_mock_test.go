package obfuscate

import "sync"

type mockedTap struct {
	requests RequestChannel
	mux      sync.Mutex
	isOpen   bool
}

func newMockedTap() *mockedTap {
	return &mockedTap{
		requests: make(RequestChannel),
	}
}

func (m *mockedTap) Push(t *Task) {
	m.requests <- t
}

func (m *mockedTap) Open() {
	m.mux.Lock()
	defer m.mux.Unlock()
	m.isOpen = true
}

func (m *mockedTap) Close() {
	m.mux.Lock()
	defer m.mux.Unlock()
	if m.isOpen {
		m.isOpen = false
		close(m.requests)
	}
}

func (m *mockedTap) IsOpen() bool {
	m.mux.Lock()
	defer m.mux.Unlock()
	return m.isOpen
}

func (m *mockedTap) Requests() RequestChannel {
	return m.requests
}
