package socket

import (
	"sync"

	"sutext.github.io/tether/xerr"
)

// Pipe is an in-memory Socket whose far end is driven by the caller. It
// records sent payloads and exposes methods to script transport signals,
// which makes it the standard test double for the supervisor and the
// correlator.
type Pipe struct {
	mu     sync.Mutex
	sent   [][]byte
	closed bool
	events Events
}

func NewPipe(events Events) *Pipe {
	return &Pipe{events: events}
}

// PipeFactory returns a Factory producing a fresh Pipe per call and
// reports each created pipe through made.
func PipeFactory(events Events, made func(*Pipe)) Factory {
	return func() (Socket, error) {
		p := NewPipe(events)
		if made != nil {
			made(p)
		}
		return p, nil
	}
}

func (p *Pipe) Send(payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return xerr.SocketClosed
	}
	buf := make([]byte, len(payload))
	copy(buf, payload)
	p.sent = append(p.sent, buf)
	return nil
}

func (p *Pipe) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// Sent returns a copy of every payload written so far.
func (p *Pipe) Sent() [][]byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([][]byte, len(p.sent))
	copy(out, p.sent)
	return out
}

// Closed reports whether Close was called.
func (p *Pipe) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// Open signals transport-open from the far end.
func (p *Pipe) Open() {
	p.events.open()
}

// Fail signals a transport error originating from this socket.
func (p *Pipe) Fail() {
	p.events.fail(p)
}

// Drop signals transport-close originating from this socket.
func (p *Pipe) Drop() {
	p.events.closed(p)
}

// Inject delivers an inbound message from the far end.
func (p *Pipe) Inject(data []byte) {
	p.events.message(data)
}
