// Package socket defines the transport capability the supervisor consumes:
// a value that can send and close, created through a factory on every
// (re)connect, with lifecycle signals routed back through an Events bundle.
package socket

// Socket is one transport connection. Implementations carry their own
// framing; payloads are opaque bytes at this layer.
type Socket interface {
	Send(payload []byte) error
	Close() error
}

// Factory creates a fresh Socket. The supervisor re-invokes it on every
// reconnect and never reuses a previous socket. A factory error is treated
// like an immediate transport failure.
type Factory func() (Socket, error)

// Events is the wiring surface between a concrete transport and its
// consumer. Error and Closed carry the originating socket so stale signals
// from superseded sockets can be told apart from current ones.
type Events struct {
	OnOpen    func()
	OnError   func(s Socket)
	OnClosed  func(s Socket)
	OnMessage func(data []byte)
}

func (e Events) open() {
	if e.OnOpen != nil {
		e.OnOpen()
	}
}
func (e Events) fail(s Socket) {
	if e.OnError != nil {
		e.OnError(s)
	}
}
func (e Events) closed(s Socket) {
	if e.OnClosed != nil {
		e.OnClosed(s)
	}
}
func (e Events) message(data []byte) {
	if e.OnMessage != nil {
		e.OnMessage(data)
	}
}
