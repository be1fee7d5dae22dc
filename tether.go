// Package tether keeps one logical connection alive over an unreliable
// transport and correlates request/response exchanges issued over it.
package tether

import (
	"sutext.github.io/tether/correlator"
	"sutext.github.io/tether/events"
	"sutext.github.io/tether/socket"
	"sutext.github.io/tether/supervisor"
)

// EventUnsolicited fires on the supervisor's hub for every inbound message
// no pending exchange claimed. Payload: the raw message bytes.
const EventUnsolicited events.Event = "unsolicited"

// Link bundles a Supervisor and a Correlator over one socket factory, the
// way the two are meant to be consumed together.
type Link struct {
	Supervisor *supervisor.Supervisor
	Correlator *correlator.Correlator
}

// NewLink wires supervisor and correlator around the factory produced by
// bind. bind receives the lifecycle events the transport must route back.
func NewLink(bind func(socket.Events) socket.Factory, options ...supervisor.Option) *Link {
	l := &Link{}
	factory := bind(socket.Events{
		OnOpen:   func() { l.Supervisor.HandleSocketOpen() },
		OnError:  func(s socket.Socket) { l.Supervisor.HandleSocketError(s) },
		OnClosed: func(s socket.Socket) { l.Supervisor.HandleSocketClosed(s) },
		OnMessage: func(data []byte) {
			if !l.Correlator.TryDispatch(data) {
				l.Supervisor.Hub().Emit(EventUnsolicited, data)
			}
		},
	})
	l.Supervisor = supervisor.New(factory, options...)
	l.Correlator = correlator.New(l.Supervisor)
	return l
}

// Dial builds a Link over a websocket transport to url. Supervision starts
// on Activate, not here.
func Dial(url string, options ...supervisor.Option) *Link {
	return NewLink(func(ev socket.Events) socket.Factory {
		return socket.WSFactory(url, ev)
	}, options...)
}
