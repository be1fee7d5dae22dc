// Package supervisor keeps a single logical connection alive: it creates
// transport sockets through a caller-supplied factory, reacts to their
// lifecycle signals, bounds the application handshake with a watchdog,
// drives outbound heartbeats, and schedules reconnection after any failure.
package supervisor

// ConnState is the supervisor's current position in the connection
// lifecycle. Exactly one state is current at any instant.
type ConnState uint8

const (
	// StateDisconnected is the initial state, and the state entered when
	// an event reaches an inactive supervisor.
	StateDisconnected ConnState = iota
	// StateConnecting means a socket was created and transport-open is
	// awaited.
	StateConnecting
	// StateLimbo means the transport is open but the application handshake
	// has not confirmed yet.
	StateLimbo
	// StateConnected means the handshake confirmed; heartbeats flow.
	StateConnected
	// StateReconnecting means a failure was absorbed and a replacement
	// socket is due after the reconnect delay.
	StateReconnecting
)

// String returns the string representation of the ConnState.
func (s ConnState) String() string {
	switch s {
	case StateDisconnected:
		return "Disconnected"
	case StateConnecting:
		return "Connecting"
	case StateLimbo:
		return "Limbo"
	case StateConnected:
		return "Connected"
	case StateReconnecting:
		return "Reconnecting"
	default:
		return "Unknown"
	}
}
