package correlator

// Transport is the send capability handed to a command while it executes.
type Transport interface {
	Send(payload []byte) error
}

// Command is one request/response exchange. Execute performs the send and
// returns the correlation identifier; Match tests an inbound message
// against this exchange; HandleResponse transforms the matched message
// into the exchange's result.
type Command interface {
	Execute(t Transport) (string, error)
	Match(data []byte) bool
	HandleResponse(data []byte) (any, error)
}
