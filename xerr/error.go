package xerr

type Error uint16

const (
	AlreadyActive Error = iota
	NotConnected
	SocketClosed
	ExchangePending
)

var errorMap = map[Error]string{
	AlreadyActive:   "supervisor already active",
	NotConnected:    "connection not established",
	SocketClosed:    "socket is closed",
	ExchangePending: "exchange still pending",
}

func (e Error) Error() string {
	return errorMap[e]
}
func (e Error) String() string {
	return errorMap[e]
}
