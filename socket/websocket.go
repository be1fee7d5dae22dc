package socket

import (
	"sync"

	"golang.org/x/net/websocket"
	"sutext.github.io/tether/xerr"
	"sutext.github.io/tether/xlog"
)

// WS is a websocket-backed Socket. The dial runs asynchronously; the
// outcome arrives through the Events bundle, never as a constructor error.
type WS struct {
	mu     sync.Mutex
	url    string
	conn   *websocket.Conn
	closed bool
	events Events
	logger *xlog.Logger
}

// NewWS creates the socket and starts dialing in the background.
func NewWS(url string, events Events) *WS {
	w := &WS{
		url:    url,
		events: events,
		logger: xlog.Default(),
	}
	go w.dial()
	return w
}

// WSFactory adapts NewWS to the Factory shape the supervisor consumes.
func WSFactory(url string, events Events) Factory {
	return func() (Socket, error) {
		return NewWS(url, events), nil
	}
}

func (w *WS) dial() {
	conn, err := websocket.Dial(w.url, "", "http://localhost/")
	if err != nil {
		w.logger.Debug("websocket dial failed", xlog.Err(err))
		w.events.fail(w)
		return
	}
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		conn.Close()
		return
	}
	w.conn = conn
	w.mu.Unlock()
	w.events.open()
	go w.readLoop(conn)
}

func (w *WS) readLoop(conn *websocket.Conn) {
	for {
		var data []byte
		if err := websocket.Message.Receive(conn, &data); err != nil {
			w.mu.Lock()
			closed := w.closed
			w.mu.Unlock()
			if !closed {
				w.logger.Debug("websocket read ended", xlog.Err(err))
				w.events.closed(w)
			}
			return
		}
		w.events.message(data)
	}
}

func (w *WS) Send(payload []byte) error {
	w.mu.Lock()
	conn := w.conn
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return xerr.SocketClosed
	}
	if conn == nil {
		return xerr.NotConnected
	}
	return websocket.Message.Send(conn, payload)
}

func (w *WS) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	if w.conn != nil {
		err := w.conn.Close()
		w.conn = nil
		return err
	}
	return nil
}
