// Package correlator matches inbound messages against in-flight request/
// response exchanges issued over a supervised connection. It applies no
// timeout of its own and survives reconnects: issued exchanges stay
// pending against the replacement socket's message stream.
package correlator

import (
	"sync"
	"time"

	"sutext.github.io/tether/socket"
	"sutext.github.io/tether/supervisor"
	"sutext.github.io/tether/xerr"
	"sutext.github.io/tether/xlog"
)

// Link is the view of the supervisor the correlator reads through. It
// never mutates the socket; ownership stays with the supervisor.
type Link interface {
	State() supervisor.ConnState
	Socket() socket.Socket
}

// PendingExchange is one outstanding request awaiting its response.
type PendingExchange struct {
	Command  Command
	ID       string
	IssuedAt time.Time
	future   *Future
}

type Correlator struct {
	mu      sync.Mutex
	link    Link
	logger  *xlog.Logger
	pending []*PendingExchange
}

func New(link Link) *Correlator {
	return &Correlator{
		link:   link,
		logger: xlog.Default(),
	}
}

// Issue executes cmd against the transport and tracks the exchange until a
// matching response arrives. Concurrent issues are tracked independently
// in issuance order; resolution order is whatever the peer answers in.
// An execute failure is returned as-is and nothing is enqueued.
func (c *Correlator) Issue(cmd Command) (*Future, error) {
	id, err := cmd.Execute(sendFunc(c.Send))
	if err != nil {
		return nil, err
	}
	fut := newFuture()
	c.mu.Lock()
	c.pending = append(c.pending, &PendingExchange{
		Command:  cmd,
		ID:       id,
		IssuedAt: time.Now(),
		future:   fut,
	})
	c.mu.Unlock()
	c.logger.Debug("exchange issued", xlog.Exchange(id))
	return fut, nil
}

// TryDispatch offers an inbound message to the pending exchanges, oldest
// first. The first match is resolved with its command's response transform
// and removed; true is returned. With no match nothing changes and false
// is returned: the message is the caller's to treat as unsolicited.
func (c *Correlator) TryDispatch(data []byte) bool {
	c.mu.Lock()
	idx := -1
	for i, ex := range c.pending {
		if ex.Command.Match(data) {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.mu.Unlock()
		return false
	}
	ex := c.pending[idx]
	c.pending = append(c.pending[:idx:idx], c.pending[idx+1:]...)
	c.mu.Unlock()

	v, err := ex.Command.HandleResponse(data)
	if err != nil {
		c.logger.Debug("response transform failed", xlog.Exchange(ex.ID), xlog.Err(err))
		ex.future.reject(err)
		return true
	}
	c.logger.Debug("exchange resolved", xlog.Exchange(ex.ID))
	ex.future.resolve(v)
	return true
}

// Send writes payload through the supervisor's current socket, but only
// while the supervisor reports Connected. The return value says whether a
// send was attempted; an attempted send that errors is fire and forget.
func (c *Correlator) Send(payload []byte) bool {
	if c.link.State() != supervisor.StateConnected {
		return false
	}
	sock := c.link.Socket()
	if sock == nil {
		return false
	}
	if err := sock.Send(payload); err != nil {
		c.logger.Debug("send failed", xlog.Err(err))
	}
	return true
}

// Pending reports how many exchanges await a response.
func (c *Correlator) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// sendFunc adapts Correlator.Send to the Transport shape commands consume.
type sendFunc func([]byte) bool

func (f sendFunc) Send(payload []byte) error {
	if !f(payload) {
		return xerr.NotConnected
	}
	return nil
}
