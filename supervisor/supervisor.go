package supervisor

import (
	"sync"

	"github.com/google/uuid"
	"sutext.github.io/tether/events"
	"sutext.github.io/tether/internal/pulse"
	"sutext.github.io/tether/socket"
	"sutext.github.io/tether/xerr"
	"sutext.github.io/tether/xlog"
)

// Notification names emitted through the supervisor's event hub.
const (
	// EventStateChange carries the new ConnState as payload.
	EventStateChange events.Event = "state_change"
	// EventConnectTimeout fires when the handshake watchdog expires. No
	// payload.
	EventConnectTimeout events.Event = "connect_timeout"
)

// Supervisor owns the connection lifecycle. It is safe for concurrent use;
// all mutation happens under one lock. Event handlers run synchronously on
// the transitioning goroutine and must not call back into the Supervisor.
type Supervisor struct {
	mu      sync.RWMutex
	active  bool
	state   ConnState
	sock    socket.Socket
	token   string
	factory socket.Factory
	opts    *Options
	logger  *xlog.Logger
	hub     *events.Hub
	dog     *watchdog
	redial  *redialer
	beat    *pulse.Driver
}

// New creates an inactive supervisor around a socket factory. The factory
// is invoked once per connection attempt; the previous socket is closed
// and discarded, never reused.
func New(factory socket.Factory, options ...Option) *Supervisor {
	opts := newOptions(options...)
	s := &Supervisor{
		state:   StateDisconnected,
		factory: factory,
		opts:    opts,
		logger:  opts.logger,
		hub:     events.NewHub(),
		dog:     &watchdog{},
		redial:  newRedialer(opts.reconnectDelay),
		beat:    pulse.New(opts.heartbeatInterval),
	}
	s.beat.TickFunc(s.heartbeatTick)
	return s
}

// Hub exposes the notification registry. Subscribe to EventStateChange and
// EventConnectTimeout here.
func (s *Supervisor) Hub() *events.Hub {
	return s.hub
}

// State returns the current connection state.
func (s *Supervisor) State() ConnState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Active reports whether supervision is currently intended.
func (s *Supervisor) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// Socket returns the currently owned socket, or nil.
func (s *Supervisor) Socket() socket.Socket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sock
}

// Activate starts supervision: creates the first socket and arms the
// heartbeat driver. A second call while still active fails with
// xerr.AlreadyActive and creates nothing.
func (s *Supervisor) Activate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active {
		return xerr.AlreadyActive
	}
	s.active = true
	// Entering Connecting on activation is not announced; notifications
	// start with the first transition after it.
	s.logger.Debug("activated", xlog.To(StateConnecting))
	s.state = StateConnecting
	s.beat.Start()
	s.openSocketLocked()
	return nil
}

// Shutdown stops supervision from any state: disarms every timer, closes
// the current socket and marks the supervisor inactive. Safe to call
// repeatedly.
func (s *Supervisor) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = false
	s.token = ""
	s.dog.disarm()
	s.redial.cancel()
	s.beat.Stop()
	if s.sock != nil {
		s.sock.Close()
		s.sock = nil
	}
	s.setStateLocked(StateDisconnected)
}

// HandleSocketOpen reacts to the transport-open signal: stamps a fresh
// connection token, arms the handshake watchdog and launches the
// asynchronous handshake confirmation.
func (s *Supervisor) HandleSocketOpen() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		s.logger.Debug("open signal while inactive ignored")
		return
	}
	s.token = uuid.NewString()
	token := s.token
	s.setStateLocked(StateLimbo)
	s.dog.arm(s.opts.connectTimeout, s.watchdogFired)
	go func() {
		ok := s.opts.handshake()
		s.finishHandshake(token, ok)
	}()
}

// HandleSocketError reacts to a transport error. Signals from a socket
// other than the currently owned one are ignored; a nil socket skips the
// identity check.
func (s *Supervisor) HandleSocketError(sk socket.Socket) {
	s.handleFailure(sk, "error")
}

// HandleSocketClosed reacts to the transport-close signal with the same
// identity rules as HandleSocketError.
func (s *Supervisor) HandleSocketClosed(sk socket.Socket) {
	s.handleFailure(sk, "closed")
}

// HandleHeartbeatTimeout forces a reconnect when the caller's liveness
// check gave up. A no-op while inactive.
func (s *Supervisor) HandleHeartbeatTimeout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return
	}
	s.logger.Warn("heartbeat timeout")
	s.reconnectLocked()
}

func (s *Supervisor) handleFailure(sk socket.Socket, signal string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sk != nil && sk != s.sock {
		s.logger.Debug("signal from stale socket ignored", xlog.String("signal", signal))
		return
	}
	s.logger.Debug("transport failure", xlog.String("signal", signal))
	s.reconnectLocked()
}

// reconnectLocked is the idempotent failure path: it invalidates the
// connection token, tears the current socket down and schedules one
// replacement attempt. Multiple failure signals before the delay elapses
// collapse into a single attempt.
func (s *Supervisor) reconnectLocked() {
	s.token = ""
	s.dog.disarm()
	if !s.active {
		s.setStateLocked(StateDisconnected)
		return
	}
	s.setStateLocked(StateReconnecting)
	if s.sock != nil {
		s.sock.Close()
		s.sock = nil
	}
	delay := s.redial.next()
	s.logger.Debug("reconnect scheduled", xlog.Interval(delay), xlog.Attempt(s.redial.count.Load()))
	s.redial.schedule(delay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if !s.active || s.sock != nil {
			return
		}
		s.openSocketLocked()
	})
}

func (s *Supervisor) openSocketLocked() {
	sock, err := s.factory()
	if err != nil {
		s.logger.Warn("socket factory failed", xlog.Err(err))
		s.reconnectLocked()
		return
	}
	s.sock = sock
}

func (s *Supervisor) finishHandshake(token string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.token {
		s.logger.Debug("stale handshake result dropped", xlog.Token(token))
		return
	}
	if !ok {
		// Rejection is not a transition; the watchdog ends this attempt.
		s.logger.Debug("handshake rejected")
		return
	}
	s.dog.disarm()
	s.redial.reset()
	s.setStateLocked(StateConnected)
}

func (s *Supervisor) watchdogFired() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active || s.state != StateLimbo {
		return
	}
	s.logger.Warn("handshake watchdog expired", xlog.Interval(s.opts.connectTimeout))
	s.hub.Emit(EventConnectTimeout, nil)
	s.reconnectLocked()
}

func (s *Supervisor) heartbeatTick() {
	s.mu.RLock()
	active := s.active
	state := s.state
	sock := s.sock
	s.mu.RUnlock()
	if !active || state != StateConnected || sock == nil {
		return
	}
	if s.opts.heartbeat == nil {
		return
	}
	s.opts.heartbeat(sock, s.opts.heartbeatInterval)
}

func (s *Supervisor) setStateLocked(next ConnState) {
	if s.state == next {
		return
	}
	s.logger.Debug("state change", xlog.From(s.state), xlog.To(next))
	s.state = next
	s.hub.Emit(EventStateChange, next)
}
