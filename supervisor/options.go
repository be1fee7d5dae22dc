package supervisor

import (
	"time"

	"sutext.github.io/tether/backoff"
	"sutext.github.io/tether/socket"
	"sutext.github.io/tether/xlog"
)

// HandshakeFunc confirms application-level readiness once the transport is
// open. It runs on its own goroutine; a result arriving after the
// connection moved on is dropped.
type HandshakeFunc func() bool

// HeartbeatFunc sends one heartbeat over the given socket. The caller
// decides the wire encoding.
type HeartbeatFunc func(s socket.Socket, interval time.Duration)

type Options struct {
	logger            *xlog.Logger
	handshake         HandshakeFunc
	heartbeat         HeartbeatFunc
	reconnectDelay    backoff.Backoff
	connectTimeout    time.Duration
	heartbeatInterval time.Duration
}

type Option struct {
	f func(*Options)
}

func newOptions(options ...Option) *Options {
	opts := &Options{
		logger:            xlog.Default(),
		handshake:         func() bool { return true },
		heartbeat:         nil,
		reconnectDelay:    backoff.Constant(time.Second * 2),
		connectTimeout:    time.Second * 10,
		heartbeatInterval: time.Second * 30,
	}
	for _, o := range options {
		o.f(opts)
	}
	return opts
}

// WithHandshake sets the handshake-confirmation function invoked on every
// transport-open.
func WithHandshake(f HandshakeFunc) Option {
	return Option{f: func(o *Options) {
		o.handshake = f
	}}
}

// WithHeartbeatSender sets the function driven on every heartbeat tick
// while connected.
func WithHeartbeatSender(f HeartbeatFunc) Option {
	return Option{f: func(o *Options) {
		o.heartbeat = f
	}}
}

// WithHeartbeat sets the heartbeat tick interval.
func WithHeartbeat(interval time.Duration) Option {
	return Option{f: func(o *Options) {
		o.heartbeatInterval = interval
	}}
}

// WithConnectTimeout bounds how long the handshake may stay unconfirmed
// before the watchdog forces a reconnect.
func WithConnectTimeout(timeout time.Duration) Option {
	return Option{f: func(o *Options) {
		o.connectTimeout = timeout
	}}
}

// WithReconnectDelay sets a fixed delay between a failure and the next
// connection attempt.
func WithReconnectDelay(delay time.Duration) Option {
	return Option{f: func(o *Options) {
		o.reconnectDelay = backoff.Constant(delay)
	}}
}

// WithReconnectBackoff replaces the fixed reconnect delay with a growth
// strategy.
func WithReconnectBackoff(b backoff.Backoff) Option {
	return Option{f: func(o *Options) {
		o.reconnectDelay = b
	}}
}

// WithLogger sets the logger; defaults to the xlog package default.
func WithLogger(l *xlog.Logger) Option {
	return Option{f: func(o *Options) {
		o.logger = l
	}}
}
