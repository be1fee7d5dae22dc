package supervisor

import (
	"sync"
	"sync/atomic"
	"time"

	"sutext.github.io/tether/backoff"
)

// redialer schedules the one-shot reconnect-delay timer. The single slot
// guards against duplicate scheduling when several failure signals arrive
// before the delay elapses.
type redialer struct {
	mu    sync.Mutex
	count atomic.Int64
	delay backoff.Backoff
	stop  chan struct{}
}

func newRedialer(delay backoff.Backoff) *redialer {
	return &redialer{delay: delay}
}

// next advances the attempt counter and returns the delay for this attempt.
func (r *redialer) next() time.Duration {
	return r.delay.Next(r.count.Add(1))
}

// reset clears the attempt counter after a successful connection.
func (r *redialer) reset() {
	r.count.Store(0)
}

// schedule runs fn after d unless canceled. A pending schedule wins over
// later ones.
func (r *redialer) schedule(d time.Duration, fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stop != nil {
		return
	}
	stop := make(chan struct{})
	r.stop = stop
	go func() {
		select {
		case <-time.After(d):
			r.release(stop)
			fn()
		case <-stop:
		}
	}()
}

func (r *redialer) cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.count.Store(0)
	if r.stop != nil {
		close(r.stop)
		r.stop = nil
	}
}

func (r *redialer) release(stop chan struct{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stop == stop {
		r.stop = nil
	}
}
