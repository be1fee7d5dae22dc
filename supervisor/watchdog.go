package supervisor

import (
	"sync"
	"time"
)

// watchdog is a single-slot one-shot timer. Arming replaces any pending
// timer; disarming releases the slot on every exit path, so a fire can
// only happen while the slot that scheduled it is still current.
type watchdog struct {
	mu   sync.Mutex
	stop chan struct{}
}

func (w *watchdog) arm(d time.Duration, fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stop != nil {
		close(w.stop)
	}
	stop := make(chan struct{})
	w.stop = stop
	go func() {
		select {
		case <-time.After(d):
			w.release(stop)
			fn()
		case <-stop:
		}
	}()
}

func (w *watchdog) disarm() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stop != nil {
		close(w.stop)
		w.stop = nil
	}
}

func (w *watchdog) release(stop chan struct{}) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stop == stop {
		w.stop = nil
	}
}
