// Package pulse runs a periodic callback for as long as the driver is started.
package pulse

import (
	"sync"
	"time"
)

type Driver struct {
	mu       *sync.Mutex
	stop     chan struct{}
	tick     func()
	interval time.Duration
}

func New(interval time.Duration) *Driver {
	return &Driver{
		mu:       new(sync.Mutex),
		interval: interval,
	}
}

// TickFunc sets the callback invoked on every interval. Must be called
// before Start.
func (d *Driver) TickFunc(f func()) {
	d.tick = f
}

// Start arms the driver. Calling Start while already running is a no-op.
func (d *Driver) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stop != nil {
		return
	}
	d.stop = make(chan struct{})
	go d.run(d.stop)
}

// Stop disarms the driver. Safe to call repeatedly; the driver can be
// started again afterwards.
func (d *Driver) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stop != nil {
		close(d.stop)
		d.stop = nil
	}
}

func (d *Driver) run(stop chan struct{}) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			d.tick()
		}
	}
}
