package correlator

import (
	"context"
	"sync"

	"sutext.github.io/tether/internal/result"
	"sutext.github.io/tether/xerr"
)

// Future is the completion handle of one issued exchange. It settles at
// most once, and never on its own: an exchange with no matching response
// stays pending forever unless the caller abandons it.
type Future struct {
	once sync.Once
	done chan struct{}
	res  result.Result[any]
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

func (f *Future) resolve(v any) {
	f.once.Do(func() {
		f.res = result.OK(v)
		close(f.done)
	})
}

func (f *Future) reject(err error) {
	f.once.Do(func() {
		f.res = result.Err[any](err)
		close(f.done)
	})
}

// Done is closed once the future settles.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Result returns the settled outcome, or xerr.ExchangePending if the
// future has not settled yet.
func (f *Future) Result() (any, error) {
	select {
	case <-f.done:
		return f.res.Get()
	default:
		return nil, xerr.ExchangePending
	}
}

// Await blocks until the future settles or ctx ends.
func (f *Future) Await(ctx context.Context) (any, error) {
	select {
	case <-f.done:
		return f.res.Get()
	case <-ctx.Done():
		return nil, context.Cause(ctx)
	}
}
