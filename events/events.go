// Package events implements a name-keyed observer registry.
// Handlers run synchronously on the emitter's goroutine, in subscription
// order, so notifications are delivered in the order they are emitted.
package events

import (
	"sync"

	"sutext.github.io/tether/xlog"
)

// Event names a notification channel within a Hub.
type Event string

// Handler receives the payload emitted for an event.
type Handler func(payload any)

// Token identifies one subscription for later removal.
type Token struct {
	event Event
	id    uint64
}

type entry struct {
	id uint64
	fn Handler
}

// Hub maps event names to ordered handler lists. The zero value is not
// usable; create one with NewHub.
type Hub struct {
	mu       sync.Mutex
	seq      uint64
	logger   *xlog.Logger
	handlers map[Event][]entry
}

func NewHub() *Hub {
	return &Hub{
		logger:   xlog.Default(),
		handlers: map[Event][]entry{},
	}
}

// Subscribe registers fn for event and returns a token for Unsubscribe.
func (h *Hub) Subscribe(event Event, fn Handler) Token {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seq++
	h.handlers[event] = append(h.handlers[event], entry{id: h.seq, fn: fn})
	return Token{event: event, id: h.seq}
}

// Unsubscribe removes the subscription named by token. Unknown tokens are
// ignored.
func (h *Hub) Unsubscribe(token Token) {
	h.mu.Lock()
	defer h.mu.Unlock()
	list := h.handlers[token.event]
	for i, e := range list {
		if e.id == token.id {
			h.handlers[token.event] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

// Emit invokes every handler registered for event, in subscription order.
// Emitting an event nobody subscribed to is a no-op.
func (h *Hub) Emit(event Event, payload any) {
	h.mu.Lock()
	list := make([]entry, len(h.handlers[event]))
	copy(list, h.handlers[event])
	h.mu.Unlock()
	if len(list) == 0 {
		return
	}
	h.logger.Debug("emit", xlog.Event(string(event)))
	for _, e := range list {
		e.fn(payload)
	}
}
