// Package rx provides the small observer primitives used to wire
// playback, lock and platform events together.
//
// Handlers run synchronously on the goroutine that calls Emit. In this
// application every emitter runs on the main loop, so handlers never
// race with each other.
package rx

import "sync"

// Event is an ordered list of handlers for values of type T.
// The zero value is ready to use.
type Event[T any] struct {
	mu       sync.Mutex
	handlers []*handler[T]
}

type handler[T any] struct {
	fn    func(T)
	alive bool
}

// Subscribe registers fn and returns a handle that removes it.
func (e *Event[T]) Subscribe(fn func(T)) Subscription {
	h := &handler[T]{fn: fn, alive: true}

	e.mu.Lock()
	e.handlers = append(e.handlers, h)
	e.mu.Unlock()

	return Subscription{cancel: func() { e.remove(h) }}
}

// Emit delivers v to every handler registered before the call.
// A handler removed while the emission is in progress is not called.
func (e *Event[T]) Emit(v T) {
	e.mu.Lock()
	snapshot := make([]*handler[T], len(e.handlers))
	copy(snapshot, e.handlers)
	e.mu.Unlock()

	for _, h := range snapshot {
		e.mu.Lock()
		alive := h.alive
		e.mu.Unlock()
		if alive {
			h.fn(v)
		}
	}
}

// Len returns the number of registered handlers.
func (e *Event[T]) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.handlers)
}

func (e *Event[T]) remove(h *handler[T]) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !h.alive {
		return
	}
	h.alive = false
	for i, cur := range e.handlers {
		if cur == h {
			e.handlers = append(e.handlers[:i], e.handlers[i+1:]...)
			return
		}
	}
}

// Subscription removes a handler from its event.
// The zero value is a no-op.
type Subscription struct {
	cancel func()
}

// Unsubscribe removes the handler. Calling it more than once is safe.
func (s Subscription) Unsubscribe() {
	if s.cancel != nil {
		s.cancel()
	}
}
