package rx

import "sync"

// Value holds a current value and notifies on change.
type Value[T comparable] struct {
	mu      sync.Mutex
	current T
	changes Event[T]
}

// NewValue returns a Value initialized to v.
func NewValue[T comparable](v T) *Value[T] {
	return &Value[T]{current: v}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

// Set stores x and emits it if it differs from the current value.
func (v *Value[T]) Set(x T) {
	v.mu.Lock()
	if v.current == x {
		v.mu.Unlock()
		return
	}
	v.current = x
	v.mu.Unlock()

	v.changes.Emit(x)
}

// Changes returns the event fired on every change.
func (v *Value[T]) Changes() *Event[T] {
	return &v.changes
}

// Watch calls fn with the current value, then on every change.
func (v *Value[T]) Watch(fn func(T)) Subscription {
	sub := v.changes.Subscribe(fn)
	fn(v.Get())
	return sub
}

// Distinct remembers the last accepted value.
type Distinct[T comparable] struct {
	last T
	has  bool
}

// Changed reports whether x differs from the last accepted value,
// accepting it when it does. The first call always returns true.
func (d *Distinct[T]) Changed(x T) bool {
	if d.has && d.last == x {
		return false
	}
	d.last = x
	d.has = true
	return true
}

// Reset forgets the last accepted value.
func (d *Distinct[T]) Reset() {
	var zero T
	d.last = zero
	d.has = false
}
