package rx

import "sync"

// Lifetime owns a set of subscriptions released together.
// A destroyed lifetime can be reused.
type Lifetime struct {
	mu   sync.Mutex
	subs []Subscription
}

// Add attaches s to the lifetime.
func (l *Lifetime) Add(s Subscription) {
	l.mu.Lock()
	l.subs = append(l.subs, s)
	l.mu.Unlock()
}

// Destroy unsubscribes everything in insertion order.
func (l *Lifetime) Destroy() {
	l.mu.Lock()
	subs := l.subs
	l.subs = nil
	l.mu.Unlock()

	for _, s := range subs {
		s.Unsubscribe()
	}
}

// Len returns the number of held subscriptions.
func (l *Lifetime) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.subs)
}
