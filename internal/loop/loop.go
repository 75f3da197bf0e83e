// Package loop runs posted tasks one at a time on a single goroutine.
package loop

import (
	"context"
	"sync"
	"time"
)

const queueSize = 256

// Loop is a FIFO task queue drained by Run.
type Loop struct {
	tasks chan func()
	done  chan struct{}
	once  sync.Once
}

// New creates a loop. Call Run to start processing.
func New() *Loop {
	return &Loop{
		tasks: make(chan func(), queueSize),
		done:  make(chan struct{}),
	}
}

// Post queues fn for execution on the loop goroutine.
// Tasks posted after Stop are dropped.
func (l *Loop) Post(fn func()) {
	select {
	case <-l.done:
		return
	default:
	}
	select {
	case l.tasks <- fn:
	case <-l.done:
	}
}

// Run executes tasks until ctx is cancelled or Stop is called.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			l.Stop()
			return ctx.Err()
		case <-l.done:
			return nil
		case fn := <-l.tasks:
			fn()
		}
	}
}

// Stop makes Run return. Safe to call more than once.
func (l *Loop) Stop() {
	l.once.Do(func() { close(l.done) })
}

// Done is closed once the loop is stopped.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Every posts fn to the loop every d until the returned func is called
// or the loop stops.
func (l *Loop) Every(d time.Duration, fn func()) (stop func()) {
	ticker := time.NewTicker(d)
	quit := make(chan struct{})
	var once sync.Once

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				l.Post(fn)
			case <-quit:
				return
			case <-l.done:
				return
			}
		}
	}()

	return func() { once.Do(func() { close(quit) }) }
}
