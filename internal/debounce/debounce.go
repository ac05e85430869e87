// Package debounce coalesces bursts of values into one trailing call.
package debounce

import (
	"sync"
	"time"
)

// DefaultDelay is the quiet period used for colour picker updates
const DefaultDelay = 100 * time.Millisecond

// Debouncer delivers the last value pushed once no new value has arrived
// for the configured delay. It has no dependency on any UI layer.
type Debouncer[T any] struct {
	mu      sync.Mutex
	delay   time.Duration
	fn      func(T)
	timer   *time.Timer
	value   T
	pending bool
	gen     uint64
	stopped bool
}

// New creates a Debouncer that calls fn with the trailing value of each burst.
func New[T any](delay time.Duration, fn func(T)) *Debouncer[T] {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer[T]{delay: delay, fn: fn}
}

// Push records v and restarts the quiet period.
func (d *Debouncer[T]) Push(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.value = v
	d.pending = true
	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

func (d *Debouncer[T]) fire(gen uint64) {
	d.mu.Lock()
	if !d.pending || gen != d.gen {
		d.mu.Unlock()
		return
	}
	v := d.take()
	d.mu.Unlock()
	d.fn(v)
}

// take clears the pending value. Caller holds mu.
func (d *Debouncer[T]) take() T {
	v := d.value
	var zero T
	d.value = zero
	d.pending = false
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	return v
}

// Flush delivers a pending value immediately, on the caller's goroutine.
// It reports whether there was one.
func (d *Debouncer[T]) Flush() bool {
	d.mu.Lock()
	if !d.pending {
		d.mu.Unlock()
		return false
	}
	v := d.take()
	d.mu.Unlock()
	d.fn(v)
	return true
}

// Pending reports whether a value is waiting to be delivered.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Peek returns the value waiting to be delivered, if any, without
// delivering it.
func (d *Debouncer[T]) Peek() (T, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.value, d.pending
}

// Stop discards any pending value and ignores later pushes.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	d.take()
}
