// Package observable provides push-based observable values and live queries
// used by client controllers and local stores.
//
// A Value holds the latest state and notifies subscribers synchronously on
// every Set. A subscriber always receives the current value first, so a
// late subscriber never misses the latest state.
package observable

import "sync"

// Value is a thread-safe observable holder of T.
//
// Subscriber callbacks run on the goroutine that calls Set and must not call
// Set on the same Value.
type Value[T any] struct {
	// notifyMu serializes Set and Subscribe so that registration and
	// notification never interleave.
	notifyMu sync.Mutex

	mu     sync.RWMutex
	v      T
	subs   map[uint64]func(T)
	nextID uint64
}

// NewValue creates a Value initialized to initial.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{v: initial, subs: make(map[uint64]func(T))}
}

// Get returns the current value.
func (o *Value[T]) Get() T {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.v
}

// Set stores v and notifies every current subscriber before returning.
func (o *Value[T]) Set(v T) {
	o.notifyMu.Lock()
	defer o.notifyMu.Unlock()
	o.publish(v)
}

// Update applies fn to the current value and publishes the result
// atomically with respect to other writers.
func (o *Value[T]) Update(fn func(T) T) {
	o.notifyMu.Lock()
	defer o.notifyMu.Unlock()
	o.publish(fn(o.Get()))
}

// publish must be called with notifyMu held.
func (o *Value[T]) publish(v T) {
	o.mu.Lock()
	o.v = v
	subs := make([]func(T), 0, len(o.subs))
	for _, fn := range o.subs {
		subs = append(subs, fn)
	}
	o.mu.Unlock()

	for _, fn := range subs {
		fn(v)
	}
}

// Subscribe registers fn and immediately calls it with the current value.
// The returned cancel function unregisters fn; it is safe to call twice.
func (o *Value[T]) Subscribe(fn func(T)) (cancel func()) {
	o.notifyMu.Lock()
	defer o.notifyMu.Unlock()

	o.mu.Lock()
	id := o.nextID
	o.nextID++
	o.subs[id] = fn
	current := o.v
	o.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			o.mu.Lock()
			delete(o.subs, id)
			o.mu.Unlock()
		})
	}
}

// Subscribers reports how many callbacks are registered.
func (o *Value[T]) Subscribers() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.subs)
}
