package observable

import "sync"

// Counter is a change signal: every write to a backing store bumps it so
// that live queries re-run.
type Counter struct {
	*Value[uint64]
}

// NewCounter returns a Counter starting at zero.
func NewCounter() *Counter {
	return &Counter{Value: NewValue[uint64](0)}
}

// Bump signals a change to every follower.
func (c *Counter) Bump() {
	c.Update(func(n uint64) uint64 { return n + 1 })
}

// Live is a Value kept in sync with a query that re-runs on every change of
// its source Counter.
type Live[T any] struct {
	*Value[T]

	once   sync.Once
	cancel func()
}

// NewLive runs load immediately and again after each change of src. When
// load fails, onErr (if set) is called and the value falls back to fallback.
func NewLive[T any](src *Counter, fallback T, load func() (T, error), onErr func(error)) *Live[T] {
	l := &Live[T]{Value: NewValue(fallback)}

	l.cancel = src.Subscribe(func(uint64) {
		v, err := load()
		if err != nil {
			if onErr != nil {
				onErr(err)
			}
			v = fallback
		}
		l.Set(v)
	})

	return l
}

// Close stops following the source. Subscribers keep the last value.
func (l *Live[T]) Close() {
	l.once.Do(l.cancel)
}
