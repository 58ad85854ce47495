// Package memo provides compute-once-per-process memoization for the data
// loaders. A value is computed on first access and shared read-only by every
// caller afterward; there is no invalidation, sources are static for the
// process lifetime.
package memo

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// Memo caches the result of a single loader function. Concurrent first calls
// are collapsed by a single-flight guard so the loader runs at most once;
// a failed load is not cached and the next call retries.
type Memo[T any] struct {
	fn    func() (T, error)
	group singleflight.Group

	mu   sync.RWMutex
	done bool
	val  T
}

// New wraps a loader function in a Memo.
func New[T any](fn func() (T, error)) *Memo[T] {
	return &Memo[T]{fn: fn}
}

// Get returns the cached value, computing it on first call.
func (m *Memo[T]) Get() (T, error) {
	m.mu.RLock()
	if m.done {
		v := m.val
		m.mu.RUnlock()
		return v, nil
	}
	m.mu.RUnlock()

	v, err, _ := m.group.Do("", func() (any, error) {
		m.mu.RLock()
		if m.done {
			v := m.val
			m.mu.RUnlock()
			return v, nil
		}
		m.mu.RUnlock()

		val, err := m.fn()
		if err != nil {
			return nil, err
		}

		m.mu.Lock()
		m.val = val
		m.done = true
		m.mu.Unlock()
		return val, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
