package arrangement

// Lazy is a value computed on first use that can be dropped again. It is not
// safe for concurrent use.
type Lazy[T any] struct {
	value T
	valid bool
}

// Get returns the cached value, calling load to fill the cache when it is
// empty. A failed load leaves the cache empty.
func (l *Lazy[T]) Get(load func() (T, error)) (T, error) {
	if l.valid {
		return l.value, nil
	}
	v, err := load()
	if err != nil {
		var zero T
		return zero, err
	}
	l.value, l.valid = v, true
	return v, nil
}

// Peek returns the cached value without loading it.
func (l *Lazy[T]) Peek() (T, bool) {
	return l.value, l.valid
}

// Set fills the cache with v.
func (l *Lazy[T]) Set(v T) {
	l.value, l.valid = v, true
}

// Clear empties the cache.
func (l *Lazy[T]) Clear() {
	var zero T
	l.value, l.valid = zero, false
}
