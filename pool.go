package memarena

// Pool is a typed object pool layered on an Arena. Make hands out
// arena-backed objects; Destroy recycles their slots through a LIFO free
// list, so the most recently destroyed slot is reused first. Slots are never
// returned to the arena: pool memory is monotonic in high-water-mark terms.
//
// The pool never freezes, thaws or clears the arena. If the owner does, any
// live or free slots in the dropped generation become invalid.
//
// Not goroutine-safe.
type Pool[T any] struct {
	arena   *Arena
	free    []*T // recycled slots, most recently destroyed last
	release func(*T)
}

// PoolOption configures a Pool.
type PoolOption[T any] func(*Pool[T])

// WithRelease installs a teardown hook run on each object passed to Destroy
// before its slot is recycled.
func WithRelease[T any](f func(*T)) PoolOption[T] {
	return func(p *Pool[T]) { p.release = f }
}

// NewPool creates a Pool drawing slots from a.
func NewPool[T any](a *Arena, opts ...PoolOption[T]) *Pool[T] {
	p := &Pool[T]{arena: a}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Make returns a zero-valued T, reusing the most recently destroyed slot if
// one is free and allocating a new slot from the arena otherwise. A reused
// slot is rewritten with the zero value; no state survives Destroy.
func (p *Pool[T]) Make() *T {
	if n := len(p.free); n > 0 {
		x := p.free[n-1]
		p.free = p.free[:n-1]
		var zero T
		*x = zero
		return x
	}
	return Make[T](p.arena)
}

// MakeFrom is Make with the slot initialized to v.
func (p *Pool[T]) MakeFrom(v T) *T {
	x := p.Make()
	*x = v
	return x
}

// Destroy runs the release hook, if any, and pushes x's slot onto the free
// list. x must be a live object obtained from this pool; destroying it twice
// or destroying a foreign pointer corrupts the free list. Not checked.
func (p *Pool[T]) Destroy(x *T) {
	if p.release != nil {
		p.release(x)
	}
	p.free = append(p.free, x)
}

// FreeLen returns the number of recycled slots awaiting reuse.
func (p *Pool[T]) FreeLen() int { return len(p.free) }
