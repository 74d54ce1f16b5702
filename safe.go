package memarena

import (
	"sync"
	"unsafe"
)

// SafeArena is a mutex-protected wrapper around Arena. The arena itself
// stays unsynchronized; this is the external mutual exclusion an owning
// system provides when several goroutines must share one arena.
type SafeArena struct {
	mu sync.Mutex
	a  *Arena
}

// NewSafeArena creates a thread-safe arena with the given capacity hint.
func NewSafeArena(hint int) *SafeArena {
	return &SafeArena{a: New(hint)}
}

// Alloc thread-safely allocates n bytes.
func (s *SafeArena) Alloc(n int) Span {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Alloc(n)
}

// Freeze thread-safely seals the active generation.
func (s *SafeArena) Freeze(hint int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Freeze(hint)
}

// Thaw thread-safely drops the frozen generation.
func (s *SafeArena) Thaw() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Thaw()
}

// Clear thread-safely drops both generations.
func (s *SafeArena) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Clear()
}

// Contains thread-safely reports whether p lies in arena-owned memory.
func (s *SafeArena) Contains(p unsafe.Pointer) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Contains(p)
}

// Metrics thread-safely returns a snapshot of arena statistics. Suitable as
// a Collector source.
func (s *SafeArena) Metrics() ArenaMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Metrics()
}

// Release thread-safely drops every block and makes the arena unusable.
func (s *SafeArena) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Release()
}

// SafeMake thread-safely constructs a zero-valued T in the arena.
func SafeMake[T any](s *SafeArena) *T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Make[T](s.a)
}

// SafeMakeFrom thread-safely constructs a T in the arena initialized to v.
func SafeMakeFrom[T any](s *SafeArena, v T) *T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return MakeFrom[T](s.a, v)
}
