package memarena

import "unsafe"

// Make allocates storage for a T from the arena, aligned for T, and returns
// a pointer to a zero-valued T constructed in place. The object is not
// tracked: its memory is reclaimed with its generation, so run any needed
// teardown before Thaw, Clear or Release drops the owning block.
func Make[T any](a *Arena) *T {
	var zero T
	p := (*T)(a.allocAligned(int(unsafe.Sizeof(zero)), int(unsafe.Alignof(zero))))
	*p = zero
	return p
}

// MakeFrom constructs a T in the arena initialized to v. Value initialization
// stands in for constructor arguments: build the value, then place it.
func MakeFrom[T any](a *Arena, v T) *T {
	p := (*T)(a.allocAligned(int(unsafe.Sizeof(v)), int(unsafe.Alignof(v))))
	*p = v
	return p
}

// MakeSlice allocates a slice of n elements of T inside the arena, aligned
// for T. The elements are not zeroed; the bytes may carry earlier remnant
// writes. Returns nil if n <= 0.
func MakeSlice[T any](a *Arena, n int) []T {
	if n <= 0 {
		return nil
	}
	var zero T
	size := int(unsafe.Sizeof(zero))
	p := a.allocAligned(size*n, int(unsafe.Alignof(zero)))
	return unsafe.Slice((*T)(p), n)
}

// MakeSliceZeroed allocates a slice of n elements of T with zeroed memory.
func MakeSliceZeroed[T any](a *Arena, n int) []T {
	s := MakeSlice[T](a, n)
	clear(s)
	return s
}
