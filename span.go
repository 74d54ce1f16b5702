package memarena

import "unsafe"

// Span is a view of raw arena memory. It behaves as an ordinary byte slice;
// Data and End expose the underlying address range for containment checks
// and Rebind reinterprets the same bytes as typed storage.
//
// A Span stays valid until the block backing it is released by Thaw (if its
// generation was frozen), Clear or Release.
type Span []byte

// Data returns the address of the first byte. For a zero-length Span this is
// the position the bytes would occupy; it must not be dereferenced. Spans
// handed out by the arena carry spare capacity whenever the block has any,
// so the address is well defined; a zero-capacity Span (cut from an exactly
// full block) falls back to the slice header's stored pointer, which the gc
// toolchain preserves.
func (s Span) Data() unsafe.Pointer {
	if cap(s) > 0 {
		return unsafe.Pointer(&s[:1][0])
	}
	return unsafe.Pointer(unsafe.SliceData(s))
}

// End returns the address one past the last byte.
func (s Span) End() unsafe.Pointer {
	return unsafe.Add(s.Data(), len(s))
}

// Rebind reinterprets the span's bytes as a slice of T without copying. The
// result holds len(s)/sizeof(T) elements; trailing bytes that do not fill a
// whole element are dropped. The caller must ensure the span was allocated
// with T's alignment (spans from Make and MakeSlice are; raw Alloc spans are
// only byte-aligned).
func Rebind[T any](s Span) []T {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size == 0 || len(s) < size {
		return nil
	}
	return unsafe.Slice((*T)(s.Data()), len(s)/size)
}
