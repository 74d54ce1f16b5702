// Package memarena implements a generational memory arena: a chunked bump
// allocator whose memory is reclaimed by generation rather than per
// allocation.
//
// # Overview
//
// An arena hands out slices of pre-reserved memory blocks. Allocation is a
// cursor bump; there is no per-allocation free. Instead the arena supports a
// freeze/thaw cycle:
//
//   - Freeze seals everything allocated so far into a frozen generation.
//     The memory stays valid and addressable while new allocations proceed
//     into a fresh generation.
//   - Thaw releases the frozen generation in one operation.
//   - Clear releases everything and returns the arena to its freshly
//     constructed state.
//
// This suits workloads that build a new snapshot of some structure while the
// previous snapshot is still being read: allocate the new version, freeze,
// build the next one, thaw.
//
// # Basic Usage
//
//	a := memarena.New(0)
//
//	span := a.Alloc(1024)            // raw bytes
//	thing := memarena.Make[Thing](a) // typed, zeroed
//
//	a.Freeze(0) // seal current generation, keep it addressable
//	// ... allocate the next generation ...
//	a.Thaw()    // drop the sealed generation
//
// # Speculative Allocation
//
// Require reserves capacity without committing it and Remnant exposes the
// unused tail of the current block, so a caller can write first and commit
// only the bytes it kept:
//
//	a.Require(n)
//	buf := a.Remnant()
//	k := produce(buf[:n])
//	committed := a.Alloc(k) // same bytes, no growth
//
// # Size Accounting
//
// Three sizes are tracked and must not be conflated: Size counts bytes
// handed out in the active generation, AllocatedSize additionally counts the
// frozen generation, and ReservedSize counts the capacity of every block in
// either generation. Size <= AllocatedSize <= ReservedSize always holds.
//
// # Thread Safety
//
// Arena and Pool are single-owner and perform no locking. Wrap an arena in
// SafeArena when several goroutines must share one, or give each goroutine
// its own arena.
//
// # Pointers
//
// Block storage is untyped bytes, so the garbage collector does not scan it.
// Values placed in the arena with Make, MakeFrom or MakeSlice must not hold
// the only reference to a garbage-collected object.
package memarena
