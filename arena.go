package memarena

import "unsafe"

// DefaultBlockSize is the block capacity used when neither a construction
// hint nor the growth policy asks for more (4 KiB).
const DefaultBlockSize = 1 << 12

// block is a single contiguous memory extent. Its backing storage never
// moves or grows; used only advances.
type block struct {
	buf  []byte
	used int
}

func (b *block) remaining() int { return len(b.buf) - b.used }

func (b *block) contains(p unsafe.Pointer) bool {
	start := uintptr(unsafe.Pointer(unsafe.SliceData(b.buf)))
	return uintptr(p) >= start && uintptr(p) < start+uintptr(len(b.buf))
}

// Arena is a generational bump allocator. It owns an active block chain
// (allocations since the last Freeze) and at most one frozen chain (the
// generations sealed by Freeze and not yet dropped by Thaw).
//
// Not goroutine-safe; see SafeArena.
type Arena struct {
	active []*block // newest last; the last block is the allocation target
	frozen []*block

	hint     int // construction hint, restored by Clear
	nextSize int // capacity for the next materialized block; 0 means policy default
	released bool
}

// New creates an Arena. The first block is not reserved until the first
// Alloc or Require; after that ReservedSize() >= hint. A hint <= 0 selects
// DefaultBlockSize.
func New(hint int) *Arena {
	if hint < 0 {
		hint = 0
	}
	return &Arena{hint: hint, nextSize: hint}
}

// NewSelfContained creates an Arena whose own bookkeeping lives inside its
// first block. The instance has no owner besides the caller: call Release to
// drop its memory, and do not touch the arena afterwards.
func NewSelfContained(hint int) *Arena {
	boot := Arena{hint: hint, nextSize: hint}
	a := Make[Arena](&boot)
	*a = boot
	return a
}

func (a *Arena) current() *block {
	if len(a.active) == 0 {
		return nil
	}
	return a.active[len(a.active)-1]
}

// grow appends a fresh block sized by the growth policy and makes it
// current. The new capacity is the pending size hint or DefaultBlockSize,
// raised to the active chain's total reserve so that block transitions
// become geometrically rarer; a request at or above that target gets a block
// of exactly the request size, keeping the reserve below twice the
// cumulative request bytes even for huge requests.
func (a *Arena) grow(n int) *block {
	// A current block with nothing committed cannot satisfy n, so replace it
	// rather than retain it: speculative Require sequences would otherwise
	// stack empty blocks and compound the geometric term against them.
	if c := a.current(); c != nil && c.used == 0 {
		a.active = a.active[:len(a.active)-1]
	}
	size := a.nextSize
	if size <= 0 {
		size = DefaultBlockSize
	}
	if r := reserveOf(a.active); r > size {
		size = r
	}
	if n >= size {
		size = n
	}
	a.nextSize = 0
	b := &block{buf: make([]byte, size)}
	a.active = append(a.active, b)
	return b
}

// Alloc returns a Span of n bytes from the active generation. A request for
// 0 bytes succeeds, consumes no capacity and returns a zero-length Span at
// the current cursor. Raw spans are byte-aligned; use Make or MakeSlice for
// typed storage.
//
// Panics if n is negative or the arena has been released. Failure to obtain
// backing storage for a new block surfaces as the runtime's allocation
// panic.
func (a *Arena) Alloc(n int) Span {
	a.panicIfReleased()
	if n < 0 {
		panic("memarena: negative allocation size")
	}
	c := a.current()
	if c == nil || c.remaining() < n {
		c = a.grow(n)
	}
	if n == 0 {
		// Zero-length handle at the cursor. Capacity running to the block end
		// keeps the address representable without committing any bytes.
		return Span(c.buf[c.used:c.used:len(c.buf)])
	}
	s := c.buf[c.used : c.used+n : c.used+n]
	c.used += n
	return Span(s)
}

// allocAligned hands out n bytes aligned to align, counting any alignment
// padding as used. A fresh block's base is word-aligned, so offset 0
// satisfies every natural Go alignment.
func (a *Arena) allocAligned(n, align int) unsafe.Pointer {
	a.panicIfReleased()
	if c := a.current(); c != nil {
		off := (c.used + align - 1) &^ (align - 1)
		if off+n <= len(c.buf) {
			c.used = off + n
			return unsafe.Add(unsafe.Pointer(unsafe.SliceData(c.buf)), off)
		}
	}
	c := a.grow(n)
	c.used = n
	return unsafe.Pointer(unsafe.SliceData(c.buf))
}

// Require ensures the current block has at least n bytes remaining, growing
// exactly as Alloc would, but commits nothing. A no-op when the space is
// already there. A following Alloc(k) with k <= n is satisfied from the same
// block without growth. A current block with no committed bytes is replaced
// rather than retained, so repeated speculation holds one reservation at a
// time.
func (a *Arena) Require(n int) {
	a.panicIfReleased()
	if n < 0 {
		panic("memarena: negative allocation size")
	}
	if c := a.current(); c == nil || c.remaining() < n {
		a.grow(n)
	}
}

// Remnant returns the unused tail of the current block: the bytes between
// the cursor and the block's capacity. Writing into the remnant and then
// committing with Alloc yields the same bytes. Returns an empty Span when no
// block has been materialized.
func (a *Arena) Remnant() Span {
	a.panicIfReleased()
	c := a.current()
	if c == nil {
		return nil
	}
	return Span(c.buf[c.used:len(c.buf):len(c.buf)])
}

// Freeze seals the active generation. Its blocks stay valid and addressable
// and keep counting toward AllocatedSize and ReservedSize, but Size drops to
// zero and new allocations go to a fresh chain. If a frozen generation
// already exists the sealed chain is appended to it; both are dropped
// together by the next Thaw.
//
// The next block materializes with capacity hint if hint > 0, else at the
// scale the sealed chain had reached, so repeated freeze/alloc/thaw cycles
// do not under-size each new generation.
func (a *Arena) Freeze(hint int) {
	a.panicIfReleased()
	next := hint
	if next <= 0 {
		next = reserveOf(a.active)
	}
	a.frozen = append(a.frozen, a.active...)
	a.active = nil
	a.nextSize = next
}

// Thaw drops every frozen block. The active generation is unaffected. A
// no-op when nothing is frozen.
func (a *Arena) Thaw() {
	a.panicIfReleased()
	a.frozen = nil
}

// Clear drops both generations, leaving the arena as freshly constructed
// with its original hint. Previously returned spans become invalid.
func (a *Arena) Clear() {
	a.panicIfReleased()
	a.active = nil
	a.frozen = nil
	a.nextSize = a.hint
}

// Contains reports whether p lies within the capacity range of any block in
// either generation. A pointer into the unallocated tail of a block counts:
// the range is owned and stable even before it is handed out. One past the
// end of a block does not count.
func (a *Arena) Contains(p unsafe.Pointer) bool {
	for _, b := range a.active {
		if b.contains(p) {
			return true
		}
	}
	for _, b := range a.frozen {
		if b.contains(p) {
			return true
		}
	}
	return false
}

// MoveFrom transfers ownership of src's block chains to a in constant time.
// No block is copied and every span handed out by src stays valid. src is
// left owning nothing, equivalent to a cleared arena. Any blocks a owned
// before the move are dropped.
func (a *Arena) MoveFrom(src *Arena) {
	a.panicIfReleased()
	src.panicIfReleased()
	if a == src {
		return
	}
	a.active, a.frozen = src.active, src.frozen
	a.hint, a.nextSize = src.hint, src.nextSize
	src.active, src.frozen = nil, nil
	src.nextSize = src.hint
}

// Release drops every block and makes the arena unusable; subsequent
// operations panic. For a self-contained arena the first active block backs
// the Arena header itself, so it is dropped after every other block; the
// header must not be used once Release returns.
func (a *Arena) Release() {
	if a.released {
		return
	}
	a.frozen = nil
	blocks := a.active
	a.active = nil
	a.released = true
	for i := len(blocks) - 1; i > 0; i-- {
		blocks[i] = nil
	}
}

// Size returns the bytes handed out in the active generation.
func (a *Arena) Size() int { return usedOf(a.active) }

// AllocatedSize returns the bytes handed out in the active and frozen
// generations together.
func (a *Arena) AllocatedSize() int { return usedOf(a.active) + usedOf(a.frozen) }

// ReservedSize returns the total capacity of every block in either
// generation.
func (a *Arena) ReservedSize() int { return reserveOf(a.active) + reserveOf(a.frozen) }

// Remaining returns the unused capacity of the current block, or 0 when no
// block has been materialized.
func (a *Arena) Remaining() int {
	if c := a.current(); c != nil {
		return c.remaining()
	}
	return 0
}

// ActiveBlocks returns the number of blocks in the active generation.
func (a *Arena) ActiveBlocks() int { return len(a.active) }

// FrozenBlocks returns the number of blocks in the frozen generation.
func (a *Arena) FrozenBlocks() int { return len(a.frozen) }

func (a *Arena) panicIfReleased() {
	if a.released {
		panic("memarena: use after Release()")
	}
}

func usedOf(blocks []*block) int {
	sum := 0
	for _, b := range blocks {
		sum += b.used
	}
	return sum
}

func reserveOf(blocks []*block) int {
	sum := 0
	for _, b := range blocks {
		sum += len(b.buf)
	}
	return sum
}
