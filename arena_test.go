package memarena

import (
	"math/rand"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsLazy(t *testing.T) {
	tests := []struct {
		name string
		hint int
	}{
		{"no hint", 0},
		{"negative hint", -1},
		{"small hint", 64},
		{"large hint", 32000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New(tt.hint)
			require.Zero(t, a.ReservedSize())
			require.Zero(t, a.ActiveBlocks())

			a.Alloc(0)
			require.Equal(t, 1, a.ActiveBlocks())
			require.Zero(t, a.Size())
			if tt.hint > 0 {
				require.GreaterOrEqual(t, a.ReservedSize(), tt.hint)
				require.GreaterOrEqual(t, a.Remaining(), tt.hint)
			} else {
				require.Equal(t, DefaultBlockSize, a.ReservedSize())
			}
		})
	}
}

func TestAllocBasic(t *testing.T) {
	a := New(64)

	s1 := a.Alloc(32)
	s2 := a.Alloc(32)
	require.Len(t, s1, 32)
	require.Len(t, s2, 32)
	require.NotEqual(t, s1.Data(), s2.Data())
	require.Equal(t, 64, a.Size())

	// Both came from the one 64-byte block, back to back.
	require.Equal(t, s1.End(), s2.Data())
	require.Equal(t, 1, a.ActiveBlocks())

	// No room left; the next allocation appends a block and grows the reserve.
	extent := a.ReservedSize()
	s3 := a.Alloc(128)
	require.Len(t, s3, 128)
	require.Greater(t, a.ReservedSize(), extent)
	require.Equal(t, 2, a.ActiveBlocks())
}

func TestAllocZeroLength(t *testing.T) {
	a := New(64)
	s := a.Alloc(0)
	require.NotNil(t, s.Data())
	require.Zero(t, len(s))
	require.Positive(t, cap(s)) // address stays representable without gc-specific slicing
	require.Zero(t, a.Size())

	// The zero-length span sits at the cursor: the next allocation starts there.
	s1 := a.Alloc(16)
	require.Equal(t, s.Data(), s1.Data())
}

func TestAllocNegativePanics(t *testing.T) {
	a := New(0)
	require.Panics(t, func() { a.Alloc(-1) })
	require.Panics(t, func() { a.Require(-1) })
}

func TestAllocContiguity(t *testing.T) {
	a := New(64)
	s := a.Alloc(32)
	s2 := a.Alloc(16)
	s3 := a.Alloc(16)

	require.Equal(t, 64, a.AllocatedSize())
	require.Equal(t, s.End(), s2.Data())
	require.Equal(t, s2.End(), s3.Data())
	require.Equal(t, unsafe.Add(s.Data(), 64), s3.End())
}

func TestAllocNonOverlap(t *testing.T) {
	a := New(0)
	spans := make([]Span, 0, 11)
	spans = append(spans, a.Alloc(4000))
	for n := 100; n <= 1000; n += 100 {
		spans = append(spans, a.Alloc(n))
	}

	// Distinct starts, and writes through one span never bleed into another.
	for i, s := range spans {
		for j := i + 1; j < len(spans); j++ {
			require.NotEqual(t, s.Data(), spans[j].Data())
		}
		for k := range s {
			s[k] = byte(i + 1)
		}
	}
	for i, s := range spans {
		for _, c := range s {
			require.Equal(t, byte(i+1), c)
		}
	}
}

func TestGrowthBounds(t *testing.T) {
	// Large requests get near-exactly sized blocks, so the reserve stays
	// under twice the cumulative request bytes.
	const init = 32000
	a := New(init)

	m1 := a.Alloc(init - 64)
	m2 := a.Alloc(init)
	m3 := a.Alloc(2 * init)

	sum := (init - 64) + init + 2*init
	require.Greater(t, a.ReservedSize(), sum)
	require.Less(t, a.ReservedSize(), 2*sum)

	// The memory is really there.
	for i := range m1 {
		m1[i] = 0xa5
	}
	for i := range m2 {
		m2[i] = 0xc2
	}
	for i := range m3 {
		m3[i] = 0x56
	}
	for _, c := range m1 {
		require.EqualValues(t, 0xa5, c)
	}
	for _, c := range m2 {
		require.EqualValues(t, 0xc2, c)
	}
	for _, c := range m3 {
		require.EqualValues(t, 0x56, c)
	}
}

func TestContains(t *testing.T) {
	a := New(256)
	s := a.Alloc(56)
	ptr := s.Data()

	require.True(t, a.Contains(ptr))
	// Inside the block's unallocated tail still counts: the range is owned.
	require.True(t, a.Contains(unsafe.Add(ptr, 100)))
	require.False(t, a.Contains(unsafe.Add(ptr, 300)))
	require.False(t, a.Contains(unsafe.Add(ptr, -1)))

	a.Freeze(128)
	require.True(t, a.Contains(ptr))
	require.True(t, a.Contains(unsafe.Add(ptr, 100)))

	s2 := a.Alloc(10)
	ptr2 := s2.Data()
	require.True(t, a.Contains(ptr))
	require.True(t, a.Contains(ptr2))
	require.Equal(t, 56+10, a.AllocatedSize())

	a.Thaw()
	require.False(t, a.Contains(ptr))
	require.True(t, a.Contains(ptr2))
}

func TestContainsBlockBoundaries(t *testing.T) {
	a := New(64)
	s := a.Alloc(64)
	require.True(t, a.Contains(s.Data()))
	require.True(t, a.Contains(unsafe.Add(s.Data(), 63)))
	require.False(t, a.Contains(s.End())) // one past the end
}

func TestMoveFrom(t *testing.T) {
	src := New(512)
	s := src.Alloc(128)
	require.True(t, src.Contains(s.Data()))

	dst := New(0)
	dst.MoveFrom(src)

	require.True(t, dst.Contains(s.Data()))
	require.Equal(t, 128, dst.Size())
	require.GreaterOrEqual(t, dst.Remaining(), 384)

	// Source owns nothing but stays usable.
	require.False(t, src.Contains(s.Data()))
	require.Zero(t, src.ReservedSize())
	src.Alloc(16)
	require.Equal(t, 16, src.Size())
}

func TestMoveFromSelf(t *testing.T) {
	a := New(64)
	s := a.Alloc(32)
	a.MoveFrom(a)
	require.True(t, a.Contains(s.Data()))
	require.Equal(t, 32, a.Size())
}

func TestClear(t *testing.T) {
	a := New(64)
	a.Alloc(32)
	a.Freeze(0)
	a.Alloc(48)
	a.Clear()

	require.Zero(t, a.Size())
	require.Zero(t, a.AllocatedSize())
	require.Zero(t, a.ReservedSize())
	require.Zero(t, a.ActiveBlocks())
	require.Zero(t, a.FrozenBlocks())

	// Usable again, with the construction hint back in force.
	a.Alloc(0)
	require.Equal(t, 64, a.ReservedSize())
}

func TestUseAfterReleasePanics(t *testing.T) {
	a := New(0)
	a.Alloc(16)
	a.Release()
	a.Release() // idempotent

	require.Panics(t, func() { a.Alloc(1) })
	require.Panics(t, func() { a.Require(1) })
	require.Panics(t, func() { a.Freeze(0) })
	require.Panics(t, func() { a.Clear() })
}

func TestSelfContained(t *testing.T) {
	a := NewSelfContained(0)

	// The handle itself lives in arena-owned memory.
	require.True(t, a.Contains(unsafe.Pointer(a)))

	// Fill a few generations of string data and check nothing is corrupted.
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789/."
	r := rand.New(rand.NewSource(1))
	var spans []Span
	var want []string
	for i := 0; i < 50; i++ {
		n := 6 + r.Intn(507)
		buf := make([]byte, n)
		for k := range buf {
			buf[k] = chars[r.Intn(len(chars))]
		}
		s := a.Alloc(n)
		copy(s, buf)
		spans = append(spans, s)
		want = append(want, string(buf))
	}
	for i, s := range spans {
		require.Equal(t, want[i], string(s))
	}

	a.Release()
	assert.Panics(t, func() { a.Alloc(1) })
}
