package memarena

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// ArenaMetrics is a snapshot of arena statistics.
type ArenaMetrics struct {
	Size          int     // bytes handed out in the active generation
	AllocatedSize int     // bytes handed out across both generations
	ReservedSize  int     // total block capacity across both generations
	Remaining     int     // unused capacity of the current block
	ActiveBlocks  int     // blocks in the active generation
	FrozenBlocks  int     // blocks in the frozen generation
	Utilization   float64 // AllocatedSize / ReservedSize, 0 when empty
}

// Metrics returns a snapshot of arena statistics. Returns the zero snapshot
// for a released arena.
func (a *Arena) Metrics() ArenaMetrics {
	if a.released {
		return ArenaMetrics{}
	}
	m := ArenaMetrics{
		Size:          a.Size(),
		AllocatedSize: a.AllocatedSize(),
		ReservedSize:  a.ReservedSize(),
		Remaining:     a.Remaining(),
		ActiveBlocks:  a.ActiveBlocks(),
		FrozenBlocks:  a.FrozenBlocks(),
	}
	if m.ReservedSize > 0 {
		m.Utilization = float64(m.AllocatedSize) / float64(m.ReservedSize)
	}
	return m
}

func (m ArenaMetrics) String() string {
	return fmt.Sprintf("active %s, allocated %s, reserved %s (%d+%d blocks, %.1f%% utilized)",
		humanize.IBytes(uint64(m.Size)),
		humanize.IBytes(uint64(m.AllocatedSize)),
		humanize.IBytes(uint64(m.ReservedSize)),
		m.ActiveBlocks, m.FrozenBlocks, 100*m.Utilization)
}
