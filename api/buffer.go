// Package api
// Author: momentics
//
// Fixed-capacity, item-indexed memory regions for the minibatch pipeline.
//
// A Buffer is never reallocated once loader.New has provisioned it: its
// capacity is sized for the worst-case batch up front. It has two access
// modes: appended (a writer grows it, recording each item's offset and
// length) and sliced (a reader asks for item i and gets back a view).

package api

// Buffer is a contiguous, fixed-capacity byte region plus an item index.
type Buffer interface {
	// Data returns the full backing region (len == Cap()).
	Data() []byte

	// Cap returns the fixed capacity provisioned at construction time.
	Cap() int

	// Count returns how many items have been recorded since the last Reset.
	Count() int

	// AppendItem copies p into the region at the current write cursor and
	// records its offset/length as item Count(). Returns the new item's
	// slot index, or ok=false if there is no room left (either the item
	// index or the byte region is exhausted).
	AppendItem(p []byte) (slot int, ok bool)

	// Item returns the recorded offset/length view for item i, or
	// ok=false if i is out of [0, Count()).
	Item(i int) (view []byte, ok bool)

	// Reset clears the item index and write cursor for reuse; the
	// underlying region is not zeroed or reallocated.
	Reset()

	// NUMANode returns the NUMA node this region was allocated from, or
	// -1 if no preference was requested.
	NUMANode() int

	// Pinned reports whether the region is page-locked for DMA.
	Pinned() bool
}

// BufferPoolStats is a point-in-time occupancy snapshot of one BufferPool
// plus wait times and a batch count summed over recent timing samples.
type BufferPoolStats struct {
	Occupied      int
	WaitNonEmpty  int64
	WaitNonFull   int64
	BatchesPassed int64
}
