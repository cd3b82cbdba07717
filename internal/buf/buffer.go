// File: internal/buf/buffer.go
// Author: momentics <momentics@gmail.com>
//
// Buffer is a fixed-capacity byte region with an item offset/length index.
// Grounded on the original loader's Buffer<char> (getItem), generalized
// from char-sized items to arbitrary byte spans. Capacity is provisioned
// once by the pool that owns it and is never reallocated; Reset only
// rewinds the write cursor and item count for the next batch.

package buf

import "github.com/momentics/mbloader/api"

// Buffer implements api.Buffer.
type Buffer struct {
	region   []byte
	written  int
	offsets  []int32
	lengths  []int32
	count    int
	numaNode int
	pinned   bool
}

var _ api.Buffer = (*Buffer)(nil)

// New allocates a Buffer over region, indexed for up to maxItems items.
// region's capacity is fixed for the Buffer's lifetime; it is supplied by
// the caller (see pool.RegionAllocator) rather than allocated here.
func New(region []byte, maxItems int, numaNode int, pinned bool) *Buffer {
	return &Buffer{
		region:   region,
		offsets:  make([]int32, maxItems),
		lengths:  make([]int32, maxItems),
		numaNode: numaNode,
		pinned:   pinned,
	}
}

func (b *Buffer) Data() []byte { return b.region }
func (b *Buffer) Cap() int     { return len(b.region) }
func (b *Buffer) Count() int   { return b.count }
func (b *Buffer) NUMANode() int { return b.numaNode }
func (b *Buffer) Pinned() bool  { return b.pinned }

// AppendItem copies p into the region at the current write cursor.
func (b *Buffer) AppendItem(p []byte) (int, bool) {
	if b.count >= len(b.offsets) {
		return -1, false
	}
	if b.written+len(p) > len(b.region) {
		return -1, false
	}
	start := b.written
	copy(b.region[start:], p)
	b.offsets[b.count] = int32(start)
	b.lengths[b.count] = int32(len(p))
	b.written += len(p)
	slot := b.count
	b.count++
	return slot, true
}

// Item returns the view recorded for item i.
func (b *Buffer) Item(i int) ([]byte, bool) {
	if i < 0 || i >= b.count {
		return nil, false
	}
	start := b.offsets[i]
	end := start + b.lengths[i]
	return b.region[start:end], true
}

// Reset rewinds the buffer for reuse; the backing region is not cleared.
func (b *Buffer) Reset() {
	b.written = 0
	b.count = 0
}

// MarkDense populates the item index for n items of uniform itemSize bytes,
// already written into the region by direct offset arithmetic rather than
// AppendItem (the decode workers' hot path). Panics if n exceeds the item
// index capacity or n*itemSize exceeds the region.
func (b *Buffer) MarkDense(n, itemSize int) {
	if n > len(b.offsets) {
		panic("buf: MarkDense item count exceeds index capacity")
	}
	if n*itemSize > len(b.region) {
		panic("buf: MarkDense size exceeds region capacity")
	}
	for i := 0; i < n; i++ {
		b.offsets[i] = int32(i * itemSize)
		b.lengths[i] = int32(itemSize)
	}
	b.count = n
	b.written = n * itemSize
}
