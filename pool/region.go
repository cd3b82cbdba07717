// File: pool/region.go
// Author: momentics <momentics@gmail.com>
//
// RegionAllocator provisions the fixed-capacity byte regions backing a
// loader BufferPool. Allocation happens once, in loader.New; Loader.Start
// allocates nothing, and there is no Put/recycle path, because spec requires regions survive unchanged
// for the lifetime of the pipeline run (see internal/buf.BufferPool).

package pool

import (
	"fmt"

	"github.com/momentics/mbloader/api"
)

// RegionAllocator allocates NUMA-local, optionally page-locked regions.
type RegionAllocator struct {
	numa NUMAAllocator
}

// NewRegionAllocator constructs a RegionAllocator using the platform's
// NUMA allocator factory, falling back to plain heap allocation when NUMA
// is unavailable (createNUMAAllocator returns nil on unsupported builds).
func NewRegionAllocator() *RegionAllocator {
	return &RegionAllocator{numa: createNUMAAllocator()}
}

// Allocate returns a zeroed region of exactly size bytes. When pinned is
// true, the region is page-locked for DMA after allocation; a failure to
// pin is reported as an error so loader.New can fail cleanly rather
// than silently run unpinned against a device that requires it.
func (r *RegionAllocator) Allocate(size, numaNode int, pinned bool) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: negative region size", api.ErrInvalidArgument)
	}
	var region []byte
	if r.numa != nil {
		if b, err := r.numa.Alloc(size, numaNode); err == nil && b != nil {
			clear(b) // the platform allocator may fall back to malloc
			region = b
		}
	}
	if region == nil {
		region = make([]byte, size)
	}
	if pinned && size > 0 {
		if err := pinRegion(region); err != nil {
			if r.numa != nil {
				r.numa.Free(region)
			}
			return nil, fmt.Errorf("%w: %v", api.ErrAllocFailed, err)
		}
	}
	return region, nil
}

// Release unpins (if applicable) and frees a region allocated by Allocate.
func (r *RegionAllocator) Release(region []byte, pinned bool) {
	if pinned && len(region) > 0 {
		_ = unpinRegion(region)
	}
	if r.numa != nil {
		r.numa.Free(region)
	}
}
