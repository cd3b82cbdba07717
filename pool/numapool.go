// File: pool/numapool.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral NUMA allocator interface. The concrete allocator is
// chosen at build time by the build-tagged createNUMAAllocator factories
// in numapool_linux.go, numapool_windows.go and numapool_stub.go.

package pool

// NUMAAllocator defines interface for NUMA-aware memory allocators.
// RegionAllocator is its only caller: regions it hands out are allocated
// once in loader.New and never recycled mid-run (see spec §3), so this
// package has no sync.Pool-backed recycling type, unlike the teacher's
// base_bufferpool.go/slab_pool.go.
type NUMAAllocator interface {
	Alloc(size int, node int) ([]byte, error)
	Free([]byte)
	Nodes() (int, error)
}
