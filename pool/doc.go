// Package pool
// Author: momentics <momentics@gmail.com>
//
// NUMA-aware region allocation for the minibatch loader's BufferPools.
// Unlike a general-purpose recycling allocator, a loader BufferPool's
// regions are provisioned exactly once in loader.New for the worst-case
// batch and never reallocated mid-run (see internal/buf); this package
// only allocates and, optionally, pins those long-lived regions.
// See region.go, numapool.go, pin_linux.go/pin_windows.go for details.
package pool
