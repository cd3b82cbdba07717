// File: internal/concurrency/affinity_linux.go
//go:build linux && cgo
// +build linux,cgo

package concurrency

// #cgo LDFLAGS: -lnuma
// #define _GNU_SOURCE
// #include <numa.h>
// #include <sched.h>
// #include <errno.h>
//
// // Helper to check if numa is available (wrapper to avoid macro issues)
// int check_numa_avail() {
//     return numa_available();
// }
import "C"

import (
	"runtime"
	"sync"
)

var (
	numaAvailOnce sync.Once
	numaAvailable bool
)

func isNumaAvailable() bool {
	numaAvailOnce.Do(func() {
		if C.check_numa_avail() != -1 {
			numaAvailable = true
		}
	})
	return numaAvailable
}

// platformPreferredCPUID returns a suggested CPU core index for the given NUMA node.
// It always returns 0; no per-node CPU lookup is done.
func platformPreferredCPUID(numaNode int) int {
	// For now, return 0 or rely on OS scheduler if pinning to node.
	// We can implement strict CPU picking if needed, but per-node pinning is the main requirement.
	return 0 
}

// platformCurrentNUMANodeID returns the NUMA node ID of the current thread.
func platformCurrentNUMANodeID() int {
	if !isNumaAvailable() {
		return 0
	}
	cpu := C.sched_getcpu()
	if cpu < 0 {
		return -1
	}
	node := C.numa_node_of_cpu(cpu)
	return int(node)
}

// platformNUMANodes returns the total number of configured NUMA nodes.
func platformNUMANodes() int {
	if !isNumaAvailable() {
		return 1
	}
	return int(C.numa_num_configured_nodes())
}

// platformUnpinCurrentThread clears NUMA affinity.
func platformUnpinCurrentThread() error {
	runtime.UnlockOSThread()
	if !isNumaAvailable() {
		return nil
	}
	// Run on all nodes
	C.numa_run_on_node(-1)
	return nil
}