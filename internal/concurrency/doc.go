// File: internal/concurrency/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// NUMA-aware, lock-free concurrency primitives backing the minibatch
// loader's pipeline: CPU/NUMA topology queries (PreferredCPUID,
// CurrentNUMANodeID, NUMANodes, NumCPUs) for ReadStage and
// DecodeWorkerPool, UnpinCurrentThread to undo a pin made through the
// affinity package, and RingBuffer[T] for pipeline.Stats's lock-free
// sample history.
//
// Cross-platform via build tags (Linux/Windows/other, cgo/no-cgo).
package concurrency
