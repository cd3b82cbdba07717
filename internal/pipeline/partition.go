// File: internal/pipeline/partition.go
// Author: momentics <momentics@gmail.com>
//
// Disjoint per-worker partitioning of one minibatch's item range. Grounded
// on the original loader's thread-count and per-thread index computation
// in loader.hpp (startInd/endInd/dataOffset/targetOffset/targetSpan),
// generalized here into a reusable value type computed once per
// DecodeWorkerPool rather than inline in the thread body.

package pipeline

// partition describes one worker's disjoint slice of a minibatch: item
// indices [startInd, endInd) in the input, and the matching byte ranges
// in the decode output's data and target halves.
type partition struct {
	startInd, endInd int
	dataOffset       int
	targetOffset     int
	targetSpan       int
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return a
	}
	return (a + b - 1) / b
}

// WorkerCount picks N the same way the original loader sizes its decode
// thread pool: the smallest worker count whose even split keeps each
// worker's share at or under ceil(batchSize/hardwareConcurrency) items,
// capped at batchSize so no worker is ever handed an empty range.
func WorkerCount(batchSize, hardwareConcurrency int) int {
	if hardwareConcurrency < 1 {
		hardwareConcurrency = 1
	}
	itemsPerThreadTarget := ceilDiv(batchSize, hardwareConcurrency)
	n := ceilDiv(batchSize, itemsPerThreadTarget)
	if n > batchSize {
		n = batchSize
	}
	if n < 1 {
		n = 1
	}
	return n
}

// computePartitions splits [0,batchSize) into n disjoint, contiguous
// ranges and derives each one's byte offsets into the decode output.
func computePartitions(n, batchSize, datumSize, targetSize int) []partition {
	itemsPerThread := ceilDiv(batchSize, n)
	parts := make([]partition, n)
	for id := 0; id < n; id++ {
		start := id * itemsPerThread
		end := start + itemsPerThread
		if start > batchSize {
			start = batchSize
		}
		if end > batchSize {
			end = batchSize
		}
		parts[id] = partition{
			startInd:     start,
			endInd:       end,
			dataOffset:   start * datumSize,
			targetOffset: start * targetSize,
			targetSpan:   (end - start) * targetSize,
		}
	}
	return parts
}
