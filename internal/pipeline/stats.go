// File: internal/pipeline/stats.go
// Author: momentics <momentics@gmail.com>
//
// Stats records a rolling window of per-minibatch timing samples for
// Loader.Stats(), reusing the teacher's lock-free RingBuffer instead of
// a mutex-guarded slice so the Manager's hot path never blocks on a
// concurrent Stats() reader.

package pipeline

import (
	"time"

	"github.com/momentics/mbloader/internal/concurrency"
)

// Sample is one completed minibatch's timing.
type Sample struct {
	BatchLatency time.Duration
	WaitNonEmpty time.Duration
	WaitNonFull  time.Duration
}

// Stats is a bounded, lock-free ring of recent Samples.
type Stats struct {
	ring *concurrency.RingBuffer[Sample]
}

// NewStats allocates a Stats ring holding up to capacity (rounded up to
// the next power of two) recent samples.
func NewStats(capacity uint64) *Stats {
	size := uint64(1)
	for size < capacity {
		size <<= 1
	}
	return &Stats{ring: concurrency.NewRingBuffer[Sample](size)}
}

// Record appends a sample, discarding the oldest if the ring is full.
func (s *Stats) Record(sample Sample) {
	for !s.ring.Enqueue(sample) {
		if _, ok := s.ring.Dequeue(); !ok {
			return
		}
	}
}

// Snapshot drains and returns every sample currently buffered.
func (s *Stats) Snapshot() []Sample {
	out := make([]Sample, 0, s.ring.Len())
	for {
		v, ok := s.ring.Dequeue()
		if !ok {
			break
		}
		out = append(out, v)
	}
	return out
}
