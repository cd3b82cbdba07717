package pipeline

import "testing"

func TestWorkerCountCapsAtBatchSize(t *testing.T) {
	if n := WorkerCount(2, 16); n > 2 {
		t.Fatalf("WorkerCount(2, 16) = %d, must not exceed batchSize", n)
	}
}

func TestWorkerCountMatchesHardwareConcurrencyShape(t *testing.T) {
	n := WorkerCount(32, 4)
	if n < 1 || n > 32 {
		t.Fatalf("WorkerCount(32, 4) = %d out of range", n)
	}
}

func TestComputePartitionsDisjointAndCovering(t *testing.T) {
	const batchSize, datumSize, targetSize = 10, 4, 2
	parts := computePartitions(3, batchSize, datumSize, targetSize)

	covered := make([]bool, batchSize)
	for _, p := range parts {
		for i := p.startInd; i < p.endInd; i++ {
			if covered[i] {
				t.Fatalf("item %d covered by more than one partition", i)
			}
			covered[i] = true
		}
		if p.dataOffset != p.startInd*datumSize {
			t.Fatalf("dataOffset mismatch: %+v", p)
		}
		if p.targetOffset != p.startInd*targetSize {
			t.Fatalf("targetOffset mismatch: %+v", p)
		}
		if p.targetSpan != (p.endInd-p.startInd)*targetSize {
			t.Fatalf("targetSpan mismatch: %+v", p)
		}
	}
	for i, c := range covered {
		if !c {
			t.Fatalf("item %d not covered by any partition", i)
		}
	}
}
