package normalize

import "testing"

func TestNUMANodeClampsOutOfRange(t *testing.T) {
	if got := NUMANode(5, 2); got != 0 {
		t.Fatalf("NUMANode(5, 2) = %d, want 0", got)
	}
	if got := NUMANode(-1, 2); got != 0 {
		t.Fatalf("NUMANode(-1, 2) = %d, want 0", got)
	}
	if got := NUMANode(1, 2); got != 1 {
		t.Fatalf("NUMANode(1, 2) = %d, want 1", got)
	}
}

func TestNUMANodeZeroTopologyAlwaysZero(t *testing.T) {
	if got := NUMANode(0, 0); got != 0 {
		t.Fatalf("NUMANode(0, 0) = %d, want 0", got)
	}
}

func TestCPUIndexClampsOutOfRange(t *testing.T) {
	if got := CPUIndex(99, 4); got != 0 {
		t.Fatalf("CPUIndex(99, 4) = %d, want 0", got)
	}
	if got := CPUIndex(2, 4); got != 2 {
		t.Fatalf("CPUIndex(2, 4) = %d, want 2", got)
	}
}

func TestCPUIndexAutoRejectsNegative(t *testing.T) {
	if got := CPUIndexAuto(-1); got != 0 {
		t.Fatalf("CPUIndexAuto(-1) = %d, want 0", got)
	}
}
