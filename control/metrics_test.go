package control

import "testing"

func TestMetricsRegistrySetAndSnapshot(t *testing.T) {
	mr := NewMetricsRegistry()
	mr.Set("batches_served", 3)
	mr.Set("last_batch_items", 32)

	snap := mr.GetSnapshot()
	if snap["batches_served"] != 3 {
		t.Fatalf("batches_served = %v, want 3", snap["batches_served"])
	}
	if snap["last_batch_items"] != 32 {
		t.Fatalf("last_batch_items = %v, want 32", snap["last_batch_items"])
	}

	snap["batches_served"] = 99
	if mr.GetSnapshot()["batches_served"] != 3 {
		t.Fatal("GetSnapshot must return an independent copy")
	}
}

func TestDebugProbesDumpState(t *testing.T) {
	dp := NewDebugProbes()
	dp.RegisterProbe("constant", func() any { return 7 })

	out := dp.DumpState()
	if out["constant"] != 7 {
		t.Fatalf("probe value = %v, want 7", out["constant"])
	}
}
