package buf

import "testing"

func TestBufferAppendAndItem(t *testing.T) {
	b := New(make([]byte, 16), 4, -1, false)
	slot, ok := b.AppendItem([]byte{1, 2})
	if !ok || slot != 0 {
		t.Fatalf("AppendItem: got slot=%d ok=%v", slot, ok)
	}
	slot, ok = b.AppendItem([]byte{3, 4, 5})
	if !ok || slot != 1 {
		t.Fatalf("AppendItem: got slot=%d ok=%v", slot, ok)
	}
	if b.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", b.Count())
	}
	v, ok := b.Item(0)
	if !ok || len(v) != 2 || v[0] != 1 || v[1] != 2 {
		t.Fatalf("Item(0) = %v, ok=%v", v, ok)
	}
	v, ok = b.Item(1)
	if !ok || len(v) != 3 || v[2] != 5 {
		t.Fatalf("Item(1) = %v, ok=%v", v, ok)
	}
	if _, ok := b.Item(2); ok {
		t.Fatal("Item(2) should not exist yet")
	}
}

func TestBufferCapacityExhaustion(t *testing.T) {
	b := New(make([]byte, 4), 4, -1, false)
	if _, ok := b.AppendItem([]byte{1, 2, 3}); !ok {
		t.Fatal("first append should fit")
	}
	if _, ok := b.AppendItem([]byte{4, 5}); ok {
		t.Fatal("second append should overflow the region")
	}
}

func TestBufferItemIndexExhaustion(t *testing.T) {
	b := New(make([]byte, 100), 2, -1, false)
	if _, ok := b.AppendItem([]byte{1}); !ok {
		t.Fatal("item 0 should fit")
	}
	if _, ok := b.AppendItem([]byte{2}); !ok {
		t.Fatal("item 1 should fit")
	}
	if _, ok := b.AppendItem([]byte{3}); ok {
		t.Fatal("item 2 should exceed maxItems")
	}
}

func TestBufferReset(t *testing.T) {
	b := New(make([]byte, 16), 4, 2, true)
	b.AppendItem([]byte{9, 9})
	b.Reset()
	if b.Count() != 0 {
		t.Fatalf("Count() after Reset = %d, want 0", b.Count())
	}
	if b.NUMANode() != 2 || !b.Pinned() {
		t.Fatal("Reset must not clear NUMA/pinned metadata")
	}
	slot, ok := b.AppendItem([]byte{1, 2, 3})
	if !ok || slot != 0 {
		t.Fatalf("append after reset: slot=%d ok=%v", slot, ok)
	}
}
