package buf

import (
	"sync"
	"testing"
	"time"
)

func newTestPair() *Pair {
	return NewPair(New(make([]byte, 8), 2, -1, false), New(make([]byte, 8), 2, -1, false))
}

func TestPoolOccupancyStaysInBounds(t *testing.T) {
	p := NewPool(newTestPair(), newTestPair())
	p.Mutex().Lock()
	if !p.Empty() || p.Full() {
		t.Fatal("new pool must start empty")
	}
	p.GetForWrite()
	p.AdvanceWritePos()
	if p.Occupied() != 1 {
		t.Fatalf("occupied = %d, want 1", p.Occupied())
	}
	p.GetForWrite()
	p.AdvanceWritePos()
	if !p.Full() || p.Occupied() != 2 {
		t.Fatalf("pool should be full at occupied=2, got %d", p.Occupied())
	}
	p.GetForRead()
	p.AdvanceReadPos()
	if p.Occupied() != 1 {
		t.Fatalf("occupied after one read = %d, want 1", p.Occupied())
	}
	p.Mutex().Unlock()
}

func TestPoolWriterReaderHandoff(t *testing.T) {
	p := NewPool(newTestPair(), newTestPair())
	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		p.Mutex().Lock()
		for p.Empty() {
			p.WaitForNonEmpty()
		}
		pr := p.GetForRead()
		data, _ := pr.Data().Item(0)
		if len(data) != 3 {
			t.Errorf("expected item of length 3, got %d", len(data))
		}
		p.AdvanceReadPos()
		p.Mutex().Unlock()
		p.SignalNonFull()
	}()

	p.Mutex().Lock()
	for p.Full() {
		p.WaitForNonFull()
	}
	pr := p.GetForWrite()
	pr.DataBuf().AppendItem([]byte{1, 2, 3})
	p.AdvanceWritePos()
	p.Mutex().Unlock()
	p.SignalNonEmpty()

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for reader")
	}
}
