package reader

import (
	"testing"

	"github.com/momentics/mbloader/api"
	"github.com/momentics/mbloader/internal/buf"
)

func newTestCfg() *api.Config {
	cfg := api.DefaultConfig()
	cfg.BatchSize = 4
	cfg.DatumSize = 8
	cfg.TargetSize = 4
	return cfg
}

func newTestPair(cfg *api.Config) api.BufferPair {
	return buf.NewPair(
		buf.New(make([]byte, cfg.BatchSize*16), cfg.BatchSize, -1, false),
		buf.New(make([]byte, cfg.BatchSize*cfg.TargetSize), cfg.BatchSize, -1, false),
	)
}

func TestSyntheticReadFillsBatch(t *testing.T) {
	cfg := newTestCfg()
	cfg.Shuffle = false
	cfg.Reshuffle = false
	r := NewSynthetic(cfg, 20, 1)

	pair := newTestPair(cfg)
	if err := r.Read(pair); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if pair.Data().Count() != cfg.BatchSize {
		t.Fatalf("Count() = %d, want %d", pair.Data().Count(), cfg.BatchSize)
	}
}

func TestSyntheticReshuffleExhaustsAndRefillsQueue(t *testing.T) {
	cfg := newTestCfg()
	cfg.BatchSize = 3
	cfg.Reshuffle = true
	r := NewSynthetic(cfg, 5, 42)

	for i := 0; i < 4; i++ {
		pair := newTestPair(cfg)
		if err := r.Read(pair); err != nil {
			t.Fatalf("Read iteration %d: %v", i, err)
		}
		if pair.Data().Count() != cfg.BatchSize {
			t.Fatalf("iteration %d: Count() = %d, want %d", i, pair.Data().Count(), cfg.BatchSize)
		}
	}
}

func TestSyntheticResetRewinds(t *testing.T) {
	cfg := newTestCfg()
	cfg.Shuffle = false
	cfg.Reshuffle = false
	r := NewSynthetic(cfg, 20, 1)

	first := newTestPair(cfg)
	r.Read(first)
	firstItem, _ := first.Data().Item(0)

	if err := r.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	second := newTestPair(cfg)
	r.Read(second)
	secondItem, _ := second.Data().Item(0)

	if len(firstItem) != len(secondItem) || firstItem[0] != secondItem[0] {
		t.Fatalf("Reset did not rewind to the same first item: %v vs %v", firstItem, secondItem)
	}
}

func TestSyntheticItemCountAppliesSubsetPercent(t *testing.T) {
	cfg := newTestCfg()
	cfg.SubsetPercent = 50
	r := NewSynthetic(cfg, 100, 1)
	if got := r.ItemCount(); got != 50 {
		t.Fatalf("ItemCount() = %d, want 50", got)
	}
}
