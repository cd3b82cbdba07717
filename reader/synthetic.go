// File: reader/synthetic.go
// Author: momentics <momentics@gmail.com>
//
// Synthetic is a reference api.Reader generating deterministic in-memory
// items, useful for exercising the pipeline and its tests without a real
// archive format. Grounded on the original loader's synthetic/debug
// reader path (same role: feed the pipeline something real-shaped
// without a file-backed format) and on the original's reshuffle-queue
// mentioned in spec/SPEC_FULL §6: when Reshuffle is enabled, the item
// order for upcoming epochs is staged on a growable FIFO rather than a
// single fixed permutation; the next epoch's order is drawn and queued
// once the current one has been fully consumed. github.com/eapache/queue
// is used for that staging FIFO; it is a genuinely different shape than
// the fixed depth-2 BufferPool ring used elsewhere in the pipeline.

package reader

import (
	"encoding/binary"
	"fmt"
	"math/rand"

	"github.com/eapache/queue"

	"github.com/momentics/mbloader/api"
)

// Synthetic generates itemCount items of deterministic, variable-length
// content and a TargetSize-byte label per item, holding the item index as
// a little-endian uint32 when TargetSize >= 4 and all zeros otherwise.
type Synthetic struct {
	cfg       *api.Config
	itemCount int
	seed      int64

	rng     *rand.Rand
	order   []int // used when cfg.Reshuffle == false
	cursor  int
	staging *queue.Queue // used when cfg.Reshuffle == true
}

var _ api.Reader = (*Synthetic)(nil)

// NewSynthetic builds a Synthetic reader over itemCount items, applying
// cfg's Shuffle/Reshuffle/StartFileIdx/SubsetPercent knobs.
func NewSynthetic(cfg *api.Config, itemCount int, seed int64) *Synthetic {
	s := &Synthetic{cfg: cfg, itemCount: itemCount, seed: seed}
	if err := s.Reset(); err != nil {
		panic(err) // itemCount/SubsetPercent are caller-controlled constants
	}
	return s
}

// ItemCount returns the subset-adjusted epoch size.
func (s *Synthetic) ItemCount() int {
	n := s.itemCount
	if s.cfg.SubsetPercent > 0 && s.cfg.SubsetPercent < 100 {
		n = n * s.cfg.SubsetPercent / 100
	}
	return n
}

// Reset rewinds to the start of a fresh epoch at StartFileIdx.
func (s *Synthetic) Reset() error {
	n := s.ItemCount()
	if n <= 0 {
		return fmt.Errorf("%w: synthetic reader has no items", api.ErrInvalidArgument)
	}
	s.rng = rand.New(rand.NewSource(s.seed))
	if s.cfg.Reshuffle {
		s.staging = queue.New()
		s.fillStaging(n)
	} else {
		s.order = make([]int, n)
		for i := range s.order {
			s.order[i] = i
		}
		if s.cfg.Shuffle {
			s.rng.Shuffle(len(s.order), func(i, j int) { s.order[i], s.order[j] = s.order[j], s.order[i] })
		}
		s.cursor = s.cfg.StartFileIdx % n
	}
	return nil
}

func (s *Synthetic) fillStaging(n int) {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	if s.cfg.Shuffle {
		s.rng.Shuffle(len(perm), func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })
	}
	for _, idx := range perm {
		s.staging.Add(idx)
	}
}

func (s *Synthetic) nextIndex() int {
	if s.cfg.Reshuffle {
		if s.staging.Length() == 0 {
			s.fillStaging(s.ItemCount())
		}
		return s.staging.Remove().(int)
	}
	idx := s.order[s.cursor]
	s.cursor = (s.cursor + 1) % len(s.order)
	return idx
}

// Read fills pair with cfg.BatchSize synthetic items and labels.
func (s *Synthetic) Read(pair api.BufferPair) error {
	pair.Data().Reset()
	pair.Target().Reset()
	for b := 0; b < s.cfg.BatchSize; b++ {
		idx := s.nextIndex()
		item := syntheticItem(idx)
		if _, ok := pair.Data().AppendItem(item); !ok {
			return fmt.Errorf("%w: data buffer too small for synthetic item %d", api.ErrReaderFailed, idx)
		}
		label := make([]byte, s.cfg.TargetSize)
		if s.cfg.TargetSize >= 4 {
			binary.LittleEndian.PutUint32(label, uint32(idx))
		}
		if _, ok := pair.Target().AppendItem(label); !ok {
			return fmt.Errorf("%w: target buffer too small for synthetic label %d", api.ErrReaderFailed, idx)
		}
	}
	return nil
}

// syntheticItem deterministically derives a variable-length byte item
// from its index: length cycles 1..7, byte i holds the low byte of idx+i.
func syntheticItem(idx int) []byte {
	n := 1 + idx%7
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(idx + i)
	}
	return b
}
