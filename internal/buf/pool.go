// File: internal/buf/pool.go
// Author: momentics <momentics@gmail.com>
//
// Pool is the depth-2 BufferPair ring shared between two adjacent pipeline
// stages, with two-sided backpressure. Grounded directly on the original
// loader's BufferPool (mutex + condition_variable pair); the teacher's Go
// pool package uses channels for its own (unrelated) recycling allocator,
// which cannot express the getForWrite/advanceWritePos two-phase handoff
// this component needs, so the original's locking discipline is kept.
//
// Capacity of exactly two is load-bearing (see spec §4.1): it is the
// minimum that lets one stage write the next pair while the other reads
// the previous one.

package buf

import "sync"

// Pool is a ring of exactly two Pair slots.
type Pool struct {
	mu       sync.Mutex
	nonEmpty *sync.Cond
	nonFull  *sync.Cond

	slots    [2]*Pair
	readPos  int
	writePos int
	occupied int
}

// NewPool wraps two pre-allocated Pairs in a depth-2 ring.
func NewPool(slot0, slot1 *Pair) *Pool {
	p := &Pool{slots: [2]*Pair{slot0, slot1}}
	p.nonEmpty = sync.NewCond(&p.mu)
	p.nonFull = sync.NewCond(&p.mu)
	return p
}

// Mutex returns the pool's coordination mutex. Callers that need to hold
// the lock across a getForX/advanceXPos sequence (as every stage does)
// acquire it directly, mirroring the original's unique_lock<mutex>.
func (p *Pool) Mutex() *sync.Mutex { return &p.mu }

// Empty reports occupied == 0. Caller must hold the mutex.
func (p *Pool) Empty() bool { return p.occupied == 0 }

// Full reports occupied == 2. Caller must hold the mutex.
func (p *Pool) Full() bool { return p.occupied == 2 }

// Occupied returns the current slot count in [0,2]. Caller must hold the mutex.
func (p *Pool) Occupied() int { return p.occupied }

// GetForWrite returns the slot at the write cursor. Decode workers call
// this without holding the mutex, racing only on reads of writePos the
// Manager already serialized before dispatching them (see spec §4.3's
// no-locking hot path); the pair's contents are tentative until
// AdvanceWritePos.
func (p *Pool) GetForWrite() *Pair {
	return p.slots[p.writePos]
}

// AdvanceWritePos advances the write cursor mod 2 and marks the slot
// available to readers. Caller must hold the mutex; pair with a
// subsequent SignalNonEmpty once the lock is released.
func (p *Pool) AdvanceWritePos() {
	p.writePos = (p.writePos + 1) % 2
	if p.occupied < 2 {
		p.occupied++
	}
}

// GetForRead returns the slot at the read cursor. Caller must hold the mutex.
func (p *Pool) GetForRead() *Pair {
	return p.slots[p.readPos]
}

// AdvanceReadPos advances the read cursor mod 2. Caller must hold the
// mutex; pair with a subsequent SignalNonFull once the lock is released.
func (p *Pool) AdvanceReadPos() {
	p.readPos = (p.readPos + 1) % 2
	if p.occupied > 0 {
		p.occupied--
	}
}

// WaitForNonEmpty blocks on the nonEmpty condition. Caller must hold the
// mutex; re-checks Empty() on wakeup per standard spurious-wakeup discipline
// (the caller's own loop does the re-check, this just parks the goroutine).
func (p *Pool) WaitForNonEmpty() { p.nonEmpty.Wait() }

// WaitForNonFull blocks on the nonFull condition. Caller must hold the mutex.
func (p *Pool) WaitForNonFull() { p.nonFull.Wait() }

// SignalNonEmpty wakes a reader blocked in WaitForNonEmpty. May be called
// with or without the mutex held; the original signals after unlocking.
func (p *Pool) SignalNonEmpty() { p.nonEmpty.Broadcast() }

// SignalNonFull wakes a writer blocked in WaitForNonFull.
func (p *Pool) SignalNonFull() { p.nonFull.Broadcast() }
