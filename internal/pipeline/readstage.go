// File: internal/pipeline/readstage.go
// Author: momentics <momentics@gmail.com>
//
// ReadStage is the single producer goroutine filling the read BufferPool
// from the Reader collaborator. Grounded on the original loader's
// ReadThread (a one-worker ThreadPool around produce()). It is the only
// writer to the read pool and the only caller of Reader.Read; backpressure
// comes purely from waiting on the pool's nonFull condition, so the
// reader is never more than one minibatch ahead of the decoder.

package pipeline

import (
	"log"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/momentics/mbloader/affinity"
	"github.com/momentics/mbloader/api"
	"github.com/momentics/mbloader/internal/buf"
	"github.com/momentics/mbloader/internal/concurrency"
)

// ReadStage drives Reader.Read into the read pool.
type ReadStage struct {
	reader  api.Reader
	pool    *buf.Pool
	onFatal func(error)

	pinCPU int // < 0 disables affinity pinning

	done    atomic.Bool
	stopped atomic.Bool
}

// NewReadStage builds a ReadStage over reader, writing into pool. onFatal
// is invoked at most once, the first time Reader.Read returns an error.
func NewReadStage(reader api.Reader, pool *buf.Pool, pinCPU int, onFatal func(error)) *ReadStage {
	return &ReadStage{reader: reader, pool: pool, pinCPU: pinCPU, onFatal: onFatal}
}

// Start launches the producer goroutine. Returns immediately.
func (r *ReadStage) Start() {
	go r.run()
}

// Stopped reports whether the producer goroutine has fully exited.
func (r *ReadStage) Stopped() bool { return r.stopped.Load() }

// Stop requests the producer to exit and pokes its pool's nonFull
// condition until it does, waiting indefinitely. Safe to call once,
// from outside the producer goroutine, during shutdown.
func (r *ReadStage) Stop() {
	r.StopWithDeadline(time.Time{})
}

// StopWithDeadline is Stop bounded by deadline; a zero deadline waits
// indefinitely. Returns false if deadline elapses before the producer
// goroutine exits. The poke never mutates the pool's cursors: work()'s
// wait loop rechecks done immediately after waking, so a plain
// broadcast with no state change is enough to let it observe shutdown
// and return.
func (r *ReadStage) StopWithDeadline(deadline time.Time) bool {
	r.done.Store(true)
	for !r.stopped.Load() {
		if deadlineExceeded(deadline) {
			return false
		}
		runtime.Gosched()
		r.pool.SignalNonFull()
	}
	return true
}

func (r *ReadStage) run() {
	defer r.stopped.Store(true)

	if r.pinCPU >= 0 {
		runtime.LockOSThread()
		if err := affinity.SetAffinity(r.pinCPU); err != nil {
			// Best-effort: pinning failures never abort the read stage.
			log.Printf("read stage: pin to CPU %d failed: %v", r.pinCPU, err)
		}
		defer concurrency.UnpinCurrentThread()
	}

	for !r.done.Load() {
		r.work()
	}
}

func (r *ReadStage) work() {
	r.pool.Mutex().Lock()
	for r.pool.Full() {
		r.pool.WaitForNonFull()
		if r.done.Load() {
			r.pool.Mutex().Unlock()
			return
		}
	}

	pair := r.pool.GetForWrite()
	if err := r.reader.Read(pair); err != nil {
		r.done.Store(true)
		r.pool.Mutex().Unlock()
		if r.onFatal != nil {
			r.onFatal(asStructuredError(err, "read"))
		}
		return
	}
	r.pool.AdvanceWritePos()
	r.pool.Mutex().Unlock()
	r.pool.SignalNonEmpty()
}
