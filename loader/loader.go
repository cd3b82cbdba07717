// File: loader/loader.go
// Author: momentics <momentics@gmail.com>
//
// Package loader is the minibatch data loader's public surface: it wires
// a Reader/Media/Device triple into the three-stage ReadStage/Manager/
// device-copy pipeline over two depth-2 BufferPools, and exposes Start,
// Next, Stop and Reset. Grounded on the original loader.hpp's Loader
// class, which plays the exact same orchestrating role over the same
// two pools.

package loader

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/momentics/mbloader/api"
	"github.com/momentics/mbloader/control"
	"github.com/momentics/mbloader/internal/buf"
	"github.com/momentics/mbloader/internal/concurrency"
	"github.com/momentics/mbloader/internal/normalize"
	"github.com/momentics/mbloader/internal/pipeline"
	"github.com/momentics/mbloader/pool"
)

// Loader drives one archive Reader through decode and device staging.
type Loader struct {
	cfg      *api.Config
	reader   api.Reader
	media    api.Media
	device   api.Device
	numaNode int // cfg.NUMANode, clamped against actual topology

	readPool   *buf.Pool
	decodePool *buf.Pool

	readRegions   [][]byte
	decodeRegions [][]byte
	decodePinned  bool
	regionAlloc   *pool.RegionAllocator

	readStage *pipeline.ReadStage
	workers   *pipeline.DecodeWorkerPool
	stats     *pipeline.Stats
	metrics   *control.MetricsRegistry
	debug     *control.DebugProbes

	batchesServed int64
	firstBatch    bool

	mu      sync.Mutex
	started bool

	errMu sync.Mutex
	err   error
}

// New validates cfg and provisions both BufferPools' regions once, up
// front, for the lifetime of the returned Loader. It does not start the
// pipeline; call Start for that.
func New(cfg *api.Config, reader api.Reader, media api.Media, device api.Device) (*Loader, error) {
	if cfg.BatchSize <= 0 || cfg.DatumSize <= 0 || cfg.TargetSize <= 0 {
		return nil, fmt.Errorf("%w: BatchSize, DatumSize and TargetSize must be positive", api.ErrInvalidArgument)
	}

	l := &Loader{
		cfg:         cfg,
		reader:      reader,
		media:       media,
		device:      device,
		numaNode:    normalize.NUMANodeAuto(cfg.NUMANode),
		regionAlloc: pool.NewRegionAllocator(),
		stats:       pipeline.NewStats(256),
		metrics:     control.NewMetricsRegistry(),
		debug:       control.NewDebugProbes(),
	}

	if err := l.allocatePools(); err != nil {
		return nil, err
	}
	control.RegisterPlatformProbes(l.debug)
	l.debug.RegisterProbe("loader.numa_node", func() any { return l.numaNode })
	l.debug.RegisterProbe("loader.read_pool", func() any {
		l.readPool.Mutex().Lock()
		defer l.readPool.Mutex().Unlock()
		return l.readPool.Occupied()
	})
	l.debug.RegisterProbe("loader.decode_pool", func() any {
		l.decodePool.Mutex().Lock()
		defer l.decodePool.Mutex().Unlock()
		return l.decodePool.Occupied()
	})

	n := cfg.DecodeWorkers
	if n <= 0 {
		n = pipeline.WorkerCount(cfg.BatchSize, concurrency.NumCPUs())
	}
	l.workers = pipeline.NewDecodeWorkerPool(
		n, l.readPool, l.decodePool, media, device,
		cfg.BatchSize, cfg.DatumSize, cfg.TargetSize, cfg.ElemSize,
		cfg.PinManager, cfg.PinDecodeWorker, l.numaNode, l.setFatal, l.stats,
	)
	pinCPU := -1
	if cfg.PinReadStage {
		pinCPU = normalize.CPUIndexAuto(concurrency.PreferredCPUID(l.numaNode))
	}
	l.readStage = pipeline.NewReadStage(reader, l.readPool, pinCPU, l.setFatal)

	return l, nil
}

func (l *Loader) allocatePools() error {
	rawSize := l.cfg.RawRegionSize
	if rawSize <= 0 {
		rawSize = l.cfg.BatchSize * l.cfg.DatumSize
	}
	targetSize := l.cfg.BatchSize * l.cfg.TargetSize
	decodedSize := l.cfg.BatchSize * l.cfg.DatumSize

	l.decodePinned = l.device.Type() == api.DeviceGPU

	readData0, err := l.regionAlloc.Allocate(rawSize, l.numaNode, false)
	if err != nil {
		return err
	}
	readTarget0, err := l.regionAlloc.Allocate(targetSize, l.numaNode, false)
	if err != nil {
		return err
	}
	readData1, err := l.regionAlloc.Allocate(rawSize, l.numaNode, false)
	if err != nil {
		return err
	}
	readTarget1, err := l.regionAlloc.Allocate(targetSize, l.numaNode, false)
	if err != nil {
		return err
	}
	l.readRegions = [][]byte{readData0, readTarget0, readData1, readTarget1}

	decData0, err := l.regionAlloc.Allocate(decodedSize, l.numaNode, l.decodePinned)
	if err != nil {
		return err
	}
	decTarget0, err := l.regionAlloc.Allocate(targetSize, l.numaNode, l.decodePinned)
	if err != nil {
		return err
	}
	decData1, err := l.regionAlloc.Allocate(decodedSize, l.numaNode, l.decodePinned)
	if err != nil {
		return err
	}
	decTarget1, err := l.regionAlloc.Allocate(targetSize, l.numaNode, l.decodePinned)
	if err != nil {
		return err
	}
	l.decodeRegions = [][]byte{decData0, decTarget0, decData1, decTarget1}

	readPair0 := buf.NewPair(
		buf.New(readData0, l.cfg.BatchSize, l.numaNode, false),
		buf.New(readTarget0, l.cfg.BatchSize, l.numaNode, false),
	)
	readPair1 := buf.NewPair(
		buf.New(readData1, l.cfg.BatchSize, l.numaNode, false),
		buf.New(readTarget1, l.cfg.BatchSize, l.numaNode, false),
	)
	l.readPool = buf.NewPool(readPair0, readPair1)

	decPair0 := buf.NewPair(
		buf.New(decData0, l.cfg.BatchSize, l.numaNode, l.decodePinned),
		buf.New(decTarget0, l.cfg.BatchSize, l.numaNode, l.decodePinned),
	)
	decPair1 := buf.NewPair(
		buf.New(decData1, l.cfg.BatchSize, l.numaNode, l.decodePinned),
		buf.New(decTarget1, l.cfg.BatchSize, l.numaNode, l.decodePinned),
	)
	l.decodePool = buf.NewPool(decPair0, decPair1)

	return nil
}

// Start launches the ReadStage, the Manager and the decode workers.
func (l *Loader) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.started {
		return fmt.Errorf("%w: loader already started", api.ErrInvalidArgument)
	}
	l.started = true
	l.firstBatch = true
	l.readStage.Start()
	l.workers.Start()
	return nil
}

// Next blocks for the next decoded, device-staged minibatch. The
// returned BufferPair is valid only until the following Next call: the
// call after this one releases it (advances the read cursor and signals
// non-full) before waiting for its own batch, mirroring the original
// loader's _first-flag handoff — there is no previous batch to release
// on the very first call after Start.
func (l *Loader) Next() (api.BufferPair, error) {
	l.decodePool.Mutex().Lock()
	if l.firstBatch {
		l.firstBatch = false
	} else {
		l.decodePool.AdvanceReadPos()
		l.decodePool.SignalNonFull()
	}
	for l.decodePool.Empty() {
		if err := l.Err(); err != nil {
			l.decodePool.Mutex().Unlock()
			return nil, err
		}
		l.decodePool.WaitForNonEmpty()
	}
	pair := l.decodePool.GetForRead()
	l.decodePool.Mutex().Unlock()

	l.batchesServed++
	l.metrics.Set("batches_served", l.batchesServed)
	l.metrics.Set("last_batch_items", pair.Data().Count())

	return pair, nil
}

// NextInto blocks for the next decoded, device-staged minibatch and
// copies both halves into caller-supplied buffers, immediately releasing
// the pool slot afterward. It is a self-contained hand-off independent
// of Next's deferred-release protocol above — the original loader's
// next(Buffer*, Buffer*) testing-only variant behaves the same way,
// copying out rather than lending the pair's backing memory.
func (l *Loader) NextInto(dstData, dstTargets []byte) error {
	l.decodePool.Mutex().Lock()
	for l.decodePool.Empty() {
		if err := l.Err(); err != nil {
			l.decodePool.Mutex().Unlock()
			return err
		}
		l.decodePool.WaitForNonEmpty()
	}
	pair := l.decodePool.GetForRead()
	copy(dstData, pair.Data().Data())
	copy(dstTargets, pair.Target().Data())
	l.decodePool.AdvanceReadPos()
	l.decodePool.Mutex().Unlock()
	l.decodePool.SignalNonFull()
	return nil
}

// Reader returns the archive Reader this Loader drives.
func (l *Loader) Reader() api.Reader { return l.reader }

// Media returns the per-item decode transform this Loader drives.
func (l *Loader) Media() api.Media { return l.media }

// Device returns the staging target this Loader drives.
func (l *Loader) Device() api.Device { return l.device }

// Metrics returns a snapshot of the Loader's runtime counters, suitable
// for export to an external monitoring system.
func (l *Loader) Metrics() map[string]any { return l.metrics.GetSnapshot() }

// Debug dumps every registered introspection probe (pool occupancy, NUMA
// node, platform CPU count), for ad hoc inspection from a REPL or test.
func (l *Loader) Debug() map[string]any { return l.debug.DumpState() }

// ItemCount reports the Reader's epoch size.
func (l *Loader) ItemCount() int { return l.reader.ItemCount() }

// Err returns the first fatal error recorded by any stage, or nil.
func (l *Loader) Err() error {
	l.errMu.Lock()
	defer l.errMu.Unlock()
	return l.err
}

func (l *Loader) setFatal(err error) {
	l.errMu.Lock()
	first := l.err == nil
	if first {
		// ReadStage and DecodeWorkerPool both wrap their own errors as
		// *api.Error before calling this; the type assertion is a no-op
		// on the expected path and only guards a future caller that
		// forgets to.
		if se, ok := err.(*api.Error); ok {
			l.err = se
		} else {
			l.err = api.NewError(api.ErrCodeInternal, err.Error())
		}
	}
	l.errMu.Unlock()
	if !first {
		return
	}
	// Wake anyone blocked on either pool so they observe Err() instead
	// of hanging on a batch that will never arrive.
	l.readPool.SignalNonEmpty()
	l.readPool.SignalNonFull()
	l.decodePool.SignalNonEmpty()
	l.decodePool.SignalNonFull()
}

// Stop performs the orderly multi-stage shutdown: stop the ReadStage and
// drain its pool, then drain the decode pool (acting as a phantom
// consumer so the Manager's produce() never blocks on a full output
// pool), then stop the Manager and decode workers. Each stage is poked
// for at most cfg.ShutdownTimeout before Stop gives up and returns
// anyway; zero means wait indefinitely.
func (l *Loader) Stop() {
	l.mu.Lock()
	started := l.started
	l.mu.Unlock()
	if !started {
		return
	}

	var deadline time.Time
	if l.cfg.ShutdownTimeout > 0 {
		deadline = time.Now().Add(l.cfg.ShutdownTimeout)
	}

	l.readStage.StopWithDeadline(deadline)
	l.drainDecodePool(deadline)
	l.workers.StopWithDeadline(deadline)
	_ = l.device.Close()

	l.mu.Lock()
	l.started = false
	l.mu.Unlock()
}

func (l *Loader) drainDecodePool(deadline time.Time) {
	for !l.bothPoolsEmpty() {
		if !deadline.IsZero() && time.Now().After(deadline) {
			return
		}
		l.decodePool.Mutex().Lock()
		empty := l.decodePool.Empty()
		if !empty {
			l.decodePool.AdvanceReadPos()
		}
		l.decodePool.Mutex().Unlock()
		if !empty {
			l.decodePool.SignalNonFull()
		}
		runtime.Gosched()
	}
}

func (l *Loader) bothPoolsEmpty() bool {
	l.readPool.Mutex().Lock()
	re := l.readPool.Empty()
	l.readPool.Mutex().Unlock()

	l.decodePool.Mutex().Lock()
	de := l.decodePool.Empty()
	l.decodePool.Mutex().Unlock()

	return re && de
}

// Reset rewinds the Reader for a new epoch. Must be called while
// stopped; call Start again afterward to resume.
func (l *Loader) Reset() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.started {
		return fmt.Errorf("%w: Reset called while running", api.ErrInvalidArgument)
	}
	if err := l.reader.Reset(); err != nil {
		return err
	}
	l.errMu.Lock()
	l.err = nil
	l.errMu.Unlock()
	return nil
}

// Stats returns the per-minibatch timings recorded since the previous
// Stats or PoolStats call (at most the 256 most recent) and removes them
// from the window.
func (l *Loader) Stats() []pipeline.Sample { return l.stats.Snapshot() }

// PoolStats reports a point-in-time occupancy snapshot of both
// BufferPools plus wait figures summed over the recent-sample window,
// mirroring the original's BufferPool::getStats diagnostic. Like Stats,
// it drains that window, so the sums and BatchesPassed cover only the
// samples recorded since the previous Stats or PoolStats call.
func (l *Loader) PoolStats() (read, decode api.BufferPoolStats) {
	l.readPool.Mutex().Lock()
	read.Occupied = l.readPool.Occupied()
	l.readPool.Mutex().Unlock()

	l.decodePool.Mutex().Lock()
	decode.Occupied = l.decodePool.Occupied()
	l.decodePool.Mutex().Unlock()

	for _, s := range l.stats.Snapshot() {
		read.WaitNonEmpty += s.WaitNonEmpty.Nanoseconds()
		decode.WaitNonFull += s.WaitNonFull.Nanoseconds()
		decode.BatchesPassed++
	}
	read.BatchesPassed = decode.BatchesPassed
	return read, decode
}

// Close releases every region this Loader allocated. Call after Stop.
func (l *Loader) Close() {
	for _, r := range l.readRegions {
		l.regionAlloc.Release(r, false)
	}
	for _, r := range l.decodeRegions {
		l.regionAlloc.Release(r, l.decodePinned)
	}
}
