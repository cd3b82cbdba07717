// File: internal/pipeline/manager.go
// Author: momentics <momentics@gmail.com>
//
// DecodeWorkerPool couples the Manager (a single goroutine consuming the
// read pool and producing the decode pool) with N decode workers that
// share one minibatch's disjoint partitions. Grounded on the original
// loader's DecodeThreadPool/Manager pair: Manager::consume/produce hold
// the read/decode pool mutexes for the full handoff, while workers
// synchronize against the Manager through a dispatch/join barrier
// (startSignaled per worker, a single endSignaled counter) guarded by
// its own coordination mutex distinct from the two BufferPool mutexes.
//
// The original's defect this package fixes per spec: a decode worker
// that hits a short read or transform error must still increment
// endSignaled before returning, or the Manager's join wait
// (endSignaled == workerCount) never completes. Every early exit here
// goes through one deferred increment, so the barrier always closes.

package pipeline

import (
	"fmt"
	"log"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/momentics/mbloader/affinity"
	"github.com/momentics/mbloader/api"
	"github.com/momentics/mbloader/internal/buf"
	"github.com/momentics/mbloader/internal/concurrency"
	"github.com/momentics/mbloader/internal/normalize"
)

// DecodeWorkerPool drives decode workers and the Manager goroutine that
// dispatches them against one minibatch at a time.
type DecodeWorkerPool struct {
	in  *buf.Pool
	out *buf.Pool

	media  api.Media
	device api.Device

	batchSize, datumSize, targetSize int
	elemSize                         int
	partitions                       []partition

	mu      sync.Mutex
	started *sync.Cond
	ended   *sync.Cond

	startSignaled []int
	endSignaled   int
	workerCount   int

	inputBuf *buf.Pair

	done         atomic.Bool // workers' shutdown flag
	stopManager  atomic.Bool
	managerStopped atomic.Bool

	bufferIndex int

	pinManager      bool
	pinDecodeWorker bool
	numaNode        int

	workersWG sync.WaitGroup
	managerWG sync.WaitGroup

	errMu   sync.Mutex
	err     error
	onFatal func(error)

	stats *Stats
}

// NewDecodeWorkerPool builds the worker/manager pair. n must equal
// len(partitions) as returned by WorkerCount/computePartitions.
func NewDecodeWorkerPool(
	n int,
	in, out *buf.Pool,
	media api.Media,
	device api.Device,
	batchSize, datumSize, targetSize, elemSize int,
	pinManager, pinDecodeWorker bool,
	numaNode int,
	onFatal func(error),
	stats *Stats,
) *DecodeWorkerPool {
	if elemSize < 1 {
		elemSize = 1
	}
	dp := &DecodeWorkerPool{
		in:              in,
		out:             out,
		media:           media,
		device:          device,
		batchSize:       batchSize,
		datumSize:       datumSize,
		targetSize:      targetSize,
		elemSize:        elemSize,
		partitions:      computePartitions(n, batchSize, datumSize, targetSize),
		startSignaled:   make([]int, n),
		workerCount:     n,
		pinManager:      pinManager,
		pinDecodeWorker: pinDecodeWorker,
		numaNode:        numaNode,
		onFatal:         onFatal,
		stats:           stats,
	}
	dp.started = sync.NewCond(&dp.mu)
	dp.ended = sync.NewCond(&dp.mu)
	return dp
}

// Start launches the manager goroutine and all decode worker goroutines.
func (dp *DecodeWorkerPool) Start() {
	dp.managerWG.Add(1)
	go dp.manage()

	dp.workersWG.Add(dp.workerCount)
	for id := 0; id < dp.workerCount; id++ {
		go dp.runWorker(id)
	}
}

// Err returns the first fatal error recorded by the Manager or a worker,
// or nil if none occurred.
func (dp *DecodeWorkerPool) Err() error {
	dp.errMu.Lock()
	defer dp.errMu.Unlock()
	return dp.err
}

func (dp *DecodeWorkerPool) setFatal(err error) {
	dp.errMu.Lock()
	first := dp.err == nil
	if first {
		dp.err = asStructuredError(err, "decode")
	}
	stored := dp.err
	dp.errMu.Unlock()
	if first && dp.onFatal != nil {
		dp.onFatal(stored)
	}
}

// Stop signals workers and the Manager to exit and pokes both their
// coordination primitives until each reports stopped, waiting
// indefinitely. The caller is responsible for having already drained
// the decode pool (see spec's multi-stage shutdown protocol) before
// calling Stop.
func (dp *DecodeWorkerPool) Stop() {
	dp.StopWithDeadline(time.Time{})
}

// StopWithDeadline is Stop bounded by deadline; a zero deadline waits
// indefinitely. Returns false if deadline elapses before both the
// workers and the Manager report stopped — shutdown still proceeds as
// far as it can, it just stops waiting.
func (dp *DecodeWorkerPool) StopWithDeadline(deadline time.Time) bool {
	dp.done.Store(true)
	dp.mu.Lock()
	dp.started.Broadcast()
	dp.mu.Unlock()
	if !waitWithDeadline(&dp.workersWG, deadline) {
		return false
	}

	dp.stopManager.Store(true)
	for !dp.managerStopped.Load() {
		if deadlineExceeded(deadline) {
			return false
		}
		runtime.Gosched()

		// Wake a consume() blocked on waitForNonEmpty; it rechecks
		// stopManager immediately after waking, with no state mutation
		// required (see consume()).
		dp.in.SignalNonEmpty()

		// Wake a produce() blocked on the join wait in case it dispatched
		// to workers that have since exited;
		// bumping endSignaled past workerCount is always safe since
		// produce() resets it to 0 after every successful join.
		dp.mu.Lock()
		dp.endSignaled++
		dp.ended.Broadcast()
		dp.mu.Unlock()
	}
	return waitWithDeadline(&dp.managerWG, deadline)
}

func (dp *DecodeWorkerPool) isDone() bool { return dp.done.Load() }

// runWorker is one decode worker's goroutine body: wait for a start
// signal, decode its partition, signal end, repeat until done.
func (dp *DecodeWorkerPool) runWorker(id int) {
	defer dp.workersWG.Done()

	if dp.pinDecodeWorker {
		runtime.LockOSThread()
		cpu := normalize.CPUIndex(id, concurrency.NumCPUs())
		if err := affinity.SetAffinity(cpu); err != nil {
			log.Printf("decode worker %d: pin to CPU %d failed: %v", id, cpu, err)
		}
		defer concurrency.UnpinCurrentThread()
	}

	for !dp.isDone() {
		dp.workOnce(id)
	}
}

func (dp *DecodeWorkerPool) workOnce(id int) {
	dp.mu.Lock()
	for dp.startSignaled[id] == 0 {
		if dp.isDone() {
			dp.mu.Unlock()
			return
		}
		dp.started.Wait()
	}
	dp.startSignaled[id]--
	dp.mu.Unlock()

	var workErr error
	defer func() {
		dp.mu.Lock()
		dp.endSignaled++
		dp.ended.Broadcast()
		dp.mu.Unlock()
		if workErr != nil {
			dp.setFatal(workErr)
		}
	}()

	in := dp.inputBuf
	outPair := dp.out.GetForWrite()
	part := dp.partitions[id]
	dst := outPair.DataBuf().Data()

	for i := part.startInd; i < part.endInd; i++ {
		item, ok := in.DataBuf().Item(i)
		if !ok {
			workErr = fmt.Errorf("decode worker %d: missing input item %d: %w", id, i, api.ErrReaderFailed)
			return
		}
		off := part.dataOffset + (i-part.startInd)*dp.datumSize
		if err := dp.media.Transform(item, dst[off:off+dp.datumSize]); err != nil {
			workErr = fmt.Errorf("decode worker %d: item %d: %w", id, i, err)
			return
		}
	}

	if part.targetSpan > 0 {
		copy(
			outPair.TargetBuf().Data()[part.targetOffset:part.targetOffset+part.targetSpan],
			in.TargetBuf().Data()[part.targetOffset:part.targetOffset+part.targetSpan],
		)
	}
}

// manage is the Manager's goroutine body: loop consuming the read pool
// and producing into the decode pool until told to stop.
func (dp *DecodeWorkerPool) manage() {
	defer dp.managerWG.Done()

	if dp.pinManager {
		runtime.LockOSThread()
		cpu := normalize.CPUIndexAuto(concurrency.PreferredCPUID(dp.numaNode))
		if err := affinity.SetAffinity(cpu); err != nil {
			log.Printf("manager: pin to CPU %d failed: %v", cpu, err)
		}
		defer concurrency.UnpinCurrentThread()
	}

	if err := dp.device.Init(); err != nil {
		dp.setFatal(fmt.Errorf("%w: %v", api.ErrDeviceInit, err))
		dp.stopManager.Store(true)
		dp.managerStopped.Store(true)
		return
	}

	for !dp.stopManager.Load() {
		dp.consume()
	}
	dp.managerStopped.Store(true)
}

func (dp *DecodeWorkerPool) consume() {
	start := time.Now()
	dp.in.Mutex().Lock()
	for dp.in.Empty() {
		dp.in.WaitForNonEmpty()
		if dp.stopManager.Load() {
			dp.in.Mutex().Unlock()
			return
		}
	}
	waitNonEmpty := time.Since(start)
	dp.inputBuf = dp.in.GetForRead()
	dp.produce(waitNonEmpty)
	dp.in.AdvanceReadPos()
	dp.in.Mutex().Unlock()
	dp.in.SignalNonFull()
}

func (dp *DecodeWorkerPool) produce(waitNonEmpty time.Duration) {
	batchStart := time.Now()
	dp.out.Mutex().Lock()
	waitStart := time.Now()
	for dp.out.Full() {
		dp.out.WaitForNonFull()
	}
	waitNonFull := time.Since(waitStart)

	dp.mu.Lock()
	for i := range dp.startSignaled {
		dp.startSignaled[i] = 1
	}
	dp.started.Broadcast()
	for dp.endSignaled < dp.workerCount {
		dp.ended.Wait()
	}
	dp.endSignaled = 0
	dp.mu.Unlock()

	outPair := dp.out.GetForWrite()
	Transpose(outPair.DataBuf().Data(), dp.batchSize, dp.datumSize/dp.elemSize, dp.elemSize)
	outPair.DataBuf().MarkDense(dp.batchSize, dp.datumSize)
	outPair.TargetBuf().MarkDense(dp.batchSize, dp.targetSize)

	if err := dp.device.CopyData(dp.bufferIndex, outPair.DataBuf()); err != nil {
		dp.setFatal(fmt.Errorf("device copy data: %w", err))
	}
	if err := dp.device.CopyLabels(dp.bufferIndex, outPair.TargetBuf()); err != nil {
		dp.setFatal(fmt.Errorf("device copy labels: %w", err))
	}
	dp.bufferIndex = 1 - dp.bufferIndex

	dp.out.AdvanceWritePos()
	dp.out.Mutex().Unlock()
	dp.out.SignalNonEmpty()

	if dp.stats != nil {
		dp.stats.Record(Sample{
			BatchLatency: time.Since(batchStart),
			WaitNonEmpty: waitNonEmpty,
			WaitNonFull:  waitNonFull,
		})
	}
}
