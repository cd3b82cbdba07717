// File: api/config.go
// Package api
// Author: momentics <momentics@gmail.com>
//
// Loader configuration surface, enumerated per spec: sizes fix the
// partition and buffer layout, the reader block controls iteration
// order, and the opaque *Params blobs are handed to Media/Device
// factories without this package inspecting them.

package api

import "time"

// Config holds all configurable parameters for the Loader.
type Config struct {
	BatchSize  int // items per minibatch
	DatumSize  int // bytes per decoded datum
	TargetSize int // bytes per label
	ElemSize   int // bytes per transpose element (e.g. 4 for float32 datums); 0 defaults to 1

	// RawRegionSize bounds the read pool's per-item-indexed raw/compressed
	// data region, in bytes, for one minibatch. 0 defaults to
	// BatchSize*DatumSize, generous enough for uncompressed raw items.
	RawRegionSize int

	// DecodeWorkers overrides the automatically computed decode worker
	// count (see pipeline.WorkerCount). 0 means auto.
	DecodeWorkers int

	// Reader file-system layout (opaque to the loader; forwarded to the
	// Reader factory the caller supplies).
	RepoDir       string
	ArchiveDir    string
	IndexFile     string
	MetaFile      string
	ArchivePrefix string

	// Reader iteration order.
	Shuffle      bool
	Reshuffle    bool
	StartFileIdx int
	SubsetPercent int // deterministic fraction in [1,100]

	// CPU/NUMA pinning, ambient and best-effort.
	PinReadStage    bool
	PinManager      bool
	PinDecodeWorker bool
	NUMANode        int // -1 means no preference

	// Maximum time Stop() will poke the stages before giving up and
	// returning anyway; 0 means wait indefinitely.
	ShutdownTimeout time.Duration
}

// DefaultConfig returns a baseline configuration for the Loader.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:       32,
		DatumSize:       3 * 224 * 224,
		TargetSize:      4,
		ElemSize:        1,
		DecodeWorkers:   0,
		Shuffle:         true,
		Reshuffle:       true,
		StartFileIdx:    0,
		SubsetPercent:   100,
		PinReadStage:    false,
		PinManager:      false,
		PinDecodeWorker: false,
		NUMANode:        -1,
		ShutdownTimeout: 30 * time.Second,
	}
}
