// File: device/fakegpu.go
// Author: momentics <momentics@gmail.com>
//
// FakeGPU is a reference api.Device standing in for an accelerator: it
// reports DeviceGPU so the Loader's startup path provisions the decode
// pool's regions as pinned (page-locked, DMA-capable) memory per spec
// §5, and records every staged copy so tests can assert the source
// slices it received came from pinned Buffers. CopyData/CopyLabels panic
// if handed an unpinned source, since a real accelerator's DMA engine
// would reject it the same way.

package device

import "github.com/momentics/mbloader/api"

// FakeGPU stands in for an accelerator without touching real device
// memory; it only records what it was handed.
type FakeGPU struct {
	dataSlots  [2][]byte
	labelSlots [2][]byte

	CopyDataCalls   int
	CopyLabelsCalls int
	LastDataSrc     []byte
	LastLabelsSrc   []byte
}

var _ api.Device = (*FakeGPU)(nil)

func NewFakeGPU(dataSize, labelSize int) *FakeGPU {
	return &FakeGPU{
		dataSlots:  [2][]byte{make([]byte, dataSize), make([]byte, dataSize)},
		labelSlots: [2][]byte{make([]byte, labelSize), make([]byte, labelSize)},
	}
}

func (g *FakeGPU) Init() error { return nil }

func (g *FakeGPU) CopyData(slot int, src api.Buffer) error {
	if !src.Pinned() {
		panic("FakeGPU.CopyData: source buffer is not pinned")
	}
	g.CopyDataCalls++
	g.LastDataSrc = src.Data()
	copy(g.dataSlots[slot%2], src.Data())
	return nil
}

func (g *FakeGPU) CopyLabels(slot int, src api.Buffer) error {
	if !src.Pinned() {
		panic("FakeGPU.CopyLabels: source buffer is not pinned")
	}
	g.CopyLabelsCalls++
	g.LastLabelsSrc = src.Data()
	copy(g.labelSlots[slot%2], src.Data())
	return nil
}

func (g *FakeGPU) Type() api.DeviceType { return api.DeviceGPU }

func (g *FakeGPU) Close() error { return nil }
