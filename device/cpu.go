// File: device/cpu.go
// Author: momentics <momentics@gmail.com>
//
// CPU is a reference api.Device that stages decoded minibatches into two
// plain host-memory slots, exercising the Manager's device handoff
// without any accelerator. Grounded on the original loader's
// double-buffered device staging (slot index toggled by the Manager
// after each produce()).

package device

import "github.com/momentics/mbloader/api"

// CPU stages decoded data/labels into ordinary (unpinned) host memory.
type CPU struct {
	dataSlots   [2][]byte
	labelSlots  [2][]byte
}

var _ api.Device = (*CPU)(nil)

// NewCPU preallocates both staging slots for a minibatch of dataSize
// data bytes and labelSize label bytes.
func NewCPU(dataSize, labelSize int) *CPU {
	return &CPU{
		dataSlots:  [2][]byte{make([]byte, dataSize), make([]byte, dataSize)},
		labelSlots: [2][]byte{make([]byte, labelSize), make([]byte, labelSize)},
	}
}

func (c *CPU) Init() error { return nil }

func (c *CPU) CopyData(slot int, src api.Buffer) error {
	copy(c.dataSlots[slot%2], src.Data())
	return nil
}

func (c *CPU) CopyLabels(slot int, src api.Buffer) error {
	copy(c.labelSlots[slot%2], src.Data())
	return nil
}

func (c *CPU) Type() api.DeviceType { return api.DeviceCPU }

func (c *CPU) Close() error { return nil }

// DataSlot returns a read-only view of the data staged in slot, for
// tests and CPU-side consumers.
func (c *CPU) DataSlot(slot int) []byte { return c.dataSlots[slot%2] }

// LabelSlot returns a read-only view of the labels staged in slot.
func (c *CPU) LabelSlot(slot int) []byte { return c.labelSlots[slot%2] }
