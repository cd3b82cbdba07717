// File: api/collaborators.go
// Package api
// Author: momentics <momentics@gmail.com>
//
// External collaborator contracts for the minibatch loader: the archive
// Reader, the per-item Media transform, and the Device staging target.
// These are specified only at their interface; concrete archive parsers,
// media codecs, and device drivers live outside this module.

package api

// BufferPair is the (data, target) unit that travels through the pipeline.
// Reader.Read populates one; DecodeWorkerPool consumes and produces one.
type BufferPair interface {
	Data() Buffer
	Target() Buffer
}

// Reader fills BufferPairs from a persistent archive.
type Reader interface {
	// Read fills both halves of pair with one minibatch. Returns an error
	// on unrecoverable failure, interpreted as fatal by the ReadStage.
	Read(pair BufferPair) error

	// Reset rewinds the reader to the start of epoch.
	Reset() error

	// ItemCount returns the total number of items the reader will iterate
	// over in one epoch, or -1 if unknown until the first Read.
	ItemCount() int
}

// Media decodes one item from compressed/raw bytes into a fixed-width
// decoded datum.
type Media interface {
	// Transform decodes src into dst, writing exactly len(dst) bytes.
	// Padding/cropping semantics are the Media's responsibility.
	Transform(src []byte, dst []byte) error
}

// DeviceType enumerates the staging target's memory characteristics.
type DeviceType int

const (
	DeviceCPU DeviceType = iota
	DeviceGPU
)

// Device stages decoded minibatches into accelerator-visible memory.
type Device interface {
	// Init binds and prepares device resources. Called once by the Manager.
	Init() error

	// CopyData stages a decoded data half into device slot (0 or 1). src
	// carries Pinned() so a Device that requires page-locked source
	// memory (Type() == DeviceGPU) can enforce it.
	CopyData(slot int, src Buffer) error

	// CopyLabels stages a target half into device slot (0 or 1).
	CopyLabels(slot int, src Buffer) error

	// Type reports whether buffers destined for this device must be pinned.
	Type() DeviceType

	// Close releases device resources.
	Close() error
}
