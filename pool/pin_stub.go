//go:build !linux && !windows
// +build !linux,!windows

// File: pool/pin_stub.go
// Author: momentics <momentics@gmail.com>
//
// Stub page-locking for platforms without a known pinning syscall.

package pool

import "errors"

func pinRegion(region []byte) error {
	return errors.New("pool: pinned memory not supported on this platform")
}

func unpinRegion(region []byte) error {
	return nil
}
