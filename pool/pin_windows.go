//go:build windows
// +build windows

// File: pool/pin_windows.go
// Author: momentics <momentics@gmail.com>
//
// Windows page-locking for DMA-capable regions via VirtualLock.

package pool

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

func pinRegion(region []byte) error {
	if len(region) == 0 {
		return nil
	}
	return windows.VirtualLock(uintptr(unsafe.Pointer(&region[0])), uintptr(len(region)))
}

func unpinRegion(region []byte) error {
	if len(region) == 0 {
		return nil
	}
	return windows.VirtualUnlock(uintptr(unsafe.Pointer(&region[0])), uintptr(len(region)))
}
