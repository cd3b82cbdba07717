//go:build windows
// +build windows

// File: pool/numa_windows.go
// Author: momentics <momentics@gmail.com>
//
// Windows-specific NUMA allocator using VirtualAllocExNuma.

package pool

import (
	"errors"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

// windowsNUMAAllocator is a NUMA allocator implementation for Windows.
type windowsNUMAAllocator struct{}

func newWindowsNUMAAllocator() NUMAAllocator {
	return &windowsNUMAAllocator{}
}

func (w *windowsNUMAAllocator) Alloc(size int, node int) ([]byte, error) {
	ptr, err := virtualAllocExNuma(windows.CurrentProcess(), size, uint32(node))
	if err != nil {
		return nil, errors.New("windows NUMA VirtualAllocExNuma failed: " + err.Error())
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(ptr)), size), nil
}

func (w *windowsNUMAAllocator) Free(buf []byte) {
	if len(buf) == 0 {
		return
	}
	kernel32 := syscall.NewLazyDLL("kernel32.dll")
	procVirtualFree := kernel32.NewProc("VirtualFree")
	addr := uintptr(unsafe.Pointer(&buf[0]))
	const MEM_RELEASE = 0x8000
	procVirtualFree.Call(addr, 0, uintptr(MEM_RELEASE))
}

func (w *windowsNUMAAllocator) Nodes() (int, error) {
	return 1, nil
}
