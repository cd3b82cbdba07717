//go:build linux
// +build linux

// File: pool/pin_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux page-locking for DMA-capable regions via mlock(2).

package pool

import "golang.org/x/sys/unix"

func pinRegion(region []byte) error {
	if len(region) == 0 {
		return nil
	}
	return unix.Mlock(region)
}

func unpinRegion(region []byte) error {
	if len(region) == 0 {
		return nil
	}
	return unix.Munlock(region)
}
