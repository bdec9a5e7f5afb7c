// mmio/mmio.go

// Package mmio provides the raw register primitives the driver is built on:
// absolute 32-bit loads and stores against memory-mapped peripheral space.
// It is only meaningful on a target where peripheral space is addressable
// directly; host tests and tools substitute the sim package instead.
package mmio

import (
	"unsafe"

	"github.com/jangala-dev/cmsdkuart/cmsdkuart"
)

// Mem accesses physical addresses through unsafe pointers. No barriers are
// inserted; Cortex-M device memory is strongly ordered for this use.
type Mem struct{}

var _ cmsdkuart.Bus = Mem{}

func (Mem) Read32(addr uintptr) uint32 {
	return *(*uint32)(unsafe.Pointer(addr))
}

func (Mem) Write32(addr uintptr, v uint32) {
	*(*uint32)(unsafe.Pointer(addr)) = v
}
