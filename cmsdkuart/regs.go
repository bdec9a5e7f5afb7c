// cmsdkuart/regs.go

package cmsdkuart

// CMSDK APB UART register map, offsets relative to the instance base.
// Exported so interrupt glue and register-level tooling can address the
// block without duplicating the layout.
const (
	RegData      uintptr = 0x000 // read pops RX, write pushes TX (low byte)
	RegState     uintptr = 0x004
	RegCtrl      uintptr = 0x008
	RegIntStatus uintptr = 0x00C // INTSTATUS on read, INTCLEAR on write
	RegBauddiv   uintptr = 0x010
)

// STATE bits. The overrun bits are write-1-to-clear.
const (
	StateTxFull    uint32 = 1 << 0
	StateRxFull    uint32 = 1 << 1
	StateTxOverrun uint32 = 1 << 2
	StateRxOverrun uint32 = 1 << 3
)

// CTRL bits.
const (
	CtrlTxEnable    uint32 = 1 << 0
	CtrlRxEnable    uint32 = 1 << 1
	CtrlTxIRQEnable uint32 = 1 << 2
	CtrlRxIRQEnable uint32 = 1 << 3
)

// INTSTATUS/INTCLEAR bits.
const (
	IntTx uint32 = 1 << 0
	IntRx uint32 = 1 << 1
)

// BAUDDIV is 20 bits wide. The low bound is the 16x oversampler: the
// receiver needs at least 16 clocks per bit, so any divisor below 16 cannot
// produce a usable bit clock regardless of what the register would hold.
const (
	BauddivMask uint32 = 0xFFFFF
	BauddivMin  uint32 = 16
	BauddivMax  uint32 = BauddivMask
)
