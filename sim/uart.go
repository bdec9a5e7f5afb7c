// sim/uart.go

// Package sim models the CMSDK APB UART register block so the driver can be
// exercised on a host. A sim.UART stands in for the hardware on both sides:
// it implements cmsdkuart.Bus for the CPU-facing registers, and exposes
// PushRx/DrainTx as the wire.
package sim

import (
	"fmt"

	"github.com/jangala-dev/cmsdkuart/cmsdkuart"
)

// UART is a behavioural model of one CMSDK UART instance.
//
// Like the real driver contract it assumes a single logical owner and does
// no locking. TX bytes leave the holding register immediately unless TxHold
// is set; RX is the 1-byte holding register of the real peripheral, fed by
// PushRx. Interrupt latches follow the hardware rule: an event only latches
// while its CTRL enable bit is set.
type UART struct {
	base uintptr

	state   uint32
	ctrl    uint32
	intbits uint32
	bauddiv uint32

	rxData byte // RX holding register, valid while STATE.RXBF
	txData byte // TX holding register, valid while STATE.TXBF (TxHold only)

	txq      []byte // bytes that left the transmitter ("the wire")
	txHold   bool
	loopback bool

	reads  int
	writes int
}

var _ cmsdkuart.Bus = (*UART)(nil)

// New returns a model mapped at base with all registers zero.
func New(base uintptr) *UART {
	return &UART{base: base}
}

func (u *UART) offset(addr uintptr) uintptr {
	if addr < u.base || addr > u.base+cmsdkuart.RegBauddiv {
		panic(fmt.Sprintf("sim: access outside UART window: %#x (base %#x)", addr, u.base))
	}
	return addr - u.base
}

// Read32 implements cmsdkuart.Bus. Reading DATA pops the RX holding
// register, as on the real peripheral.
func (u *UART) Read32(addr uintptr) uint32 {
	off := u.offset(addr)
	u.reads++
	switch off {
	case cmsdkuart.RegData:
		u.state &^= cmsdkuart.StateRxFull
		return uint32(u.rxData)
	case cmsdkuart.RegState:
		return u.state
	case cmsdkuart.RegCtrl:
		return u.ctrl
	case cmsdkuart.RegIntStatus:
		return u.intbits
	default: // RegBauddiv
		return u.bauddiv
	}
}

// Write32 implements cmsdkuart.Bus.
func (u *UART) Write32(addr uintptr, v uint32) {
	off := u.offset(addr)
	u.writes++
	switch off {
	case cmsdkuart.RegData:
		u.writeData(byte(v))
	case cmsdkuart.RegState:
		// Only the overrun bits are write-1-to-clear; TXBF/RXBF are not
		// writable.
		u.state &^= v & (cmsdkuart.StateTxOverrun | cmsdkuart.StateRxOverrun)
	case cmsdkuart.RegCtrl:
		u.ctrl = v & (cmsdkuart.CtrlTxEnable | cmsdkuart.CtrlRxEnable |
			cmsdkuart.CtrlTxIRQEnable | cmsdkuart.CtrlRxIRQEnable)
	case cmsdkuart.RegIntStatus:
		u.intbits &^= v & (cmsdkuart.IntTx | cmsdkuart.IntRx)
	default: // RegBauddiv
		u.bauddiv = v & cmsdkuart.BauddivMask
	}
}

func (u *UART) writeData(b byte) {
	if u.ctrl&cmsdkuart.CtrlTxEnable == 0 {
		// Transmitter gated off: the byte goes nowhere.
		return
	}
	if u.txHold {
		if u.state&cmsdkuart.StateTxFull != 0 {
			u.state |= cmsdkuart.StateTxOverrun
			return
		}
		u.txData = b
		u.state |= cmsdkuart.StateTxFull
		return
	}
	u.transmit(b)
}

// transmit moves a byte onto the wire and latches the TX interrupt (buffer
// now empty) if enabled.
func (u *UART) transmit(b byte) {
	u.txq = append(u.txq, b)
	if u.ctrl&cmsdkuart.CtrlTxIRQEnable != 0 {
		u.intbits |= cmsdkuart.IntTx
	}
	if u.loopback {
		u.PushRx(b)
	}
}

// PushRx presents one byte on the wire side. With the receiver gated off the
// byte is lost. A byte arriving while the holding register is still full
// replaces it and sets the sticky RX overrun flag.
func (u *UART) PushRx(b byte) {
	if u.ctrl&cmsdkuart.CtrlRxEnable == 0 {
		return
	}
	if u.state&cmsdkuart.StateRxFull != 0 {
		u.state |= cmsdkuart.StateRxOverrun
	}
	u.rxData = b
	u.state |= cmsdkuart.StateRxFull
	if u.ctrl&cmsdkuart.CtrlRxIRQEnable != 0 {
		u.intbits |= cmsdkuart.IntRx
	}
}

// DrainTx returns everything transmitted since the last call.
func (u *UART) DrainTx() []byte {
	out := u.txq
	u.txq = nil
	return out
}

// SetTxHold makes the TX holding register stick (STATE.TXBF stays set after
// a write) so not-ready paths can be exercised. Turning hold off releases a
// held byte onto the wire.
func (u *UART) SetTxHold(hold bool) {
	if !hold && u.txHold && u.state&cmsdkuart.StateTxFull != 0 {
		u.state &^= cmsdkuart.StateTxFull
		u.transmit(u.txData)
	}
	u.txHold = hold
}

// SetLoopback wires the transmitter back into the receiver.
func (u *UART) SetLoopback(on bool) { u.loopback = on }

// SetRawState forces the STATE register to an arbitrary bit pattern. Test
// hook only; the driver must cope with any pattern the register can hold.
func (u *UART) SetRawState(v uint32) { u.state = v & 0xF }

// Peek returns a register value without counting as a bus access and
// without DATA's pop side effect.
func (u *UART) Peek(off uintptr) uint32 {
	switch off {
	case cmsdkuart.RegData:
		return uint32(u.rxData)
	case cmsdkuart.RegState:
		return u.state
	case cmsdkuart.RegCtrl:
		return u.ctrl
	case cmsdkuart.RegIntStatus:
		return u.intbits
	case cmsdkuart.RegBauddiv:
		return u.bauddiv
	}
	panic(fmt.Sprintf("sim: peek at unknown offset %#x", off))
}

// Reads returns the number of bus reads since the last ResetCounters.
func (u *UART) Reads() int { return u.reads }

// Writes returns the number of bus writes since the last ResetCounters.
func (u *UART) Writes() int { return u.writes }

// ResetCounters zeroes the bus access counters.
func (u *UART) ResetCounters() { u.reads, u.writes = 0, 0 }
