// cmsdkuart/io.go

package cmsdkuart

// IRQ selects an interrupt source for ClearInterrupt.
type IRQ uint8

const (
	IRQRx IRQ = iota
	IRQTx
	IRQCombined
)

// ReadByte pops one byte from the RX holding register, or returns
// ErrNotReady when nothing is pending. Only the hardware ready bit is
// consulted; the initialized shadow is deliberately not checked on this path
// and reading an unconfigured device returns whatever the register holds.
func (u *UART) ReadByte() (byte, error) {
	if u.read(RegState)&StateRxFull == 0 {
		return 0, ErrNotReady
	}
	return byte(u.read(RegData)), nil
}

// WriteByte pushes one byte into the TX holding register, or returns
// ErrNotReady without touching DATA when the buffer is full. Like ReadByte
// it does not check the initialized shadow.
func (u *UART) WriteByte(b byte) error {
	if u.read(RegState)&StateTxFull != 0 {
		return ErrNotReady
	}
	u.store(RegData, uint32(b))
	return nil
}

// TxReady reports that the TX holding register can accept a byte.
func (u *UART) TxReady() bool { return u.read(RegState)&StateTxFull == 0 }

// RxReady reports that the RX holding register has an unread byte.
func (u *UART) RxReady() bool { return u.read(RegState)&StateRxFull != 0 }

func (u *UART) setCtrl(mask uint32)   { u.store(RegCtrl, u.read(RegCtrl)|mask) }
func (u *UART) clearCtrl(mask uint32) { u.store(RegCtrl, u.read(RegCtrl)&^mask) }

// EnableTx gates the transmit data path on. Independent of the TX interrupt
// enable.
func (u *UART) EnableTx() error { u.setCtrl(CtrlTxEnable); return nil }

// DisableTx gates the transmit data path off.
func (u *UART) DisableTx() { u.clearCtrl(CtrlTxEnable) }

// EnableRx gates the receive data path on.
func (u *UART) EnableRx() error { u.setCtrl(CtrlRxEnable); return nil }

// DisableRx gates the receive data path off.
func (u *UART) DisableRx() { u.clearCtrl(CtrlRxEnable) }

// EnableTxIRQ unmasks the TX interrupt source. Clear the pending latch
// first; the peripheral will re-raise immediately otherwise.
func (u *UART) EnableTxIRQ() error { u.setCtrl(CtrlTxIRQEnable); return nil }

// DisableTxIRQ masks the TX interrupt source.
func (u *UART) DisableTxIRQ() { u.clearCtrl(CtrlTxIRQEnable) }

// EnableRxIRQ unmasks the RX interrupt source. Same ordering contract as
// EnableTxIRQ: clear, then enable.
func (u *UART) EnableRxIRQ() error { u.setCtrl(CtrlRxIRQEnable); return nil }

// DisableRxIRQ masks the RX interrupt source.
func (u *UART) DisableRxIRQ() { u.clearCtrl(CtrlRxIRQEnable) }

// ClearInterrupt clears the pending latch for the given source; IRQCombined
// clears both. An unknown source clears nothing.
func (u *UART) ClearInterrupt(src IRQ) {
	var mask uint32
	switch src {
	case IRQRx:
		mask = IntRx
	case IRQTx:
		mask = IntTx
	case IRQCombined:
		mask = IntRx | IntTx
	}
	u.store(RegIntStatus, mask)
}

// IRQStatus reads the pending latches without clearing them, for routing a
// combined IRQ line. Clearing stays explicit via ClearInterrupt.
func (u *UART) IRQStatus() (tx, rx bool) {
	v := u.read(RegIntStatus)
	return v&IntTx != 0, v&IntRx != 0
}

// TxOverrun reports the sticky TX overrun flag.
func (u *UART) TxOverrun() bool { return u.read(RegState)&StateTxOverrun != 0 }

// RxOverrun reports the sticky RX overrun flag (a byte arrived while the
// holding register was still full and replaced the unread one).
func (u *UART) RxOverrun() bool { return u.read(RegState)&StateRxOverrun != 0 }

// ClearTxOverrun clears the sticky TX overrun flag (write-1-to-clear).
func (u *UART) ClearTxOverrun() { u.store(RegState, StateTxOverrun) }

// ClearRxOverrun clears the sticky RX overrun flag.
func (u *UART) ClearRxOverrun() { u.store(RegState, StateRxOverrun) }
