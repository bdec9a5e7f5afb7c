package sim

import (
	"testing"

	"github.com/jangala-dev/cmsdkuart/cmsdkuart"
)

const base uintptr = 0x4000_4000

func TestLatchOnlyWhileEnabled(t *testing.T) {
	u := New(base)
	u.Write32(base+cmsdkuart.RegCtrl, cmsdkuart.CtrlTxEnable|cmsdkuart.CtrlRxEnable)

	// Events with both IRQ enables masked must not latch.
	u.Write32(base+cmsdkuart.RegData, 'a')
	u.PushRx('b')
	if got := u.Peek(cmsdkuart.RegIntStatus); got != 0 {
		t.Fatalf("INTSTATUS = %#x with IRQs masked, want 0", got)
	}

	u.Write32(base+cmsdkuart.RegCtrl, cmsdkuart.CtrlTxEnable|cmsdkuart.CtrlRxEnable|
		cmsdkuart.CtrlTxIRQEnable|cmsdkuart.CtrlRxIRQEnable)
	u.Write32(base+cmsdkuart.RegData, 'c')
	u.PushRx('d')
	if got := u.Peek(cmsdkuart.RegIntStatus); got != cmsdkuart.IntTx|cmsdkuart.IntRx {
		t.Fatalf("INTSTATUS = %#x with IRQs enabled, want both latched", got)
	}
}

func TestIntclearIsWriteOneToClear(t *testing.T) {
	u := New(base)
	u.Write32(base+cmsdkuart.RegCtrl, cmsdkuart.CtrlTxEnable|cmsdkuart.CtrlTxIRQEnable)
	u.Write32(base+cmsdkuart.RegData, 'x')

	// Writing zero clears nothing.
	u.Write32(base+cmsdkuart.RegIntStatus, 0)
	if got := u.Peek(cmsdkuart.RegIntStatus); got != cmsdkuart.IntTx {
		t.Fatalf("INTSTATUS = %#x after zero write, want TX still latched", got)
	}
	u.Write32(base+cmsdkuart.RegIntStatus, cmsdkuart.IntTx)
	if got := u.Peek(cmsdkuart.RegIntStatus); got != 0 {
		t.Fatalf("INTSTATUS = %#x after clear, want 0", got)
	}
}

func TestStateOverrunClearOnly(t *testing.T) {
	u := New(base)
	u.Write32(base+cmsdkuart.RegCtrl, cmsdkuart.CtrlRxEnable)
	u.PushRx('1')
	u.PushRx('2')

	st := u.Peek(cmsdkuart.RegState)
	if st&cmsdkuart.StateRxOverrun == 0 {
		t.Fatal("RX overrun not set after back-to-back bytes")
	}
	// Trying to clear RXBF through STATE must not work; only the overrun
	// bits are writable.
	u.Write32(base+cmsdkuart.RegState, 0xF)
	st = u.Peek(cmsdkuart.RegState)
	if st&cmsdkuart.StateRxFull == 0 {
		t.Fatal("STATE write cleared RXBF")
	}
	if st&cmsdkuart.StateRxOverrun != 0 {
		t.Fatal("STATE write did not clear the overrun bit")
	}
}

func TestDataReadPopsHoldingRegister(t *testing.T) {
	u := New(base)
	u.Write32(base+cmsdkuart.RegCtrl, cmsdkuart.CtrlRxEnable)
	u.PushRx('q')

	if got := u.Read32(base + cmsdkuart.RegData); got != 'q' {
		t.Fatalf("DATA = %q, want 'q'", byte(got))
	}
	if st := u.Peek(cmsdkuart.RegState); st&cmsdkuart.StateRxFull != 0 {
		t.Fatal("RXBF still set after DATA read")
	}
}

func TestGatedPathsDropBytes(t *testing.T) {
	u := New(base) // CTRL all zero: TX and RX both gated off

	u.Write32(base+cmsdkuart.RegData, 'a')
	if got := u.DrainTx(); len(got) != 0 {
		t.Fatalf("gated transmitter put %q on the wire", got)
	}
	u.PushRx('b')
	if st := u.Peek(cmsdkuart.RegState); st&cmsdkuart.StateRxFull != 0 {
		t.Fatal("gated receiver latched a byte")
	}
}

func TestBauddivMasked(t *testing.T) {
	u := New(base)
	u.Write32(base+cmsdkuart.RegBauddiv, 0xFFFFFFFF)
	if got := u.Peek(cmsdkuart.RegBauddiv); got != cmsdkuart.BauddivMask {
		t.Fatalf("BAUDDIV = %#x, want masked to %#x", got, cmsdkuart.BauddivMask)
	}
}

func TestAccessOutsideWindowPanics(t *testing.T) {
	u := New(base)
	defer func() {
		if recover() == nil {
			t.Fatal("out-of-window access did not panic")
		}
	}()
	u.Read32(base + 0x100)
}

func TestAccessCounters(t *testing.T) {
	u := New(base)
	u.Read32(base + cmsdkuart.RegState)
	u.Write32(base+cmsdkuart.RegCtrl, cmsdkuart.CtrlTxEnable)
	if u.Reads() != 1 || u.Writes() != 1 {
		t.Fatalf("counters = %d reads, %d writes; want 1, 1", u.Reads(), u.Writes())
	}
	u.ResetCounters()
	if u.Reads() != 0 || u.Writes() != 0 {
		t.Fatal("ResetCounters left residue")
	}
	// Peek must not count.
	u.Peek(cmsdkuart.RegState)
	if u.Reads() != 0 {
		t.Fatal("Peek counted as a bus read")
	}
}
