// cmsdkuart/cmsdkuart.go

// Package cmsdkuart drives the ARM CMSDK APB UART at the register level:
// baud programming, single-byte TX/RX, data-path gating and interrupt
// enable/clear for one peripheral instance. The driver is non-blocking
// throughout; "wait for ready" loops and buffering belong to the caller, as
// does serialising access when a main loop and an interrupt handler share a
// handle.
//
// Register access goes through the Bus interface so the same driver runs
// against real peripheral space (package mmio) or a behavioural model
// (package sim) on a host.
package cmsdkuart

import "errors"

// Bus performs 32-bit accesses against memory-mapped peripheral space.
// Addresses are absolute; the driver adds its instance base itself.
type Bus interface {
	Read32(addr uintptr) uint32
	Write32(addr uintptr, v uint32)
}

// The closed error set. Every fallible operation returns one of these (or
// nil); callers may rely on errors.Is against the specific condition.
var (
	ErrInvalidArg  = errors.New("uart: invalid argument")
	ErrInvalidBaud = errors.New("uart: invalid baudrate")
	ErrNotInit     = errors.New("uart: not initialized")
	ErrNotReady    = errors.New("uart: not ready")
)

// Config fixes one UART instance at construction: the register base address
// and the baud rate Init programs. It is never mutated afterwards.
type Config struct {
	Base        uintptr
	DefaultBaud uint32
}

// UART is the handle for one physical instance: its Config, its register
// bus, and a shadow of the last successfully programmed configuration. The
// shadow is the only state the driver keeps off-chip; it stays consistent
// with the registers because every reconfiguration is all-or-nothing.
type UART struct {
	cfg Config
	bus Bus

	initialized bool
	systemClk   uint32
	baud        uint32
}

// New returns an uninitialized handle. Handles are constructed once at
// bring-up and live for the device lifetime; there is no teardown.
func New(cfg Config, bus Bus) *UART {
	return &UART{cfg: cfg, bus: bus}
}

func (u *UART) read(off uintptr) uint32     { return u.bus.Read32(u.cfg.Base + off) }
func (u *UART) store(off uintptr, v uint32) { u.bus.Write32(u.cfg.Base+off, v) }

// bauddivFor computes the BAUDDIV value for a clock/baud pair, rounded to
// nearest with ties up (truncation can cost most of a bit time at high
// rates). ok is false when baud is zero or the result falls outside the
// register contract.
func bauddivFor(systemClk, baud uint32) (div uint32, ok bool) {
	if baud == 0 {
		return 0, false
	}
	d := (2*uint64(systemClk) + uint64(baud)) / (2 * uint64(baud))
	if d < uint64(BauddivMin) || d > uint64(BauddivMax) {
		return 0, false
	}
	return uint32(d), true
}

// Init programs the peripheral for the Config's default baud rate at the
// given system clock and enables the transmitter and receiver. CTRL is
// written whole, so both interrupt sources come up disabled. Calling Init
// again is allowed and returns the instance to the default rate; the
// initialized flag is never cleared.
//
// On error nothing is touched: registers and shadow keep their previous
// values and the handle stays usable.
func (u *UART) Init(systemClk uint32) error {
	if systemClk == 0 {
		return ErrInvalidArg
	}
	div, ok := bauddivFor(systemClk, u.cfg.DefaultBaud)
	if !ok {
		return ErrInvalidBaud
	}
	u.store(RegBauddiv, div)
	u.store(RegCtrl, CtrlTxEnable|CtrlRxEnable)
	u.systemClk = systemClk
	u.baud = u.cfg.DefaultBaud
	u.initialized = true
	return nil
}

// SetBaudRate reprograms the divisor for the current system clock. The
// update is all-or-nothing: on ErrInvalidBaud neither BAUDDIV nor the shadow
// rate changes. Before Init the stored clock is zero, so every rate is
// rejected the same way.
func (u *UART) SetBaudRate(baud uint32) error {
	div, ok := bauddivFor(u.systemClk, baud)
	if !ok {
		return ErrInvalidBaud
	}
	u.store(RegBauddiv, div)
	u.baud = baud
	return nil
}

// BaudRate returns the shadow baud rate without touching the hardware.
func (u *UART) BaudRate() uint32 { return u.baud }

// SetClock records a system clock change and reprograms the divisor so the
// current baud rate survives it. The divisor is validated against the new
// clock before anything is committed; a rejected change leaves clock, rate
// and registers as they were.
func (u *UART) SetClock(systemClk uint32) error {
	if systemClk == 0 {
		return ErrInvalidArg
	}
	if !u.initialized {
		return ErrNotInit
	}
	div, ok := bauddivFor(systemClk, u.baud)
	if !ok {
		return ErrInvalidBaud
	}
	u.store(RegBauddiv, div)
	u.systemClk = systemClk
	return nil
}

// SystemClock returns the shadow system clock.
func (u *UART) SystemClock() uint32 { return u.systemClk }

// Initialized reports whether Init has succeeded on this handle.
func (u *UART) Initialized() bool { return u.initialized }
