// Scripted self-test for the CMSDK UART driver against the simulated
// register block: bring-up, loopback integrity (SHA-1 compared on both
// sides), error paths, and interrupt latch ordering.
package main

import (
	"bytes"
	"crypto/sha1"
	"errors"
	"fmt"
	"os"

	"github.com/jangala-dev/cmsdkuart/cmsdkuart"
	"github.com/jangala-dev/cmsdkuart/sim"
)

const (
	base        = uintptr(0x4000_4000)
	defaultBaud = 115200
	systemClk   = 48_000_000
	payloadLen  = 4096
)

var failures int

func check(name string, ok bool, detail string) {
	if ok {
		fmt.Printf("ok   %s\n", name)
		return
	}
	failures++
	fmt.Printf("FAIL %s: %s\n", name, detail)
}

// pump pushes p through the looped-back line one byte at a time, reading
// back everything that appears on the RX side.
func pump(u *cmsdkuart.UART, p []byte) []byte {
	out := make([]byte, 0, len(p))
	for _, b := range p {
		for !u.TxReady() {
		}
		if err := u.WriteByte(b); err != nil {
			fmt.Printf("write error: %v\n", err)
			break
		}
		for u.RxReady() {
			c, err := u.ReadByte()
			if err != nil {
				break
			}
			out = append(out, c)
		}
	}
	return out
}

func main() {
	fmt.Println("cmsdkuart self-test starting")

	s := sim.New(base)
	s.SetLoopback(true)
	u := cmsdkuart.New(cmsdkuart.Config{Base: base, DefaultBaud: defaultBaud}, s)

	// Bring-up.
	err := u.Init(systemClk)
	check("init", err == nil, fmt.Sprint(err))
	check("default baud", u.BaudRate() == defaultBaud,
		fmt.Sprintf("got %d", u.BaudRate()))

	// Loopback integrity: pseudo-random payload, digest compared.
	payload := make([]byte, payloadLen)
	seed := uint32(0x2545_F491)
	for i := range payload {
		seed = seed*1664525 + 1013904223
		payload[i] = byte(seed >> 24)
	}
	got := pump(u, payload)
	check("loopback length", len(got) == len(payload),
		fmt.Sprintf("sent %d received %d", len(payload), len(got)))
	sent, recv := sha1.Sum(payload), sha1.Sum(got)
	check("loopback sha1", bytes.Equal(sent[:], recv[:]),
		fmt.Sprintf("sent %x recv %x", sent, recv))

	// Reconfiguration paths.
	err = u.SetBaudRate(0)
	check("reject zero baud", errors.Is(err, cmsdkuart.ErrInvalidBaud), fmt.Sprint(err))
	check("baud preserved on failure", u.BaudRate() == defaultBaud,
		fmt.Sprintf("got %d", u.BaudRate()))
	err = u.SetClock(96_000_000)
	check("clock change", err == nil && u.BaudRate() == defaultBaud,
		fmt.Sprintf("err=%v baud=%d", err, u.BaudRate()))

	// Not-ready on a stalled transmitter.
	s.SetTxHold(true)
	_ = u.WriteByte('A')
	err = u.WriteByte('B')
	check("write not-ready", errors.Is(err, cmsdkuart.ErrNotReady), fmt.Sprint(err))
	s.SetTxHold(false)
	for u.RxReady() { // the held byte loops back once released
		_, _ = u.ReadByte()
	}

	// Clear-then-enable keeps the latch down.
	_ = u.EnableRxIRQ()
	s.PushRx('!')
	_, rx := u.IRQStatus()
	check("rx latch", rx, "no latch after rx event")
	u.DisableRxIRQ()
	u.ClearInterrupt(cmsdkuart.IRQRx)
	_ = u.EnableRxIRQ()
	_, rx = u.IRQStatus()
	check("clear then enable", !rx, "latch re-set without a new event")

	fmt.Printf("bus traffic: %d reads, %d writes\n", s.Reads(), s.Writes())
	if failures > 0 {
		fmt.Printf("self-test FAILED (%d)\n", failures)
		os.Exit(1)
	}
	fmt.Println("self-test PASSED")
}
