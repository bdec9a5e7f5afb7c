// Interactive register-level diagnostic for the CMSDK UART driver over the
// simulated peripheral. Commands drive the driver API on the CPU side and
// the sim hooks on the wire side, so both halves of the contract can be
// poked by hand.
package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"

	"github.com/google/shlex"

	"github.com/jangala-dev/cmsdkuart/cmsdkuart"
	"github.com/jangala-dev/cmsdkuart/sim"
)

const usage = `commands:
  init <clk_hz>          initialize with the default baud rate
  baud <rate>            set baud rate
  clock <clk_hz>         change system clock, keep rate
  write <text>           transmit text byte by byte
  writehex <hex>         transmit raw bytes, e.g. writehex 48690a
  read                   drain pending RX bytes
  push <text>            inject text on the wire side (RX)
  drain                  show what left the transmitter
  ctrl <tx|rx|txirq|rxirq> <on|off>
  irq                    show interrupt latches
  clear <tx|rx|all>      clear interrupt latch(es)
  hold <on|off>          stall / release the TX holding register
  loop <on|off>          loopback TX to RX
  regs                   dump the register block
  status                 driver shadow state
  quit`

type diag struct {
	u *cmsdkuart.UART
	s *sim.UART
}

func (d *diag) regs() {
	for _, r := range []struct {
		name string
		off  uintptr
	}{
		{"DATA", cmsdkuart.RegData},
		{"STATE", cmsdkuart.RegState},
		{"CTRL", cmsdkuart.RegCtrl},
		{"INTSTATUS", cmsdkuart.RegIntStatus},
		{"BAUDDIV", cmsdkuart.RegBauddiv},
	} {
		fmt.Printf("  %-9s %#08x\n", r.name, d.s.Peek(r.off))
	}
}

func (d *diag) readAll() {
	n := 0
	for d.u.RxReady() {
		b, err := d.u.ReadByte()
		if err != nil {
			fmt.Println("read:", err)
			return
		}
		fmt.Printf("  rx %#02x %q\n", b, b)
		n++
	}
	if n == 0 {
		fmt.Println("  rx empty")
	}
}

func (d *diag) send(p []byte) {
	for _, b := range p {
		if err := d.u.WriteByte(b); err != nil {
			fmt.Printf("write %#02x: %v\n", b, err)
			return
		}
	}
	fmt.Printf("  %d byte(s) accepted\n", len(p))
}

func parseU32(s string) (uint32, bool) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		fmt.Println("bad number:", s)
		return 0, false
	}
	return uint32(v), true
}

func onOff(s string) (bool, bool) {
	switch s {
	case "on":
		return true, true
	case "off":
		return false, true
	}
	fmt.Println("want on|off, got", s)
	return false, false
}

func (d *diag) dispatch(args []string) bool {
	report := func(err error) {
		if err != nil {
			fmt.Println(" ", err)
		} else {
			fmt.Println("  ok")
		}
	}

	switch args[0] {
	case "init":
		if len(args) == 2 {
			if clk, ok := parseU32(args[1]); ok {
				report(d.u.Init(clk))
			}
		}
	case "baud":
		if len(args) == 2 {
			if rate, ok := parseU32(args[1]); ok {
				report(d.u.SetBaudRate(rate))
			}
		}
	case "clock":
		if len(args) == 2 {
			if clk, ok := parseU32(args[1]); ok {
				report(d.u.SetClock(clk))
			}
		}
	case "write":
		if len(args) >= 2 {
			d.send([]byte(args[1]))
		}
	case "writehex":
		if len(args) == 2 {
			p, err := hex.DecodeString(args[1])
			if err != nil {
				fmt.Println("bad hex:", err)
				break
			}
			d.send(p)
		}
	case "read":
		d.readAll()
	case "push":
		if len(args) >= 2 {
			for _, b := range []byte(args[1]) {
				d.s.PushRx(b)
			}
		}
	case "drain":
		fmt.Printf("  tx %q\n", d.s.DrainTx())
	case "ctrl":
		if len(args) == 3 {
			on, ok := onOff(args[2])
			if !ok {
				break
			}
			switch args[1] {
			case "tx":
				if on {
					report(d.u.EnableTx())
				} else {
					d.u.DisableTx()
				}
			case "rx":
				if on {
					report(d.u.EnableRx())
				} else {
					d.u.DisableRx()
				}
			case "txirq":
				if on {
					report(d.u.EnableTxIRQ())
				} else {
					d.u.DisableTxIRQ()
				}
			case "rxirq":
				if on {
					report(d.u.EnableRxIRQ())
				} else {
					d.u.DisableRxIRQ()
				}
			default:
				fmt.Println("unknown path:", args[1])
			}
		}
	case "irq":
		tx, rx := d.u.IRQStatus()
		fmt.Printf("  latches: tx=%v rx=%v  overrun: tx=%v rx=%v\n",
			tx, rx, d.u.TxOverrun(), d.u.RxOverrun())
	case "clear":
		if len(args) == 2 {
			switch args[1] {
			case "tx":
				d.u.ClearInterrupt(cmsdkuart.IRQTx)
			case "rx":
				d.u.ClearInterrupt(cmsdkuart.IRQRx)
			case "all":
				d.u.ClearInterrupt(cmsdkuart.IRQCombined)
			default:
				fmt.Println("want tx|rx|all")
			}
		}
	case "hold":
		if len(args) == 2 {
			if on, ok := onOff(args[1]); ok {
				d.s.SetTxHold(on)
			}
		}
	case "loop":
		if len(args) == 2 {
			if on, ok := onOff(args[1]); ok {
				d.s.SetLoopback(on)
			}
		}
	case "regs":
		d.regs()
	case "status":
		fmt.Printf("  initialized=%v clk=%d baud=%d txready=%v rxready=%v\n",
			d.u.Initialized(), d.u.SystemClock(), d.u.BaudRate(),
			d.u.TxReady(), d.u.RxReady())
	case "help":
		fmt.Println(usage)
	case "quit", "exit":
		return false
	default:
		fmt.Println("unknown command; try help")
	}
	return true
}

func main() {
	const base = uintptr(0x4000_4000)
	s := sim.New(base)
	d := &diag{
		u: cmsdkuart.New(cmsdkuart.Config{Base: base, DefaultBaud: 115200}, s),
		s: s,
	}

	fmt.Println("cmsdkuart diag; type help")
	in := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !in.Scan() {
			break
		}
		args, err := shlex.Split(in.Text())
		if err != nil {
			fmt.Println("parse:", err)
			continue
		}
		if len(args) == 0 {
			continue
		}
		if !d.dispatch(args) {
			break
		}
	}
}
