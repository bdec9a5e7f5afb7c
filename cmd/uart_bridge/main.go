// Bridges a real host serial port to the simulated CMSDK UART: bytes
// arriving on the port are presented on the sim's wire side, and whatever
// the driver transmits drains back out the port. Without -port, keyboard
// input in raw mode stands in for the line. The driver runs a plain echo on
// top, so the far end sees its own bytes come back through the full
// register path.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tty "github.com/mattn/go-tty"
	"github.com/tarm/serial"

	"github.com/jangala-dev/cmsdkuart/cmsdkuart"
	"github.com/jangala-dev/cmsdkuart/sim"
)

const base = uintptr(0x4000_4000)

func main() {
	port := flag.String("port", "", "host serial device (e.g. /dev/ttyUSB0); keyboard when empty")
	baud := flag.Int("baud", 115200, "host port baud rate")
	clk := flag.Uint("clk", 48_000_000, "simulated system clock in Hz")
	flag.Parse()

	s := sim.New(base)
	u := cmsdkuart.New(cmsdkuart.Config{Base: base, DefaultBaud: 115200}, s)
	if err := u.Init(uint32(*clk)); err != nil {
		log.Fatalf("uart init: %v", err)
	}

	in := make(chan byte, 256)
	var send func([]byte)

	if *port != "" {
		p, err := serial.OpenPort(&serial.Config{Name: *port, Baud: *baud})
		if err != nil {
			log.Fatalf("serial.OpenPort: %v", err)
		}
		defer p.Close()
		go func() {
			buf := make([]byte, 128)
			for {
				n, err := p.Read(buf)
				if err != nil {
					log.Printf("port read: %v", err)
					close(in)
					return
				}
				for _, b := range buf[:n] {
					in <- b
				}
			}
		}()
		send = func(p2 []byte) {
			if _, err := p.Write(p2); err != nil {
				log.Printf("port write: %v", err)
			}
		}
	} else {
		t, err := tty.Open()
		if err != nil {
			log.Fatalf("tty.Open: %v", err)
		}
		defer t.Close()
		restore := t.MustRaw()
		defer restore()
		fmt.Println("keyboard bridge; Ctrl-C to exit\r")
		go func() {
			for {
				r, err := t.ReadRune()
				if err != nil {
					close(in)
					return
				}
				if r == 0x03 { // Ctrl-C in raw mode
					close(in)
					return
				}
				for _, b := range []byte(string(r)) {
					in <- b
				}
			}
		}()
		send = func(p2 []byte) { os.Stdout.Write(p2) }
	}

	for b := range in {
		s.PushRx(b)
		// Echo everything received back through the driver's TX path.
		for u.RxReady() {
			c, err := u.ReadByte()
			if err != nil {
				break
			}
			if err := u.WriteByte(c); err != nil {
				log.Printf("uart write: %v", err)
			}
		}
		if out := s.DrainTx(); len(out) > 0 {
			send(out)
		}
	}
}
