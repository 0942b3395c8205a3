//go:build tinygo && avr

// Command atmega328p is the register monitor firmware. It answers the
// host's link commands on the hardware UART so that profiles can be
// applied to a board without reflashing it.
package main

import (
	"machine"
	"time"

	"avrassist/core"
	"avrassist/link"
	"avrassist/watchdog"
)

const baudRate = 115200

func main() {
	uart := machine.Serial
	uart.Configure(machine.UARTConfig{BaudRate: baudRate})

	// A watchdog left running by the previous program would reset the
	// board while the host is still connecting.
	regs := core.MMIO{}
	watchdog.New(regs, core.Hardware()).Configure(watchdog.Config{Mode: watchdog.ModeOff})

	server := link.NewServer(regs, core.Hardware())
	for {
		if err := server.Serve(uart); err != nil {
			time.Sleep(10 * time.Millisecond)
		}
	}
}
