//go:build !(tinygo && avr)

package core

// hostInterrupts is shared by every Hardware caller in a host build, the
// way a single SREG is shared on the chip.
var hostInterrupts = NewSoftInterrupts(true)

// Hardware returns the global interrupt control. Host builds have no CPU
// flag to drive and get a process-wide SoftInterrupts, enabled at start.
func Hardware() Interrupts { return hostInterrupts }
