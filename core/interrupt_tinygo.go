//go:build tinygo && avr

package core

import "runtime/interrupt"

// cpuInterrupts drives the global interrupt flag (SREG bit I).
type cpuInterrupts struct{}

// Hardware returns the CPU's global interrupt control.
func Hardware() Interrupts { return cpuInterrupts{} }

func (cpuInterrupts) Disable() InterruptState {
	return InterruptState(interrupt.Disable())
}

func (cpuInterrupts) Restore(state InterruptState) {
	interrupt.Restore(interrupt.State(state))
}

func (cpuInterrupts) Enabled() bool {
	state := interrupt.Disable()
	interrupt.Restore(state)
	return InterruptState(state).Enabled()
}
