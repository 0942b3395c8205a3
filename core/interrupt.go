package core

// InterruptState is the saved global interrupt-enable state. On AVR it is
// the SREG value returned by runtime/interrupt.Disable.
type InterruptState uintptr

// Interrupts is the global interrupt control capability. It is only used
// inside the watchdog's critical section.
type Interrupts interface {
	// Disable masks interrupts and returns the previous state.
	Disable() InterruptState

	// Restore writes back a state returned by Disable.
	Restore(state InterruptState)

	// Enabled reports whether interrupts are currently enabled.
	Enabled() bool
}

// sregI is the global interrupt enable bit of SREG.
const sregI = 1 << 7

// SoftInterrupts is a flag-backed Interrupts for host builds.
type SoftInterrupts struct {
	enabled bool
}

// NewSoftInterrupts returns a SoftInterrupts in the given state.
func NewSoftInterrupts(enabled bool) *SoftInterrupts {
	return &SoftInterrupts{enabled: enabled}
}

func (s *SoftInterrupts) Disable() InterruptState {
	state := StateOf(s.enabled)
	s.enabled = false
	return state
}

func (s *SoftInterrupts) Restore(state InterruptState) {
	s.enabled = state.Enabled()
}

func (s *SoftInterrupts) Enabled() bool {
	return s.enabled
}

// StateOf returns the InterruptState representing the given flag.
func StateOf(enabled bool) InterruptState {
	if enabled {
		return sregI
	}
	return 0
}

// Enabled reports whether the state has the interrupt enable bit set.
func (s InterruptState) Enabled() bool {
	return s&sregI != 0
}
