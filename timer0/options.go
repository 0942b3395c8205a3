package timer0

import (
	"avrassist/core"
	"avrassist/internal/timer"
)

// Mode is a waveform generation mode. Modes 4 and 6 are reserved.
type Mode = timer.Mode8

var (
	ModeNormal       = timer.Mode8Normal
	ModePCPWM255     = timer.Mode8PCPWM255
	ModeCTCOCR0A     = timer.Mode8CTC
	ModeFastPWM255   = timer.Mode8FastPWM255
	ModeReserved4    = timer.Mode8Reserved4
	ModePCPWMOCR0A   = timer.Mode8PCPWMOCRA
	ModeReserved6    = timer.Mode8Reserved6
	ModeFastPWMOCR0A = timer.Mode8FastPWMOCRA
)

// Clock is the clock source. The ordinal is the CS02:0 field.
type Clock struct{ cs uint8 }

var (
	ClockDisabled  = Clock{0}
	ClockDiv1      = Clock{1}
	ClockDiv8      = Clock{2}
	ClockDiv64     = Clock{3}
	ClockDiv256    = Clock{4}
	ClockDiv1024   = Clock{5}
	ClockT0Falling = Clock{6} // external pin T0, falling edge
	ClockT0Rising  = Clock{7} // external pin T0, rising edge
)

var clockText = core.EnumText{
	"disabled", "div1", "div8", "div64", "div256", "div1024", "t0_falling", "t0_rising",
}

// Valid reports whether c is a defined clock source.
func (c Clock) Valid() bool { return c.cs <= ClockT0Rising.cs }

func (c Clock) String() string { return clockText.Name("Clock", c.cs) }

func (c Clock) MarshalText() ([]byte, error) { return clockText.Marshal("Clock", c.cs) }

func (c *Clock) UnmarshalText(text []byte) error {
	v, err := clockText.Parse("Clock", text)
	if err != nil {
		return err
	}
	*c = Clock{v}
	return nil
}

// OutputAction is what OC0A/OC0B do on a compare match.
type OutputAction = timer.OutputAction

var (
	Disconnected = timer.Disconnected
	Toggle       = timer.Toggle
	Clear        = timer.Clear
	Set          = timer.Set
)

// Interrupt is a set of TIMSK0 enables.
type Interrupt = timer.Interrupt

const (
	InterruptNone     = timer.InterruptNone
	InterruptOverflow = timer.InterruptOverflow
	InterruptMatchA   = timer.InterruptMatchA
	InterruptMatchB   = timer.InterruptMatchB
)

// Force selects FOC0A/FOC0B strobes.
type Force = timer.Force

const (
	ForceNone = timer.ForceNone
	ForceA    = timer.ForceA
	ForceB    = timer.ForceB
)
