package timer2

import (
	"avrassist/core"
	"avrassist/internal/timer"
)

// Mode is a waveform generation mode. Modes 4 and 6 are reserved.
type Mode = timer.Mode8

var (
	ModeNormal       = timer.Mode8Normal
	ModePCPWM255     = timer.Mode8PCPWM255
	ModeCTCOCR2A     = timer.Mode8CTC
	ModeFastPWM255   = timer.Mode8FastPWM255
	ModeReserved4    = timer.Mode8Reserved4
	ModePCPWMOCR2A   = timer.Mode8PCPWMOCRA
	ModeReserved6    = timer.Mode8Reserved6
	ModeFastPWMOCR2A = timer.Mode8FastPWMOCRA
)

// Clock is the prescaler selection. The ordinal is the CS22:0 field.
// Timer2 has no external clock pin, so all eight patterns are prescaler
// taps, including /32 and /128 which Timer0 lacks.
type Clock struct{ cs uint8 }

var (
	ClockDisabled = Clock{0}
	ClockDiv1     = Clock{1}
	ClockDiv8     = Clock{2}
	ClockDiv32    = Clock{3}
	ClockDiv64    = Clock{4}
	ClockDiv128   = Clock{5}
	ClockDiv256   = Clock{6}
	ClockDiv1024  = Clock{7}
)

var clockText = core.EnumText{
	"disabled", "div1", "div8", "div32", "div64", "div128", "div256", "div1024",
}

// Valid reports whether c is a defined clock source.
func (c Clock) Valid() bool { return c.cs <= ClockDiv1024.cs }

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

// OutputAction is what OC2A/OC2B do on a compare match.
type OutputAction = timer.OutputAction

var (
	Disconnected = timer.Disconnected
	Toggle       = timer.Toggle
	Clear        = timer.Clear
	Set          = timer.Set
)

// Interrupt is a set of TIMSK2 enables.
type Interrupt = timer.Interrupt

const (
	InterruptNone     = timer.InterruptNone
	InterruptOverflow = timer.InterruptOverflow
	InterruptMatchA   = timer.InterruptMatchA
	InterruptMatchB   = timer.InterruptMatchB
)

// Force selects FOC2A/FOC2B strobes.
type Force = timer.Force

const (
	ForceNone = timer.ForceNone
	ForceA    = timer.ForceA
	ForceB    = timer.ForceB
)
