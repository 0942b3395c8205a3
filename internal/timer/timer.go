// Package timer holds the vocabulary shared by the three AVR timer/counters
// (output-compare actions, force-compare strobes, interrupt masks and the
// compare-output legality rules) and the 8-bit engine behind Timer0 and
// Timer2.
package timer

import "avrassist/core"

// Channel is an output-compare unit.
type Channel uint8

const (
	ChannelA Channel = iota
	ChannelB
)

func (c Channel) String() string {
	if c == ChannelA {
		return "compare_a"
	}
	return "compare_b"
}

// OutputAction is what an output-compare pin does on a compare match.
// It holds the two-bit COMnx1:0 field value; the four variants below are
// the only values callers can build.
type OutputAction struct{ com uint8 }

var (
	Disconnected = OutputAction{0} // normal port operation
	Toggle       = OutputAction{1}
	Clear        = OutputAction{2}
	Set          = OutputAction{3}
)

// Actions lists every OutputAction.
var Actions = [...]OutputAction{Disconnected, Toggle, Clear, Set}

var actionText = core.EnumText{"disconnected", "toggle", "clear", "set"}

func (a OutputAction) String() string { return actionText.Name("OutputAction", a.com) }

func (a OutputAction) MarshalText() ([]byte, error) {
	return actionText.Marshal("OutputAction", a.com)
}

func (a *OutputAction) UnmarshalText(text []byte) error {
	v, err := actionText.Parse("OutputAction", text)
	if err != nil {
		return err
	}
	*a = OutputAction{v}
	return nil
}

// Valid reports whether a is one of the four defined actions.
func (a OutputAction) Valid() bool { return a.com <= Set.com }

// Bits returns the COMnx1:0 pattern for a on channel ch, positioned for
// TCCRnA.
func (a OutputAction) Bits(ch Channel) uint8 {
	if ch == ChannelA {
		return a.com << core.COMnA0
	}
	return a.com << core.COMnB0
}

// Force selects force-compare strobes. The masks are the FOCnA/FOCnB
// positions, shared by TCCR0B, TCCR2B and TCCR1C.
type Force uint8

const (
	ForceNone Force = 0
	ForceA    Force = 1 << core.FOCnA
	ForceB    Force = 1 << core.FOCnB
)

var forceText = core.FlagText{
	{Mask: uint8(ForceA), Name: "a"},
	{Mask: uint8(ForceB), Name: "b"},
}

func (f Force) String() string { return forceText.Format(uint8(f)) }

func (f Force) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

func (f *Force) UnmarshalText(text []byte) error {
	v, err := forceText.Parse("Force", text)
	*f = Force(v)
	return err
}

// Interrupt is a set of timer interrupt enables. The masks are the TIMSKn
// bit positions.
type Interrupt uint8

const (
	InterruptNone     Interrupt = 0
	InterruptOverflow Interrupt = 1 << core.TOIEn
	InterruptMatchA   Interrupt = 1 << core.OCIEnA
	InterruptMatchB   Interrupt = 1 << core.OCIEnB
	InterruptCapture  Interrupt = 1 << core.ICIE1 // Timer1 only
)

// Interrupts8 is the legal interrupt set of an 8-bit timer.
const Interrupts8 = InterruptOverflow | InterruptMatchA | InterruptMatchB

var interruptText = core.FlagText{
	{Mask: uint8(InterruptOverflow), Name: "overflow"},
	{Mask: uint8(InterruptMatchA), Name: "match_a"},
	{Mask: uint8(InterruptMatchB), Name: "match_b"},
	{Mask: uint8(InterruptCapture), Name: "capture"},
}

func (i Interrupt) String() string { return interruptText.Format(uint8(i)) }

func (i Interrupt) MarshalText() ([]byte, error) { return []byte(i.String()), nil }

func (i *Interrupt) UnmarshalText(text []byte) error {
	v, err := interruptText.Parse("Interrupt", text)
	*i = Interrupt(v)
	return err
}

// Kind is the counting behaviour of a waveform generation mode.
type Kind uint8

const (
	KindNormal Kind = iota
	KindCTC
	KindPWM
	KindReserved
)

var kindText = core.EnumText{"normal", "ctc", "pwm", "reserved"}

func (k Kind) String() string { return kindText.Name("Kind", uint8(k)) }

// ModeInfo describes one waveform generation mode.
type ModeInfo struct {
	Name string
	Kind Kind

	// ToggleA reports whether COMnA = toggle has an effect in this PWM
	// mode. In the other PWM modes the datasheet defines it as normal port
	// operation, which would silently leave the pin disconnected.
	ToggleA bool
}

// Outputs is the compare-output part of a timer configuration.
type Outputs struct {
	CompareA OutputAction
	CompareB OutputAction
	Force    Force
}

// CheckOutputs validates compare actions and force strobes against mode.
func CheckOutputs(peripheral string, mode ModeInfo, o Outputs) error {
	if !o.CompareA.Valid() {
		return core.Reject(core.InvalidOptionValue, peripheral, "compare_a", "")
	}
	if !o.CompareB.Valid() {
		return core.Reject(core.InvalidOptionValue, peripheral, "compare_b", "")
	}
	if o.Force&^(ForceA|ForceB) != 0 {
		return core.Reject(core.InvalidOptionValue, peripheral, "force", "")
	}
	if mode.Kind != KindPWM {
		return nil
	}
	if o.CompareB == Toggle {
		return core.Reject(core.IncompatibleOptionForMode, peripheral, "compare_b",
			"toggle is reserved in "+mode.Name)
	}
	if o.CompareA == Toggle && !mode.ToggleA {
		return core.Reject(core.IncompatibleOptionForMode, peripheral, "compare_a",
			"toggle has no effect in "+mode.Name)
	}
	if o.Force != ForceNone {
		return core.Reject(core.IncompatibleOptionForMode, peripheral, "force",
			"force compare is only valid in normal and CTC modes")
	}
	return nil
}

// CheckInterrupts rejects interrupt bits outside legal.
func CheckInterrupts(peripheral string, i, legal Interrupt) error {
	if i&^legal != 0 {
		return core.Reject(core.InvalidOptionValue, peripheral, "interrupts",
			"unsupported interrupt "+Interrupt(i&^legal).String())
	}
	return nil
}

// CompareBits returns the TCCRnA contribution of both compare channels.
func (o Outputs) CompareBits() uint8 {
	return o.CompareA.Bits(ChannelA) | o.CompareB.Bits(ChannelB)
}
