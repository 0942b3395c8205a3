package comparator

import "avrassist/core"

// Reference selects the positive comparator input.
type Reference struct{ bandgap bool }

var (
	ReferenceExternal = Reference{false} // AIN0
	ReferenceBandgap  = Reference{true}  // internal 1.1 V (ACBG)
)

var referenceText = core.EnumText{"external", "bandgap"}

func (r Reference) ordinal() uint8 {
	if r.bandgap {
		return 1
	}
	return 0
}

func (r Reference) String() string { return referenceText.Name("Reference", r.ordinal()) }

func (r Reference) MarshalText() ([]byte, error) {
	return referenceText.Marshal("Reference", r.ordinal())
}

func (r *Reference) UnmarshalText(text []byte) error {
	v, err := referenceText.Parse("Reference", text)
	if err != nil {
		return err
	}
	*r = Reference{v == 1}
	return nil
}

// Sample selects the negative comparator input.
type Sample struct{ input uint8 }

var (
	SampleAIN1 = Sample{0}
	SampleADC0 = Sample{1}
	SampleADC1 = Sample{2}
	SampleADC2 = Sample{3}
	SampleADC3 = Sample{4}
	SampleADC4 = Sample{5}
	SampleADC5 = Sample{6}
	SampleADC6 = Sample{7}
	SampleADC7 = Sample{8}
)

var sampleText = core.EnumText{
	"ain1", "adc0", "adc1", "adc2", "adc3", "adc4", "adc5", "adc6", "adc7",
}

// Samples maps each multiplexed Sample to its MUX2:0 pattern. AIN1 does not
// use the multiplexer.
var Samples = core.FieldTable(0, 0, 1, 2, 3, 4, 5, 6, 7)

func (s Sample) Valid() bool { return Samples.Defined(s.input) }

// Channel returns the multiplexer channel for s, or false for AIN1.
func (s Sample) Channel() (uint8, bool) {
	if s == SampleAIN1 {
		return 0, false
	}
	return Samples.Lookup(s.input).Primary, true
}

func (s Sample) String() string { return sampleText.Name("Sample", s.input) }

func (s Sample) MarshalText() ([]byte, error) { return sampleText.Marshal("Sample", s.input) }

func (s *Sample) UnmarshalText(text []byte) error {
	v, err := sampleText.Parse("Sample", text)
	if err != nil {
		return err
	}
	*s = Sample{v}
	return nil
}

// Interrupt selects the comparator interrupt and its edge.
type Interrupt struct{ mode uint8 }

var (
	InterruptDisabled = Interrupt{0}
	InterruptToggle   = Interrupt{1}
	InterruptFalling  = Interrupt{2}
	InterruptRising   = Interrupt{3}
)

// interruptBits holds the ACIE and ACIS1:0 pattern of each mode.
var interruptBits = [...]uint8{
	0,
	core.Bit(core.ACIE),
	core.Bit(core.ACIE) | core.Bit(core.ACIS1),
	core.Bit(core.ACIE) | core.Bit(core.ACIS1) | core.Bit(core.ACIS0),
}

var interruptText = core.EnumText{"disabled", "toggle", "falling", "rising"}

func (i Interrupt) Valid() bool { return int(i.mode) < len(interruptBits) }

// Bits returns the ACSR bits of i. i must be valid.
func (i Interrupt) Bits() uint8 { return interruptBits[i.mode] }

func (i Interrupt) String() string { return interruptText.Name("Interrupt", i.mode) }

func (i Interrupt) MarshalText() ([]byte, error) {
	return interruptText.Marshal("Interrupt", i.mode)
}

func (i *Interrupt) UnmarshalText(text []byte) error {
	v, err := interruptText.Parse("Interrupt", text)
	if err != nil {
		return err
	}
	*i = Interrupt{v}
	return nil
}
