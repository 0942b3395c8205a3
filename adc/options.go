package adc

import "avrassist/core"

// Reference selects the conversion reference voltage (REFS1:0).
type Reference struct{ ref uint8 }

var (
	ReferenceAREF    = Reference{0} // external voltage on the AREF pin
	ReferenceAVCC    = Reference{1} // AVCC with a capacitor on AREF
	ReferenceBandgap = Reference{2} // internal 1.1 V
)

var referenceText = core.EnumText{"aref", "avcc", "bandgap"}

var referenceBits = [...]uint8{
	0,
	1 << core.REFS0,
	1<<core.REFS1 | 1<<core.REFS0,
}

func (r Reference) Valid() bool { return int(r.ref) < len(referenceBits) }

// Bits returns the REFS1:0 pattern of r. r must be valid.
func (r Reference) Bits() uint8 { return referenceBits[r.ref] }

func (r Reference) String() string { return referenceText.Name("Reference", r.ref) }

func (r Reference) MarshalText() ([]byte, error) { return referenceText.Marshal("Reference", r.ref) }

func (r *Reference) UnmarshalText(text []byte) error {
	v, err := referenceText.Parse("Reference", text)
	if err != nil {
		return err
	}
	*r = Reference{v}
	return nil
}

// Source is the multiplexer input sampled by the ADC.
type Source struct{ input uint8 }

var (
	SourceADC0        = Source{0}
	SourceADC1        = Source{1}
	SourceADC2        = Source{2}
	SourceADC3        = Source{3}
	SourceADC4        = Source{4}
	SourceADC5        = Source{5}
	SourceADC6        = Source{6} // TQFP/QFN packages only
	SourceADC7        = Source{7} // TQFP/QFN packages only
	SourceTemperature = Source{8}
	SourceBandgap     = Source{9}
	SourceGround      = Source{10}
)

var sourceText = core.EnumText{
	"adc0", "adc1", "adc2", "adc3", "adc4", "adc5", "adc6", "adc7",
	"temperature", "bandgap", "ground",
}

// Sources maps each Source to its MUX3:0 pattern.
var Sources = core.FieldTable(0, 1, 2, 3, 4, 5, 6, 7, 0x08, 0x0E, 0x0F)

func (s Source) Valid() bool { return Sources.Defined(s.input) }

// Pin returns the ADC0..ADC7 pin number sampled by s, or false for the
// internal sources.
func (s Source) Pin() (uint8, bool) {
	return s.input, s.input <= SourceADC7.input
}

func (s Source) String() string { return sourceText.Name("Source", s.input) }

func (s Source) MarshalText() ([]byte, error) { return sourceText.Marshal("Source", s.input) }

func (s *Source) UnmarshalText(text []byte) error {
	v, err := sourceText.Parse("Source", text)
	if err != nil {
		return err
	}
	*s = Source{v}
	return nil
}

// Alignment selects how the 10-bit result sits in ADCH:ADCL.
type Alignment struct{ left bool }

var (
	AlignRight = Alignment{false}
	AlignLeft  = Alignment{true} // ADLAR; read ADCH alone for an 8-bit result
)

var alignmentText = core.EnumText{"right", "left"}

func (a Alignment) ordinal() uint8 {
	if a.left {
		return 1
	}
	return 0
}

func (a Alignment) String() string { return alignmentText.Name("Alignment", a.ordinal()) }

func (a Alignment) MarshalText() ([]byte, error) {
	return alignmentText.Marshal("Alignment", a.ordinal())
}

func (a *Alignment) UnmarshalText(text []byte) error {
	v, err := alignmentText.Parse("Alignment", text)
	if err != nil {
		return err
	}
	*a = Alignment{v == 1}
	return nil
}

// Prescaler divides the system clock down to the ADC clock, which should be
// between 50 and 200 kHz for full resolution. The zero value selects /128,
// the right choice at 16 MHz.
type Prescaler struct{ adps uint8 }

// The ordinals of the explicit dividers equal their ADPS2:0 values. ADPS 0
// also divides by 2, so the zero value is free to mean the default.
var (
	PrescalerDefault = Prescaler{0}
	PrescalerDiv2    = Prescaler{1}
	PrescalerDiv4    = Prescaler{2}
	PrescalerDiv8    = Prescaler{3}
	PrescalerDiv16   = Prescaler{4}
	PrescalerDiv32   = Prescaler{5}
	PrescalerDiv64   = Prescaler{6}
	PrescalerDiv128  = Prescaler{7}
)

var prescalerText = core.EnumText{
	"default", "div2", "div4", "div8", "div16", "div32", "div64", "div128",
}

func (p Prescaler) Valid() bool { return p.adps <= PrescalerDiv128.adps }

// Bits returns the ADPS2:0 pattern. p must be valid.
func (p Prescaler) Bits() uint8 {
	if p == PrescalerDefault {
		return PrescalerDiv128.adps
	}
	return p.adps
}

func (p Prescaler) String() string { return prescalerText.Name("Prescaler", p.adps) }

func (p Prescaler) MarshalText() ([]byte, error) { return prescalerText.Marshal("Prescaler", p.adps) }

func (p *Prescaler) UnmarshalText(text []byte) error {
	v, err := prescalerText.Parse("Prescaler", text)
	if err != nil {
		return err
	}
	*p = Prescaler{v}
	return nil
}

// Trigger selects single conversions started by Start, or auto-triggering
// from one of the ADTS2:0 sources.
type Trigger struct{ src uint8 }

// Past TriggerNone, ordinal minus one is the ADTS2:0 value.
var (
	TriggerNone           = Trigger{0}
	TriggerFreeRunning    = Trigger{1}
	TriggerComparator     = Trigger{2}
	TriggerINT0           = Trigger{3}
	TriggerTimer0MatchA   = Trigger{4}
	TriggerTimer0Overflow = Trigger{5}
	TriggerTimer1MatchB   = Trigger{6}
	TriggerTimer1Overflow = Trigger{7}
	TriggerTimer1Capture  = Trigger{8}
)

var triggerText = core.EnumText{
	"none", "free_running", "comparator", "int0",
	"timer0_match_a", "timer0_overflow", "timer1_match_b", "timer1_overflow", "timer1_capture",
}

func (t Trigger) Valid() bool { return t.src <= TriggerTimer1Capture.src }

// auto reports whether t enables ADATE, and returns the ADTS2:0 pattern.
func (t Trigger) auto() (uint8, bool) {
	if t == TriggerNone {
		return 0, false
	}
	return t.src - 1, true
}

func (t Trigger) String() string { return triggerText.Name("Trigger", t.src) }

func (t Trigger) MarshalText() ([]byte, error) { return triggerText.Marshal("Trigger", t.src) }

func (t *Trigger) UnmarshalText(text []byte) error {
	v, err := triggerText.Parse("Trigger", text)
	if err != nil {
		return err
	}
	*t = Trigger{v}
	return nil
}
