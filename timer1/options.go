package timer1

import (
	"avrassist/core"
	"avrassist/internal/timer"
)

// Mode is a waveform generation mode. It holds the WGM13:0 ordinal; only
// the variants below and ModeOf can build one.
type Mode struct{ wgm uint8 }

var (
	ModeNormal       = Mode{0}  // TOP = 0xFFFF
	ModePCPWM8       = Mode{1}  // phase correct, TOP = 0x00FF
	ModePCPWM9       = Mode{2}  // phase correct, TOP = 0x01FF
	ModePCPWM10      = Mode{3}  // phase correct, TOP = 0x03FF
	ModeCTCOCR1A     = Mode{4}  // TOP = OCR1A
	ModeFastPWM8     = Mode{5}  // TOP = 0x00FF
	ModeFastPWM9     = Mode{6}  // TOP = 0x01FF
	ModeFastPWM10    = Mode{7}  // TOP = 0x03FF
	ModePFCPWMICR1   = Mode{8}  // phase and frequency correct, TOP = ICR1
	ModePFCPWMOCR1A  = Mode{9}  // phase and frequency correct, TOP = OCR1A
	ModePCPWMICR1    = Mode{10} // phase correct, TOP = ICR1
	ModePCPWMOCR1A   = Mode{11} // phase correct, TOP = OCR1A
	ModeCTCICR1      = Mode{12} // TOP = ICR1
	ModeReserved13   = Mode{13}
	ModeFastPWMICR1  = Mode{14} // TOP = ICR1
	ModeFastPWMOCR1A = Mode{15} // TOP = OCR1A
)

// Modes is the canonical Timer1 mode table. WGM11:10 live in TCCR1A and
// WGM13:12 in TCCR1B.
var Modes = core.DeriveModeTable(16, []core.BitRef{
	{Slot: core.Primary, Bit: core.WGMn0},
	{Slot: core.Primary, Bit: core.WGMn1},
	{Slot: core.Secondary, Bit: core.WGMn2},
	{Slot: core.Secondary, Bit: core.WGM13},
}, ModeReserved13.wgm)

var modeInfo = [16]timer.ModeInfo{
	{Name: "normal", Kind: timer.KindNormal},
	{Name: "pc_pwm_8bit", Kind: timer.KindPWM},
	{Name: "pc_pwm_9bit", Kind: timer.KindPWM},
	{Name: "pc_pwm_10bit", Kind: timer.KindPWM},
	{Name: "ctc_ocr1a", Kind: timer.KindCTC},
	{Name: "fast_pwm_8bit", Kind: timer.KindPWM},
	{Name: "fast_pwm_9bit", Kind: timer.KindPWM},
	{Name: "fast_pwm_10bit", Kind: timer.KindPWM},
	{Name: "pfc_pwm_icr1", Kind: timer.KindPWM},
	{Name: "pfc_pwm_ocr1a", Kind: timer.KindPWM, ToggleA: true},
	{Name: "pc_pwm_icr1", Kind: timer.KindPWM},
	{Name: "pc_pwm_ocr1a", Kind: timer.KindPWM, ToggleA: true},
	{Name: "ctc_icr1", Kind: timer.KindCTC},
	{Name: "reserved_13", Kind: timer.KindReserved},
	{Name: "fast_pwm_icr1", Kind: timer.KindPWM, ToggleA: true},
	{Name: "fast_pwm_ocr1a", Kind: timer.KindPWM, ToggleA: true},
}

var modeText = func() core.EnumText {
	t := make(core.EnumText, len(modeInfo))
	for i, m := range modeInfo {
		t[i] = m.Name
	}
	return t
}()

// ModeOf returns the mode with the given WGM13:0 ordinal, or false when
// there is none.
func ModeOf(ordinal uint8) (Mode, bool) {
	if !Modes.Defined(ordinal) {
		return Mode{}, false
	}
	return Mode{ordinal}, true
}

// Ordinal returns the WGM13:0 value of m.
func (m Mode) Ordinal() uint8 { return m.wgm }

// Info returns the description of m. m must be defined.
func (m Mode) Info() timer.ModeInfo { return modeInfo[m.wgm] }

func (m Mode) String() string { return modeText.Name("Mode", m.wgm) }

func (m Mode) MarshalText() ([]byte, error) { return modeText.Marshal("Mode", m.wgm) }

func (m *Mode) UnmarshalText(text []byte) error {
	v, err := modeText.Parse("Mode", text)
	if err != nil {
		return err
	}
	*m = Mode{v}
	return nil
}

// Clock is the clock source. It holds the CS12:0 field.
type Clock struct{ cs uint8 }

var (
	ClockDisabled  = Clock{0}
	ClockDiv1      = Clock{1}
	ClockDiv8      = Clock{2}
	ClockDiv64     = Clock{3}
	ClockDiv256    = Clock{4}
	ClockDiv1024   = Clock{5}
	ClockT1Falling = Clock{6} // external pin T1 (PD5)
	ClockT1Rising  = Clock{7}
)

var clockText = core.EnumText{
	"disabled", "div1", "div8", "div64", "div256", "div1024", "t1_falling", "t1_rising",
}

func (c Clock) Valid() bool { return c.cs <= ClockT1Rising.cs }

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

// CaptureEdge selects the ICP1 edge that triggers an input capture.
type CaptureEdge struct{ rising bool }

var (
	CaptureFalling = CaptureEdge{false}
	CaptureRising  = CaptureEdge{true}
)

var edgeText = core.EnumText{"falling", "rising"}

func (e CaptureEdge) ordinal() uint8 {
	if e.rising {
		return 1
	}
	return 0
}

func (e CaptureEdge) String() string { return edgeText.Name("CaptureEdge", e.ordinal()) }

func (e CaptureEdge) MarshalText() ([]byte, error) { return edgeText.Marshal("CaptureEdge", e.ordinal()) }

func (e *CaptureEdge) UnmarshalText(text []byte) error {
	v, err := edgeText.Parse("CaptureEdge", text)
	if err != nil {
		return err
	}
	*e = CaptureEdge{v == 1}
	return nil
}

type OutputAction = timer.OutputAction

var (
	Disconnected = timer.Disconnected
	Toggle       = timer.Toggle
	Clear        = timer.Clear
	Set          = timer.Set
)

// Interrupt is a set of TIMSK1 enables.
type Interrupt = timer.Interrupt

const (
	InterruptNone     = timer.InterruptNone
	InterruptOverflow = timer.InterruptOverflow
	InterruptMatchA   = timer.InterruptMatchA
	InterruptMatchB   = timer.InterruptMatchB
	InterruptCapture  = timer.InterruptCapture
)

const legalInterrupts = InterruptOverflow | InterruptMatchA | InterruptMatchB | InterruptCapture

// Force selects FOC1A/FOC1B strobes in TCCR1C.
type Force = timer.Force

const (
	ForceNone = timer.ForceNone
	ForceA    = timer.ForceA
	ForceB    = timer.ForceB
)
