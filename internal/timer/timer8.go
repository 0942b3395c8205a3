package timer

import "avrassist/core"

// Mode8 is a waveform generation mode of an 8-bit timer. It holds the
// WGMn2:0 ordinal; only the variants below and Mode8Of can build one.
type Mode8 struct{ wgm uint8 }

var (
	Mode8Normal      = Mode8{0} // TOP = 0xFF
	Mode8PCPWM255    = Mode8{1} // phase correct PWM, TOP = 0xFF
	Mode8CTC         = Mode8{2} // clear timer on compare, TOP = OCRnA
	Mode8FastPWM255  = Mode8{3} // fast PWM, TOP = 0xFF
	Mode8Reserved4   = Mode8{4}
	Mode8PCPWMOCRA   = Mode8{5} // phase correct PWM, TOP = OCRnA
	Mode8Reserved6   = Mode8{6}
	Mode8FastPWMOCRA = Mode8{7} // fast PWM, TOP = OCRnA
)

// Modes8 is the canonical mode table of an 8-bit timer: ordinal bits 1:0
// go to WGMn1:0 in TCCRnA and bit 2 to WGMn2 in TCCRnB.
var Modes8 = core.DeriveModeTable(8, []core.BitRef{
	{Slot: core.Primary, Bit: core.WGMn0},
	{Slot: core.Primary, Bit: core.WGMn1},
	{Slot: core.Secondary, Bit: core.WGMn2},
}, Mode8Reserved4.wgm, Mode8Reserved6.wgm)

var modes8Info = [8]ModeInfo{
	{Name: "normal", Kind: KindNormal},
	{Name: "pc_pwm_255", Kind: KindPWM},
	{Name: "ctc_ocra", Kind: KindCTC},
	{Name: "fast_pwm_255", Kind: KindPWM},
	{Name: "reserved_4", Kind: KindReserved},
	{Name: "pc_pwm_ocra", Kind: KindPWM, ToggleA: true},
	{Name: "reserved_6", Kind: KindReserved},
	{Name: "fast_pwm_ocra", Kind: KindPWM, ToggleA: true},
}

var mode8Text = func() core.EnumText {
	t := make(core.EnumText, len(modes8Info))
	for i, m := range modes8Info {
		t[i] = m.Name
	}
	return t
}()

// Mode8Of returns the mode with the given WGMn2:0 ordinal, reserved ones
// included, or false when there is none.
func Mode8Of(ordinal uint8) (Mode8, bool) {
	if !Modes8.Defined(ordinal) {
		return Mode8{}, false
	}
	return Mode8{ordinal}, true
}

// Ordinal returns the WGMn2:0 value of m.
func (m Mode8) Ordinal() uint8 { return m.wgm }

// Info returns the description of m. m must be defined.
func (m Mode8) Info() ModeInfo { return modes8Info[m.wgm] }

func (m Mode8) String() string { return mode8Text.Name("Mode", m.wgm) }

func (m Mode8) MarshalText() ([]byte, error) { return mode8Text.Marshal("Mode", m.wgm) }

func (m *Mode8) UnmarshalText(text []byte) error {
	v, err := mode8Text.Parse("Mode", text)
	if err != nil {
		return err
	}
	*m = Mode8{v}
	return nil
}

// Registers names the registers and power-reduction bit of one 8-bit timer.
type Registers struct {
	Name   string
	A      core.Register // TCCRnA
	B      core.Register // TCCRnB
	Mask   core.Register // TIMSKn
	PRRBit uint8
}

// Settings8 is a validated-shape 8-bit timer configuration. Clock holds the
// CSn2:0 pattern already checked by the owning facade.
type Settings8 struct {
	Mode       Mode8
	Clock      uint8
	Outputs    Outputs
	Interrupts Interrupt
}

// CheckMode8 rejects undefined and reserved modes. It runs before any other
// check so a reserved mode is reported as such whatever else is requested.
func CheckMode8(peripheral string, m Mode8) error {
	if !Modes8.Defined(m.wgm) {
		return core.Reject(core.InvalidOptionValue, peripheral, "mode", "unknown mode "+core.Itoa(int(m.wgm)))
	}
	if Modes8.Reserved(m.wgm) {
		return core.Reject(core.ReservedModeSelected, peripheral, "mode", m.String())
	}
	return nil
}

// Validate8 checks everything except the clock source.
func Validate8(peripheral string, s Settings8) error {
	if err := CheckMode8(peripheral, s.Mode); err != nil {
		return err
	}
	if err := CheckInterrupts(peripheral, s.Interrupts, Interrupts8); err != nil {
		return err
	}
	return CheckOutputs(peripheral, s.Mode.Info(), s.Outputs)
}

// Compose8 returns the TCCRnA/TCCRnB images for s.
func Compose8(s Settings8) core.Image {
	return core.Compose(Modes8.Lookup(s.Mode.wgm),
		core.ToPrimary(s.Outputs.CompareBits()),
		core.ToSecondary(s.Clock&core.CSMask|uint8(s.Outputs.Force)),
	)
}

// Plan8 builds the full write plan for s. prr is the current PRR value;
// the timer's power-reduction bit is cleared so the clock actually runs.
func Plan8(hw Registers, s Settings8, prr uint8) core.Plan {
	img := Compose8(s)
	var p core.Plan
	p.Assign(core.PRR, prr&^core.Bit(hw.PRRBit))
	p.Assign(hw.A, img.Primary)
	p.Assign(hw.B, img.Secondary)
	p.Assign(hw.Mask, uint8(s.Interrupts))
	return p
}
