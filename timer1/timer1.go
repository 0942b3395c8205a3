// Package timer1 configures the 16-bit Timer/Counter1, including its input
// capture unit. Output-compare pins are OC1A = PB1 (Arduino D9) and
// OC1B = PB2 (D10); the capture input ICP1 is PB0 (D8).
package timer1

import (
	"avrassist/core"
	"avrassist/internal/timer"
)

const name = "timer1"

// Config is a Timer1 configuration. The zero value is a stopped timer in
// normal mode.
type Config struct {
	Mode       Mode         `json:"mode"`
	Clock      Clock        `json:"clock"`
	CompareA   OutputAction `json:"compare_a,omitempty"`
	CompareB   OutputAction `json:"compare_b,omitempty"`
	Interrupts Interrupt    `json:"interrupts,omitempty"`
	Force      Force        `json:"force,omitempty"`

	// NoiseCanceler filters ICP1 over four samples, delaying the capture
	// by four clock cycles.
	NoiseCanceler bool        `json:"noise_canceler,omitempty"`
	CaptureEdge   CaptureEdge `json:"capture_edge,omitempty"`
}

func (c Config) outputs() timer.Outputs {
	return timer.Outputs{CompareA: c.CompareA, CompareB: c.CompareB, Force: c.Force}
}

// Validate reports whether cfg is a legal Timer1 configuration.
func Validate(cfg Config) error {
	if !Modes.Defined(cfg.Mode.wgm) {
		return core.Reject(core.InvalidOptionValue, name, "mode", "unknown mode "+core.Itoa(int(cfg.Mode.wgm)))
	}
	if Modes.Reserved(cfg.Mode.wgm) {
		return core.Reject(core.ReservedModeSelected, name, "mode", cfg.Mode.String())
	}
	if !cfg.Clock.Valid() {
		return core.Reject(core.InvalidOptionValue, name, "clock", "")
	}
	if err := timer.CheckInterrupts(name, cfg.Interrupts, legalInterrupts); err != nil {
		return err
	}
	return timer.CheckOutputs(name, cfg.Mode.Info(), cfg.outputs())
}

// Image returns the TCCR1A/TCCR1B images cfg composes to. cfg must be
// valid.
func Image(cfg Config) core.Image {
	var capture uint8
	if cfg.NoiseCanceler {
		capture |= core.Bit(core.ICNC1)
	}
	if cfg.CaptureEdge == CaptureRising {
		capture |= core.Bit(core.ICES1)
	}
	return core.Compose(Modes.Lookup(cfg.Mode.wgm),
		core.ToPrimary(cfg.outputs().CompareBits()),
		core.ToSecondary(cfg.Clock.cs&core.CSMask),
		core.ToSecondary(capture),
	)
}

// Timer is the Timer1 facade.
type Timer struct {
	regs core.Surface
}

// New creates a Timer1 facade over regs.
func New(regs core.Surface) *Timer {
	return &Timer{regs: regs}
}

// Configure validates cfg and, only if it is legal, writes PRR, TCCR1A,
// TCCR1B, TCCR1C and TIMSK1 in that order. Force strobes in TCCR1C take
// effect after the mode is set.
func (t *Timer) Configure(cfg Config) error {
	if err := Validate(cfg); err != nil {
		core.DebugReject(err)
		return err
	}
	img := Image(cfg)

	var p core.Plan
	p.Assign(core.PRR, t.regs.Read(core.PRR)&^core.Bit(core.PRTIM1))
	p.Assign(core.TCCR1A, img.Primary)
	p.Assign(core.TCCR1B, img.Secondary)
	p.Assign(core.TCCR1C, uint8(cfg.Force))
	p.Assign(core.TIMSK1, uint8(cfg.Interrupts))

	core.DebugPlan(name, &p)
	p.Commit(t.regs)
	return nil
}
