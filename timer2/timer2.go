// Package timer2 configures the 8-bit Timer/Counter2. Output-compare pins
// are OC2A = PB3 (Arduino D11) and OC2B = PD3 (D3).
//
// Asynchronous operation from a 32 kHz crystal (ASSR) is not configured.
package timer2

import (
	"avrassist/core"
	"avrassist/internal/timer"
)

const name = "timer2"

var hw = timer.Registers{
	Name:   name,
	A:      core.TCCR2A,
	B:      core.TCCR2B,
	Mask:   core.TIMSK2,
	PRRBit: core.PRTIM2,
}

// Config is a Timer2 configuration. The zero value is a stopped timer in
// normal mode with outputs disconnected and no interrupts.
type Config struct {
	Mode       Mode         `json:"mode"`
	Clock      Clock        `json:"clock"`
	CompareA   OutputAction `json:"compare_a,omitempty"`
	CompareB   OutputAction `json:"compare_b,omitempty"`
	Interrupts Interrupt    `json:"interrupts,omitempty"`
	Force      Force        `json:"force,omitempty"`
}

func (c Config) settings() timer.Settings8 {
	return timer.Settings8{
		Mode:  c.Mode,
		Clock: c.Clock.cs,
		Outputs: timer.Outputs{
			CompareA: c.CompareA,
			CompareB: c.CompareB,
			Force:    c.Force,
		},
		Interrupts: c.Interrupts,
	}
}

// Validate reports whether cfg is a legal Timer2 configuration. It does not
// touch any register.
func Validate(cfg Config) error {
	if err := timer.CheckMode8(name, cfg.Mode); err != nil {
		return err
	}
	if !cfg.Clock.Valid() {
		return core.Reject(core.InvalidOptionValue, name, "clock", "")
	}
	return timer.Validate8(name, cfg.settings())
}

// Timer is the Timer2 facade.
type Timer struct {
	regs core.Surface
}

// New creates a Timer2 facade over regs.
func New(regs core.Surface) *Timer {
	return &Timer{regs: regs}
}

// Configure validates cfg and, only if it is legal, writes TCCR2A, TCCR2B
// and TIMSK2. The timer starts counting as soon as a clock source other
// than ClockDisabled is written.
func (t *Timer) Configure(cfg Config) error {
	if err := Validate(cfg); err != nil {
		core.DebugReject(err)
		return err
	}
	p := timer.Plan8(hw, cfg.settings(), t.regs.Read(core.PRR))
	core.DebugPlan(name, &p)
	p.Commit(t.regs)
	return nil
}

// Image returns the TCCR2A/TCCR2B images cfg composes to. cfg must be
// valid.
func Image(cfg Config) core.Image {
	return timer.Compose8(cfg.settings())
}
