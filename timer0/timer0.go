// Package timer0 configures the 8-bit Timer/Counter0.
//
// The external clock input T0 is AVR pin PD4 (Arduino D4). Output-compare
// pins are OC0A = PD6 (D6) and OC0B = PD5 (D5).
package timer0

import (
	"avrassist/core"
	"avrassist/internal/timer"
)

const name = "timer0"

var hw = timer.Registers{
	Name:   name,
	A:      core.TCCR0A,
	B:      core.TCCR0B,
	Mask:   core.TIMSK0,
	PRRBit: core.PRTIM0,
}

// Config is a Timer0 configuration. The zero value is a stopped timer in
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

// Validate reports whether cfg is a legal Timer0 configuration. It does not
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

// Timer is the Timer0 facade.
type Timer struct {
	regs core.Surface
}

// New creates a Timer0 facade over regs.
func New(regs core.Surface) *Timer {
	return &Timer{regs: regs}
}

// Configure validates cfg and, only if it is legal, writes TCCR0A, TCCR0B
// and TIMSK0. The timer starts counting as soon as a clock source other
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

// Image returns the TCCR0A/TCCR0B images cfg composes to. cfg must be
// valid.
func Image(cfg Config) core.Image {
	return timer.Compose8(cfg.settings())
}
