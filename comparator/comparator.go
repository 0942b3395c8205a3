// Package comparator configures the analog comparator.
//
// The positive input is AIN0 (PD6, Arduino D6) or the 1.1 V bandgap. The
// negative input is AIN1 (PD7, D7) or, through the analog multiplexer shared
// with the ADC, one of ADC0..ADC7. Taking the multiplexer disables the ADC.
package comparator

import "avrassist/core"

const name = "comparator"

// Config is a comparator configuration. The zero value compares AIN0
// against AIN1 with no interrupt.
type Config struct {
	Reference Reference `json:"reference"`
	Sample    Sample    `json:"sample"`
	Interrupt Interrupt `json:"interrupt,omitempty"`

	// CaptureTrigger routes the comparator output to the Timer1 input
	// capture unit (ACIC).
	CaptureTrigger bool `json:"capture_trigger,omitempty"`
}

// Validate reports whether cfg is a legal comparator configuration.
func Validate(cfg Config) error {
	if !cfg.Sample.Valid() {
		return core.Reject(core.InvalidOptionValue, name, "sample", "")
	}
	if !cfg.Interrupt.Valid() {
		return core.Reject(core.InvalidOptionValue, name, "interrupt",
			"unknown interrupt mode "+core.Itoa(int(cfg.Interrupt.mode)))
	}
	return nil
}

// Images holds every register value a comparator configuration writes.
type Images struct {
	ACSR  uint8
	DIDR1 uint8
	Mux   core.MuxRegs
}

// Compose returns the register images for cfg, starting from the current
// multiplexer registers. cfg must be valid.
func Compose(cfg Config, cur core.MuxRegs) Images {
	var img Images
	if cfg.Reference == ReferenceBandgap {
		img.ACSR |= core.Bit(core.ACBG)
	} else {
		img.DIDR1 |= core.Bit(core.AIN0D)
	}
	if cfg.CaptureTrigger {
		img.ACSR |= core.Bit(core.ACIC)
	}
	img.ACSR |= cfg.Interrupt.Bits()

	if ch, ok := cfg.Sample.Channel(); ok {
		img.Mux = core.RouteMux(core.MuxComparator, ch, cur)
	} else {
		img.DIDR1 |= core.Bit(core.AIN1D)
		img.Mux = core.RouteMux(core.MuxReleased, 0, cur)
	}
	return img
}

// Comparator is the analog comparator facade.
type Comparator struct {
	regs core.Surface
}

// New creates a comparator facade over regs.
func New(regs core.Surface) *Comparator {
	return &Comparator{regs: regs}
}

// Configure validates cfg and, only if it is legal, enables the comparator.
// The comparator interrupt is masked while inputs are switched and any
// interrupt flag raised by the switch is cleared before it is re-enabled.
func (c *Comparator) Configure(cfg Config) error {
	if err := Validate(cfg); err != nil {
		core.DebugReject(err)
		return err
	}
	p := plan(cfg, c.regs.Read(core.ACSR), core.ReadMuxRegs(c.regs), c.regs.Read(core.PRR))
	core.DebugPlan(name, &p)
	p.Commit(c.regs)
	return nil
}

func plan(cfg Config, acsr uint8, cur core.MuxRegs, prr uint8) core.Plan {
	img := Compose(cfg, cur)

	var p core.Plan
	p.Assign(core.ACSR, acsr&^(core.Bit(core.ACIE)|core.Bit(core.ACI)))
	if _, ok := cfg.Sample.Channel(); ok {
		// ADEN off before ACME on.
		p.Assign(core.PRR, prr&^core.Bit(core.PRADC))
		p.Assign(core.ADCSRA, img.Mux.ADCSRA)
		p.Assign(core.ADCSRB, img.Mux.ADCSRB)
		p.Assign(core.ADMUX, img.Mux.ADMUX)
	} else {
		p.Assign(core.ADCSRB, img.Mux.ADCSRB)
	}
	p.Assign(core.DIDR1, img.DIDR1)
	p.Assign(core.ACSR, img.ACSR|core.Bit(core.ACI))
	return p
}

// Output returns the comparator output (ACO): true when the positive input
// is above the negative input.
func (c *Comparator) Output() bool {
	return c.regs.Read(core.ACSR)&core.Bit(core.ACO) != 0
}
