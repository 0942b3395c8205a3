// Package adc configures the 10-bit analog to digital converter.
//
// The ADC shares the analog input multiplexer with the comparator.
// Configuring the ADC claims it: ACME is cleared before ADEN is set, so the
// comparator loses the multiplexer as the ADC takes it.
package adc

import "avrassist/core"

const name = "adc"

const adtsMask = 1<<core.ADTS0 | 1<<core.ADTS1 | 1<<core.ADTS2

// Config is an ADC configuration. The zero value samples ADC0 against AREF,
// right aligned, at /128, with single conversions and no interrupt.
type Config struct {
	Reference Reference `json:"reference"`
	Source    Source    `json:"source"`
	Alignment Alignment `json:"alignment,omitempty"`
	Prescaler Prescaler `json:"prescaler,omitempty"`
	Trigger   Trigger   `json:"trigger,omitempty"`

	// Interrupt enables the conversion complete interrupt (ADIE).
	Interrupt bool `json:"interrupt,omitempty"`
}

// Validate reports whether cfg is a legal ADC configuration.
func Validate(cfg Config) error {
	if !cfg.Reference.Valid() {
		return core.Reject(core.InvalidOptionValue, name, "reference", "")
	}
	if !cfg.Source.Valid() {
		return core.Reject(core.InvalidOptionValue, name, "source",
			"no multiplexer channel for source "+core.Itoa(int(cfg.Source.input)))
	}
	if cfg.Source == SourceTemperature && cfg.Reference != ReferenceBandgap {
		return core.Reject(core.InvalidOptionValue, name, "source",
			"the temperature sensor requires the bandgap reference")
	}
	if !cfg.Prescaler.Valid() {
		return core.Reject(core.InvalidOptionValue, name, "prescaler", "")
	}
	if !cfg.Trigger.Valid() {
		return core.Reject(core.InvalidOptionValue, name, "trigger", "")
	}
	return nil
}

// ADC is the ADC facade.
type ADC struct {
	regs core.Surface
}

// New creates an ADC facade over regs.
func New(regs core.Surface) *ADC {
	return &ADC{regs: regs}
}

// Configure validates cfg and, only if it is legal, powers the ADC, routes
// the multiplexer to it and enables it. No conversion is started unless
// cfg.Trigger selects free running or another auto-trigger source fires.
func (a *ADC) Configure(cfg Config) error {
	if err := Validate(cfg); err != nil {
		core.DebugReject(err)
		return err
	}
	p := plan(cfg, core.ReadMuxRegs(a.regs), a.regs.Read(core.PRR), a.regs.Read(core.DIDR0))
	core.DebugPlan(name, &p)
	p.Commit(a.regs)
	return nil
}

// Images returns the ADMUX, ADCSRA and ADCSRB values cfg composes to,
// starting from cur.
func Images(cfg Config, cur core.MuxRegs) core.MuxRegs {
	mux := Sources.Lookup(cfg.Source.input)

	ctrl := cfg.Prescaler.Bits()
	if cfg.Interrupt {
		ctrl |= core.Bit(core.ADIE)
	}
	adts, auto := cfg.Trigger.auto()
	if auto {
		ctrl |= core.Bit(core.ADATE)
	}

	admux := cfg.Reference.Bits()
	if cfg.Alignment == AlignLeft {
		admux |= core.Bit(core.ADLAR)
	}

	return core.RouteMux(core.MuxADC, mux.Primary, core.MuxRegs{
		ADCSRA: ctrl,
		ADCSRB: cur.ADCSRB&^adtsMask | adts,
		ADMUX:  admux,
	})
}

func plan(cfg Config, cur core.MuxRegs, prr, didr0 uint8) core.Plan {
	img := Images(cfg, cur)

	var p core.Plan
	p.Assign(core.PRR, prr&^core.Bit(core.PRADC))
	p.Assign(core.ADMUX, img.ADMUX)
	p.Assign(core.ADCSRB, img.ADCSRB)
	if pin, ok := cfg.Source.Pin(); ok && pin <= 5 {
		// ADC6 and ADC7 have no digital input buffer.
		p.Assign(core.DIDR0, didr0|core.Bit(pin))
	}
	p.Assign(core.ADCSRA, img.ADCSRA)
	return p
}

// Start begins a single conversion. The ADC must have been configured.
func (a *ADC) Start() {
	a.regs.Set(core.ADCSRA, core.Bit(core.ADSC))
}

// Busy reports whether a conversion is in progress.
func (a *ADC) Busy() bool {
	return a.regs.Read(core.ADCSRA)&core.Bit(core.ADSC) != 0
}

// Result returns the last conversion result right aligned, whatever the
// configured alignment. ADCL must be read before ADCH: reading ADCL locks
// the data registers until ADCH is read.
func (a *ADC) Result() uint16 {
	lo := a.regs.Read(core.ADCL)
	hi := a.regs.Read(core.ADCH)
	v := uint16(hi)<<8 | uint16(lo)
	if a.regs.Read(core.ADMUX)&core.Bit(core.ADLAR) != 0 {
		v >>= 6
	}
	return v
}
