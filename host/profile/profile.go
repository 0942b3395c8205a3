// Package profile reads board profiles: one optional configuration per
// peripheral, applied together or not at all.
package profile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"avrassist/adc"
	"avrassist/comparator"
	"avrassist/core"
	"avrassist/timer0"
	"avrassist/timer1"
	"avrassist/timer2"
	"avrassist/watchdog"
)

// Profile is a board profile. A nil field leaves that peripheral alone.
type Profile struct {
	Name       string             `json:"name,omitempty"`
	Timer0     *timer0.Config     `json:"timer0,omitempty"`
	Timer1     *timer1.Config     `json:"timer1,omitempty"`
	Timer2     *timer2.Config     `json:"timer2,omitempty"`
	Comparator *comparator.Config `json:"comparator,omitempty"`
	ADC        *adc.Config        `json:"adc,omitempty"`
	Watchdog   *watchdog.Config   `json:"watchdog,omitempty"`
}

// Parse decodes a JSON profile. Unknown keys are an error so that a typo
// does not silently leave a peripheral unconfigured.
func Parse(data []byte) (*Profile, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var p Profile
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	return &p, nil
}

// Load reads a profile given on the command line: "@path" names a file,
// anything else is inline JSON.
func Load(arg string) (*Profile, error) {
	if path, ok := strings.CutPrefix(arg, "@"); ok {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read profile: %w", err)
		}
		return Parse(data)
	}
	return Parse([]byte(arg))
}

// Peripherals lists the peripherals the profile configures, in apply order.
func (p *Profile) Peripherals() []string {
	var names []string
	for _, s := range p.steps() {
		names = append(names, s.name)
	}
	return names
}

type step struct {
	name      string
	validate  func() error
	configure func(regs core.Surface, irq core.Interrupts) error
}

// steps returns the configured peripherals: timers first, then the
// comparator, then the ADC, with the watchdog last.
func (p *Profile) steps() []step {
	var s []step
	if c := p.Timer0; c != nil {
		s = append(s, step{"timer0",
			func() error { return timer0.Validate(*c) },
			func(regs core.Surface, _ core.Interrupts) error { return timer0.New(regs).Configure(*c) }})
	}
	if c := p.Timer1; c != nil {
		s = append(s, step{"timer1",
			func() error { return timer1.Validate(*c) },
			func(regs core.Surface, _ core.Interrupts) error { return timer1.New(regs).Configure(*c) }})
	}
	if c := p.Timer2; c != nil {
		s = append(s, step{"timer2",
			func() error { return timer2.Validate(*c) },
			func(regs core.Surface, _ core.Interrupts) error { return timer2.New(regs).Configure(*c) }})
	}
	if c := p.Comparator; c != nil {
		s = append(s, step{"comparator",
			func() error { return comparator.Validate(*c) },
			func(regs core.Surface, _ core.Interrupts) error { return comparator.New(regs).Configure(*c) }})
	}
	if c := p.ADC; c != nil {
		s = append(s, step{"adc",
			func() error { return adc.Validate(*c) },
			func(regs core.Surface, _ core.Interrupts) error { return adc.New(regs).Configure(*c) }})
	}
	if c := p.Watchdog; c != nil {
		s = append(s, step{"watchdog",
			func() error { return watchdog.Validate(*c) },
			func(regs core.Surface, irq core.Interrupts) error { return watchdog.New(regs, irq).Configure(*c) }})
	}
	return s
}

// Validate checks every configured peripheral and reports all rejections.
//
// A profile that configures the ADC and also routes the comparator through
// the multiplexer asks for both owners at once; the facades would resolve
// it by the last writer, so the profile rejects it instead.
func (p *Profile) Validate() error {
	var errs []error
	for _, s := range p.steps() {
		if err := s.validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if p.ADC != nil && p.Comparator != nil && comparator.Validate(*p.Comparator) == nil {
		if _, mux := p.Comparator.Sample.Channel(); mux {
			errs = append(errs, core.Reject(core.SharedResourceConflict, "profile", "comparator.sample",
				"adc and comparator both claim the multiplexer"))
		}
	}
	return errors.Join(errs...)
}

// Apply validates the whole profile and then configures each peripheral.
// If any part is rejected nothing is written.
func (p *Profile) Apply(regs core.Surface, irq core.Interrupts) error {
	if err := p.Validate(); err != nil {
		return err
	}
	for _, s := range p.steps() {
		if err := s.configure(regs, irq); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return nil
}
