package adc

import (
	"encoding/json"
	"testing"

	"tinygo.org/x/drivers"

	"avrassist/core"
)

func TestConfigureAVCCChannel2(t *testing.T) {
	mem := core.NewMemory()
	mem.Load(core.PRR, core.Bit(core.PRADC)|core.Bit(core.PRTIM1))
	mem.Load(core.ADCSRB, core.Bit(core.ACME))
	mem.Load(core.DIDR0, 0x01)

	err := New(mem).Configure(Config{
		Reference: ReferenceAVCC,
		Source:    SourceADC2,
		Interrupt: true,
	})
	if err != nil {
		t.Fatalf("Configure failed: %v", err)
	}

	checks := []struct {
		reg  core.Register
		want uint8
	}{
		{core.PRR, core.Bit(core.PRTIM1)},
		{core.ADMUX, 0x42},  // REFS0 | MUX1
		{core.ADCSRB, 0x00}, // ACME cleared
		{core.DIDR0, 0x05},  // ADC0D kept, ADC2D set
		{core.ADCSRA, 0x8F}, // ADEN | ADIE | ADPS=111
	}
	for _, c := range checks {
		if got := mem.Peek(c.reg); got != c.want {
			t.Errorf("Expected %s = %s, got %s", c.reg, core.Hex8(c.want), core.Hex8(got))
		}
	}
}

func TestADCSRAWrittenLast(t *testing.T) {
	mem := core.NewMemory()
	if err := New(mem).Configure(Config{Source: SourceADC7}); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}

	var writes []core.Register
	for _, op := range mem.Journal() {
		if op.Kind.Mutates() {
			writes = append(writes, op.Reg)
		}
	}
	want := []core.Register{core.PRR, core.ADMUX, core.ADCSRB, core.ADCSRA}
	if len(writes) != len(want) {
		t.Fatalf("Expected writes %v, got %v", want, writes)
	}
	for i := range want {
		if writes[i] != want[i] {
			t.Errorf("Write %d: expected %s, got %s", i, want[i], writes[i])
		}
	}
}

func TestTemperatureRequiresBandgap(t *testing.T) {
	mem := core.NewMemory()
	mem.Load(core.ADMUX, 0x40)
	mem.Load(core.ADCSRA, 0x87)

	err := New(mem).Configure(Config{Reference: ReferenceAVCC, Source: SourceTemperature})
	if core.Of(err) != core.InvalidOptionValue {
		t.Fatalf("Expected %s, got %v", core.InvalidOptionValue, err)
	}
	if n := mem.Mutations(); n != 0 {
		t.Errorf("Expected no register writes, got %d", n)
	}
	if mem.Peek(core.ADMUX) != 0x40 || mem.Peek(core.ADCSRA) != 0x87 {
		t.Error("Registers changed after rejection")
	}

	mem.ResetJournal()
	if err := New(mem).Configure(Config{Reference: ReferenceBandgap, Source: SourceTemperature}); err != nil {
		t.Fatalf("Configure with bandgap failed: %v", err)
	}
	if got := mem.Peek(core.ADMUX); got != 0xC8 {
		t.Errorf("Expected ADMUX 0xC8, got %s", core.Hex8(got))
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want core.Code
	}{
		{"zero value", Config{}, core.OK},
		{"reference out of range", Config{Reference: Reference{3}}, core.InvalidOptionValue},
		{"source past ground", Config{Source: Source{11}}, core.InvalidOptionValue},
		{"bandgap source", Config{Source: SourceBandgap}, core.OK},
		{"ground source", Config{Reference: ReferenceAVCC, Source: SourceGround}, core.OK},
		{"bad prescaler", Config{Prescaler: Prescaler{8}}, core.InvalidOptionValue},
		{"bad trigger", Config{Trigger: Trigger{9}}, core.InvalidOptionValue},
		{"timer trigger", Config{Trigger: TriggerTimer0Overflow}, core.OK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := core.Of(Validate(tt.cfg)); got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestConfigJSON(t *testing.T) {
	var cfg Config
	data := []byte(`{"reference":"bandgap","source":"temperature","alignment":"left","prescaler":"div64","trigger":"timer1_capture"}`)
	if err := json.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	want := Config{
		Reference: ReferenceBandgap,
		Source:    SourceTemperature,
		Alignment: AlignLeft,
		Prescaler: PrescalerDiv64,
		Trigger:   TriggerTimer1Capture,
	}
	if cfg != want {
		t.Errorf("Expected %+v, got %+v", want, cfg)
	}

	for _, data := range []string{
		`{"reference":"avcc|bandgap"}`,
		`{"source":"adc1|adc2"}`,
		`{"alignment":"right|left"}`,
		`{"prescaler":"div2|div4"}`,
		`{"trigger":"int0|timer0_overflow"}`,
	} {
		before := cfg
		if err := json.Unmarshal([]byte(data), &cfg); err == nil {
			t.Errorf("Expected error for %s", data)
		}
		if cfg != before {
			t.Errorf("%s: rejected text changed the config to %+v", data, cfg)
		}
	}
}

func TestImages(t *testing.T) {
	cur := core.MuxRegs{ADCSRB: core.Bit(core.ACME) | 0x07}
	img := Images(Config{
		Reference: ReferenceAREF,
		Source:    SourceBandgap,
		Alignment: AlignLeft,
		Prescaler: PrescalerDiv16,
		Trigger:   TriggerTimer0MatchA,
	}, cur)

	if img.ADMUX != 0x2E {
		t.Errorf("Expected ADMUX 0x2E, got %s", core.Hex8(img.ADMUX))
	}
	if img.ADCSRA != 0xA4 {
		t.Errorf("Expected ADCSRA 0xA4, got %s", core.Hex8(img.ADCSRA))
	}
	if img.ADCSRB != 0x03 {
		t.Errorf("Expected ADCSRB 0x03, got %s", core.Hex8(img.ADCSRB))
	}
	if core.MuxOwnerOf(img) != core.MuxADC {
		t.Errorf("Expected multiplexer owned by adc, got %s", core.MuxOwnerOf(img))
	}
}

func TestClaimFromComparator(t *testing.T) {
	mem := core.NewMemory()
	mem.Load(core.ADCSRB, core.Bit(core.ACME))
	mem.Load(core.ADMUX, 0x03)

	if core.MuxOwnerOf(core.ReadMuxRegs(mem)) != core.MuxComparator {
		t.Fatal("Expected comparator to own the multiplexer before the test")
	}
	if err := New(mem).Configure(Config{Reference: ReferenceAVCC, Source: SourceADC1}); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}
	regs := core.ReadMuxRegs(mem)
	if regs.ADCSRB&core.Bit(core.ACME) != 0 {
		t.Error("ACME still set after the ADC claimed the multiplexer")
	}
	if core.MuxOwnerOf(regs) != core.MuxADC {
		t.Errorf("Expected adc to own the multiplexer, got %s", core.MuxOwnerOf(regs))
	}
}

func TestStartSetsADSC(t *testing.T) {
	mem := core.NewMemory()
	mem.Load(core.ADCSRA, 0x87)
	New(mem).Start()

	if got := mem.Peek(core.ADCSRA); got != 0xC7 {
		t.Errorf("Expected ADCSRA 0xC7, got %s", core.Hex8(got))
	}
	j := mem.Journal()
	if len(j) != 1 || j[0].Kind != core.OpSet || j[0].Operand != core.Bit(core.ADSC) {
		t.Errorf("Expected a single set of ADSC, got %v", j)
	}
}

// conversionMemory models a conversion that completes on the ADSC write.
func conversionMemory(result uint16, left bool) *core.Memory {
	mem := core.NewMemory()
	mem.OnWrite = func(r core.Register, v uint8) uint8 {
		if r == core.ADCSRA && v&core.Bit(core.ADSC) != 0 {
			out := result
			if left {
				out <<= 6
			}
			mem.Load(core.ADCL, uint8(out))
			mem.Load(core.ADCH, uint8(out>>8))
			return v &^ core.Bit(core.ADSC)
		}
		return v
	}
	return mem
}

func TestSensorVoltage(t *testing.T) {
	mem := conversionMemory(512, false)
	a := New(mem)
	if err := a.Configure(Config{Reference: ReferenceAVCC, Source: SourceADC0}); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}

	s := NewSensor(a, 5000)
	if err := s.Update(drivers.Voltage); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if s.Raw() != 512 {
		t.Errorf("Expected raw 512, got %d", s.Raw())
	}
	if got := s.Voltage(); got != 2500000 {
		t.Errorf("Expected 2500000 uV, got %d", got)
	}

	// ADCL must be read before ADCH.
	var lo, hi int
	for i, op := range mem.Journal() {
		if op.Kind != core.OpRead {
			continue
		}
		switch op.Reg {
		case core.ADCL:
			lo = i
		case core.ADCH:
			hi = i
		}
	}
	if lo == 0 || hi < lo {
		t.Errorf("Expected ADCL read before ADCH, got ADCL at %d and ADCH at %d", lo, hi)
	}
}

func TestSensorLeftAligned(t *testing.T) {
	mem := conversionMemory(0x3FF, true)
	a := New(mem)
	if err := a.Configure(Config{Reference: ReferenceAVCC, Alignment: AlignLeft}); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}
	s := NewSensor(a, 5000)
	if err := s.Update(drivers.Voltage | drivers.Temperature); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if s.Raw() != 0x3FF {
		t.Errorf("Expected raw 0x3FF, got %#x", s.Raw())
	}
}

func TestSensorTemperature(t *testing.T) {
	mem := conversionMemory(355, false)
	a := New(mem)
	if err := a.Configure(Config{Reference: ReferenceBandgap, Source: SourceTemperature}); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}
	s := NewSensor(a, 1100)
	if err := s.Update(drivers.Temperature); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	// (355 - 324.31) / 1.22 = 25.155 °C
	if got := s.Temperature(); got < 25000 || got > 25300 {
		t.Errorf("Expected about 25155 m°C, got %d", got)
	}
}

func TestSensorTimeout(t *testing.T) {
	mem := core.NewMemory() // ADSC never clears
	s := NewSensor(New(mem), 5000)
	s.PollLimit = 3

	if err := s.Update(drivers.Voltage); err != ErrConversionTimeout {
		t.Errorf("Expected ErrConversionTimeout, got %v", err)
	}
	if err := s.Update(drivers.Humidity); err != nil {
		t.Errorf("Expected unsupported measurement to be ignored, got %v", err)
	}
}
