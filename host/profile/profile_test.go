package profile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"avrassist/comparator"
	"avrassist/core"
	"avrassist/timer0"
	"avrassist/watchdog"
)

const blink = `{
	"name": "blink",
	"timer0": {"mode": "ctc_ocra", "clock": "div256", "compare_a": "toggle"},
	"watchdog": {"timeout": "2s", "mode": "interrupt"}
}`

func TestParse(t *testing.T) {
	p, err := Parse([]byte(blink))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if p.Name != "blink" || p.Timer1 != nil || p.ADC != nil {
		t.Errorf("Unexpected profile %+v", p)
	}
	want := timer0.Config{Mode: timer0.ModeCTCOCR0A, Clock: timer0.ClockDiv256, CompareA: timer0.Toggle}
	if p.Timer0 == nil || *p.Timer0 != want {
		t.Errorf("Expected timer0 %+v, got %+v", want, p.Timer0)
	}
	if p.Watchdog == nil || p.Watchdog.Timeout != watchdog.Timeout2s || p.Watchdog.Mode != watchdog.ModeInterrupt {
		t.Errorf("Unexpected watchdog %+v", p.Watchdog)
	}

	names := p.Peripherals()
	if len(names) != 2 || names[0] != "timer0" || names[1] != "watchdog" {
		t.Errorf("Expected [timer0 watchdog], got %v", names)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"unknown peripheral", `{"timer3": {}}`},
		{"unknown field", `{"adc": {"gain": 2}}`},
		{"unknown mode name", `{"timer0": {"mode": "ctc"}}`},
		{"not json", `timer0=ctc`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.json)); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.json")
	if err := os.WriteFile(path, []byte(blink), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := Load("@" + path)
	if err != nil || p.Name != "blink" {
		t.Fatalf("Load from file failed: %v", err)
	}
	if _, err := Load("@" + path + ".missing"); err == nil {
		t.Error("Expected error for a missing file")
	}
	if p, err := Load(`{"name": "inline"}`); err != nil || p.Name != "inline" {
		t.Errorf("Inline load failed: %v", err)
	}
}

func TestApply(t *testing.T) {
	p, err := Parse([]byte(blink))
	if err != nil {
		t.Fatal(err)
	}
	mem := core.NewMemory()
	mem.SetInterrupts(true)

	if err := p.Apply(mem, mem); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if mem.Peek(core.TCCR0A) != 0x42 || mem.Peek(core.TCCR0B) != 0x04 {
		t.Errorf("Timer0 not configured: %s/%s", core.Hex8(mem.Peek(core.TCCR0A)), core.Hex8(mem.Peek(core.TCCR0B)))
	}
	if mem.Peek(core.WDTCSR) != 0x47 {
		t.Errorf("Expected WDTCSR 0x47, got %s", core.Hex8(mem.Peek(core.WDTCSR)))
	}
	if !mem.Enabled() {
		t.Error("Interrupts not restored")
	}

	// Timers go before the watchdog.
	var written []core.Register
	for _, op := range mem.Journal() {
		if op.Kind.Mutates() && op.Reg != core.PRR {
			written = append(written, op.Reg)
		}
	}
	if len(written) == 0 || written[0] != core.TCCR0A || written[len(written)-1] != core.WDTCSR {
		t.Errorf("Expected TCCR0A first and WDTCSR last, got %v", written)
	}
}

func TestApplyAllOrNothing(t *testing.T) {
	p, err := Parse([]byte(`{
		"timer0": {"mode": "fast_pwm_255", "clock": "div64"},
		"timer1": {"mode": "reserved_13", "clock": "div1"},
		"adc": {"reference": "avcc", "source": "temperature"}
	}`))
	if err != nil {
		t.Fatal(err)
	}

	mem := core.NewMemory()
	err = p.Apply(mem, mem)
	if !errors.Is(err, core.ReservedModeSelected) || !errors.Is(err, core.InvalidOptionValue) {
		t.Errorf("Expected both rejections reported, got %v", err)
	}
	if mem.Mutations() != 0 {
		t.Errorf("Rejected profile wrote %d registers", mem.Mutations())
	}
}

func TestValidateMultiplexerConflict(t *testing.T) {
	p, err := Parse([]byte(`{
		"comparator": {"reference": "bandgap", "sample": "adc3"},
		"adc": {"reference": "avcc", "source": "adc0"}
	}`))
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Validate(); core.Of(err) != core.SharedResourceConflict {
		t.Errorf("Expected %s, got %v", core.SharedResourceConflict, err)
	}

	p.Comparator.Sample = comparator.SampleAIN1
	if err := p.Validate(); err != nil {
		t.Errorf("Unexpected error %v", err)
	}
}
