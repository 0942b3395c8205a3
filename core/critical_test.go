package core

import "testing"

// plainSurface hides Memory's TimedWriter and WatchdogResetter methods so
// the Committer takes its fallback path.
type plainSurface struct {
	m *Memory
}

func (p plainSurface) Read(r Register) uint8        { return p.m.Read(r) }
func (p plainSurface) Set(r Register, mask uint8)   { p.m.Set(r, mask) }
func (p plainSurface) Clear(r Register, mask uint8) { p.m.Clear(r, mask) }
func (p plainSurface) Assign(r Register, v uint8)   { p.m.Assign(r, v) }

func TestCommitterTimedWriter(t *testing.T) {
	for _, enabled := range []bool{true, false} {
		mem := NewMemory()
		mem.SetInterrupts(enabled)

		c := NewCommitter(mem, mem)
		c.Commit(TimedWrite{Reg: WDTCSR, Unlock: 0x18, Value: 0x47, ResetWatchdog: true})

		if mem.Enabled() != enabled {
			t.Errorf("Interrupts: expected %v after commit, got %v", enabled, mem.Enabled())
		}
		if mem.Peek(WDTCSR) != 0x47 {
			t.Errorf("Expected WDTCSR 0x47, got %s", Hex8(mem.Peek(WDTCSR)))
		}

		j := mem.Journal()
		want := []OpKind{OpDisableInterrupts, OpWatchdogReset, OpTimed, OpRestoreInterrupts}
		if len(j) != len(want) {
			t.Fatalf("Expected %d operations, got %d: %v", len(want), len(j), j)
		}
		for i := range want {
			if j[i].Kind != want[i] {
				t.Errorf("Step %d: expected %s, got %s", i, want[i], j[i].Kind)
			}
		}
		if j[2].Interrupts {
			t.Error("Timed write issued with interrupts enabled")
		}
	}
}

func TestCommitterFallback(t *testing.T) {
	mem := NewMemory()
	mem.SetInterrupts(true)
	irq := NewSoftInterrupts(true)

	var during []bool
	c := NewCommitter(plainSurface{mem}, irq)
	c.OnPhase = func(p Phase) {
		if p == PhaseUnlocking || p == PhaseCommitting {
			during = append(during, irq.Enabled())
		}
	}

	var before Plan
	before.Assign(MCUSR, 0x00)
	c.Commit(TimedWrite{Reg: WDTCSR, Unlock: 0x18, Value: 0x20, Before: before, ResetWatchdog: true})

	if !irq.Enabled() {
		t.Error("Interrupts not restored")
	}
	for i, e := range during {
		if e {
			t.Errorf("Interrupts enabled at phase check %d", i)
		}
	}

	j := mem.Journal()
	if len(j) != 3 {
		t.Fatalf("Expected assign, set, assign; got %v", j)
	}
	if j[0].Kind != OpAssign || j[0].Reg != MCUSR {
		t.Errorf("Expected Before plan first, got %s %s", j[0].Kind, j[0].Reg)
	}
	if j[1].Kind != OpSet || j[1].Operand != 0x18 {
		t.Errorf("Expected unlock set of 0x18, got %s %s", j[1].Kind, Hex8(j[1].Operand))
	}
	if j[2].Kind != OpAssign || j[2].Reg != WDTCSR || j[2].Value != 0x20 {
		t.Errorf("Expected WDTCSR <- 0x20 directly after unlock, got %s %s %s", j[2].Kind, j[2].Reg, Hex8(j[2].Value))
	}
}

func TestCommitterClearInsideWindow(t *testing.T) {
	mem := NewMemory()
	mem.SetInterrupts(true)
	mem.Load(MCUSR, 0x09)

	c := NewCommitter(mem, mem)
	c.Commit(TimedWrite{Reg: WDTCSR, Unlock: 0x18, Value: 0x0F, Clear: BitClear{Reg: MCUSR, Mask: Bit(WDRF)}, ResetWatchdog: true})

	want := []OpKind{OpDisableInterrupts, OpWatchdogReset, OpClear, OpTimed, OpRestoreInterrupts}
	j := mem.Journal()
	if len(j) != len(want) {
		t.Fatalf("Expected %v, got %v", want, j)
	}
	for i, k := range want {
		if j[i].Kind != k {
			t.Errorf("Step %d: expected %s, got %s", i, k, j[i].Kind)
		}
	}
	if j[2].Reg != MCUSR || j[2].Interrupts {
		t.Errorf("Expected MCUSR cleared with interrupts masked, got %s interrupts=%v", j[2].Reg, j[2].Interrupts)
	}
	if got := mem.Peek(MCUSR); got != 0x01 {
		t.Errorf("Expected MCUSR 0x01, got %s", Hex8(got))
	}
}

func TestCommitterPhases(t *testing.T) {
	mem := NewMemory()
	c := NewCommitter(mem, mem)

	var phases []string
	c.OnPhase = func(p Phase) { phases = append(phases, p.String()) }
	c.Commit(TimedWrite{Reg: WDTCSR, Unlock: 0x18})

	want := []string{"idle", "unlocking", "committing", "restored"}
	if len(phases) != len(want) {
		t.Fatalf("Expected %v, got %v", want, phases)
	}
	for i := range want {
		if phases[i] != want[i] {
			t.Errorf("Phase %d: expected %s, got %s", i, want[i], phases[i])
		}
	}
}

func TestSoftInterrupts(t *testing.T) {
	irq := NewSoftInterrupts(true)
	outer := irq.Disable()
	inner := irq.Disable()
	if irq.Enabled() {
		t.Fatal("Disable left interrupts enabled")
	}
	irq.Restore(inner)
	if irq.Enabled() {
		t.Error("Restoring the inner state enabled interrupts")
	}
	irq.Restore(outer)
	if !irq.Enabled() {
		t.Error("Restoring the outer state did not enable interrupts")
	}
	if StateOf(true) != sregI || StateOf(false) != 0 {
		t.Error("StateOf does not match SREG bit I")
	}
}

func TestHardwareInterrupts(t *testing.T) {
	irq := Hardware()
	if !irq.Enabled() {
		t.Fatal("Host interrupts should start enabled")
	}
	c := NewCommitter(NewMemory(), irq)
	c.Commit(TimedWrite{Reg: WDTCSR, Unlock: 0x18})
	if !irq.Enabled() {
		t.Error("Commit left the shared interrupt state disabled")
	}
}
