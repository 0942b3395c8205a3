package core

// OpKind classifies a journaled register or interrupt operation.
type OpKind uint8

const (
	OpRead OpKind = iota
	OpSet
	OpClear
	OpAssign
	OpTimed // unlock then assign, as one operation
	OpDisableInterrupts
	OpRestoreInterrupts
	OpWatchdogReset
)

func (k OpKind) String() string {
	switch k {
	case OpRead:
		return "read"
	case OpSet:
		return "set"
	case OpClear:
		return "clear"
	case OpAssign:
		return "assign"
	case OpTimed:
		return "timed"
	case OpDisableInterrupts:
		return "cli"
	case OpRestoreInterrupts:
		return "restore"
	case OpWatchdogReset:
		return "wdr"
	}
	return "op(" + itoa(int(k)) + ")"
}

// Mutates reports whether the operation changes register state.
func (k OpKind) Mutates() bool {
	switch k {
	case OpSet, OpClear, OpAssign, OpTimed:
		return true
	}
	return false
}

// Op is one journal entry.
type Op struct {
	Kind OpKind
	Reg  Register

	// Operand is the mask (set/clear), the value (assign), or the unlock
	// mask (timed).
	Operand uint8

	// Value is the register content after the operation (for timed ops,
	// the final value).
	Value uint8

	// Interrupts is the global interrupt flag at the time of the operation.
	Interrupts bool
}

// Memory is an in-memory register file. It implements Surface, TimedWriter,
// WatchdogResetter and Interrupts and journals every call, which makes it
// the Surface used by host tools and tests.
type Memory struct {
	regs       [NumRegisters]uint8
	interrupts bool
	journal    []Op

	// OnWrite, if set, is called after every mutation with the stored
	// value and returns the value the register should hold. Tests use it
	// to model hardware side effects.
	OnWrite func(r Register, v uint8) uint8
}

// NewMemory returns a register file at reset values with interrupts
// disabled.
func NewMemory() *Memory {
	return &Memory{}
}

// Load sets a register without journaling it.
func (m *Memory) Load(r Register, v uint8) {
	m.regs[r] = v
}

// Peek returns a register without journaling the read.
func (m *Memory) Peek(r Register) uint8 {
	return m.regs[r]
}

// Snapshot returns a copy of the whole register file.
func (m *Memory) Snapshot() [NumRegisters]uint8 {
	return m.regs
}

// SetInterrupts sets the global interrupt flag without journaling it.
func (m *Memory) SetInterrupts(enabled bool) {
	m.interrupts = enabled
}

// Journal returns every operation since creation or the last ResetJournal.
func (m *Memory) Journal() []Op {
	return m.journal
}

// ResetJournal discards the journal, keeping register contents.
func (m *Memory) ResetJournal() {
	m.journal = m.journal[:0]
}

// Mutations counts journaled operations that changed register state.
func (m *Memory) Mutations() int {
	n := 0
	for _, op := range m.journal {
		if op.Kind.Mutates() {
			n++
		}
	}
	return n
}

func (m *Memory) record(kind OpKind, r Register, operand, value uint8) {
	m.journal = append(m.journal, Op{
		Kind:       kind,
		Reg:        r,
		Operand:    operand,
		Value:      value,
		Interrupts: m.interrupts,
	})
}

func (m *Memory) store(r Register, v uint8) uint8 {
	if m.OnWrite != nil {
		v = m.OnWrite(r, v)
	}
	m.regs[r] = v
	return v
}

func (m *Memory) Read(r Register) uint8 {
	v := m.regs[r]
	m.record(OpRead, r, 0, v)
	return v
}

func (m *Memory) Set(r Register, mask uint8) {
	v := m.store(r, m.regs[r]|mask)
	m.record(OpSet, r, mask, v)
}

func (m *Memory) Clear(r Register, mask uint8) {
	v := m.store(r, m.regs[r]&^mask)
	m.record(OpClear, r, mask, v)
}

func (m *Memory) Assign(r Register, v uint8) {
	stored := m.store(r, v)
	m.record(OpAssign, r, v, stored)
}

func (m *Memory) TimedAssign(r Register, unlock, v uint8) {
	m.store(r, m.regs[r]|unlock)
	stored := m.store(r, v)
	m.record(OpTimed, r, unlock, stored)
}

func (m *Memory) ResetWatchdog() {
	m.record(OpWatchdogReset, 0, 0, 0)
}

func (m *Memory) Disable() InterruptState {
	state := StateOf(m.interrupts)
	m.interrupts = false
	m.record(OpDisableInterrupts, 0, uint8(state), 0)
	return state
}

func (m *Memory) Restore(state InterruptState) {
	m.interrupts = state.Enabled()
	m.record(OpRestoreInterrupts, 0, uint8(state), 0)
}

func (m *Memory) Enabled() bool {
	return m.interrupts
}
