package core

// Surface is the abstract register interface that configuration code uses.
// Platform-specific implementations touch the real memory-mapped registers;
// Memory implements it for host builds and tests.
type Surface interface {
	// Read returns the current value of r.
	Read(r Register) uint8

	// Set ORs mask into r.
	Set(r Register, mask uint8)

	// Clear clears the bits of mask in r.
	Clear(r Register, mask uint8)

	// Assign overwrites r with v.
	Assign(r Register, v uint8)
}

// TimedWriter is implemented by surfaces that can perform a timed
// unlock-then-write pair in a single call. On AVR the change-enable window
// is four cycles, shorter than a method return, so real hardware bindings
// must implement it.
type TimedWriter interface {
	// TimedAssign ORs unlock into r and immediately overwrites r with v.
	TimedAssign(r Register, unlock, v uint8)
}

// WatchdogResetter is implemented by surfaces that can issue the watchdog
// reset instruction (wdr).
type WatchdogResetter interface {
	ResetWatchdog()
}

// Write is a single register assignment.
type Write struct {
	Reg   Register
	Value uint8
}

// maxPlanWrites bounds a Plan; the comparator needs the most.
const maxPlanWrites = 8

// Plan is an ordered list of fully composed register images. A facade
// builds the whole plan before committing it so no partially composed
// value is ever written.
type Plan struct {
	w [maxPlanWrites]Write
	n uint8
}

// Assign appends a register assignment to the plan.
// Exceeding the plan capacity is a programming error.
func (p *Plan) Assign(r Register, v uint8) {
	if int(p.n) >= len(p.w) {
		panic("core: plan overflow")
	}
	p.w[p.n] = Write{Reg: r, Value: v}
	p.n++
}

// Len returns the number of writes in the plan.
func (p *Plan) Len() int { return int(p.n) }

// Writes returns the planned writes in commit order.
func (p *Plan) Writes() []Write { return p.w[:p.n] }

// Commit issues every planned write to s, in order.
func (p *Plan) Commit(s Surface) {
	for i := uint8(0); i < p.n; i++ {
		s.Assign(p.w[i].Reg, p.w[i].Value)
	}
}
