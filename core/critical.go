package core

// Phase is a step of the timed unlock sequence.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseUnlocking
	PhaseCommitting
	PhaseRestored
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseUnlocking:
		return "unlocking"
	case PhaseCommitting:
		return "committing"
	case PhaseRestored:
		return "restored"
	}
	return "phase(" + itoa(int(p)) + ")"
}

// TimedWrite describes a protected register change: Unlock is ORed into
// Reg and Value must follow within the hardware window (four cycles on
// AVR) with no other register access in between.
type TimedWrite struct {
	Reg    Register
	Unlock uint8
	Value  uint8

	// Before holds plain writes issued after interrupts are masked and
	// before the unlock.
	Before Plan

	// Clear names bits cleared by read-modify-write after Before, so the
	// read happens inside the masked window. A zero Mask skips it.
	Clear BitClear

	// ResetWatchdog issues wdr after masking, when the surface supports it.
	ResetWatchdog bool
}

// BitClear is a read-modify-write that clears Mask in Reg.
type BitClear struct {
	Reg  Register
	Mask uint8
}

// Committer runs timed unlock sequences with interrupts masked.
type Committer struct {
	regs Surface
	irq  Interrupts

	// OnPhase, if set, is called on every phase transition.
	OnPhase func(Phase)
}

// NewCommitter creates a Committer over regs and irq.
func NewCommitter(regs Surface, irq Interrupts) *Committer {
	return &Committer{regs: regs, irq: irq}
}

func (c *Committer) enter(p Phase) {
	if c.OnPhase != nil {
		c.OnPhase(p)
	}
}

// Commit runs tw: snapshot and mask interrupts, unlock, commit, restore.
// Interrupts stay masked from the unlock through the commit, and the
// interrupt state after Commit equals the state before it.
//
// The unlock and the commit are issued back to back with nothing between
// them, so PhaseCommitting is reported once the pair has been issued.
func (c *Committer) Commit(tw TimedWrite) {
	c.enter(PhaseIdle)
	state := c.irq.Disable()

	if tw.ResetWatchdog {
		if r, ok := c.regs.(WatchdogResetter); ok {
			r.ResetWatchdog()
		}
	}
	tw.Before.Commit(c.regs)
	if tw.Clear.Mask != 0 {
		c.regs.Clear(tw.Clear.Reg, tw.Clear.Mask)
	}

	c.enter(PhaseUnlocking)
	if w, ok := c.regs.(TimedWriter); ok {
		w.TimedAssign(tw.Reg, tw.Unlock, tw.Value)
	} else {
		c.regs.Set(tw.Reg, tw.Unlock)
		c.regs.Assign(tw.Reg, tw.Value)
	}
	c.enter(PhaseCommitting)

	c.irq.Restore(state)
	c.enter(PhaseRestored)
	DebugPrintln("[critical] " + tw.Reg.String() + " <- " + Hex8(tw.Value))
}
