// Package watchdog configures the watchdog timer.
//
// WDTCSR is protected by a timed sequence: WDCE and WDE must be written
// together and the new value must follow within four clock cycles. The
// sequence runs through core.Committer with global interrupts masked, and
// the interrupt enable flag is restored to its previous state afterwards.
package watchdog

import "avrassist/core"

const name = "watchdog"

// Timeout is the watchdog period at 5 V. The oscillator runs at about
// 128 kHz, so actual periods vary with voltage and temperature.
type Timeout struct{ wdp uint8 }

var (
	Timeout16ms  = Timeout{0}
	Timeout32ms  = Timeout{1}
	Timeout64ms  = Timeout{2}
	Timeout125ms = Timeout{3}
	Timeout250ms = Timeout{4}
	Timeout500ms = Timeout{5}
	Timeout1s    = Timeout{6}
	Timeout2s    = Timeout{7}
	Timeout4s    = Timeout{8}
	Timeout8s    = Timeout{9}
)

var timeoutText = core.EnumText{
	"16ms", "32ms", "64ms", "125ms", "250ms", "500ms", "1s", "2s", "4s", "8s",
}

// Timeouts maps each Timeout to its WDP3:0 pattern. WDP3 is not adjacent to
// WDP2:0.
var Timeouts = core.FieldTable(0, 1, 2, 3, 4, 5, 6, 7,
	1<<core.WDP3,
	1<<core.WDP3|1<<core.WDP0,
)

var timeoutMillis = [...]uint32{16, 32, 64, 125, 250, 500, 1000, 2000, 4000, 8000}

// Millis returns the typical period in milliseconds. t must be valid.
func (t Timeout) Millis() uint32 {
	return timeoutMillis[t.wdp]
}

func (t Timeout) String() string { return timeoutText.Name("Timeout", t.wdp) }

func (t Timeout) MarshalText() ([]byte, error) { return timeoutText.Marshal("Timeout", t.wdp) }

func (t *Timeout) UnmarshalText(text []byte) error {
	v, err := timeoutText.Parse("Timeout", text)
	if err != nil {
		return err
	}
	*t = Timeout{v}
	return nil
}

// Mode selects what a timeout does.
type Mode struct{ mode uint8 }

var (
	ModeReset     = Mode{0} // system reset (WDE)
	ModeInterrupt = Mode{1} // watchdog interrupt only (WDIE)
	ModeBoth      = Mode{2} // interrupt, then reset on the next timeout
	ModeOff       = Mode{3}
)

var modeText = core.EnumText{"reset", "interrupt", "both", "off"}

// modeBits holds the WDE and WDIE pattern of each mode.
var modeBits = [...]uint8{
	1 << core.WDE,
	1 << core.WDIE,
	1<<core.WDE | 1<<core.WDIE,
	0,
}

func (m Mode) Valid() bool { return int(m.mode) < len(modeBits) }

func (m Mode) String() string { return modeText.Name("Mode", m.mode) }

func (m Mode) MarshalText() ([]byte, error) { return modeText.Marshal("Mode", m.mode) }

func (m *Mode) UnmarshalText(text []byte) error {
	v, err := modeText.Parse("Mode", text)
	if err != nil {
		return err
	}
	*m = Mode{v}
	return nil
}

// Config is a watchdog configuration. The zero value resets the system
// after 16 ms.
type Config struct {
	Timeout Timeout `json:"timeout"`
	Mode    Mode    `json:"mode"`
}

// Validate reports whether cfg is a legal watchdog configuration.
func Validate(cfg Config) error {
	if !Timeouts.Defined(cfg.Timeout.wdp) {
		return core.Reject(core.InvalidOptionValue, name, "timeout", "")
	}
	if !cfg.Mode.Valid() {
		return core.Reject(core.InvalidOptionValue, name, "mode", "")
	}
	return nil
}

// Image returns the WDTCSR value cfg composes to. cfg must be valid.
func Image(cfg Config) uint8 {
	return core.Compose(Timeouts.Lookup(cfg.Timeout.wdp), core.ToPrimary(modeBits[cfg.Mode.mode])).Primary
}

// Watchdog is the watchdog facade.
type Watchdog struct {
	regs      core.Surface
	committer *core.Committer
}

// New creates a watchdog facade. irq is the global interrupt control used
// to mask interrupts around the timed sequence.
func New(regs core.Surface, irq core.Interrupts) *Watchdog {
	return &Watchdog{regs: regs, committer: core.NewCommitter(regs, irq)}
}

// Committer returns the committer used for the timed sequence, so callers
// can observe its phases.
func (w *Watchdog) Committer() *core.Committer {
	return w.committer
}

// Configure validates cfg and, only if it is legal, starts (or stops) the
// watchdog. The timer is reset and WDRF cleared inside the masked window,
// before the unlock; a set WDRF would otherwise force WDE on. WDRF is
// cleared by read-modify-write so the other reset flags survive.
func (w *Watchdog) Configure(cfg Config) error {
	if err := Validate(cfg); err != nil {
		core.DebugReject(err)
		return err
	}
	tw := core.TimedWrite{
		Reg:           core.WDTCSR,
		Unlock:        core.Bit(core.WDCE) | core.Bit(core.WDE),
		Value:         Image(cfg),
		Clear:         core.BitClear{Reg: core.MCUSR, Mask: core.Bit(core.WDRF)},
		ResetWatchdog: true,
	}
	w.committer.Commit(tw)
	return nil
}

// Update resets the watchdog timer (wdr). It has no effect on surfaces that
// cannot issue the instruction.
func (w *Watchdog) Update() {
	if r, ok := w.regs.(core.WatchdogResetter); ok {
		r.ResetWatchdog()
	}
}
