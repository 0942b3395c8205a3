package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"avrassist/core"
)

var (
	regColor  = color.New(color.FgCyan)
	valColor  = color.New(color.Bold)
	dimColor  = color.New(color.Faint)
	okColor   = color.New(color.FgGreen)
	failColor = color.New(color.FgRed)
)

var errRejected = errors.New("profile rejected")

func printRegister(w io.Writer, r core.Register, v uint8) {
	fmt.Fprintf(w, "  %s %s = %s  %08b\n",
		regColor.Sprintf("%-7s", r), dimColor.Sprintf("[0x%02X]", r.Address()), valColor.Sprint(core.Hex8(v)), v)
}

func printRegisters(w io.Writer, mem *core.Memory, regs []core.Register) {
	for _, r := range regs {
		printRegister(w, r, mem.Peek(r))
	}
}

// touched lists the registers a journal writes, in first-write order.
func touched(journal []core.Op) []core.Register {
	var seen [core.NumRegisters]bool
	var regs []core.Register
	for _, op := range journal {
		if op.Kind.Mutates() && !seen[op.Reg] {
			seen[op.Reg] = true
			regs = append(regs, op.Reg)
		}
	}
	return regs
}

func printJournal(w io.Writer, journal []core.Op) {
	for _, op := range journal {
		switch op.Kind {
		case core.OpRead:
			continue
		case core.OpDisableInterrupts, core.OpRestoreInterrupts, core.OpWatchdogReset:
			fmt.Fprintf(w, "  %s\n", dimColor.Sprint(op.Kind))
		case core.OpTimed:
			fmt.Fprintf(w, "  %-7s %s unlock %s then %s\n", op.Kind, regColor.Sprint(op.Reg), core.Hex8(op.Operand), valColor.Sprint(core.Hex8(op.Value)))
		default:
			fmt.Fprintf(w, "  %-7s %s %s -> %s\n", op.Kind, regColor.Sprint(op.Reg), core.Hex8(op.Operand), valColor.Sprint(core.Hex8(op.Value)))
		}
	}
}

// printRejection lists every rejection in err and returns errRejected, or
// returns err itself when it is not a rejection.
func printRejection(w io.Writer, err error) error {
	if core.Of(err) == core.Error {
		return err
	}
	errs := []error{err}
	if m, ok := err.(interface{ Unwrap() []error }); ok {
		errs = m.Unwrap()
	}
	for _, e := range errs {
		failColor.Fprintf(w, "rejected: %v\n", e)
	}
	return errRejected
}
