package core

// MuxOwner identifies which peripheral routes the analog input multiplexer.
type MuxOwner uint8

const (
	// MuxReleased: neither peripheral has claimed the multiplexer for the
	// comparator and the ADC is disabled.
	MuxReleased MuxOwner = iota
	// MuxADC: the ADC is enabled and samples the multiplexer output.
	MuxADC
	// MuxComparator: the comparator's negative input is the multiplexer
	// output (ACME set, ADEN clear).
	MuxComparator
)

func (o MuxOwner) String() string {
	switch o {
	case MuxReleased:
		return "released"
	case MuxADC:
		return "adc"
	case MuxComparator:
		return "comparator"
	}
	return "MuxOwner(" + itoa(int(o)) + ")"
}

// MuxRegs is the set of registers the multiplexer rule touches.
type MuxRegs struct {
	ADCSRA uint8
	ADCSRB uint8
	ADMUX  uint8
}

// ReadMuxRegs snapshots the multiplexer registers.
func ReadMuxRegs(s Surface) MuxRegs {
	return MuxRegs{
		ADCSRA: s.Read(ADCSRA),
		ADCSRB: s.Read(ADCSRB),
		ADMUX:  s.Read(ADMUX),
	}
}

// RouteMux is the single ownership rule for the analog multiplexer. It
// returns the images that hand the multiplexer to owner on channel, starting
// from cur. Claiming for one peripheral always clears the other's enable
// bit in the returned images:
//
//   - MuxADC sets ADEN, clears ACME and selects channel.
//   - MuxComparator clears ADEN, sets ACME and selects channel. ADIF is
//     dropped from the ADCSRA image since writing it back as one clears a
//     pending conversion flag.
//   - MuxReleased clears ACME only; the ADC keeps whatever it had.
//
// Callers commit the register that disables the outgoing owner first: the
// ADC writes ADCSRB before ADCSRA, the comparator ADCSRA before ADCSRB.
func RouteMux(owner MuxOwner, channel uint8, cur MuxRegs) MuxRegs {
	out := cur
	switch owner {
	case MuxADC:
		out.ADCSRA |= Bit(ADEN)
		out.ADCSRB &^= Bit(ACME)
		out.ADMUX = out.ADMUX&^MUXMask | channel&MUXMask
	case MuxComparator:
		out.ADCSRA &^= Bit(ADEN) | Bit(ADIF)
		out.ADCSRB |= Bit(ACME)
		out.ADMUX = out.ADMUX&^MUXMask | channel&MUXMask
	case MuxReleased:
		out.ADCSRB &^= Bit(ACME)
	}
	return out
}

// MuxOwnerOf decodes the current owner from register state. ADEN wins over
// ACME, matching the hardware: the comparator only sees the multiplexer
// while the ADC is disabled.
func MuxOwnerOf(regs MuxRegs) MuxOwner {
	switch {
	case regs.ADCSRA&Bit(ADEN) != 0:
		return MuxADC
	case regs.ADCSRB&Bit(ACME) != 0:
		return MuxComparator
	}
	return MuxReleased
}
