package core

// ATmega48A/88A/168A/328P peripheral register catalogue.
// Based on the ATmega328P datasheet (DS40002061B), sections 24-29.

// Register names a memory-mapped control or status register.
type Register uint8

// Registers touched by the configuration engine.
const (
	PRR Register = iota // Power reduction
	ADMUX
	ADCSRA
	ADCSRB
	ADCL
	ADCH
	DIDR0
	DIDR1
	ACSR
	TCCR0A
	TCCR0B
	TIMSK0
	TCCR1A
	TCCR1B
	TCCR1C
	TIMSK1
	TCCR2A
	TCCR2B
	TIMSK2
	WDTCSR
	MCUSR

	NumRegisters
)

var registerInfo = [NumRegisters]struct {
	name string
	addr uint16
}{
	PRR:    {"PRR", 0x64},
	ADMUX:  {"ADMUX", 0x7C},
	ADCSRA: {"ADCSRA", 0x7A},
	ADCSRB: {"ADCSRB", 0x7B},
	ADCL:   {"ADCL", 0x78},
	ADCH:   {"ADCH", 0x79},
	DIDR0:  {"DIDR0", 0x7E},
	DIDR1:  {"DIDR1", 0x7F},
	ACSR:   {"ACSR", 0x50},
	TCCR0A: {"TCCR0A", 0x44},
	TCCR0B: {"TCCR0B", 0x45},
	TIMSK0: {"TIMSK0", 0x6E},
	TCCR1A: {"TCCR1A", 0x80},
	TCCR1B: {"TCCR1B", 0x81},
	TCCR1C: {"TCCR1C", 0x82},
	TIMSK1: {"TIMSK1", 0x6F},
	TCCR2A: {"TCCR2A", 0xB0},
	TCCR2B: {"TCCR2B", 0xB1},
	TIMSK2: {"TIMSK2", 0x70},
	WDTCSR: {"WDTCSR", 0x60},
	MCUSR:  {"MCUSR", 0x54},
}

// Valid reports whether r names a catalogued register.
func (r Register) Valid() bool { return r < NumRegisters }

// String returns the datasheet name of the register.
func (r Register) String() string {
	if !r.Valid() {
		return "REG(" + itoa(int(r)) + ")"
	}
	return registerInfo[r].name
}

// Address returns the data-space address of the register.
func (r Register) Address() uint16 {
	if !r.Valid() {
		return 0
	}
	return registerInfo[r].addr
}

// RegisterByName looks a register up by its datasheet name.
func RegisterByName(name string) (Register, bool) {
	for r := Register(0); r < NumRegisters; r++ {
		if equalFold(registerInfo[r].name, name) {
			return r, true
		}
	}
	return 0, false
}

// Bit returns a mask with bit n set.
func Bit(n uint8) uint8 { return 1 << n }

// PRR bits
const (
	PRADC  = 0
	PRTIM1 = 3
	PRTIM0 = 5
	PRTIM2 = 6
)

// ADMUX bits
const (
	MUX0  = 0
	MUX1  = 1
	MUX2  = 2
	MUX3  = 3
	ADLAR = 5
	REFS0 = 6
	REFS1 = 7

	// MUXMask covers the channel-select field MUX3:0.
	MUXMask uint8 = 0x0F
)

// ADCSRA bits
const (
	ADPS0 = 0
	ADPS1 = 1
	ADPS2 = 2
	ADIE  = 3
	ADIF  = 4
	ADATE = 5
	ADSC  = 6
	ADEN  = 7
)

// ADCSRB bits
const (
	ADTS0 = 0
	ADTS1 = 1
	ADTS2 = 2
	ACME  = 6
)

// DIDR1 bits
const (
	AIN0D = 0
	AIN1D = 1
)

// ACSR bits
const (
	ACIS0 = 0
	ACIS1 = 1
	ACIC  = 2
	ACIE  = 3
	ACI   = 4
	ACO   = 5
	ACBG  = 6
	ACD   = 7
)

// Timer/counter control bits. Timer0 and Timer2 share the same layout;
// Timer1 differs only in TCCR1B (WGM13, ICES1, ICNC1) and TCCR1C.
const (
	WGMn0  = 0 // TCCRnA
	WGMn1  = 1 // TCCRnA
	COMnB0 = 4 // TCCRnA
	COMnB1 = 5 // TCCRnA
	COMnA0 = 6 // TCCRnA
	COMnA1 = 7 // TCCRnA

	CSn0  = 0 // TCCRnB
	CSn1  = 1 // TCCRnB
	CSn2  = 2 // TCCRnB
	WGMn2 = 3 // TCCRnB
	WGM13 = 4 // TCCR1B
	ICES1 = 6 // TCCR1B
	ICNC1 = 7 // TCCR1B

	FOCnB = 6 // TCCR0B, TCCR2B, TCCR1C
	FOCnA = 7 // TCCR0B, TCCR2B, TCCR1C

	TOIEn  = 0 // TIMSKn
	OCIEnA = 1 // TIMSKn
	OCIEnB = 2 // TIMSKn
	ICIE1  = 5 // TIMSK1

	// CSMask covers the clock-select field CSn2:0.
	CSMask uint8 = 0x07
)

// WDTCSR bits
const (
	WDP0 = 0
	WDP1 = 1
	WDP2 = 2
	WDE  = 3
	WDCE = 4
	WDP3 = 5
	WDIE = 6
	WDIF = 7
)

// MCUSR bits
const (
	WDRF = 3
)
