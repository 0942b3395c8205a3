package core

// Code is a stable rejection identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Rejection codes.
const (
	OK Code = "ok"

	// InvalidOptionValue: a field holds a value outside its legal set,
	// including two variants accidentally OR'd together.
	InvalidOptionValue Code = "invalid_option_value"

	// ReservedModeSelected: a mode ordinal documented as reserved.
	ReservedModeSelected Code = "reserved_mode_selected"

	// IncompatibleOptionForMode: an option that is legal on its own but
	// not under the selected mode.
	IncompatibleOptionForMode Code = "incompatible_option_for_mode"

	// SharedResourceConflict: the ADC and the comparator both claim the
	// analog multiplexer. Facades resolve ownership by the last writer and
	// never return it; a board profile that asks for both does.
	SharedResourceConflict Code = "shared_resource_conflict"

	Error Code = "error" // generic fallback
)

// Rejection is returned by validators. It keeps the peripheral and field
// that caused the rejection alongside the code.
type Rejection struct {
	C          Code
	Peripheral string
	Field      string
	Msg        string
}

func (e *Rejection) Error() string {
	s := e.Peripheral + ": " + string(e.C)
	if e.Field != "" {
		s += " (" + e.Field + ")"
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	return s
}

func (e *Rejection) Unwrap() error { return e.C }
func (e *Rejection) Code() Code    { return e.C }

// Reject builds a Rejection.
func Reject(c Code, peripheral, field, msg string) *Rejection {
	return &Rejection{C: c, Peripheral: peripheral, Field: field, Msg: msg}
}

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	type unwrapper interface{ Unwrap() error }
	if u, ok := err.(unwrapper); ok {
		return Of(u.Unwrap())
	}
	// Joined errors report their first code.
	type multi interface{ Unwrap() []error }
	if m, ok := err.(multi); ok {
		for _, e := range m.Unwrap() {
			if c := Of(e); c != Error {
				return c
			}
		}
	}
	return Error
}

// ParseCode maps a code string back to a Code, defaulting to Error.
func ParseCode(s string) Code {
	switch c := Code(s); c {
	case OK, InvalidOptionValue, ReservedModeSelected, IncompatibleOptionForMode, SharedResourceConflict:
		return c
	}
	return Error
}
