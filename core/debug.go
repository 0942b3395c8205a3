package core

// DebugWriter receives one debug line at a time.
type DebugWriter func(string)

var (
	debugPrintln DebugWriter = func(string) {}
	debugEnabled bool
)

// SetDebugWriter installs the sink for debug lines: a spare UART on the
// chip, the host logger in the CLI.
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled turns debug output on or off. It starts off.
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

func IsDebugEnabled() bool {
	return debugEnabled
}

// DebugPrintln writes msg when debug output is on.
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// DebugPlan logs each write of a plan about to be committed.
func DebugPlan(peripheral string, p *Plan) {
	if !debugEnabled {
		return
	}
	for _, w := range p.Writes() {
		DebugPrintln("[" + peripheral + "] " + w.Reg.String() + " <- " + Hex8(w.Value))
	}
}

// DebugReject logs a rejected configuration.
func DebugReject(err error) {
	if err != nil {
		DebugPrintln("[reject] " + err.Error())
	}
}
