package core

// ModeEntry is the base bit pattern a mode contributes to a peripheral's
// primary and secondary control registers.
type ModeEntry struct {
	Primary   uint8
	Secondary uint8

	// Reserved marks a defined but unusable ordinal. Validators reject it
	// before any lookup.
	Reserved bool
}

// ModeTable maps mode ordinals to their base bit patterns. Its length is
// the number of defined ordinals, reserved ones included.
type ModeTable []ModeEntry

// Lookup returns the entry for ordinal. The ordinal must already have been
// validated; an out-of-range ordinal panics.
func (t ModeTable) Lookup(ordinal uint8) ModeEntry {
	return t[ordinal]
}

// Defined reports whether ordinal is within the table.
func (t ModeTable) Defined(ordinal uint8) bool {
	return int(ordinal) < len(t)
}

// Reserved reports whether ordinal is defined and reserved.
func (t ModeTable) Reserved(ordinal uint8) bool {
	return t.Defined(ordinal) && t[ordinal].Reserved
}

// BitRef locates one mode-select bit in a register pair.
type BitRef struct {
	Slot Slot
	Bit  uint8
}

// DeriveModeTable builds a table of count entries in which bit i of each
// ordinal is placed at bits[i]. This is how the waveform generation mode
// bits are laid out across TCCRnA/TCCRnB, so deriving the table rather than
// writing it out keeps every entry consistent with its ordinal.
func DeriveModeTable(count int, bits []BitRef, reserved ...uint8) ModeTable {
	t := make(ModeTable, count)
	for ord := range t {
		var e ModeEntry
		for i, ref := range bits {
			if ord&(1<<i) == 0 {
				continue
			}
			switch ref.Slot {
			case Primary:
				e.Primary |= Bit(ref.Bit)
			case Secondary:
				e.Secondary |= Bit(ref.Bit)
			}
		}
		t[ord] = e
	}
	for _, r := range reserved {
		t[r].Reserved = true
	}
	return t
}

// FieldTable builds a table from explicit primary patterns, for peripherals
// whose "mode" is a single register field (multiplexer channels, watchdog
// prescaler).
func FieldTable(primary ...uint8) ModeTable {
	t := make(ModeTable, len(primary))
	for i, p := range primary {
		t[i] = ModeEntry{Primary: p}
	}
	return t
}
