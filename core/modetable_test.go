package core

import "testing"

func TestDeriveModeTable8Bit(t *testing.T) {
	table := DeriveModeTable(8, []BitRef{
		{Slot: Primary, Bit: WGMn0},
		{Slot: Primary, Bit: WGMn1},
		{Slot: Secondary, Bit: WGMn2},
	}, 4, 6)

	// WGM02:0 from the datasheet, as (TCCR0A, TCCR0B) pairs.
	want := []ModeEntry{
		{0x00, 0x00, false},
		{0x01, 0x00, false},
		{0x02, 0x00, false},
		{0x03, 0x00, false},
		{0x00, 0x08, true},
		{0x01, 0x08, false},
		{0x02, 0x08, true},
		{0x03, 0x08, false},
	}
	if len(table) != len(want) {
		t.Fatalf("Expected %d entries, got %d", len(want), len(table))
	}
	for i, w := range want {
		if got := table.Lookup(uint8(i)); got != w {
			t.Errorf("Mode %d: expected %+v, got %+v", i, w, got)
		}
	}
}

func TestModeTableBounds(t *testing.T) {
	table := DeriveModeTable(4, []BitRef{{Slot: Primary, Bit: 0}, {Slot: Primary, Bit: 1}}, 2)

	if !table.Defined(3) || table.Defined(4) {
		t.Error("Defined does not match table length")
	}
	if !table.Reserved(2) || table.Reserved(1) {
		t.Error("Reserved does not match reserved list")
	}
	if table.Reserved(9) {
		t.Error("Out-of-range ordinal reported as reserved")
	}

	defer func() {
		if recover() == nil {
			t.Error("Expected Lookup of an undefined ordinal to panic")
		}
	}()
	table.Lookup(4)
}

func TestFieldTable(t *testing.T) {
	table := FieldTable(0x00, 0x0E, 0x21)
	if len(table) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(table))
	}
	if table.Lookup(2).Primary != 0x21 || table.Lookup(2).Secondary != 0 {
		t.Errorf("Unexpected entry %+v", table.Lookup(2))
	}
}

func TestCompose(t *testing.T) {
	tests := []struct {
		name  string
		entry ModeEntry
		opts  []Contribution
		want  Image
	}{
		{"base only", ModeEntry{Primary: 0x02, Secondary: 0x08}, nil, Image{0x02, 0x08}},
		{"ctc toggle div256", ModeEntry{Primary: 0x02}, []Contribution{ToPrimary(0x40), ToSecondary(0x04)}, Image{0x42, 0x04}},
		{"overlapping bits", ModeEntry{Primary: 0x03}, []Contribution{ToPrimary(0x01), ToPrimary(0x80)}, Image{0x83, 0x00}},
		{"unknown slot ignored", ModeEntry{}, []Contribution{{Slot: 7, Bits: 0xFF}}, Image{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compose(tt.entry, tt.opts...); got != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestPlan(t *testing.T) {
	var p Plan
	p.Assign(TCCR0A, 0x42)
	p.Assign(TCCR0B, 0x04)

	mem := NewMemory()
	p.Commit(mem)

	if p.Len() != 2 {
		t.Errorf("Expected 2 writes, got %d", p.Len())
	}
	j := mem.Journal()
	if len(j) != 2 || j[0].Reg != TCCR0A || j[1].Reg != TCCR0B {
		t.Fatalf("Unexpected journal %v", j)
	}
	if mem.Peek(TCCR0A) != 0x42 || mem.Peek(TCCR0B) != 0x04 {
		t.Error("Plan values not written")
	}

	defer func() {
		if recover() == nil {
			t.Error("Expected overflow panic")
		}
	}()
	for i := 0; i < maxPlanWrites; i++ {
		p.Assign(PRR, 0)
	}
}
