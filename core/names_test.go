package core

import "testing"

func TestEnumText(t *testing.T) {
	e := EnumText{"normal", "", "ctc"}

	if e.Name("Mode", 2) != "ctc" {
		t.Errorf("Expected ctc, got %s", e.Name("Mode", 2))
	}
	if e.Name("Mode", 1) != "Mode(1)" || e.Name("Mode", 9) != "Mode(9)" {
		t.Error("Unnamed values should format as Kind(n)")
	}

	if _, err := e.Marshal("Mode", 1); Of(err) != InvalidOptionValue {
		t.Errorf("Expected %s for a gap, got %v", InvalidOptionValue, err)
	}
	if b, err := e.Marshal("Mode", 0); err != nil || string(b) != "normal" {
		t.Errorf("Expected normal, got %q, %v", b, err)
	}

	v, err := e.Parse("Mode", []byte("CTC"))
	if err != nil || v != 2 {
		t.Errorf("Expected 2, got %d, %v", v, err)
	}
	if _, err := e.Parse("Mode", []byte("")); err == nil {
		t.Error("Empty text must not match a gap")
	}
}

func TestFlagText(t *testing.T) {
	f := FlagText{
		{Mask: 0x01, Name: "overflow"},
		{Mask: 0x02, Name: "match_a"},
		{Mask: 0x04, Name: "match_b"},
	}

	tests := []struct {
		v    uint8
		text string
	}{
		{0x00, "none"},
		{0x01, "overflow"},
		{0x06, "match_a|match_b"},
		{0x81, "overflow|0x80"},
	}
	for _, tt := range tests {
		if got := f.Format(tt.v); got != tt.text {
			t.Errorf("Format(%s): expected %q, got %q", Hex8(tt.v), tt.text, got)
		}
	}

	parse := []struct {
		text string
		want uint8
		ok   bool
	}{
		{"none", 0, true},
		{"", 0, true},
		{"overflow|match_b", 0x05, true},
		{"match_a, overflow", 0x03, true},
		{"Match_A", 0x02, true},
		{"overflow|capture", 0, false},
	}
	for _, tt := range parse {
		v, err := f.Parse("Interrupt", []byte(tt.text))
		if (err == nil) != tt.ok || v != tt.want {
			t.Errorf("Parse(%q): expected %s ok=%v, got %s err=%v", tt.text, Hex8(tt.want), tt.ok, Hex8(v), err)
		}
	}

	if f.Mask() != 0x07 {
		t.Errorf("Expected mask 0x07, got %s", Hex8(f.Mask()))
	}
}

func TestHex8AndItoa(t *testing.T) {
	if Hex8(0x0A) != "0x0A" || Hex8(0xFF) != "0xFF" {
		t.Error("Hex8 formatting is wrong")
	}
	if Itoa(0) != "0" || Itoa(-42) != "-42" || Itoa(1024) != "1024" {
		t.Error("Itoa formatting is wrong")
	}
}
