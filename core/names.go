package core

// EnumText maps enum ordinals to their snake_case text form. Option enums
// use it for String, MarshalText and UnmarshalText, so configurations can
// be written in JSON profiles and on the command line.
type EnumText []string

// Name returns the text for v, or kind(v) when v is out of range.
func (e EnumText) Name(kind string, v uint8) string {
	if int(v) < len(e) && e[v] != "" {
		return e[v]
	}
	return kind + "(" + itoa(int(v)) + ")"
}

// Marshal returns the text for v, rejecting out-of-range values.
func (e EnumText) Marshal(kind string, v uint8) ([]byte, error) {
	if int(v) >= len(e) || e[v] == "" {
		return nil, Reject(InvalidOptionValue, kind, "", "no name for value "+itoa(int(v)))
	}
	return []byte(e[v]), nil
}

// Parse returns the ordinal named by text. Matching is case-insensitive.
func (e EnumText) Parse(kind string, text []byte) (uint8, error) {
	s := string(text)
	for i, n := range e {
		if n != "" && equalFold(n, s) {
			return uint8(i), nil
		}
	}
	return 0, Reject(InvalidOptionValue, kind, "", "unknown value \""+s+"\"")
}

// FlagName names one flag of a bit set.
type FlagName struct {
	Mask uint8
	Name string
}

// FlagText maps a bit set to a "a|b" text form. The empty set is "none".
type FlagText []FlagName

// Format returns the text form of v. Unknown bits are rendered in hex.
func (f FlagText) Format(v uint8) string {
	if v == 0 {
		return "none"
	}
	s := ""
	rest := v
	for _, n := range f {
		if v&n.Mask == n.Mask {
			if s != "" {
				s += "|"
			}
			s += n.Name
			rest &^= n.Mask
		}
	}
	if rest != 0 {
		if s != "" {
			s += "|"
		}
		s += Hex8(rest)
	}
	return s
}

// Parse reads a "a|b" or "a,b" list into a bit set.
func (f FlagText) Parse(kind string, text []byte) (uint8, error) {
	var v uint8
	start := 0
	for i := 0; i <= len(text); i++ {
		if i < len(text) && text[i] != '|' && text[i] != ',' {
			continue
		}
		word := trimSpace(string(text[start:i]))
		start = i + 1
		if word == "" || equalFold(word, "none") {
			continue
		}
		found := false
		for _, n := range f {
			if equalFold(n.Name, word) {
				v |= n.Mask
				found = true
				break
			}
		}
		if !found {
			return 0, Reject(InvalidOptionValue, kind, "", "unknown flag \""+word+"\"")
		}
	}
	return v, nil
}

// Mask returns the union of every named flag.
func (f FlagText) Mask() uint8 {
	var m uint8
	for _, n := range f {
		m |= n.Mask
	}
	return m
}

func trimSpace(s string) string {
	for len(s) > 0 && (s[0] == ' ' || s[0] == '\t') {
		s = s[1:]
	}
	for len(s) > 0 && (s[len(s)-1] == ' ' || s[len(s)-1] == '\t') {
		s = s[:len(s)-1]
	}
	return s
}
