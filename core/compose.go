package core

// Slot selects which register of a peripheral's control pair an option
// contributes to.
type Slot uint8

const (
	Primary Slot = iota
	Secondary
)

// Contribution is the bit pattern of one validated orthogonal option.
type Contribution struct {
	Slot Slot
	Bits uint8
}

// ToPrimary returns a contribution of bits to the primary register.
func ToPrimary(bits uint8) Contribution { return Contribution{Slot: Primary, Bits: bits} }

// ToSecondary returns a contribution of bits to the secondary register.
func ToSecondary(bits uint8) Contribution { return Contribution{Slot: Secondary, Bits: bits} }

// Image is the pair of final register values for a peripheral.
type Image struct {
	Primary   uint8
	Secondary uint8
}

// Compose ORs every contribution into the mode entry's base pattern.
// Which option feeds which register is fixed by each peripheral.
func Compose(e ModeEntry, contributions ...Contribution) Image {
	img := Image{Primary: e.Primary, Secondary: e.Secondary}
	for _, c := range contributions {
		switch c.Slot {
		case Primary:
			img.Primary |= c.Bits
		case Secondary:
			img.Secondary |= c.Bits
		}
	}
	return img
}
