package editor

// BasicPalette holds the single active drawing colour. It satisfies
// Palette for hosts without a colour picker UI.
type BasicPalette struct {
	colour uint32
}

// NewPalette returns a palette starting at the given packed colour.
func NewPalette(initial uint32) *BasicPalette {
	return &BasicPalette{colour: initial}
}

// Colour implements Palette.
func (p *BasicPalette) Colour() uint32 { return p.colour }

// SetColour implements Palette.
func (p *BasicPalette) SetColour(c uint32) { p.colour = c }
