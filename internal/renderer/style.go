package renderer

// Attr is a set of text attributes.
type Attr uint8

// Text attributes.
const (
	Bold Attr = 1 << iota
	Dim
	Italic
	Underline
	Reverse
)

// Has reports whether every attribute in b is set.
func (a Attr) Has(b Attr) bool {
	return a&b == b
}

// Style is the colours and attributes of a cell.
type Style struct {
	Fg    Color
	Bg    Color
	Attrs Attr
}

// DefaultStyle uses the terminal's own colours.
func DefaultStyle() Style {
	return Style{Fg: ColorDefault, Bg: ColorDefault}
}

// Foreground returns s with the foreground replaced.
func (s Style) Foreground(c Color) Style {
	s.Fg = c
	return s
}

// Background returns s with the background replaced.
func (s Style) Background(c Color) Style {
	s.Bg = c
	return s
}

// With returns s with the attributes in a added.
func (s Style) With(a Attr) Style {
	s.Attrs |= a
	return s
}

// Without returns s with the attributes in a cleared.
func (s Style) Without(a Attr) Style {
	s.Attrs &^= a
	return s
}

func (s Style) Equals(other Style) bool {
	return s.Attrs == other.Attrs && s.Fg.Equals(other.Fg) && s.Bg.Equals(other.Bg)
}
