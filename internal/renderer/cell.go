package renderer

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Cell represents a single terminal cell.
type Cell struct {
	// Text is one grapheme cluster. Empty marks the continuation of a
	// wide cluster drawn in the cell to the left.
	Text string

	// Width is the display width of Text: 0 for continuation cells, 1 for
	// normal characters, 2 for wide characters and most emoji.
	Width int

	Style Style
}

// EmptyCell returns a blank cell with default style.
func EmptyCell() Cell {
	return Cell{Text: " ", Width: 1, Style: DefaultStyle()}
}

// BlankCell returns a blank cell in style.
func BlankCell(style Style) Cell {
	return Cell{Text: " ", Width: 1, Style: style}
}

// IsContinuation reports whether c is the tail of a wide cluster.
func (c Cell) IsContinuation() bool {
	return c.Width == 0 && c.Text == ""
}

// Equals returns true if two cells are identical.
func (c Cell) Equals(other Cell) bool {
	return c.Text == other.Text && c.Width == other.Width && c.Style.Equals(other.Style)
}

// StringWidth returns the number of columns s occupies.
func StringWidth(s string) int {
	return uniseg.StringWidth(s)
}

// Cells splits s into grapheme cells in style. Zero-width clusters such as
// stray control characters are dropped.
func Cells(s string, style Style) []Cell {
	cells := make([]Cell, 0, len(s))
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		cluster := g.Str()
		w := g.Width()
		if w <= 0 {
			continue
		}
		cells = append(cells, Cell{Text: cluster, Width: w, Style: style})
	}
	return cells
}

// Truncate shortens s to at most width columns, ending in "…" when
// anything was cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if StringWidth(s) <= width {
		return s
	}

	var b strings.Builder
	used := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w := g.Width()
		if used+w > width-1 {
			break
		}
		b.WriteString(g.Str())
		used += w
	}
	b.WriteString("…")
	return b.String()
}

// Canvas is anything cells can be drawn onto.
type Canvas interface {
	SetCell(x, y int, cell Cell)
	Size() (width, height int)
}

// DrawText draws s at (x, y) clipped to maxX and returns the column after
// the last cell drawn.
func DrawText(c Canvas, x, y, maxX int, s string, style Style) int {
	for _, cell := range Cells(s, style) {
		if x+cell.Width > maxX {
			break
		}
		c.SetCell(x, y, cell)
		x += cell.Width
	}
	return x
}

// FillRow paints columns [x, maxX) of row y with blanks in style.
func FillRow(c Canvas, x, y, maxX int, style Style) {
	for ; x < maxX; x++ {
		c.SetCell(x, y, BlankCell(style))
	}
}
