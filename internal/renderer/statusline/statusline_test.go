package statusline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/code4food/internal/renderer"
)

// grid is an in-memory canvas.
type grid struct {
	w, h  int
	cells [][]renderer.Cell
}

func newGrid(w, h int) *grid {
	g := &grid{w: w, h: h, cells: make([][]renderer.Cell, h)}
	for y := range g.cells {
		g.cells[y] = make([]renderer.Cell, w)
		for x := range g.cells[y] {
			g.cells[y][x] = renderer.EmptyCell()
		}
	}
	return g
}

func (g *grid) Size() (int, int) { return g.w, g.h }

func (g *grid) SetCell(x, y int, c renderer.Cell) {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return
	}
	g.cells[y][x] = c
	for i := 1; i < c.Width && x+i < g.w; i++ {
		g.cells[y][x+i] = renderer.Cell{Style: c.Style}
	}
}

func (g *grid) row(y int) string {
	var b strings.Builder
	for _, c := range g.cells[y] {
		b.WriteString(c.Text)
	}
	return b.String()
}

func TestRenderStatusBar(t *testing.T) {
	s := New()
	s.SetFilename("main.go")
	s.SetModified(true)
	s.SetPosition(3, 7)

	g := newGrid(60, 2)
	s.Render(g, 0)

	bar := g.row(1)
	assert.True(t, strings.HasPrefix(bar, " EDIT  main.go [+]  Ln 3, Col 7"), bar)
	assert.Equal(t, renderer.ColorPanel, g.cells[1][59].Style.Bg)
}

func TestRenderItem(t *testing.T) {
	s := New()
	s.SetItemText("🐕 Rex (full)")
	s.SetItemColor("#3EC73E")
	s.SetItemTooltip("95%")
	s.SetItemCommand("code4food.speak")
	s.SetItemVisible(true)

	g := newGrid(40, 2)
	s.Render(g, 0)

	bar := g.row(1)
	assert.True(t, strings.HasSuffix(bar, "🐕 Rex (full) "), bar)

	// "🐕 Rex (full)" is 13 columns wide and ends one column from the edge.
	start := 40 - 13 - 1
	assert.Equal(t, "🐕", g.cells[1][start].Text)
	assert.True(t, g.cells[1][start+3].Style.Fg.Equals(renderer.MustHex("#3EC73E")))

	assert.True(t, strings.HasSuffix(g.row(0), "95% "), g.row(0))

	cmd, ok := s.CommandAt(start)
	require.True(t, ok)
	assert.Equal(t, "code4food.speak", cmd)
	_, ok = s.CommandAt(start - 1)
	assert.False(t, ok)
	_, ok = s.CommandAt(39)
	assert.False(t, ok)
}

func TestHiddenItem(t *testing.T) {
	s := New()
	s.SetItemText("🐕 Rex")
	s.SetItemCommand("code4food.speak")

	g := newGrid(30, 2)
	s.Render(g, 0)

	assert.NotContains(t, g.row(1), "Rex")
	_, ok := s.CommandAt(28)
	assert.False(t, ok)
}

func TestMessageRow(t *testing.T) {
	s := New()
	s.SetMessage("Rex is starving! Please feed them!", MessageError)

	g := newGrid(20, 2)
	s.Render(g, 0)

	assert.Equal(t, "Rex is starving! Pl…", g.row(0))
	assert.True(t, g.cells[0][0].Style.Attrs.Has(renderer.Bold))

	msg, typ := s.Message()
	assert.Equal(t, MessageError, typ)
	assert.NotEmpty(t, msg)

	s.ClearMessage()
	s.Render(g, 0)
	assert.Equal(t, strings.Repeat(" ", 20), g.row(0))
}

func TestBadItemColorFallsBack(t *testing.T) {
	s := New()
	s.SetItemColor("not-a-color")
	_, c, _ := s.Item()
	assert.True(t, c.IsDefault())
}
