package app

import (
	"strings"

	"github.com/dshills/code4food/internal/renderer"
	"github.com/dshills/code4food/internal/renderer/statusline"
)

const (
	tabWidth     = 4
	modalWidth   = 60
	modalVisible = 10
)

var (
	textStyle     = renderer.DefaultStyle()
	helpStyle     = renderer.DefaultStyle().Foreground(renderer.ColorMuted)
	boxStyle      = renderer.DefaultStyle().Background(renderer.ColorPanel).Foreground(renderer.ColorWhite)
	titleStyle    = boxStyle.With(renderer.Bold)
	hintBoxStyle  = boxStyle.Foreground(renderer.ColorMuted).With(renderer.Italic)
	selectedStyle = renderer.DefaultStyle().Background(renderer.MustHex("#2C313A")).Foreground(renderer.MustHex("#61AFEF")).With(renderer.Bold)
)

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

// render redraws the whole screen from current state.
func (app *Application) render() {
	b := app.backend
	w, h := b.Size()
	rows := h - statusline.Height
	if w <= 0 || rows < 0 {
		return
	}

	lines := app.doc.Lines()
	line, col := app.doc.Cursor()
	top := max(0, line-rows+1)

	for y := 0; y < rows; y++ {
		renderer.FillRow(b, 0, y, w, textStyle)
		if i := top + y; i < len(lines) {
			renderer.DrawText(b, 0, y, w, expandTabs(lines[i]), textStyle)
		} else if y == rows-1 && len(lines) <= 1 && lines[0] == "" {
			renderer.DrawText(b, 0, y, w, KeyHelp(), helpStyle)
		}
	}

	app.status.SetFilename(app.doc.Name())
	app.status.SetModified(app.doc.Modified())
	app.status.SetPosition(line+1, col+1)
	app.status.Render(b, rows)

	app.mu.Lock()
	am := app.modal
	app.mu.Unlock()

	if am != nil {
		x, y := app.renderModal(am, w, rows)
		b.ShowCursor(x, y)
	} else if rows > 0 {
		prefix := string([]rune(lines[line])[:col])
		b.ShowCursor(renderer.StringWidth(expandTabs(prefix)), line-top)
	} else {
		b.HideCursor()
	}
	b.Show()
}

// renderModal draws am near the top of the document area and returns the
// cursor position inside its query field.
func (app *Application) renderModal(am *activeModal, w, rows int) (int, int) {
	bw := min(modalWidth, w-2)
	if bw <= 4 || rows < 2 {
		return 0, 0
	}
	x0 := (w - bw) / 2
	maxX := x0 + bw
	y := 1

	if title := am.title(); title != "" {
		renderer.FillRow(app.backend, x0, y, maxX, boxStyle)
		renderer.DrawText(app.backend, x0+1, y, maxX-1, renderer.Truncate(title, bw-2), titleStyle)
		y++
	}

	renderer.FillRow(app.backend, x0, y, maxX, boxStyle)
	end := renderer.DrawText(app.backend, x0+1, y, maxX-1, "> ", boxStyle)
	queryY := y
	cursorX := end
	if q := am.query(); q != "" {
		cursorX = renderer.DrawText(app.backend, end, y, maxX-1, q, boxStyle)
	} else {
		renderer.DrawText(app.backend, end, y, maxX-1, am.placeholder(), hintBoxStyle)
	}
	y++

	labels, selected := am.items()
	if labels == nil {
		return cursorX, queryY
	}
	if len(labels) == 0 {
		renderer.FillRow(app.backend, x0, y, maxX, boxStyle)
		renderer.DrawText(app.backend, x0+1, y, maxX-1, "No matching items", hintBoxStyle)
		return cursorX, queryY
	}

	first := max(0, selected-modalVisible+1)
	for i := first; i < len(labels) && i < first+modalVisible && y < rows; i++ {
		style := boxStyle
		if i == selected {
			style = selectedStyle
		}
		renderer.FillRow(app.backend, x0, y, maxX, style)
		renderer.DrawText(app.backend, x0+1, y, maxX-1, labels[i], style)
		y++
	}
	return cursorX, queryY
}
