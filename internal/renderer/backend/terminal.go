package backend

import (
	"errors"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/code4food/internal/renderer"
)

// ErrUnsupportedEvent is returned by PostEvent for event types other than
// keys and interrupts.
var ErrUnsupportedEvent = errors.New("event type cannot be posted")

// Terminal is a Backend drawing to a tcell screen.
type Terminal struct {
	mu     sync.Mutex
	screen tcell.Screen
}

// NewTerminal opens the controlling terminal.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewTerminalWithScreen(screen), nil
}

// NewTerminalWithScreen wraps screen. Tests pass a tcell.SimulationScreen.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

// locked runs fn with the screen held.
func (t *Terminal) locked(fn func(s tcell.Screen)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fn(t.screen)
}

func (t *Terminal) Init() error {
	var err error
	t.locked(func(s tcell.Screen) {
		if err = s.Init(); err == nil {
			s.EnableMouse()
		}
	})
	return err
}

func (t *Terminal) Shutdown() {
	t.locked(func(s tcell.Screen) { s.Fini() })
}

func (t *Terminal) Size() (w, h int) {
	t.locked(func(s tcell.Screen) { w, h = s.Size() })
	return w, h
}

// SetCell draws cell at x, y. Continuation cells are skipped because the
// screen fills them when drawing the wide cell before.
func (t *Terminal) SetCell(x, y int, cell renderer.Cell) {
	if cell.IsContinuation() {
		return
	}
	primary, combining := ' ', []rune(nil)
	if runes := []rune(cell.Text); len(runes) > 0 {
		primary, combining = runes[0], runes[1:]
	}
	style := toTcellStyle(cell.Style)
	t.locked(func(s tcell.Screen) { s.SetContent(x, y, primary, combining, style) })
}

func (t *Terminal) GetCell(x, y int) renderer.Cell {
	var cell renderer.Cell
	t.locked(func(s tcell.Screen) {
		primary, combining, style, width := s.GetContent(x, y) //nolint:staticcheck // no grapheme-aware replacement in v2
		cell = renderer.Cell{
			Text:  string(primary) + string(combining),
			Width: width,
			Style: fromTcellStyle(style),
		}
	})
	return cell
}

func (t *Terminal) Clear() {
	t.locked(func(s tcell.Screen) { s.Clear() })
}

func (t *Terminal) Show() {
	t.locked(func(s tcell.Screen) { s.Show() })
}

func (t *Terminal) ShowCursor(x, y int) {
	t.locked(func(s tcell.Screen) { s.ShowCursor(x, y) })
}

func (t *Terminal) HideCursor() {
	t.locked(func(s tcell.Screen) { s.HideCursor() })
}

// PollEvent is called without the lock so drawing can continue while it
// blocks.
func (t *Terminal) PollEvent() (Event, bool) {
	ev := t.screen.PollEvent()
	if ev == nil {
		return Event{}, false
	}
	return fromTcellEvent(ev), true
}

func (t *Terminal) PostEvent(event Event) error {
	var ev tcell.Event
	switch event.Type {
	case EventKey:
		ev = tcell.NewEventKey(toTcellKey(event.Key), event.Rune, toTcellMods(event.Mod))
	case EventInterrupt:
		ev = tcell.NewEventInterrupt(event.Data)
	default:
		return ErrUnsupportedEvent
	}
	return t.screen.PostEvent(ev)
}

var attrPairs = []struct {
	ours   renderer.Attr
	theirs tcell.AttrMask
}{
	{renderer.Bold, tcell.AttrBold},
	{renderer.Dim, tcell.AttrDim},
	{renderer.Italic, tcell.AttrItalic},
	{renderer.Underline, tcell.AttrUnderline},
	{renderer.Reverse, tcell.AttrReverse},
}

func toTcellStyle(s renderer.Style) tcell.Style {
	var mask tcell.AttrMask
	for _, p := range attrPairs {
		if s.Attrs.Has(p.ours) {
			mask |= p.theirs
		}
	}
	return tcell.StyleDefault.
		Foreground(toTcellColor(s.Fg)).
		Background(toTcellColor(s.Bg)).
		Attributes(mask)
}

func fromTcellStyle(ts tcell.Style) renderer.Style {
	fg, bg, mask := ts.Decompose()
	s := renderer.Style{Fg: fromTcellColor(fg), Bg: fromTcellColor(bg)}
	for _, p := range attrPairs {
		if mask&p.theirs != 0 {
			s.Attrs |= p.ours
		}
	}
	return s
}

func toTcellColor(c renderer.Color) tcell.Color {
	if c.IsDefault() {
		return tcell.ColorDefault
	}
	if c.Indexed {
		return tcell.PaletteColor(int(c.R))
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func fromTcellColor(tc tcell.Color) renderer.Color {
	switch {
	case tc == tcell.ColorDefault:
		return renderer.ColorDefault
	case tc >= tcell.ColorValid && tc < tcell.ColorIsRGB:
		return renderer.ColorFromIndex(uint8(tc - tcell.ColorValid))
	}
	r, g, b := tc.RGB()
	return renderer.ColorFromRGB(uint8(r), uint8(g), uint8(b))
}

func fromTcellEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return Event{Type: EventKey, Key: fromTcellKey(e.Key()), Rune: e.Rune(), Mod: fromTcellMods(e.Modifiers())}
	case *tcell.EventMouse:
		x, y := e.Position()
		return Event{
			Type:        EventMouse,
			MouseX:      x,
			MouseY:      y,
			MouseButton: fromTcellButtons(e.Buttons()),
			Mod:         fromTcellMods(e.Modifiers()),
		}
	case *tcell.EventResize:
		w, h := e.Size()
		return Event{Type: EventResize, Width: w, Height: h}
	case *tcell.EventInterrupt:
		return Event{Type: EventInterrupt, Data: e.Data()}
	default:
		return Event{Type: EventNone}
	}
}

// keyPairs maps our keys to tcell's. The first pair for a key is the one
// used when posting.
var keyPairs = []struct {
	ours   Key
	theirs tcell.Key
}{
	{KeyRune, tcell.KeyRune},
	{KeyEscape, tcell.KeyEscape},
	{KeyEnter, tcell.KeyEnter},
	{KeyTab, tcell.KeyTab},
	{KeyBackspace, tcell.KeyBackspace2},
	{KeyBackspace, tcell.KeyBackspace},
	{KeyDelete, tcell.KeyDelete},
	{KeyHome, tcell.KeyHome},
	{KeyEnd, tcell.KeyEnd},
	{KeyUp, tcell.KeyUp},
	{KeyDown, tcell.KeyDown},
	{KeyLeft, tcell.KeyLeft},
	{KeyRight, tcell.KeyRight},
	{KeyCtrlA, tcell.KeyCtrlA},
	{KeyCtrlC, tcell.KeyCtrlC},
	{KeyCtrlP, tcell.KeyCtrlP},
	{KeyCtrlQ, tcell.KeyCtrlQ},
	{KeyCtrlW, tcell.KeyCtrlW},
}

func fromTcellKey(k tcell.Key) Key {
	for _, p := range keyPairs {
		if p.theirs == k {
			return p.ours
		}
	}
	return KeyNone
}

func toTcellKey(k Key) tcell.Key {
	for _, p := range keyPairs {
		if p.ours == k {
			return p.theirs
		}
	}
	return tcell.KeyRune
}

var modPairs = []struct {
	ours   ModMask
	theirs tcell.ModMask
}{
	{ModShift, tcell.ModShift},
	{ModCtrl, tcell.ModCtrl},
	{ModAlt, tcell.ModAlt},
	{ModMeta, tcell.ModMeta},
}

func fromTcellMods(m tcell.ModMask) ModMask {
	var out ModMask
	for _, p := range modPairs {
		if m&p.theirs != 0 {
			out |= p.ours
		}
	}
	return out
}

func toTcellMods(m ModMask) tcell.ModMask {
	var out tcell.ModMask
	for _, p := range modPairs {
		if m&p.ours != 0 {
			out |= p.theirs
		}
	}
	return out
}

func fromTcellButtons(b tcell.ButtonMask) MouseButton {
	switch {
	case b&tcell.Button1 != 0:
		return MouseLeft
	case b&tcell.Button2 != 0:
		return MouseMiddle
	case b&tcell.Button3 != 0:
		return MouseRight
	}
	return MouseNone
}
