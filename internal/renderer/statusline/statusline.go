// Package statusline draws the two bottom rows of the screen: a message row
// for notifications and the status bar carrying the document position on
// the left and the pet item on the right.
package statusline

import (
	"fmt"
	"sync"

	"github.com/dshills/code4food/internal/renderer"
)

// MessageType indicates the type of status message.
type MessageType int

const (
	MessageNone MessageType = iota
	MessageInfo
	MessageWarning
	MessageError
)

// Height is the number of rows the status line occupies.
const Height = 2

// StatusLine renders the bottom of the screen.
//
// Setters may be called from any goroutine; Render reads a consistent
// snapshot.
type StatusLine struct {
	mu sync.Mutex

	mode     string
	filename string
	modified bool
	line     int
	col      int

	message     string
	messageType MessageType

	item itemState

	// itemStart and itemEnd are the columns the item was last drawn at.
	itemStart, itemEnd int
}

type itemState struct {
	text    string
	color   renderer.Color
	tooltip string
	command string
	visible bool
}

// New creates a status line.
func New() *StatusLine {
	return &StatusLine{
		mode:      "EDIT",
		item:      itemState{color: renderer.ColorDefault},
		itemStart: -1,
		itemEnd:   -1,
	}
}

// SetMode updates the mode badge.
func (s *StatusLine) SetMode(mode string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
}

// SetFilename updates the displayed filename.
func (s *StatusLine) SetFilename(filename string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filename = filename
}

// SetModified updates the modified indicator.
func (s *StatusLine) SetModified(modified bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modified = modified
}

// SetPosition updates the cursor position (1-indexed).
func (s *StatusLine) SetPosition(line, col int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.line = line
	s.col = col
}

// SetMessage displays a message on the message row.
func (s *StatusLine) SetMessage(msg string, msgType MessageType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = msg
	s.messageType = msgType
}

// ClearMessage clears the message row.
func (s *StatusLine) ClearMessage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = ""
	s.messageType = MessageNone
}

// Message returns the current message.
func (s *StatusLine) Message() (string, MessageType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message, s.messageType
}

// SetItemText sets the right-aligned item text.
func (s *StatusLine) SetItemText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.item.text = text
}

// SetItemColor sets the item foreground from a "#RRGGBB" string. An
// unparsable color falls back to the default.
func (s *StatusLine) SetItemColor(hex string) {
	c, err := renderer.ColorFromHex(hex)
	if err != nil {
		c = renderer.ColorDefault
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.item.color = c
}

// SetItemTooltip sets the hint shown next to the item.
func (s *StatusLine) SetItemTooltip(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.item.tooltip = text
}

// SetItemCommand sets the command a click on the item runs.
func (s *StatusLine) SetItemCommand(cmd string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.item.command = cmd
}

// SetItemVisible shows or hides the item.
func (s *StatusLine) SetItemVisible(visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.item.visible = visible
}

// Item returns the item text and color, and whether it is visible.
func (s *StatusLine) Item() (text string, color renderer.Color, visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.item.text, s.item.color, s.item.visible
}

// Tooltip returns the item tooltip.
func (s *StatusLine) Tooltip() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.item.tooltip
}

// CommandAt returns the command bound to the item when column x of the
// status bar row falls inside it.
func (s *StatusLine) CommandAt(x int) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.item.visible || s.item.command == "" || x < s.itemStart || x >= s.itemEnd {
		return "", false
	}
	return s.item.command, true
}

var (
	barStyle  = renderer.DefaultStyle().Background(renderer.ColorPanel).Foreground(renderer.ColorWhite)
	modeStyle = renderer.DefaultStyle().Background(renderer.MustHex("#61AFEF")).Foreground(renderer.ColorBlack).With(renderer.Bold)
	hintStyle = renderer.DefaultStyle().Foreground(renderer.ColorMuted).With(renderer.Italic)
)

func messageStyle(t MessageType) renderer.Style {
	switch t {
	case MessageError:
		return renderer.DefaultStyle().Foreground(renderer.MustHex("#E06C75")).With(renderer.Bold)
	case MessageWarning:
		return renderer.DefaultStyle().Foreground(renderer.MustHex("#E5C07B"))
	default:
		return renderer.DefaultStyle()
	}
}

// Render draws the message row at row and the status bar at row+1.
func (s *StatusLine) Render(c renderer.Canvas, row int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	width, _ := c.Size()
	s.renderMessage(c, row, width)
	s.renderStatusBar(c, row+1, width)
}

func (s *StatusLine) renderMessage(c renderer.Canvas, row, width int) {
	style := messageStyle(s.messageType)
	renderer.FillRow(c, 0, row, width, renderer.DefaultStyle())

	hint := ""
	if s.item.visible && s.item.tooltip != "" {
		hint = s.item.tooltip
	}
	hintWidth := renderer.StringWidth(hint)

	msgMax := width
	if hint != "" {
		msgMax = width - hintWidth - 2
	}
	renderer.DrawText(c, 0, row, msgMax, renderer.Truncate(s.message, msgMax), style)

	if hint != "" && hintWidth+1 <= width {
		renderer.DrawText(c, width-hintWidth-1, row, width, hint, hintStyle)
	}
}

func (s *StatusLine) renderStatusBar(c renderer.Canvas, row, width int) {
	renderer.FillRow(c, 0, row, width, barStyle)

	// Right side first so the left side can yield to it.
	s.itemStart, s.itemEnd = -1, -1
	right := width
	if s.item.visible && s.item.text != "" {
		text := renderer.Truncate(s.item.text, max(width/2, 1))
		w := renderer.StringWidth(text)
		start := width - w - 1
		if start >= 0 {
			style := barStyle.Foreground(s.item.color)
			if s.item.color.IsDefault() {
				style = barStyle
			}
			renderer.DrawText(c, start, row, width, text, style)
			s.itemStart, s.itemEnd = start, start+w
			right = start - 1
		}
	}

	col := renderer.DrawText(c, 0, row, right, " "+s.mode+" ", modeStyle)
	col = renderer.DrawText(c, col, row, right, " ", barStyle)

	name := s.filename
	if name == "" {
		name = "[scratch]"
	}
	if s.modified {
		name += " [+]"
	}
	pos := fmt.Sprintf("Ln %d, Col %d", max(s.line, 1), max(s.col, 1))

	left := name + "  " + pos
	renderer.DrawText(c, col, row, right, renderer.Truncate(left, right-col), barStyle)
}
