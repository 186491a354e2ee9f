// Package backend connects the renderer to a terminal and turns terminal
// input into events the application understands.
package backend

import "github.com/dshills/code4food/internal/renderer"

// EventType identifies what an Event carries.
type EventType uint8

// Event types.
const (
	EventNone EventType = iota
	EventKey
	EventMouse
	EventResize
	EventInterrupt
)

// Event is one piece of terminal input. Only the fields for its Type are
// set.
type Event struct {
	Type EventType

	Key  Key
	Rune rune
	Mod  ModMask

	MouseX, MouseY int
	MouseButton    MouseButton

	Width, Height int

	// Data is the payload of an interrupt posted with PostEvent.
	Data any
}

// Key is a keyboard key. Printable input arrives as KeyRune with the
// character in Event.Rune.
type Key uint8

// Keys the application binds.
const (
	KeyNone Key = iota
	KeyRune
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyHome
	KeyEnd
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrlA
	KeyCtrlC
	KeyCtrlP
	KeyCtrlQ
	KeyCtrlW
)

var keyNames = [...]string{
	KeyNone:      "None",
	KeyRune:      "Rune",
	KeyEscape:    "Esc",
	KeyEnter:     "Enter",
	KeyTab:       "Tab",
	KeyBackspace: "Backspace",
	KeyDelete:    "Delete",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyCtrlA:     "Ctrl+A",
	KeyCtrlC:     "Ctrl+C",
	KeyCtrlP:     "Ctrl+P",
	KeyCtrlQ:     "Ctrl+Q",
	KeyCtrlW:     "Ctrl+W",
}

func (k Key) String() string {
	if int(k) < len(keyNames) {
		return keyNames[k]
	}
	return "Unknown"
}

// ModMask is a set of held modifier keys.
type ModMask uint8

// Modifiers.
const (
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// ModNone is the empty modifier set.
const ModNone ModMask = 0

// MouseButton is the pressed mouse button, if any.
type MouseButton uint8

// Mouse buttons.
const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
)

// Backend is a drawable terminal with an input queue.
type Backend interface {
	renderer.Canvas

	// Init takes over the terminal. It must be called first.
	Init() error

	// Shutdown restores the terminal. PollEvent returns false afterwards.
	Shutdown()

	// GetCell reads back a drawn cell.
	GetCell(x, y int) renderer.Cell

	Clear()

	// Show flushes drawn cells to the terminal.
	Show()

	ShowCursor(x, y int)
	HideCursor()

	// PollEvent blocks for the next event. It returns false once the
	// backend has been shut down.
	PollEvent() (Event, bool)

	// PostEvent queues a synthetic key or interrupt event.
	PostEvent(event Event) error
}
