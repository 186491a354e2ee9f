package app

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/code4food/internal/event"
	"github.com/dshills/code4food/internal/event/events"
)

// Document is the scratch buffer the user types into. Every edit is
// published on the bus as events.BufferContentChanged.
type Document struct {
	mu sync.Mutex

	id      string
	name    string
	lines   [][]rune
	line    int
	col     int
	version int

	bus event.Bus
}

// NewDocument creates an empty document publishing to bus. bus may be nil.
func NewDocument(name string, bus event.Bus) *Document {
	return &Document{
		id:    uuid.NewString(),
		name:  name,
		lines: [][]rune{{}},
		bus:   bus,
	}
}

// ID returns the buffer id carried by change events.
func (d *Document) ID() string {
	return d.id
}

// Name returns the display name.
func (d *Document) Name() string {
	return d.name
}

// Text returns the full content.
func (d *Document) Text() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	parts := make([]string, len(d.lines))
	for i, l := range d.lines {
		parts[i] = string(l)
	}
	return strings.Join(parts, "\n")
}

// Lines returns a copy of the lines.
func (d *Document) Lines() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]string, len(d.lines))
	for i, l := range d.lines {
		out[i] = string(l)
	}
	return out
}

// Cursor returns the zero-based cursor line and column.
func (d *Document) Cursor() (line, col int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.line, d.col
}

// Version returns the number of edits applied.
func (d *Document) Version() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.version
}

// Modified reports whether the document has been edited.
func (d *Document) Modified() bool {
	return d.Version() > 0
}

// Insert inserts text at the cursor and moves the cursor past it.
func (d *Document) Insert(ctx context.Context, text string) {
	if text == "" {
		return
	}

	d.mu.Lock()
	start := events.Position{Line: d.line, Column: d.col}
	for _, r := range text {
		if r == '\n' {
			d.splitLineLocked()
			continue
		}
		l := d.lines[d.line]
		l = append(l[:d.col], append([]rune{r}, l[d.col:]...)...)
		d.lines[d.line] = l
		d.col++
	}
	change := d.commitLocked(events.ContentChange{Start: start, Text: text})
	d.mu.Unlock()

	d.publish(ctx, change)
}

func (d *Document) splitLineLocked() {
	l := d.lines[d.line]
	head := append([]rune(nil), l[:d.col]...)
	tail := append([]rune(nil), l[d.col:]...)

	lines := make([][]rune, 0, len(d.lines)+1)
	lines = append(lines, d.lines[:d.line]...)
	lines = append(lines, head, tail)
	lines = append(lines, d.lines[d.line+1:]...)
	d.lines = lines
	d.line++
	d.col = 0
}

// Backspace deletes the character before the cursor, joining lines at
// column zero. It does nothing at the start of the document.
func (d *Document) Backspace(ctx context.Context) {
	d.mu.Lock()
	if d.line == 0 && d.col == 0 {
		d.mu.Unlock()
		return
	}

	var start events.Position
	if d.col > 0 {
		l := d.lines[d.line]
		d.lines[d.line] = append(l[:d.col-1], l[d.col:]...)
		d.col--
		start = events.Position{Line: d.line, Column: d.col}
	} else {
		prev := d.lines[d.line-1]
		d.col = len(prev)
		d.lines[d.line-1] = append(prev, d.lines[d.line]...)
		d.lines = append(d.lines[:d.line], d.lines[d.line+1:]...)
		d.line--
		start = events.Position{Line: d.line, Column: d.col}
	}
	change := d.commitLocked(events.ContentChange{Start: start, DeletedLength: 1})
	d.mu.Unlock()

	d.publish(ctx, change)
}

func (d *Document) commitLocked(c events.ContentChange) events.BufferContentChanged {
	d.version++
	return events.BufferContentChanged{
		BufferID: d.id,
		Changes:  []events.ContentChange{c},
		Version:  d.version,
	}
}

func (d *Document) publish(ctx context.Context, change events.BufferContentChanged) {
	if d.bus == nil {
		return
	}
	_ = d.bus.Publish(ctx, event.NewEvent(events.TopicBufferContentChanged, change, "document"))
}

// MoveCursor moves the cursor by dLine lines and dCol columns, clamped to
// the content. Horizontal moves wrap across line ends.
func (d *Document) MoveCursor(dLine, dCol int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if dLine != 0 {
		d.line = clamp(d.line+dLine, 0, len(d.lines)-1)
		d.col = min(d.col, len(d.lines[d.line]))
	}
	switch {
	case dCol < 0 && d.col == 0 && d.line > 0:
		d.line--
		d.col = len(d.lines[d.line])
	case dCol > 0 && d.col == len(d.lines[d.line]) && d.line < len(d.lines)-1:
		d.line++
		d.col = 0
	default:
		d.col = clamp(d.col+dCol, 0, len(d.lines[d.line]))
	}
}

// Home moves the cursor to the start of the line.
func (d *Document) Home() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.col = 0
}

// End moves the cursor to the end of the line.
func (d *Document) End() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.col = len(d.lines[d.line])
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
