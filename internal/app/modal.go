package app

import (
	"strings"

	"github.com/dshills/code4food/internal/pet"
	"github.com/dshills/code4food/internal/renderer/backend"
)

// modalResult is what a finished modal reports back to the waiting prompt.
type modalResult struct {
	choice pet.Choice
	text   string
	ok     bool
}

// modal is an interactive prompt drawn over the document. Its methods are
// only called from the event loop.
type modal interface {
	// handleKey consumes ev and reports whether the modal is finished.
	handleKey(ev backend.Event) (modalResult, bool)
	title() string
	query() string
	placeholder() string
	items() (labels []string, selected int)
}

// picker is a filterable single-choice list.
type picker struct {
	choices  []pet.Choice
	hint     string
	filter   []rune
	visible  []int
	selected int
}

func newPicker(choices []pet.Choice, placeholder string) *picker {
	p := &picker{choices: choices, hint: placeholder}
	p.refilter()
	return p
}

func (p *picker) refilter() {
	needle := strings.ToLower(string(p.filter))
	p.visible = p.visible[:0]
	for i, c := range p.choices {
		if needle == "" || strings.Contains(strings.ToLower(c.Label), needle) {
			p.visible = append(p.visible, i)
		}
	}
	p.selected = 0
}

func (p *picker) handleKey(ev backend.Event) (modalResult, bool) {
	switch ev.Key {
	case backend.KeyEscape, backend.KeyCtrlC:
		return modalResult{}, true
	case backend.KeyEnter:
		if len(p.visible) == 0 {
			return modalResult{}, false
		}
		return modalResult{choice: p.choices[p.visible[p.selected]], ok: true}, true
	case backend.KeyUp:
		if p.selected > 0 {
			p.selected--
		}
	case backend.KeyDown, backend.KeyTab:
		if p.selected < len(p.visible)-1 {
			p.selected++
		}
	case backend.KeyBackspace:
		if n := len(p.filter); n > 0 {
			p.filter = p.filter[:n-1]
			p.refilter()
		}
	case backend.KeyRune:
		p.filter = append(p.filter, ev.Rune)
		p.refilter()
	}
	return modalResult{}, false
}

func (p *picker) title() string       { return "" }
func (p *picker) query() string       { return string(p.filter) }
func (p *picker) placeholder() string { return p.hint }

func (p *picker) items() ([]string, int) {
	labels := make([]string, len(p.visible))
	for i, idx := range p.visible {
		labels[i] = p.choices[idx].Label
	}
	return labels, p.selected
}

// inputBox is a single-line text prompt.
type inputBox struct {
	opts pet.InputOptions
	text []rune
}

func newInputBox(opts pet.InputOptions) *inputBox {
	return &inputBox{opts: opts}
}

func (b *inputBox) handleKey(ev backend.Event) (modalResult, bool) {
	switch ev.Key {
	case backend.KeyEscape, backend.KeyCtrlC:
		return modalResult{}, true
	case backend.KeyEnter:
		return modalResult{text: string(b.text), ok: true}, true
	case backend.KeyBackspace:
		if n := len(b.text); n > 0 {
			b.text = b.text[:n-1]
		}
	case backend.KeyRune:
		b.text = append(b.text, ev.Rune)
	}
	return modalResult{}, false
}

func (b *inputBox) title() string          { return b.opts.Prompt }
func (b *inputBox) query() string          { return string(b.text) }
func (b *inputBox) placeholder() string    { return b.opts.Placeholder }
func (b *inputBox) items() ([]string, int) { return nil, -1 }
