package app

import (
	"context"
	"sync"
	"time"

	"github.com/dshills/code4food/internal/pet"
	"github.com/dshills/code4food/internal/renderer/statusline"
)

// Message display durations.
const (
	infoMessageTTL  = 6 * time.Second
	alertMessageTTL = 12 * time.Second
)

// statusItem shows the pet on the right of the status bar.
type statusItem struct {
	app *Application
}

func (s statusItem) SetText(text string) {
	s.app.status.SetItemText(text)
	s.app.requestRedraw()
}

func (s statusItem) SetColor(color string) {
	s.app.status.SetItemColor(color)
	s.app.requestRedraw()
}

func (s statusItem) SetTooltip(tooltip string) {
	s.app.status.SetItemTooltip(tooltip)
	s.app.requestRedraw()
}

func (s statusItem) SetCommand(command string) {
	s.app.status.SetItemCommand(command)
}

func (s statusItem) Show() {
	s.app.status.SetItemVisible(true)
	s.app.requestRedraw()
}

func (s statusItem) Dispose() {
	s.app.status.SetItemVisible(false)
	s.app.status.SetItemText("")
	s.app.requestRedraw()
}

// notifier shows notifications on the message row until they expire.
type notifier struct {
	app *Application

	mu      sync.Mutex
	expires time.Time
}

func (n *notifier) Notify(level pet.Level, message string) {
	typ := statusline.MessageInfo
	ttl := infoMessageTTL
	switch level {
	case pet.LevelWarning:
		typ, ttl = statusline.MessageWarning, alertMessageTTL
	case pet.LevelError:
		typ, ttl = statusline.MessageError, alertMessageTTL
	}

	n.mu.Lock()
	n.expires = n.app.now().Add(ttl)
	n.mu.Unlock()

	n.app.status.SetMessage(message, typ)
	n.app.log.Debug("notification", "level", string(level), "message", message)
	n.app.requestRedraw()
}

// expire clears the message once its time is up and reports whether it
// did.
func (n *notifier) expire(now time.Time) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.expires.IsZero() || now.Before(n.expires) {
		return false
	}
	n.expires = time.Time{}
	n.app.status.ClearMessage()
	return true
}

// prompter hands modals to the event loop and waits for the answer.
type prompter struct {
	app *Application
}

func (p prompter) Pick(ctx context.Context, choices []pet.Choice, placeholder string) (pet.Choice, bool, error) {
	res, err := p.app.runModal(ctx, newPicker(choices, placeholder))
	return res.choice, res.ok, err
}

func (p prompter) Input(ctx context.Context, opts pet.InputOptions) (string, bool, error) {
	res, err := p.app.runModal(ctx, newInputBox(opts))
	return res.text, res.ok, err
}

// activeModal pairs the modal shown with the channel its prompt waits on.
type activeModal struct {
	modal
	done chan modalResult
}

// runModal shows m and blocks until the user finishes it or ctx is done.
func (app *Application) runModal(ctx context.Context, m modal) (modalResult, error) {
	am := &activeModal{modal: m, done: make(chan modalResult, 1)}

	app.mu.Lock()
	if app.modal != nil {
		app.mu.Unlock()
		return modalResult{}, ErrBusy
	}
	app.modal = am
	app.mu.Unlock()
	app.status.SetMode("PICK")
	app.requestRedraw()

	select {
	case res := <-am.done:
		return res, nil
	case <-ctx.Done():
		app.closeModal(am)
		return modalResult{}, ctx.Err()
	}
}

// closeModal removes am if it is still the active modal.
func (app *Application) closeModal(am *activeModal) {
	app.mu.Lock()
	if app.modal == am {
		app.modal = nil
	}
	app.mu.Unlock()
	app.status.SetMode("EDIT")
	app.requestRedraw()
}
