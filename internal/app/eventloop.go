package app

import (
	"context"
	"time"

	"github.com/dshills/code4food/internal/renderer/backend"
	"github.com/dshills/code4food/internal/renderer/statusline"
)

// expiryInterval is how often message expiry is checked.
const expiryInterval = 500 * time.Millisecond

func (app *Application) loop(ctx context.Context, events <-chan backend.Event) error {
	ticker := time.NewTicker(expiryInterval)
	defer ticker.Stop()

	app.render()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := app.handleBackendEvent(ctx, ev); err != nil {
				return err
			}
			app.render()

		case <-app.redraw:
			app.render()

		case <-ticker.C:
			if app.notifier.expire(app.now()) {
				app.render()
			}
		}
	}
}

// handleBackendEvent processes a backend event and routes it appropriately.
// Returns ErrQuit if the application should exit.
func (app *Application) handleBackendEvent(ctx context.Context, ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		return app.handleKeyEvent(ctx, ev)
	case backend.EventMouse:
		app.handleMouseEvent(ev)
	case backend.EventInterrupt:
		if cmd, ok := ev.Data.(string); ok {
			return app.dispatch(cmd)
		}
	}
	return nil
}

func (app *Application) dispatch(cmd string) error {
	if cmd == CommandQuit {
		return ErrQuit
	}
	app.runCommand(cmd)
	return nil
}

func (app *Application) handleKeyEvent(ctx context.Context, ev backend.Event) error {
	app.mu.Lock()
	am := app.modal
	app.mu.Unlock()

	if am != nil {
		if res, done := am.handleKey(ev); done {
			app.closeModal(am)
			am.done <- res
		}
		return nil
	}

	if cmd, ok := keymap[ev.Key]; ok {
		return app.dispatch(cmd)
	}

	switch ev.Key {
	case backend.KeyRune:
		app.doc.Insert(ctx, string(ev.Rune))
	case backend.KeyEnter:
		app.doc.Insert(ctx, "\n")
	case backend.KeyTab:
		app.doc.Insert(ctx, "\t")
	case backend.KeyBackspace:
		app.doc.Backspace(ctx)
	case backend.KeyUp:
		app.doc.MoveCursor(-1, 0)
	case backend.KeyDown:
		app.doc.MoveCursor(1, 0)
	case backend.KeyLeft:
		app.doc.MoveCursor(0, -1)
	case backend.KeyRight:
		app.doc.MoveCursor(0, 1)
	case backend.KeyHome:
		app.doc.Home()
	case backend.KeyEnd:
		app.doc.End()
	}
	return nil
}

// handleMouseEvent runs the status item's command when it is clicked.
func (app *Application) handleMouseEvent(ev backend.Event) {
	if ev.MouseButton != backend.MouseLeft {
		return
	}
	_, h := app.backend.Size()
	if ev.MouseY != h-statusline.Height+1 {
		return
	}
	if cmd, ok := app.status.CommandAt(ev.MouseX); ok {
		app.runCommand(cmd)
	}
}
