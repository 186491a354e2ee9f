// Package app runs code4food as a terminal program: a scratch document the
// user types into, with the pet living in the status bar.
package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dshills/code4food/internal/event"
	"github.com/dshills/code4food/internal/logging"
	"github.com/dshills/code4food/internal/pet"
	"github.com/dshills/code4food/internal/renderer/backend"
	"github.com/dshills/code4food/internal/renderer/statusline"
)

// Application wires the pet manager to the terminal.
type Application struct {
	mu sync.Mutex

	bus      event.Bus
	backend  backend.Backend
	status   *statusline.StatusLine
	doc      *Document
	pets     *pet.Manager
	notifier *notifier
	log      *logging.Logger
	now      func() time.Time

	subs  *subscriptionManager
	modal *activeModal

	redraw  chan struct{}
	running atomic.Bool

	// Commands run off the event loop so prompts can wait for keys.
	busy     atomic.Bool
	cmdCtx   context.Context
	commands sync.WaitGroup
}

// Options configures the application.
type Options struct {
	// Backend is the terminal. Required by Run.
	Backend backend.Backend

	// Store persists the pets. Required.
	Store pet.Store

	// Settings overrides the pet timings when non-zero.
	Settings pet.Settings

	// Catalog overrides the built-in catalog when non-nil.
	Catalog *pet.Catalog

	// Logger receives diagnostics. Nil discards them.
	Logger *logging.Logger

	// Clock and Rand replace the pet manager's time and randomness.
	Clock pet.Clock
	Rand  pet.RandSource

	// Now is the wall clock used for message expiry.
	Now func() time.Time
}

// New creates an Application and loads the pets from the store.
func New(opts Options) (*Application, error) {
	if opts.Store == nil {
		return nil, &InitError{Component: "store", Err: pet.ErrNoStore}
	}

	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}

	app := &Application{
		backend: opts.Backend,
		status:  statusline.New(),
		log:     log.WithComponent("app"),
		now:     opts.Now,
		redraw:  make(chan struct{}, 1),
		cmdCtx:  context.Background(),
	}
	if app.now == nil {
		app.now = time.Now
	}
	app.notifier = &notifier{app: app}

	app.bus = event.NewBus(event.WithErrorHandler(func(err *event.HandlerError) {
		app.log.Warn("event handler failed", "topic", err.Topic, "error", err.Err)
	}))
	if err := app.bus.Start(); err != nil {
		return nil, &InitError{Component: "event bus", Err: err}
	}

	app.doc = NewDocument("scratch", app.bus)

	host := pet.Host{
		Store:    opts.Store,
		Status:   statusItem{app: app},
		Prompter: prompter{app: app},
		Notifier: app.notifier,
		Changes:  pet.NewBusChangeSource(app.bus),
	}
	petOpts := []pet.Option{pet.WithLogger(log), pet.WithEventBus(app.bus)}
	if opts.Settings != (pet.Settings{}) {
		petOpts = append(petOpts, pet.WithSettings(opts.Settings))
	}
	if opts.Catalog != nil {
		petOpts = append(petOpts, pet.WithCatalog(opts.Catalog))
	}
	if opts.Clock != nil {
		petOpts = append(petOpts, pet.WithClock(opts.Clock))
	}
	if opts.Rand != nil {
		petOpts = append(petOpts, pet.WithRand(opts.Rand))
	}

	var err error
	app.pets, err = pet.NewManager(host, petOpts...)
	if err != nil {
		_ = app.bus.Stop()
		return nil, &InitError{Component: "pets", Err: err}
	}

	app.subs = newSubscriptionManager(app)
	if err := app.subs.setup(); err != nil {
		_ = app.bus.Stop()
		return nil, &InitError{Component: "subscriptions", Err: err}
	}
	return app, nil
}

// Pets returns the pet manager.
func (app *Application) Pets() *pet.Manager {
	return app.pets
}

// Document returns the scratch document.
func (app *Application) Document() *Document {
	return app.doc
}

// Status returns the status line.
func (app *Application) Status() *statusline.StatusLine {
	return app.status
}

// Bus returns the event bus.
func (app *Application) Bus() event.Bus {
	return app.bus
}

// Run starts the pet and the terminal event loop and blocks until the user
// quits or ctx is cancelled. The pet is disposed before Run returns.
func (app *Application) Run(ctx context.Context) error {
	if app.backend == nil {
		return ErrNoBackend
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.backend.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	app.cmdCtx = ctx

	if err := app.pets.Start(); err != nil {
		app.backend.Shutdown()
		return &InitError{Component: "pets", Err: err}
	}
	app.log.Info("started")

	events := make(chan backend.Event)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(events)
		for {
			ev, ok := app.backend.PollEvent()
			if !ok {
				return nil
			}
			select {
			case events <- ev:
			case <-gctx.Done():
				return nil
			}
		}
	})

	g.Go(func() error {
		defer app.backend.Shutdown()
		defer cancel()
		return app.loop(gctx, events)
	})

	err := g.Wait()
	app.shutdown()
	if errors.Is(err, ErrQuit) {
		err = nil
	}
	return err
}

func (app *Application) shutdown() {
	app.commands.Wait()
	app.pets.Dispose()
	app.subs.unsubscribeAll()
	_ = app.bus.Stop()
	app.log.Info("stopped")
}

// Execute asks the event loop to run command. It is safe to call from any
// goroutine while Run is active.
func (app *Application) Execute(command string) error {
	return app.backend.PostEvent(backend.Event{Type: backend.EventInterrupt, Data: command})
}

func (app *Application) requestRedraw() {
	select {
	case app.redraw <- struct{}{}:
	default:
	}
}

// runCommand executes command on its own goroutine. Only one command runs
// at a time; a second one is dropped while the first waits for the user.
func (app *Application) runCommand(command string) {
	if !app.busy.CompareAndSwap(false, true) {
		app.log.Debug("command dropped", "command", command, "reason", ErrBusy)
		return
	}

	app.commands.Add(1)
	go func() {
		defer app.commands.Done()
		defer app.busy.Store(false)

		err := app.pets.Execute(app.cmdCtx, command)
		switch {
		case err == nil:
		case errors.Is(err, context.Canceled), errors.Is(err, pet.ErrDisposed):
			app.log.Debug("command abandoned", "command", command, "error", err)
		default:
			app.log.Error("command failed", "command", command, "error", err)
			app.notifier.Notify(pet.LevelError, err.Error())
		}
	}()
}
