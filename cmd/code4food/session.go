package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/dshills/code4food/internal/logging"
	"github.com/dshills/code4food/internal/pet"
	"github.com/dshills/code4food/internal/store"
)

// session is a pet manager opened for one subcommand. It is never started,
// so no timers run and nothing decays while the command executes.
type session struct {
	store store.Store
	pets  *pet.Manager
	log   *logging.Logger
}

// openSession opens the store and loads the pets. Notifications are
// printed to the command's output.
func (c *cli) openSession(ctx context.Context) (*session, error) {
	log := c.commandLogger()

	catalog, err := c.loadCatalog(ctx, log)
	if err != nil {
		return nil, err
	}

	st, err := c.openStore()
	if err != nil {
		return nil, err
	}

	pets, err := pet.NewManager(pet.Host{
		Store:    st,
		Notifier: printNotifier{w: c.stdout},
	}, pet.WithCatalog(catalog), pet.WithSettings(c.cfg.PetSettings()), pet.WithLogger(log))
	if err != nil {
		return nil, errors.Join(err, st.Close())
	}
	return &session{store: st, pets: pets, log: log}, nil
}

// withSession opens a session, runs fn and closes the session. A close
// failure is reported alongside any error from fn.
func (c *cli) withSession(ctx context.Context, fn func(*session) error) error {
	s, err := c.openSession(ctx)
	if err != nil {
		return err
	}
	return s.run(fn)
}

func (s *session) run(fn func(*session) error) (err error) {
	defer func() {
		if cerr := s.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close session: %w", cerr))
		}
	}()
	return fn(s)
}

func (s *session) Close() error {
	s.pets.Dispose()
	return s.store.Close()
}

// commandLogger logs to stderr. Subcommands stay quiet below warnings
// unless a level was asked for explicitly.
func (c *cli) commandLogger() *logging.Logger {
	level := c.cfg.Level()
	if c.logLevel == "" && level < logging.LevelWarn {
		level = logging.LevelWarn
	}
	return logging.New(logging.Config{Level: level, Output: c.stderr, Prefix: "code4food"})
}

// printNotifier writes notifications as lines of text.
type printNotifier struct {
	w io.Writer
}

func (n printNotifier) Notify(level pet.Level, message string) {
	switch level {
	case pet.LevelWarning:
		message = color.New(color.FgYellow).Sprint(message)
	case pet.LevelError:
		message = color.New(color.FgRed, color.Bold).Sprint(message)
	}
	fmt.Fprintln(n.w, message)
}
