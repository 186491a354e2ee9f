package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dshills/code4food/internal/app"
	"github.com/dshills/code4food/internal/config"
	"github.com/dshills/code4food/internal/logging"
	"github.com/dshills/code4food/internal/plugin/lua"
	"github.com/dshills/code4food/internal/pet"
	"github.com/dshills/code4food/internal/renderer/backend"
	"github.com/dshills/code4food/internal/store"
)

// cli carries the global flags and the configuration they resolve to.
type cli struct {
	stdout io.Writer
	stderr io.Writer

	configPath  string
	logLevel    string
	storage     string
	storagePath string

	cfg config.Config
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	c := &cli{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "code4food",
		Short: "A virtual pet that eats what you type",
		Long: `code4food keeps a pet in your status bar. Its satiety drops over time
and every character you type feeds it.

Run without a subcommand to open the scratch editor with the pet attached.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.loadConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runTerminal(cmd.Context())
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", "", "Path to configuration file (default "+config.DefaultPath()+")")
	flags.StringVar(&c.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&c.storage, "storage", "", "Storage backend (memory, file, sqlite)")
	flags.StringVar(&c.storagePath, "storage-path", "", "State file or database path")

	root.AddCommand(
		newPetsCmd(c),
		newAdoptCmd(c),
		newSwitchCmd(c),
		newSpeakCmd(c),
		newKindsCmd(c),
		newVersionCmd(c),
	)
	return root
}

// loadConfig resolves defaults, file, environment and flags, in that order.
func (c *cli) loadConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(config.LoadOptions{
		Path:     c.configPath,
		Required: c.configPath != "",
	})
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = c.logLevel
	}
	if flags.Changed("storage") {
		cfg.Storage.Backend = c.storage
	}
	if flags.Changed("storage-path") {
		cfg.Storage.Path = c.storagePath
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

func (c *cli) openStore() (store.Store, error) {
	path := c.cfg.StoragePath()
	if path != "" && path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create state directory: %w", err)
		}
	}
	return store.Open(c.cfg.Backend(), path)
}

// loadCatalog returns the built-in catalog extended by the configured
// script, if any.
func (c *cli) loadCatalog(ctx context.Context, log *logging.Logger) (*pet.Catalog, error) {
	catalog := pet.DefaultCatalog()
	if c.cfg.CatalogScript == "" {
		return catalog, nil
	}

	entries, err := lua.LoadCatalog(ctx, c.cfg.CatalogScript, catalog)
	if err != nil {
		return nil, err
	}
	log.Info("catalog extended", "script", c.cfg.CatalogScript, "entries", len(entries))
	return catalog.Extend(entries), nil
}

// openLog opens the log file for the terminal UI, which owns stdout and
// stderr while it runs.
func (c *cli) openLog() (*os.File, *logging.Logger, error) {
	path := c.cfg.LogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, logging.New(logging.Config{Level: c.cfg.Level(), Output: f}), nil
}

func (c *cli) runTerminal(ctx context.Context) error {
	logFile, log, err := c.openLog()
	if err != nil {
		return err
	}
	defer logFile.Close()

	st, err := c.openStore()
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Error("close store", "error", err)
		}
	}()

	catalog, err := c.loadCatalog(ctx, log)
	if err != nil {
		return err
	}

	term, err := backend.NewTerminal()
	if err != nil {
		return fmt.Errorf("create terminal: %w", err)
	}

	application, err := app.New(app.Options{
		Backend:  term,
		Store:    st,
		Settings: c.cfg.PetSettings(),
		Catalog:  catalog,
		Logger:   log,
	})
	if err != nil {
		return err
	}

	log.Info("starting", "version", version, "storage", string(c.cfg.Backend()), "path", c.cfg.StoragePath())
	if err := application.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
