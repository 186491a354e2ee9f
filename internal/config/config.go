package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/code4food/internal/logging"
	"github.com/dshills/code4food/internal/pet"
	"github.com/dshills/code4food/internal/store"
)

// AppName names the XDG subdirectories.
const AppName = "code4food"

// EnvPrefix prefixes every environment variable.
const EnvPrefix = "CODE4FOOD_"

// Config holds every setting.
type Config struct {
	DecayPeriod            Duration `toml:"decay_period" env:"DECAY_PERIOD"`
	DecayStep              float64  `toml:"decay_step" env:"DECAY_STEP"`
	EatingDuration         Duration `toml:"eating_duration" env:"EATING_DURATION"`
	TypingDebounce         Duration `toml:"typing_debounce" env:"TYPING_DEBOUNCE"`
	TypingPrice            float64  `toml:"typing_price" env:"TYPING_PRICE"`
	StarvingReminderPeriod Duration `toml:"starving_reminder_period" env:"STARVING_REMINDER_PERIOD"`
	StatusWidth            int      `toml:"status_width" env:"STATUS_WIDTH"`

	Storage StorageConfig `toml:"storage" envPrefix:"STORAGE_"`

	LogLevel      string `toml:"log_level" env:"LOG_LEVEL"`
	LogFile       string `toml:"log_file" env:"LOG_FILE"`
	CatalogScript string `toml:"catalog_script" env:"CATALOG_SCRIPT"`
}

// StorageConfig selects the pet store.
type StorageConfig struct {
	Backend string `toml:"backend" env:"BACKEND"`
	// Path is the state file or database. Empty selects a default under
	// $XDG_STATE_HOME for the chosen backend.
	Path string `toml:"path" env:"PATH"`
}

// Default returns the built-in settings.
func Default() Config {
	s := pet.DefaultSettings()
	return Config{
		DecayPeriod:            Duration(s.DecayPeriod),
		DecayStep:              s.DecayStep,
		EatingDuration:         Duration(s.EatingDuration),
		TypingDebounce:         Duration(s.TypingDebounce),
		TypingPrice:            s.TypingPrice,
		StarvingReminderPeriod: Duration(s.StarvingReminderPeriod),
		StatusWidth:            s.StatusWidth,
		Storage: StorageConfig{
			Backend: string(store.BackendFile),
		},
		LogLevel: "info",
	}
}

// LoadOptions controls Load.
type LoadOptions struct {
	// Path is the TOML file. Empty selects DefaultPath.
	Path string
	// Required makes a missing file an error. Set it when the user named
	// the file explicitly.
	Required bool
	// Environment replaces the process environment when non-nil.
	Environment map[string]string
}

// Load resolves defaults, the TOML file and the environment. The result is
// not validated so the caller can apply flags first.
func Load(opts LoadOptions) (Config, error) {
	cfg := Default()

	path := opts.Path
	if path == "" {
		path = DefaultPath()
	}
	if path != "" {
		if err := loadFile(path, opts.Required, &cfg); err != nil {
			return cfg, err
		}
	}

	envOpts := env.Options{Prefix: EnvPrefix}
	if opts.Environment != nil {
		envOpts.Environment = opts.Environment
	}
	if err := env.ParseWithOptions(&cfg, envOpts); err != nil {
		return cfg, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

func loadFile(path string, required bool, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		perr := &ParseError{Path: path, Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return perr
	}
	return nil
}

// Validate checks every setting and reports all failures at once.
func (c Config) Validate() error {
	var fields []FieldError
	reject := func(key string, value any, msg string) {
		fields = append(fields, FieldError{Key: key, Value: value, Message: msg})
	}

	for _, d := range []struct {
		key string
		val Duration
	}{
		{"decay_period", c.DecayPeriod},
		{"eating_duration", c.EatingDuration},
		{"typing_debounce", c.TypingDebounce},
		{"starving_reminder_period", c.StarvingReminderPeriod},
	} {
		if d.val <= 0 {
			reject(d.key, d.val, "must be positive")
		}
	}
	if c.DecayStep < 0 {
		reject("decay_step", c.DecayStep, "must not be negative")
	}
	if c.TypingPrice < 0 {
		reject("typing_price", c.TypingPrice, "must not be negative")
	}
	if c.StarvingReminderPeriod > 0 && c.StarvingReminderPeriod <= c.DecayPeriod {
		reject("starving_reminder_period", c.StarvingReminderPeriod, "must be longer than decay_period")
	}
	if c.StatusWidth < 0 {
		reject("status_width", c.StatusWidth, "must not be negative")
	}
	if _, err := store.ParseBackend(c.Storage.Backend); err != nil {
		reject("storage.backend", c.Storage.Backend, "must be one of memory, file, sqlite")
	}
	if _, ok := logging.ParseLevel(c.LogLevel); !ok {
		reject("log_level", c.LogLevel, "must be one of debug, info, warn, error")
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// PetSettings converts the pet timings.
func (c Config) PetSettings() pet.Settings {
	return pet.Settings{
		DecayPeriod:            c.DecayPeriod.Std(),
		DecayStep:              c.DecayStep,
		EatingDuration:         c.EatingDuration.Std(),
		TypingDebounce:         c.TypingDebounce.Std(),
		TypingPrice:            c.TypingPrice,
		StarvingReminderPeriod: c.StarvingReminderPeriod.Std(),
		StatusWidth:            c.StatusWidth,
	}
}

// Backend returns the parsed storage backend.
func (c Config) Backend() store.Backend {
	b, err := store.ParseBackend(c.Storage.Backend)
	if err != nil {
		return store.BackendFile
	}
	return b
}

// StoragePath returns the configured store path or the backend default.
func (c Config) StoragePath() string {
	if p := strings.TrimSpace(c.Storage.Path); p != "" {
		return p
	}
	switch c.Backend() {
	case store.BackendSQLite:
		return filepath.Join(StateDir(), "state.db")
	case store.BackendFile:
		return filepath.Join(StateDir(), "state.json")
	default:
		return ""
	}
}

// LogPath returns the configured log file or the default.
func (c Config) LogPath() string {
	if p := strings.TrimSpace(c.LogFile); p != "" {
		return p
	}
	return filepath.Join(StateDir(), AppName+".log")
}

// Level returns the parsed log level.
func (c Config) Level() logging.Level {
	l, ok := logging.ParseLevel(c.LogLevel)
	if !ok {
		return logging.LevelInfo
	}
	return l
}

// DefaultPath returns $XDG_CONFIG_HOME/code4food/config.toml, or "" when
// no config directory can be determined.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		var err error
		dir, err = os.UserConfigDir()
		if err != nil {
			return ""
		}
	}
	return filepath.Join(dir, AppName, "config.toml")
}

// StateDir returns $XDG_STATE_HOME/code4food, falling back to
// ~/.local/state/code4food and finally the temp directory.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, AppName)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "state", AppName)
	}
	return filepath.Join(os.TempDir(), AppName)
}
