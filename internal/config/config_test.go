package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/code4food/internal/logging"
	"github.com/dshills/code4food/internal/pet"
	"github.com/dshills/code4food/internal/store"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultMatchesPetDefaults(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, pet.DefaultSettings(), cfg.PetSettings())
	assert.Equal(t, store.BackendFile, cfg.Backend())
	assert.Equal(t, logging.LevelInfo, cfg.Level())
}

func TestLoadMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.toml")

	cfg, err := Load(LoadOptions{Path: missing, Environment: map[string]string{}})
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = Load(LoadOptions{Path: missing, Required: true, Environment: map[string]string{}})
	assert.Error(t, err)
}

func TestLoadTOML(t *testing.T) {
	path := writeConfig(t, `
decay_period = "10s"
decay_step = 2
typing_price = 0.25
starving_reminder_period = "1m"
log_level = "debug"
catalog_script = "/tmp/pets.lua"

[storage]
backend = "sqlite"
path = "/tmp/pets.db"
`)

	cfg, err := Load(LoadOptions{Path: path, Environment: map[string]string{}})
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	s := cfg.PetSettings()
	assert.Equal(t, 10*time.Second, s.DecayPeriod)
	assert.Equal(t, 2.0, s.DecayStep)
	assert.Equal(t, 0.25, s.TypingPrice)
	assert.Equal(t, time.Minute, s.StarvingReminderPeriod)
	assert.Equal(t, 2*time.Second, s.EatingDuration, "unset keys keep defaults")

	assert.Equal(t, store.BackendSQLite, cfg.Backend())
	assert.Equal(t, "/tmp/pets.db", cfg.StoragePath())
	assert.Equal(t, logging.LevelDebug, cfg.Level())
	assert.Equal(t, "/tmp/pets.lua", cfg.CatalogScript)
}

func TestFractionalDecayStep(t *testing.T) {
	path := writeConfig(t, "decay_step = 0.5\n")

	cfg, err := Load(LoadOptions{Path: path, Environment: map[string]string{}})
	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.PetSettings().DecayStep)

	cfg, err = Load(LoadOptions{Path: path, Environment: map[string]string{
		"CODE4FOOD_DECAY_STEP": "1.25",
	}})
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1.25, cfg.PetSettings().DecayStep)
}

func TestLoadParseError(t *testing.T) {
	path := writeConfig(t, "decay_period = \n")

	_, err := Load(LoadOptions{Path: path, Environment: map[string]string{}})
	var perr *ParseError
	require.True(t, errors.As(err, &perr), "got %v", err)
	assert.Equal(t, path, perr.Path)
	assert.Positive(t, perr.Line)
}

func TestLoadBadDuration(t *testing.T) {
	path := writeConfig(t, `eating_duration = "soon"`)
	_, err := Load(LoadOptions{Path: path, Environment: map[string]string{}})
	assert.Error(t, err)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, `
typing_debounce = "3s"
[storage]
backend = "file"
`)

	cfg, err := Load(LoadOptions{Path: path, Environment: map[string]string{
		"CODE4FOOD_TYPING_DEBOUNCE":  "250ms",
		"CODE4FOOD_STATUS_WIDTH":     "12",
		"CODE4FOOD_STORAGE_BACKEND":  "memory",
		"CODE4FOOD_LOG_FILE":         "/tmp/c4f.log",
		"TYPING_DEBOUNCE":            "9s",
		"CODE4FOOD_STORAGE_UNRELATE": "x",
	}})
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, cfg.TypingDebounce.Std())
	assert.Equal(t, 12, cfg.StatusWidth)
	assert.Equal(t, store.BackendMemory, cfg.Backend())
	assert.Equal(t, "", cfg.StoragePath())
	assert.Equal(t, "/tmp/c4f.log", cfg.LogPath())
}

func TestEnvironmentBadValue(t *testing.T) {
	_, err := Load(LoadOptions{
		Path:        filepath.Join(t.TempDir(), "none.toml"),
		Environment: map[string]string{"CODE4FOOD_DECAY_STEP": "lots"},
	})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		keys   []string
	}{
		{"zero decay period", func(c *Config) { c.DecayPeriod = 0 }, []string{"decay_period"}},
		{"negative eating", func(c *Config) { c.EatingDuration = Duration(-time.Second) }, []string{"eating_duration"}},
		{"zero debounce", func(c *Config) { c.TypingDebounce = 0 }, []string{"typing_debounce"}},
		{"negative step", func(c *Config) { c.DecayStep = -1 }, []string{"decay_step"}},
		{"negative price", func(c *Config) { c.TypingPrice = -0.5 }, []string{"typing_price"}},
		{"reminder not longer than decay", func(c *Config) {
			c.StarvingReminderPeriod = Duration(5 * time.Second)
		}, []string{"starving_reminder_period"}},
		{"unknown backend", func(c *Config) { c.Storage.Backend = "redis" }, []string{"storage.backend"}},
		{"unknown level", func(c *Config) { c.LogLevel = "loud" }, []string{"log_level"}},
		{"several", func(c *Config) {
			c.DecayStep = -2
			c.LogLevel = ""
		}, []string{"decay_step", "log_level"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Len(t, verr.Fields, len(tt.keys))
			for _, k := range tt.keys {
				assert.True(t, verr.Has(k), "expected %s to be rejected: %v", k, err)
			}
		})
	}
}

func TestZeroStepAndPriceAreValid(t *testing.T) {
	cfg := Default()
	cfg.DecayStep = 0
	cfg.TypingPrice = 0
	assert.NoError(t, cfg.Validate())
}

func TestPathsFollowXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	t.Setenv("XDG_STATE_HOME", "/xdg/state")

	assert.Equal(t, "/xdg/config/code4food/config.toml", DefaultPath())
	assert.Equal(t, "/xdg/state/code4food", StateDir())

	cfg := Default()
	assert.Equal(t, "/xdg/state/code4food/state.json", cfg.StoragePath())
	assert.Equal(t, "/xdg/state/code4food/code4food.log", cfg.LogPath())

	cfg.Storage.Backend = "sqlite"
	assert.Equal(t, "/xdg/state/code4food/state.db", cfg.StoragePath())
}

func TestDurationText(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalText([]byte("1m30s")))
	assert.Equal(t, 90*time.Second, d.Std())

	out, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1m30s", string(out))

	assert.Error(t, d.UnmarshalText([]byte("ninety")))
}
