package lua

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/code4food/internal/pet"
)

func TestParseCatalog(t *testing.T) {
	entries, err := ParseCatalog(context.Background(), "extra.lua", `
return {
  { emoji = "🦔", name = "Hedgehog", phrases = { "Snuffle!", "Hff hff!" } },
  { emoji = "🐌", name = " Snail " },
}`, nil)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, pet.Kind{Emoji: "🦔", Name: "Hedgehog"}, entries[0].Kind)
	assert.Equal(t, []string{"Snuffle!", "Hff hff!"}, entries[0].Phrases)
	assert.Equal(t, "Snail", entries[1].Name)
	assert.Empty(t, entries[1].Phrases)
}

func TestParseCatalogUsesBaseModule(t *testing.T) {
	base := pet.NewCatalog([]pet.Entry{
		{Kind: pet.Kind{Emoji: "🐈", Name: "Cat"}, Phrases: []string{"Meow!"}},
		{Kind: pet.Kind{Emoji: "🐕", Name: "Dog"}, Phrases: []string{"Woof!"}},
	})

	entries, err := ParseCatalog(context.Background(), "cats.lua", `
local c4f = require("code4food")
local out = {}
for _, name in ipairs(c4f.kinds()) do
  if name == "Cat" then
    local p = c4f.phrases(name)
    table.insert(p, "Feed me, human.")
    table.insert(out, { emoji = c4f.emoji(name), name = name, phrases = p })
  end
end
assert(c4f.emoji("Unicorn") == nil)
return out`, base)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, []string{"Meow!", "Feed me, human."}, entries[0].Phrases)

	merged := base.Extend(entries)
	assert.Equal(t, 2, merged.Len())
	assert.Equal(t, "Cat", merged.Kinds()[0].Name)
	assert.Equal(t, []string{"Meow!"}, base.Phrases("Cat"), "base is not mutated")
}

func TestParseCatalogInvalid(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"returns nothing", `local x = 1`},
		{"returns a string", `return "pets"`},
		{"entry not a table", `return { "Hedgehog" }`},
		{"missing emoji", `return { { name = "Hedgehog" } }`},
		{"blank name", `return { { emoji = "🦔", name = "  " } }`},
		{"phrases not a list", `return { { emoji = "🦔", name = "Hedgehog", phrases = "hi" } }`},
		{"phrase not a string", `return { { emoji = "🦔", name = "Hedgehog", phrases = { 1 } } }`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog(context.Background(), "bad.lua", tt.source, nil)
			assert.ErrorIs(t, err, ErrInvalidCatalog)
		})
	}
}

func TestParseCatalogScriptErrors(t *testing.T) {
	_, err := ParseCatalog(context.Background(), "syntax.lua", `return {`, nil)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalidCatalog))

	_, err = ParseCatalog(context.Background(), "runtime.lua", `error("boom")`, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestSandbox(t *testing.T) {
	for _, src := range []string{
		`return os.exit(1)`,
		`return io.open("/etc/passwd")`,
		`return require("os")`,
		`return require("io")`,
		`return dofile("/etc/passwd")`,
		`return loadstring("return 1")()`,
	} {
		_, err := ParseCatalog(context.Background(), "evil.lua", src, nil)
		assert.Error(t, err, src)
	}

	entries, err := ParseCatalog(context.Background(), "ok.lua", `
local s = require("string")
return { { emoji = "🦔", name = s.upper("hog") } }`, nil)
	require.NoError(t, err)
	assert.Equal(t, "HOG", entries[0].Name)
}

func TestRunTimeout(t *testing.T) {
	s := NewState(WithExecutionTimeout(50 * time.Millisecond))
	defer s.Close()

	_, err := s.Run(context.Background(), "loop.lua", `while true do end`)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRunAfterClose(t *testing.T) {
	s := NewState()
	s.Close()
	s.Close()

	_, err := s.Run(context.Background(), "x.lua", `return 1`)
	assert.ErrorIs(t, err, ErrStateClosed)
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pets.lua")
	require.NoError(t, os.WriteFile(path, []byte(`return { { emoji = "🦙", name = "Llama" } }`), 0o644))

	entries, err := LoadCatalog(context.Background(), path, pet.DefaultCatalog())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Llama", entries[0].Name)

	_, err = LoadCatalog(context.Background(), filepath.Join(t.TempDir(), "missing.lua"), nil)
	assert.Error(t, err)
}

func TestParseCatalogLimits(t *testing.T) {
	limits := Limits{MaxEntries: 2, MaxPhrases: 2, MaxTextLength: 8}

	tests := []struct {
		name   string
		source string
	}{
		{"too many entries", `return {
  { emoji = "a", name = "A" }, { emoji = "b", name = "B" }, { emoji = "c", name = "C" },
}`},
		{"too many phrases", `return { { emoji = "a", name = "A", phrases = { "x", "y", "z" } } }`},
		{"long name", `return { { emoji = "a", name = "Brontosaurus" } }`},
		{"long phrase", `return { { emoji = "a", name = "A", phrases = { "Rawwwwwwwwr!" } } }`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog(context.Background(), "big.lua", tt.source, nil, WithLimits(limits))
			assert.ErrorIs(t, err, ErrLimitExceeded)
		})
	}

	entries, err := ParseCatalog(context.Background(), "ok.lua",
		`return { { emoji = "a", name = "A", phrases = { "x", "y" } } }`, nil, WithLimits(limits))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestParseCatalogCallStackLimit(t *testing.T) {
	source := `
local function depth(n) return 1 + depth(n + 1) end
return depth(1)`

	limits := StrictLimits()
	_, err := ParseCatalog(context.Background(), "deep.lua", source, nil, WithLimits(limits))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrLimitExceeded)
}

func TestDefaultLimitsAreLooserThanStrict(t *testing.T) {
	d, s := DefaultLimits(), StrictLimits()
	assert.Greater(t, d.ExecutionTimeout, s.ExecutionTimeout)
	assert.Greater(t, d.MaxEntries, s.MaxEntries)
	assert.Greater(t, d.MaxPhrases, s.MaxPhrases)
	assert.Greater(t, d.MaxTextLength, s.MaxTextLength)
	assert.Greater(t, pet.DefaultCatalog().Len(), 0)
	assert.GreaterOrEqual(t, d.MaxEntries, pet.DefaultCatalog().Len())
}
