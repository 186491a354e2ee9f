package lua

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/code4food/internal/pet"
)

// ModuleName is the name scripts pass to require.
const ModuleName = "code4food"

// LoadCatalog runs the script at path and returns the entries it declares.
// base is exposed to the script through the code4food module.
func LoadCatalog(ctx context.Context, path string, base *pet.Catalog, opts ...CatalogOption) ([]pet.Entry, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog script: %w", err)
	}
	return ParseCatalog(ctx, path, string(src), base, opts...)
}

// ParseCatalog runs source as a catalog script named name.
func ParseCatalog(ctx context.Context, name, source string, base *pet.Catalog, opts ...CatalogOption) ([]pet.Entry, error) {
	if base == nil {
		base = pet.DefaultCatalog()
	}
	o := catalogOptions{limits: DefaultLimits()}
	for _, opt := range opts {
		opt(&o)
	}

	s := NewState(WithExecutionTimeout(o.limits.ExecutionTimeout), WithCallStackSize(o.limits.CallStackSize))
	defer s.Close()
	s.L.PreloadModule(ModuleName, catalogModule(base))

	ret, err := s.Run(ctx, name, source)
	if err != nil {
		return nil, err
	}
	return decodeEntries(ret, o.limits)
}

// catalogModule exposes base to scripts.
func catalogModule(base *pet.Catalog) lua.LGFunction {
	return func(L *lua.LState) int {
		mod := L.NewTable()
		L.SetFuncs(mod, map[string]lua.LGFunction{
			"kinds": func(L *lua.LState) int {
				t := L.NewTable()
				for _, k := range base.Kinds() {
					t.Append(lua.LString(k.Name))
				}
				L.Push(t)
				return 1
			},
			"emoji": func(L *lua.LState) int {
				k, ok := base.Lookup(L.CheckString(1))
				if !ok {
					L.Push(lua.LNil)
					return 1
				}
				L.Push(lua.LString(k.Emoji))
				return 1
			},
			"phrases": func(L *lua.LState) int {
				t := L.NewTable()
				for _, p := range base.Phrases(L.CheckString(1)) {
					t.Append(lua.LString(p))
				}
				L.Push(t)
				return 1
			},
		})
		L.Push(mod)
		return 1
	}
}

func decodeEntries(v lua.LValue, limits Limits) ([]pet.Entry, error) {
	list, ok := v.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("%w: script must return a table, got %s", ErrInvalidCatalog, v.Type())
	}

	n := list.Len()
	if !within(n, limits.MaxEntries) {
		return nil, fmt.Errorf("%w: %d entries, at most %d allowed", ErrLimitExceeded, n, limits.MaxEntries)
	}
	entries := make([]pet.Entry, 0, n)
	for i := 1; i <= n; i++ {
		e, err := decodeEntry(list.RawGetInt(i), limits)
		if errors.Is(err, ErrLimitExceeded) {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrInvalidCatalog, i, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func decodeEntry(v lua.LValue, limits Limits) (pet.Entry, error) {
	t, ok := v.(*lua.LTable)
	if !ok {
		return pet.Entry{}, fmt.Errorf("expected a table, got %s", v.Type())
	}

	emoji, err := requiredString(t, "emoji", limits)
	if err != nil {
		return pet.Entry{}, err
	}
	name, err := requiredString(t, "name", limits)
	if err != nil {
		return pet.Entry{}, err
	}

	e := pet.Entry{Kind: pet.Kind{Emoji: emoji, Name: name}}
	switch p := t.RawGetString("phrases").(type) {
	case *lua.LNilType:
	case *lua.LTable:
		if !within(p.Len(), limits.MaxPhrases) {
			return pet.Entry{}, fmt.Errorf("%w: %s has %d phrases, at most %d allowed", ErrLimitExceeded, name, p.Len(), limits.MaxPhrases)
		}
		for i := 1; i <= p.Len(); i++ {
			s, ok := p.RawGetInt(i).(lua.LString)
			if !ok {
				return pet.Entry{}, fmt.Errorf("%s: phrase %d is not a string", name, i)
			}
			if !within(len(s), limits.MaxTextLength) {
				return pet.Entry{}, fmt.Errorf("%w: %s phrase %d is longer than %d bytes", ErrLimitExceeded, name, i, limits.MaxTextLength)
			}
			e.Phrases = append(e.Phrases, string(s))
		}
	default:
		return pet.Entry{}, fmt.Errorf("%s: phrases must be a list, got %s", name, p.Type())
	}
	return e, nil
}

func requiredString(t *lua.LTable, field string, limits Limits) (string, error) {
	s, ok := t.RawGetString(field).(lua.LString)
	if !ok || strings.TrimSpace(string(s)) == "" {
		return "", fmt.Errorf("%s must be a non-empty string", field)
	}
	v := strings.TrimSpace(string(s))
	if !within(len(v), limits.MaxTextLength) {
		return "", fmt.Errorf("%w: %s is longer than %d bytes", ErrLimitExceeded, field, limits.MaxTextLength)
	}
	return v, nil
}
