package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// File is a Store backed by a single JSON document on disk. Every Set
// rewrites the document atomically.
type File struct {
	mu     sync.Mutex
	path   string
	doc    []byte
	closed bool
}

// OpenFile opens or creates the JSON document at path.
func OpenFile(path string) (*File, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrPathRequired
	}
	path = filepath.Clean(path)

	doc, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		doc = []byte("{}")
	case err != nil:
		return nil, fmt.Errorf("read state file %s: %w", path, err)
	case len(strings.TrimSpace(string(doc))) == 0:
		doc = []byte("{}")
	case !gjson.ValidBytes(doc) || !gjson.ParseBytes(doc).IsObject():
		return nil, fmt.Errorf("state file %s is not a JSON object", path)
	}

	return &File{path: path, doc: doc}, nil
}

// Path returns the document path.
func (f *File) Path() string {
	return f.path
}

// Get implements Store.
func (f *File) Get(key string, dst any) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return false, ErrClosed
	}
	res := gjson.GetBytes(f.doc, escapePath(key))
	if !res.Exists() {
		return false, nil
	}
	if err := json.Unmarshal([]byte(res.Raw), dst); err != nil {
		return true, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// Set implements Store.
func (f *File) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrClosed
	}
	doc, err := sjson.SetRawBytes(f.doc, escapePath(key), raw)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	if err := writeAtomic(f.path, pretty.Pretty(doc)); err != nil {
		return err
	}
	f.doc = doc
	return nil
}

// Keys implements Store.
func (f *File) Keys() ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil, ErrClosed
	}
	var keys []string
	gjson.ParseBytes(f.doc).ForEach(func(k, _ gjson.Result) bool {
		keys = append(keys, k.String())
		return true
	})
	sort.Strings(keys)
	return keys, nil
}

// Close implements Store.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// escapePath turns a literal key into a gjson/sjson path.
func escapePath(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\', '!', '=', '<', '>', '%':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write state file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close state file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}
