// Package store provides the key-value stores that persist pets between
// sessions. Values are JSON encoded.
package store

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Sentinel errors.
var (
	// ErrClosed is returned by operations on a closed store.
	ErrClosed = errors.New("store is closed")

	// ErrUnknownBackend is returned by Open for unsupported backends.
	ErrUnknownBackend = errors.New("unknown storage backend")

	// ErrPathRequired is returned when a persistent backend has no path.
	ErrPathRequired = errors.New("storage path is required")
)

// Store is a JSON key-value store.
type Store interface {
	// Get decodes the value stored under key into dst. found is false when
	// the key is absent.
	Get(key string, dst any) (found bool, err error)

	// Set replaces the value stored under key.
	Set(key string, value any) error

	// Keys returns the stored keys in ascending order.
	Keys() ([]string, error)

	io.Closer
}

// Backend names a Store implementation.
type Backend string

// Supported backends.
const (
	BackendMemory Backend = "memory"
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
)

// Backends lists the supported backends.
func Backends() []Backend {
	return []Backend{BackendMemory, BackendFile, BackendSQLite}
}

// ParseBackend validates a backend name.
func ParseBackend(name string) (Backend, error) {
	b := Backend(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Backends() {
		if b == known {
			return b, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownBackend, name)
}

// Open opens the store for backend at path. path is ignored by the memory
// backend.
func Open(backend Backend, path string) (Store, error) {
	switch backend {
	case BackendMemory:
		return NewMemory(), nil
	case BackendFile:
		return OpenFile(path)
	case BackendSQLite:
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
