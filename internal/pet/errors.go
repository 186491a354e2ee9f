package pet

import "errors"

// Sentinel errors returned by the manager.
var (
	// ErrUnknownKind is returned when a pet type is not in the catalog.
	ErrUnknownKind = errors.New("unknown pet type")

	// ErrEmptyName is returned when adopting a pet with a blank name.
	ErrEmptyName = errors.New("pet name cannot be empty")

	// ErrPetNotFound is returned when no pet has the requested id.
	ErrPetNotFound = errors.New("pet not found")

	// ErrUnknownCommand is returned by Execute for unbound command ids.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrDisposed is returned when the manager has been disposed.
	ErrDisposed = errors.New("pet manager is disposed")

	// ErrNoStore is returned by NewManager when the host has no store.
	ErrNoStore = errors.New("pet store is required")
)
