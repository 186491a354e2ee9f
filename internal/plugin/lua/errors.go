package lua

import "errors"

// Errors returned while loading catalog scripts.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrInvalidCatalog is returned when a script does not produce a valid
	// list of catalog entries.
	ErrInvalidCatalog = errors.New("invalid catalog script")

	// ErrLimitExceeded is returned when a script produces more than its
	// limits allow.
	ErrLimitExceeded = errors.New("catalog script limit exceeded")
)
