package lua

import "time"

// Limits bounds what a catalog script may do and produce.
type Limits struct {
	// ExecutionTimeout bounds a single run. Zero disables it.
	ExecutionTimeout time.Duration

	// CallStackSize is the Lua call stack depth. Zero selects the
	// gopher-lua default.
	CallStackSize int

	// MaxEntries is the largest number of catalog entries accepted.
	MaxEntries int

	// MaxPhrases is the largest phrase list accepted per entry.
	MaxPhrases int

	// MaxTextLength bounds names, emoji and phrases in bytes.
	MaxTextLength int
}

// DefaultLimits returns the limits used when none are given.
func DefaultLimits() Limits {
	return Limits{
		ExecutionTimeout: DefaultExecutionTimeout,
		CallStackSize:    256,
		MaxEntries:       256,
		MaxPhrases:       64,
		MaxTextLength:    512,
	}
}

// StrictLimits returns tighter limits for scripts from untrusted sources.
func StrictLimits() Limits {
	return Limits{
		ExecutionTimeout: time.Second,
		CallStackSize:    64,
		MaxEntries:       32,
		MaxPhrases:       8,
		MaxTextLength:    128,
	}
}

// CatalogOption configures LoadCatalog and ParseCatalog.
type CatalogOption func(*catalogOptions)

type catalogOptions struct {
	limits Limits
}

// WithLimits replaces DefaultLimits.
func WithLimits(l Limits) CatalogOption {
	return func(o *catalogOptions) {
		o.limits = l
	}
}

// within reports whether n is allowed by limit. Zero means unlimited.
func within(n, limit int) bool {
	return limit <= 0 || n <= limit
}
