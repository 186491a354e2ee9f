// Package events defines the topics and payloads published on the event bus.
package events

import "github.com/dshills/code4food/internal/event/topic"

// Buffer event topics.
const (
	// TopicBufferContentChanged is published after an edit is applied to a buffer.
	TopicBufferContentChanged topic.Topic = "buffer.content.changed"
)

// Position represents a position in a buffer.
type Position struct {
	// Line is the zero-based line number.
	Line int

	// Column is the zero-based column number (in runes).
	Column int
}

// ContentChange is a single replacement within an edit.
type ContentChange struct {
	// Start is where the replaced range begins.
	Start Position

	// DeletedLength is the number of runes removed.
	DeletedLength int

	// Text is the inserted text content. Empty for pure deletions.
	Text string
}

// BufferContentChanged is published when one edit, possibly touching several
// ranges, is applied to a buffer.
type BufferContentChanged struct {
	// BufferID is the unique identifier of the buffer.
	BufferID string

	// Changes lists the individual replacements in application order.
	Changes []ContentChange

	// Version is the buffer version after the edit.
	Version int
}
