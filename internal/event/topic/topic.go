// Package topic names bus events with dot-separated segments and matches
// them against subscription patterns.
package topic

import "strings"

// Topic is a dot-separated event name such as "pet.fed". Patterns may use
// "*" for exactly one segment and "**" for any number of segments.
type Topic string

const (
	sep        = "."
	anySegment = "*"
	anyTail    = "**"
)

func (t Topic) String() string {
	return string(t)
}

func (t Topic) segments() []string {
	if t == "" {
		return nil
	}
	return strings.Split(string(t), sep)
}

// IsWildcard reports whether t is a pattern.
func (t Topic) IsWildcard() bool {
	return strings.Contains(string(t), anySegment)
}

// IsValid reports whether t is non-empty with no empty segments.
func (t Topic) IsValid() bool {
	return t != "" && !strings.HasPrefix(string(t), sep) &&
		!strings.HasSuffix(string(t), sep) && !strings.Contains(string(t), sep+sep)
}

// Matches reports whether the concrete topic t is matched by pattern.
func (t Topic) Matches(pattern Topic) bool {
	if !pattern.IsWildcard() {
		return t == pattern
	}
	return match(t.segments(), pattern.segments())
}

func match(name, pattern []string) bool {
	if len(pattern) == 0 {
		return len(name) == 0
	}
	switch head := pattern[0]; head {
	case anyTail:
		for i := 0; i <= len(name); i++ {
			if match(name[i:], pattern[1:]) {
				return true
			}
		}
		return false
	case anySegment:
		return len(name) > 0 && match(name[1:], pattern[1:])
	default:
		return len(name) > 0 && name[0] == head && match(name[1:], pattern[1:])
	}
}
