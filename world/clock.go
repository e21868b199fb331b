package world

import "strings"

// EpochFallback is the timestamp used when a world carries no clock value.
const EpochFallback = "1970-01-01T00:00:00Z"

// clockKeys are the reserved top-level keys checked, in priority order, for
// the world's current time.
var clockKeys = []string{"__now", "now", "current_time", "currentTime"}

// Clock supplies the current time as an ISO-8601 string. Mutation operations
// receive a Clock explicitly instead of reaching into global state.
type Clock interface {
	Now() string
}

// NowString resolves the world's current time from the reserved keys,
// falling back to EpochFallback.
func (w *World) NowString() string {
	for _, k := range clockKeys {
		if v, ok := w.extra[k]; ok {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				return s
			}
		}
	}
	return EpochFallback
}

// Clock returns a Clock backed by the world's reserved time keys.
func (w *World) Clock() Clock {
	return storeClock{w}
}

type storeClock struct {
	w *World
}

func (c storeClock) Now() string { return c.w.NowString() }

// Fixed is a Clock that always reports the same timestamp.
type Fixed string

func (f Fixed) Now() string { return string(f) }
