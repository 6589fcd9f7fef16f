// Package window implements the inclusive time window used to admit or
// reject log records.
package window

import "time"

// Window is an inclusive [Start, End] range of UTC instants. Callers are
// expected to pass Start <= End; an inverted window matches nothing.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether ts falls inside the window. Both bounds are
// inclusive.
func (w Window) Contains(ts time.Time) bool {
	return !ts.Before(w.Start) && !ts.After(w.End)
}
