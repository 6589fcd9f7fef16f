package source

import (
	"context"
	"errors"
)

// ErrUnavailable indicates the log stream could not be opened at all:
// unknown source identifier or transport failure. It is fatal to the
// pipeline run that requested the stream.
var ErrUnavailable = errors.New("log source unavailable")

// Line is one raw line read from a stream, or a mid-stream read
// failure. A Line with Err set carries no text; the stream continues
// with the next line unless the underlying transport is gone.
type Line struct {
	Text string
	Err  error
}

// Source opens live log streams by source identifier.
type Source interface {
	// Open starts tailing the identified workload and returns the line
	// channel. The channel is closed when the stream ends or ctx is
	// canceled. Open fails with ErrUnavailable if the stream cannot be
	// established.
	Open(ctx context.Context, id string) (<-chan Line, error)
}
