package source

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
)

const maxLineBytes = 64 * 1024

// readLines scans r line by line into out until the stream ends or ctx
// is canceled. Oversized lines are reported as a per-line failure and
// the scan continues; any other read error means the transport is gone
// and ends the stream after being reported once. out is closed on
// return.
func readLines(ctx context.Context, r io.Reader, out chan<- Line) {
	defer close(out)

	br := bufio.NewReaderSize(r, maxLineBytes)
	for {
		chunk, err := br.ReadSlice('\n')

		switch {
		case err == nil:
			text := strings.TrimRight(string(chunk), "\r\n")
			if text == "" {
				continue
			}
			if !emit(ctx, out, Line{Text: text}) {
				return
			}

		case errors.Is(err, bufio.ErrBufferFull):
			// Discard the rest of the oversized line, report it, move on.
			if lineErr := discardLine(br); lineErr != nil {
				emit(ctx, out, Line{Err: errLineTooLong})
				return
			}
			if !emit(ctx, out, Line{Err: errLineTooLong}) {
				return
			}

		case errors.Is(err, io.EOF):
			if text := strings.TrimRight(string(chunk), "\r\n"); text != "" {
				emit(ctx, out, Line{Text: text})
			}
			return

		default:
			if ctx.Err() == nil {
				emit(ctx, out, Line{Err: err})
			}
			return
		}
	}
}

var errLineTooLong = errors.New("log line exceeds maximum length")

// discardLine consumes input up to and including the next newline.
func discardLine(br *bufio.Reader) error {
	for {
		_, err := br.ReadSlice('\n')
		switch {
		case err == nil:
			return nil
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		default:
			return err
		}
	}
}

func emit(ctx context.Context, out chan<- Line, line Line) bool {
	select {
	case out <- line:
		return true
	case <-ctx.Done():
		return false
	}
}
