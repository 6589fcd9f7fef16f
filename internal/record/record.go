package record

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

// ErrMalformedLine indicates a raw line that could not be decoded into a
// Record. The line is reported and skipped; it never aborts the stream.
var ErrMalformedLine = errors.New("malformed log line")

// Record is one decoded log line. Immutable once constructed.
type Record struct {
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
	Body      string    `json:"body"`
}

// Decode splits one raw line into a Record bound to the given source.
//
// The leading token up to the first space must parse as an RFC3339
// timestamp; the remainder of the line is the body. Trailing line
// terminators are stripped before splitting.
func Decode(source, line string) (Record, error) {
	line = strings.TrimRight(line, "\r\n")

	ts, body, found := strings.Cut(line, " ")
	if !found || body == "" {
		return Record{}, fmt.Errorf("%w: no body in %q", ErrMalformedLine, line)
	}

	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return Record{}, fmt.Errorf("%w: bad timestamp %q", ErrMalformedLine, ts)
	}

	return Record{
		Source:    source,
		Timestamp: t.UTC(),
		Body:      body,
	}, nil
}

// Encode serializes a Record to its JSON wire format.
func Encode(rec Record) ([]byte, error) {
	return sonic.Marshal(rec)
}

// DecodeWire parses a wire payload produced by Encode.
func DecodeWire(data []byte) (Record, error) {
	var rec Record
	if err := sonic.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("decode wire payload: %w", err)
	}
	return rec, nil
}
