// Package record defines the log record model and the line codec.
//
// A raw line from a container log stream has the shape:
//
//	<RFC3339 timestamp><space><body text>
//
// Decode splits a raw line into a Record, Encode/DecodeWire convert a
// Record to and from the stable JSON wire format used for broker
// payloads and live subscribers.
//
// Decoding is tolerant: a line with no body or a leading token that is
// not a valid timestamp yields ErrMalformedLine and nothing else. One
// bad line must never take down the stream it came from.
package record
