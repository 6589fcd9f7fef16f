package record

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	t.Run("well-formed line", func(t *testing.T) {
		rec, err := Decode("web-1", "2024-01-01T00:00:05Z hello world")
		require.NoError(t, err)
		assert.Equal(t, "web-1", rec.Source)
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 5, 0, time.UTC), rec.Timestamp)
		assert.Equal(t, "hello world", rec.Body)
	})

	t.Run("nanosecond timestamp", func(t *testing.T) {
		rec, err := Decode("web-1", "2024-01-01T00:00:05.123456789Z tick")
		require.NoError(t, err)
		assert.Equal(t, 123456789, rec.Timestamp.Nanosecond())
	})

	t.Run("offset timestamp normalized to UTC", func(t *testing.T) {
		rec, err := Decode("web-1", "2024-01-01T02:00:05+02:00 shifted")
		require.NoError(t, err)
		assert.Equal(t, time.UTC, rec.Timestamp.Location())
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 5, 0, time.UTC), rec.Timestamp)
	})

	t.Run("trailing newline stripped", func(t *testing.T) {
		rec, err := Decode("web-1", "2024-01-01T00:00:05Z hello\n")
		require.NoError(t, err)
		assert.Equal(t, "hello", rec.Body)
	})

	t.Run("body keeps embedded spaces", func(t *testing.T) {
		rec, err := Decode("web-1", "2024-01-01T00:00:05Z GET /health 200 1ms")
		require.NoError(t, err)
		assert.Equal(t, "GET /health 200 1ms", rec.Body)
	})

	t.Run("no delimiter", func(t *testing.T) {
		_, err := Decode("web-1", "2024-01-01T00:00:05Z")
		assert.ErrorIs(t, err, ErrMalformedLine)
	})

	t.Run("empty body", func(t *testing.T) {
		_, err := Decode("web-1", "2024-01-01T00:00:05Z ")
		assert.ErrorIs(t, err, ErrMalformedLine)
	})

	t.Run("bad timestamp", func(t *testing.T) {
		_, err := Decode("web-1", "not-a-timestamp broken")
		assert.ErrorIs(t, err, ErrMalformedLine)
	})

	t.Run("empty line", func(t *testing.T) {
		_, err := Decode("web-1", "")
		assert.ErrorIs(t, err, ErrMalformedLine)
	})
}

func TestWireRoundTrip(t *testing.T) {
	original := Record{
		Source:    "web-1",
		Timestamp: time.Date(2024, 1, 1, 0, 0, 5, 123456789, time.UTC),
		Body:      `level=info msg="ready" port=8080`,
	}

	payload, err := Encode(original)
	require.NoError(t, err)

	decoded, err := DecodeWire(payload)
	require.NoError(t, err)

	assert.Equal(t, original.Source, decoded.Source)
	assert.True(t, original.Timestamp.Equal(decoded.Timestamp))
	assert.Equal(t, original.Body, decoded.Body)
}

func TestWireEncodingStable(t *testing.T) {
	rec := Record{
		Source:    "web-1",
		Timestamp: time.Date(2024, 1, 1, 0, 0, 5, 0, time.UTC),
		Body:      "hello",
	}

	first, err := Encode(rec)
	require.NoError(t, err)
	second, err := Encode(rec)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDecodeWireRejectsGarbage(t *testing.T) {
	_, err := DecodeWire([]byte("{not json"))
	assert.Error(t, err)
}
