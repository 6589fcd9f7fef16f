package sink

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logtide/logtide/internal/logging"
	"github.com/logtide/logtide/internal/monitoring"
	"github.com/logtide/logtide/internal/record"
)

// fakeSink records every write and fails on demand.
type fakeSink struct {
	name string

	mu     sync.Mutex
	recs   []record.Record
	err    error
	closed bool
}

func (f *fakeSink) Name() string { return f.name }

func (f *fakeSink) Write(_ context.Context, rec record.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.recs = append(f.recs, rec)
	return nil
}

func (f *fakeSink) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeSink) fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *fakeSink) bodies() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.recs))
	for i, r := range f.recs {
		out[i] = r.Body
	}
	return out
}

func newTestDispatcher(sinks ...Sink) *Dispatcher {
	metrics := monitoring.NewMetricsWith(prometheus.NewRegistry())
	return NewDispatcher(logging.NewNop(), metrics, sinks...)
}

func testRecord(body string) record.Record {
	return record.Record{
		Source:    "web-1",
		Timestamp: time.Date(2024, 1, 1, 0, 0, 5, 0, time.UTC),
		Body:      body,
	}
}

func TestDispatchReachesBothSinks(t *testing.T) {
	broker := &fakeSink{name: "broker"}
	store := &fakeSink{name: "store"}
	d := newTestDispatcher(broker, store)

	d.Dispatch(context.Background(), testRecord("hello"))

	assert.Equal(t, []string{"hello"}, broker.bodies())
	assert.Equal(t, []string{"hello"}, store.bodies())
}

func TestBrokerFailureDoesNotAffectStore(t *testing.T) {
	broker := &fakeSink{name: "broker"}
	store := &fakeSink{name: "store"}
	d := newTestDispatcher(broker, store)

	broker.fail(errors.New("broker down"))

	d.Dispatch(context.Background(), testRecord("one"))
	d.Dispatch(context.Background(), testRecord("two"))

	assert.Empty(t, broker.bodies())
	assert.Equal(t, []string{"one", "two"}, store.bodies())
}

func TestStoreFailureDoesNotAffectBroker(t *testing.T) {
	broker := &fakeSink{name: "broker"}
	store := &fakeSink{name: "store"}
	d := newTestDispatcher(broker, store)

	store.fail(errors.New("store down"))

	d.Dispatch(context.Background(), testRecord("one"))
	d.Dispatch(context.Background(), testRecord("two"))

	assert.Equal(t, []string{"one", "two"}, broker.bodies())
	assert.Empty(t, store.bodies())
}

// A sink that recovers gets no replay of records it missed.
func TestNoRetryAfterRecovery(t *testing.T) {
	broker := &fakeSink{name: "broker"}
	store := &fakeSink{name: "store"}
	d := newTestDispatcher(broker, store)

	store.fail(errors.New("store down"))
	d.Dispatch(context.Background(), testRecord("missed"))

	store.fail(nil)
	d.Dispatch(context.Background(), testRecord("after"))

	assert.Equal(t, []string{"after"}, store.bodies())
	assert.Equal(t, []string{"missed", "after"}, broker.bodies())
}

func TestDispatchPreservesOrder(t *testing.T) {
	broker := &fakeSink{name: "broker"}
	store := &fakeSink{name: "store"}
	d := newTestDispatcher(broker, store)

	want := []string{"a", "b", "c", "d", "e"}
	for _, body := range want {
		d.Dispatch(context.Background(), testRecord(body))
	}

	assert.Equal(t, want, broker.bodies())
	assert.Equal(t, want, store.bodies())
}

func TestCloseClosesAllSinks(t *testing.T) {
	broker := &fakeSink{name: "broker"}
	store := &fakeSink{name: "store"}
	d := newTestDispatcher(broker, store)

	require.NoError(t, d.Close())
	assert.True(t, broker.closed)
	assert.True(t, store.closed)
}
