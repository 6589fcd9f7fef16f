package fanout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logtide/logtide/internal/record"
)

func rec(body string) record.Record {
	return record.Record{
		Source:    "web-1",
		Timestamp: time.Date(2024, 1, 1, 0, 0, 5, 0, time.UTC),
		Body:      body,
	}
}

func TestPublishReachesAllSubscribers(t *testing.T) {
	hub := New()
	a := hub.Subscribe(4)
	b := hub.Subscribe(4)

	dropped := hub.Publish(rec("hello"))
	assert.Zero(t, dropped)

	assert.Equal(t, "hello", (<-a.C()).Body)
	assert.Equal(t, "hello", (<-b.C()).Body)
}

func TestPublishWithoutSubscribersDiscards(t *testing.T) {
	hub := New()
	// Must not block or panic with nobody listening.
	assert.Zero(t, hub.Publish(rec("hello")))
}

func TestSlowSubscriberNeverBlocksPublish(t *testing.T) {
	hub := New()
	slow := hub.Subscribe(1)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			hub.Publish(rec("x"))
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}

	// The buffered record is still there; the rest were dropped.
	assert.Equal(t, "x", (<-slow.C()).Body)
}

func TestPublishReportsDrops(t *testing.T) {
	hub := New()
	hub.Subscribe(1)

	assert.Zero(t, hub.Publish(rec("first")))
	assert.Equal(t, 1, hub.Publish(rec("second")))
}

func TestCancelDetaches(t *testing.T) {
	hub := New()
	sub := hub.Subscribe(1)
	require.Equal(t, 1, hub.Len())

	sub.Cancel()
	assert.Zero(t, hub.Len())

	_, open := <-sub.C()
	assert.False(t, open)

	// Double cancel is safe.
	sub.Cancel()
}

func TestCloseEndsSubscriptions(t *testing.T) {
	hub := New()
	sub := hub.Subscribe(4)
	hub.Publish(rec("last"))
	hub.Close()

	got, open := <-sub.C()
	require.True(t, open)
	assert.Equal(t, "last", got.Body)

	_, open = <-sub.C()
	assert.False(t, open)

	// Publish and Subscribe after close are safe no-ops.
	assert.Zero(t, hub.Publish(rec("late")))
	late := hub.Subscribe(1)
	_, open = <-late.C()
	assert.False(t, open)
}
