// Package fanout implements the in-process publish point for live
// subscribers of a pipeline run.
//
// Publishing is best-effort and never blocks: a subscriber whose buffer
// is full misses the record, and with no subscribers attached records
// are simply discarded. The pipeline's progress is independent of who,
// if anyone, is watching.
package fanout

import (
	"sync"

	"github.com/logtide/logtide/internal/record"
)

// Hub broadcasts filtered records to zero or more local subscribers.
// It is bound to one pipeline run and closed when the run ends.
type Hub struct {
	mu     sync.RWMutex
	subs   map[*Subscription]struct{}
	closed bool
}

// Subscription is one subscriber's view of the record stream.
type Subscription struct {
	hub *Hub
	ch  chan record.Record
}

// New creates an empty hub.
func New() *Hub {
	return &Hub{subs: make(map[*Subscription]struct{})}
}

// Subscribe attaches a subscriber with the given buffer size. Records
// published while the buffer is full are dropped for this subscriber.
// Subscribing to a closed hub returns an already-closed subscription.
func (h *Hub) Subscribe(buffer int) *Subscription {
	if buffer <= 0 {
		buffer = 1
	}
	sub := &Subscription{hub: h, ch: make(chan record.Record, buffer)}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(sub.ch)
		return sub
	}
	h.subs[sub] = struct{}{}
	return sub
}

// Publish delivers rec to every subscriber that has buffer space.
// It returns the number of subscribers that missed the record.
func (h *Hub) Publish(rec record.Record) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	dropped := 0
	for sub := range h.subs {
		select {
		case sub.ch <- rec:
		default:
			dropped++
		}
	}
	return dropped
}

// Len returns the number of attached subscribers.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Close detaches all subscribers and closes their channels. Publish on
// a closed hub is a no-op.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for sub := range h.subs {
		close(sub.ch)
		delete(h.subs, sub)
	}
}

// C returns the channel records arrive on. The channel is closed when
// the subscription is canceled or the hub shuts down.
func (s *Subscription) C() <-chan record.Record {
	return s.ch
}

// Cancel detaches the subscription from its hub and closes the channel.
func (s *Subscription) Cancel() {
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()
	if _, ok := s.hub.subs[s]; !ok {
		return
	}
	delete(s.hub.subs, s)
	close(s.ch)
}
