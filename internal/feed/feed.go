// Package feed is an in-memory fan-out of received webhook deliveries, with a
// small ring buffer so late subscribers can catch up. It backs the `pagerkit
// watch` terminal UI. Nothing is persisted.
package feed

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Delivery is one received webhook, reduced to what the watch UI displays.
type Delivery struct {
	ID         string
	Resource   string
	EventType  string
	Summary    string
	OccurredAt time.Time
	ReceivedAt time.Time
}

// Feed is a bounded pub/sub of deliveries. Safe for concurrent use.
type Feed struct {
	mu    sync.Mutex
	ring  []Delivery
	start int
	size  int

	subs      map[int]chan Delivery
	nextSubID int
}

// New creates a feed retaining the last capacity deliveries.
func New(capacity int) *Feed {
	if capacity <= 0 {
		capacity = 100
	}
	return &Feed{
		ring: make([]Delivery, capacity),
		subs: make(map[int]chan Delivery),
	}
}

// Publish records a delivery and forwards it to all subscribers. ID and
// ReceivedAt are filled in when unset.
func (f *Feed) Publish(d Delivery) {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.ReceivedAt.IsZero() {
		d.ReceivedAt = time.Now().UTC()
	}

	f.mu.Lock()
	f.pushLocked(d)
	for _, ch := range f.subs {
		// Don't let slow subscribers block the webhook handler.
		select {
		case ch <- d:
		default:
		}
	}
	f.mu.Unlock()
}

// Subscribe returns a channel of future deliveries and a cancel function.
// Cancel closes the channel; it is safe to call more than once.
func (f *Feed) Subscribe() (<-chan Delivery, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.nextSubID
	f.nextSubID++
	ch := make(chan Delivery, 128)
	f.subs[id] = ch

	cancel := func() {
		f.mu.Lock()
		if c, ok := f.subs[id]; ok {
			delete(f.subs, id)
			close(c)
		}
		f.mu.Unlock()
	}

	return ch, cancel
}

// Snapshot returns the buffered deliveries, oldest first.
func (f *Feed) Snapshot() []Delivery {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]Delivery, 0, f.size)
	for i := 0; i < f.size; i++ {
		out = append(out, f.ring[(f.start+i)%len(f.ring)])
	}
	return out
}

func (f *Feed) pushLocked(d Delivery) {
	capacity := len(f.ring)
	if f.size < capacity {
		idx := (f.start + f.size) % capacity
		f.ring[idx] = d
		f.size++
		return
	}

	// Overwrite oldest.
	f.ring[f.start] = d
	f.start = (f.start + 1) % capacity
}
