// Package events carries change notifications from the directories to
// dependent views. A directory mutation publishes one event; dashboards
// subscribe instead of polling on a timer.
package events

import "sync"

// Collection names used in change events.
const (
	CollectionCompanies  = "companies"
	CollectionCandidates = "candidates"
)

// Change describes one directory mutation.
type Change struct {
	Collection string `json:"collection"`
	Action     string `json:"action"` // created, updated, deleted, cleared
	ID         string `json:"id,omitempty"`
}

// Bus is an in-process fan-out of directory change events. Slow subscribers
// drop events rather than block publishers; the stream is an advisory
// refresh signal, not a correctness mechanism.
type Bus struct {
	mu   sync.Mutex
	subs map[int]chan Change
	next int
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan Change)}
}

// Publish delivers the change to every subscriber without blocking.
func (b *Bus) Publish(ch Change) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, sub := range b.subs {
		select {
		case sub <- ch:
		default:
		}
	}
}

// Subscribe registers a listener. The returned cancel func must be called
// when the subscriber goes away; the channel is closed by cancel.
func (b *Bus) Subscribe() (<-chan Change, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.next
	b.next++
	ch := make(chan Change, 16)
	b.subs[id] = ch
	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}
